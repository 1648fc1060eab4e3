package service

import (
	"strings"

	"github.com/spendify/spendify-go/internal/model"
	"github.com/spendify/spendify-go/internal/repository"
)

// ProfileService manages the active user's display settings.
type ProfileService struct {
	repo     *repository.Gateway
	sessions *SessionManager
}

// NewProfileService creates a ProfileService.
func NewProfileService(repo *repository.Gateway, sessions *SessionManager) *ProfileService {
	return &ProfileService{repo: repo, sessions: sessions}
}

// Get returns the active user's profile, defaulting to a blank name and
// the supported currency.
func (s *ProfileService) Get() (model.Profile, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return model.Profile{}, err
	}
	return s.repo.Profile(ns), nil
}

// Save stores a new display name for the active user. A blank name falls
// back to the previously saved name, then the account's registered name,
// then "You".
func (s *ProfileService) Save(name string) (model.Profile, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return model.Profile{}, err
	}

	profile := s.repo.Profile(ns)
	name = strings.TrimSpace(name)
	if name == "" {
		name = profile.Name
	}
	if name == "" {
		if account, err := s.sessions.Current(); err == nil {
			name = account.Name
		}
	}
	if name == "" {
		name = "You"
	}

	profile.Name = name
	profile.Currency = model.DefaultCurrency
	if err := s.repo.SaveProfile(ns, profile); err != nil {
		return model.Profile{}, err
	}
	return profile, nil
}
