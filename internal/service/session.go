package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/spendify/spendify-go/internal/model"
	"github.com/spendify/spendify-go/internal/repository"
)

var (
	ErrIdentifierRequired   = errors.New("enter an email or name")
	ErrInvalidEmail         = errors.New("enter a valid email")
	ErrNameRequired         = errors.New("enter your name")
	ErrShortPassword        = errors.New("password must be 6+ characters")
	ErrInvalidCredentials   = errors.New("no account found for that email or name")
	ErrWrongPassword        = errors.New("incorrect password")
	ErrAlreadyAuthenticated = errors.New("already signed in")
	ErrNotAuthenticated     = errors.New("sign in first")
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SessionManager is the account life-cycle state machine. It is either
// Anonymous or Authenticated with exactly one account, it persists that
// state across restarts, and it is the single source of the namespace all
// per-user reads and writes go through.
type SessionManager struct {
	repo      *repository.Gateway
	directory *Directory
	session   *model.Session
}

// NewSessionManager creates a SessionManager in whatever state the store
// last persisted. Call Resume to apply the auto-login rules.
func NewSessionManager(repo *repository.Gateway, directory *Directory) *SessionManager {
	return &SessionManager{
		repo:      repo,
		directory: directory,
		session:   repo.Session(),
	}
}

// Authenticated reports whether a session is active.
func (m *SessionManager) Authenticated() bool { return m.session != nil }

// Current returns the active account, or ErrNotAuthenticated.
func (m *SessionManager) Current() (model.Account, error) {
	if m.session == nil {
		return model.Account{}, ErrNotAuthenticated
	}
	return m.directory.FindByEmail(m.session.Email)
}

// Namespace returns the storage partition of the active session.
func (m *SessionManager) Namespace() (model.Namespace, error) {
	if m.session == nil {
		return model.GuestNamespace, ErrNotAuthenticated
	}
	return model.NamespaceFor(m.session.Email), nil
}

// Login authenticates by email or display name. An identifier containing
// "@" must be a well-formed email; anything else is resolved through the
// directory's name lookup. remember controls the persisted remember flag.
func (m *SessionManager) Login(identifier, password string, remember bool) (model.Account, error) {
	if m.session != nil {
		return model.Account{}, ErrAlreadyAuthenticated
	}

	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return model.Account{}, ErrIdentifierRequired
	}
	if len(password) < minPasswordLen {
		return model.Account{}, ErrShortPassword
	}

	var account model.Account
	var err error
	if strings.Contains(identifier, "@") {
		if !emailPattern.MatchString(strings.ToLower(identifier)) {
			return model.Account{}, ErrInvalidEmail
		}
		account, err = m.directory.FindByEmail(identifier)
	} else {
		account, err = m.directory.FindByName(identifier)
	}
	if err != nil {
		return model.Account{}, ErrInvalidCredentials
	}

	if !m.directory.VerifyPassword(account, password) {
		return model.Account{}, ErrWrongPassword
	}

	if err := m.repo.SetRemembered(remember); err != nil {
		return model.Account{}, err
	}
	if err := m.activate(account); err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// Signup creates an account, seeds its empty ledger and default profile,
// and activates the session.
func (m *SessionManager) Signup(name, email, password string) (model.Account, error) {
	if m.session != nil {
		return model.Account{}, ErrAlreadyAuthenticated
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return model.Account{}, ErrNameRequired
	}
	if !emailPattern.MatchString(email) {
		return model.Account{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return model.Account{}, ErrShortPassword
	}

	account, err := m.directory.Create(name, email, password)
	if err != nil {
		return model.Account{}, err
	}

	// A brand new user starts from a clean namespace.
	ns := model.NamespaceFor(account.Email)
	if err := m.repo.SaveLedger(ns, nil); err != nil {
		return model.Account{}, err
	}
	profile := model.Profile{Name: name, Currency: model.DefaultCurrency}
	if err := m.repo.SaveProfile(ns, profile); err != nil {
		return model.Account{}, err
	}

	if err := m.activate(account); err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// Logout clears the session. Persisted per-user data is kept; only the
// active identity goes away. Logging out while Anonymous is a no-op.
func (m *SessionManager) Logout() error {
	if m.session == nil {
		return nil
	}
	m.session = nil
	return m.repo.SaveSession(nil)
}

// Resume applies the start-up auto-login rules: a persisted session whose
// account still exists stays active; otherwise the remember flag signs the
// demo account back in; otherwise the manager is Anonymous. Stale
// persisted sessions are removed.
func (m *SessionManager) Resume() (model.Account, bool) {
	if m.session != nil {
		account, err := m.directory.FindByEmail(m.session.Email)
		if err == nil {
			return account, true
		}
		m.session = nil
		// Best-effort removal of the stale entry; a failed delete is
		// retried on the next start-up.
		_ = m.repo.SaveSession(nil)
	}

	if m.repo.Remembered() {
		account, err := m.directory.FindByEmail(model.DemoEmail)
		if err == nil {
			if err := m.activate(account); err == nil {
				return account, true
			}
		}
	}
	return model.Account{}, false
}

// activate switches the machine to Authenticated(account) and persists
// the session. Per-user state is never carried over: everything under the
// new namespace is re-read from the gateway on demand.
func (m *SessionManager) activate(account model.Account) error {
	session := &model.Session{Email: account.Email}
	if err := m.repo.SaveSession(session); err != nil {
		return err
	}
	m.session = session
	return nil
}
