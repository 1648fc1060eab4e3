package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/spendify/spendify-go/internal/ident"
	"github.com/spendify/spendify-go/internal/model"
	"github.com/spendify/spendify-go/internal/repository"
)

var (
	ErrDuplicateAccount = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("no account found for that email or name")
)

// Directory is the accounts directory: creation and lookup of accounts
// keyed by lowercase-normalized email.
type Directory struct {
	repo *repository.Gateway
}

// NewDirectory creates a Directory over the persistence gateway.
func NewDirectory(repo *repository.Gateway) *Directory {
	return &Directory{repo: repo}
}

// Create registers a new account. The email is lowercased before storage
// and the password is stored as a checksum, never as plaintext.
func (d *Directory) Create(name, email, password string) (model.Account, error) {
	key := strings.ToLower(strings.TrimSpace(email))

	accounts := d.repo.Accounts()
	if _, taken := accounts[key]; taken {
		return model.Account{}, ErrDuplicateAccount
	}

	account := model.Account{
		Name:             name,
		Email:            key,
		PasswordChecksum: ident.Checksum(password),
	}
	accounts[key] = account
	if err := d.repo.SaveAccounts(accounts); err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// FindByEmail looks up an account by email, case-insensitively.
func (d *Directory) FindByEmail(email string) (model.Account, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	account, ok := d.repo.Accounts()[key]
	if !ok {
		return model.Account{}, ErrAccountNotFound
	}
	return account, nil
}

// FindByName looks up an account by display name, case-insensitively.
// An exact match wins; failing that, the first account whose name starts
// with the given string. Either way, when several accounts match, the one
// with the lexicographically smallest email wins, so the result never
// depends on map iteration order.
func (d *Directory) FindByName(name string) (model.Account, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return model.Account{}, ErrAccountNotFound
	}

	var exact, prefix []model.Account
	for _, account := range d.repo.Accounts() {
		have := strings.ToLower(account.Name)
		switch {
		case have == want:
			exact = append(exact, account)
		case strings.HasPrefix(have, want):
			prefix = append(prefix, account)
		}
	}

	for _, matches := range [][]model.Account{exact, prefix} {
		if len(matches) == 0 {
			continue
		}
		sort.Slice(matches, func(i, j int) bool { return matches[i].Email < matches[j].Email })
		return matches[0], nil
	}
	return model.Account{}, ErrAccountNotFound
}

// VerifyPassword reports whether password matches the account's stored
// checksum. Checksum equality, not cryptographic verification.
func (d *Directory) VerifyPassword(account model.Account, password string) bool {
	return account.PasswordChecksum == ident.Checksum(password)
}
