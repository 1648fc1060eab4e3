// Package repository is the persistence gateway: typed load/save
// operations for the tracker's logical resources over a flat key-value
// store.
package repository

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/spendify/spendify-go/internal/model"
	"github.com/spendify/spendify-go/internal/storage"
)

// Store keys, versioned so a future layout change can move to a fresh key
// instead of misreading old data.
const (
	keyAccounts = "spendify_accounts_v1"
	keySession  = "spendify_session_v1"
	keyTxns     = "spendify_txns_v3"
	keyProfile  = "spendify_profile_v1"
	keyRemember = "spendify_remember"
)

// Gateway loads and saves the four logical resources: the accounts
// directory, the active session (plus remember flag), and the per-namespace
// ledgers and profiles.
//
// Loads fail soft: missing or malformed data yields the resource's
// documented default, with the reason logged, never an error. Saves report
// their errors so callers can surface a failed write. A save that would
// rewrite a shared key whose current value is unreadable refuses instead,
// so one namespace's write can never wipe out another's data.
type Gateway struct {
	store storage.Store
	log   zerolog.Logger
}

// NewGateway creates a Gateway over store.
func NewGateway(store storage.Store, log zerolog.Logger) *Gateway {
	return &Gateway{store: store, log: log}
}

// Accounts loads the accounts directory. Default: empty directory.
func (g *Gateway) Accounts() model.Accounts {
	accounts := model.Accounts{}
	if _, err := g.load(keyAccounts, &accounts); err != nil {
		g.warn(keyAccounts, err)
		return model.Accounts{}
	}
	if accounts == nil {
		accounts = model.Accounts{}
	}
	return accounts
}

// SaveAccounts persists the accounts directory.
func (g *Gateway) SaveAccounts(accounts model.Accounts) error {
	return g.save(keyAccounts, accounts)
}

// Session loads the active session. Default: nil, meaning Anonymous.
func (g *Gateway) Session() *model.Session {
	var session *model.Session
	if found, err := g.load(keySession, &session); err != nil {
		g.warn(keySession, err)
		return nil
	} else if !found {
		return nil
	}
	if session != nil && session.Email == "" {
		return nil
	}
	return session
}

// SaveSession persists the session. A nil session removes the persisted
// entry entirely rather than writing a null marker.
func (g *Gateway) SaveSession(session *model.Session) error {
	if session == nil {
		return g.store.Delete(keySession)
	}
	return g.save(keySession, session)
}

// Remembered reports whether the remember flag is set.
func (g *Gateway) Remembered() bool {
	_, ok, err := g.store.Get(keyRemember)
	if err != nil {
		g.log.Warn().Err(err).Str("key", keyRemember).Msg("reading remember flag failed, assuming unset")
		return false
	}
	return ok
}

// SetRemembered sets or clears the remember flag.
func (g *Gateway) SetRemembered(on bool) error {
	if !on {
		return g.store.Delete(keyRemember)
	}
	return g.store.Set(keyRemember, []byte(`"1"`))
}

// Ledger loads one namespace's transactions. Default: empty ledger.
func (g *Gateway) Ledger(ns model.Namespace) []model.Transaction {
	all := map[model.Namespace][]model.Transaction{}
	if _, err := g.load(keyTxns, &all); err != nil {
		g.warn(keyTxns, err)
		return nil
	}
	return all[ns]
}

// SaveLedger persists one namespace's transactions, leaving every other
// namespace's ledger untouched. Transactions that would not survive a
// reload are rejected up front: a ledger entry with an invalid date would
// encode fine but fail to decode, rendering the whole key unreadable. If
// the key's current value is already unreadable the save is refused, since
// rebuilding the map from scratch would erase every other namespace.
func (g *Gateway) SaveLedger(ns model.Namespace, txns []model.Transaction) error {
	for _, txn := range txns {
		if !txn.Date.IsValid() {
			return fmt.Errorf("transaction %q: invalid date %v", txn.ID, txn.Date)
		}
	}
	all := map[model.Namespace][]model.Transaction{}
	if _, err := g.load(keyTxns, &all); err != nil {
		return fmt.Errorf("refusing to overwrite %q: %w", keyTxns, err)
	}
	if all == nil {
		all = map[model.Namespace][]model.Transaction{}
	}
	if txns == nil {
		txns = []model.Transaction{}
	}
	all[ns] = txns
	return g.save(keyTxns, all)
}

// Profile loads one namespace's profile. Default: blank name, the
// supported currency.
func (g *Gateway) Profile(ns model.Namespace) model.Profile {
	all := map[model.Namespace]model.Profile{}
	if _, err := g.load(keyProfile, &all); err != nil {
		g.warn(keyProfile, err)
		return model.DefaultProfile()
	}
	profile, ok := all[ns]
	if !ok {
		return model.DefaultProfile()
	}
	if profile.Currency == "" {
		profile.Currency = model.DefaultCurrency
	}
	return profile
}

// SaveProfile persists one namespace's profile. As with SaveLedger, the
// save is refused when the key's current value is unreadable.
func (g *Gateway) SaveProfile(ns model.Namespace, profile model.Profile) error {
	all := map[model.Namespace]model.Profile{}
	if _, err := g.load(keyProfile, &all); err != nil {
		return fmt.Errorf("refusing to overwrite %q: %w", keyProfile, err)
	}
	if all == nil {
		all = map[model.Namespace]model.Profile{}
	}
	all[ns] = profile
	return g.save(keyProfile, all)
}

// load decodes the value under key into v. found is false when the key is
// absent. A non-nil error means the key exists but could not be read or
// decoded; loads downgrade that to a logged default, saves treat it as a
// reason to refuse the write.
func (g *Gateway) load(key string, v any) (found bool, err error) {
	raw, ok, err := g.store.Get(key)
	if err != nil {
		return false, fmt.Errorf("store read: %w", err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("malformed stored data: %w", err)
	}
	return true, nil
}

func (g *Gateway) warn(key string, err error) {
	g.log.Warn().Err(err).Str("key", key).Msg("unreadable stored data, using default")
}

func (g *Gateway) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	return g.store.Set(key, raw)
}
