package model

// DefaultCurrency is the single currency the tracker currently supports.
const DefaultCurrency = "LKR"

// Profile holds the per-user display settings stored alongside the ledger.
type Profile struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// DefaultProfile returns the profile used before a user has saved one.
func DefaultProfile() Profile {
	return Profile{Currency: DefaultCurrency}
}

// Export is the read-only document produced for the active user: their
// profile plus a full copy of their ledger.
type Export struct {
	Profile Profile       `json:"profile"`
	Txns    []Transaction `json:"txns"`
}
