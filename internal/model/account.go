package model

// Account represents a registered user in the accounts directory.
// The email is lowercase-normalized and doubles as the directory key.
type Account struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	PasswordChecksum string `json:"passwordHash"`
}

// Accounts is the persisted accounts directory, keyed by lowercase email.
type Accounts map[string]Account

// DemoEmail is the built-in demo account created at first start.
const DemoEmail = "demo@local"
