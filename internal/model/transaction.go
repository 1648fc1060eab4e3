package model

import (
	"encoding/json"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Type classifies a transaction as money in or money out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t Type) Valid() bool { return t == TypeIncome || t == TypeExpense }

// Transaction is a single ledger record. It belongs to exactly one
// namespace and its ID is unique within that namespace's ledger.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        Type            `json:"type"`
	Category    string          `json:"category"`
	Date        civil.Date      `json:"date"`
}

// MarshalJSON encodes the amount as a plain JSON number rather than the
// quoted string decimal.Decimal produces by default, keeping the stored
// and exported documents numeric. Decoding accepts both forms, so no
// custom UnmarshalJSON is needed.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type txn struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      json.RawMessage `json:"amount"`
		Type        Type            `json:"type"`
		Category    string          `json:"category"`
		Date        civil.Date      `json:"date"`
	}
	return json.Marshal(txn{
		ID:          t.ID,
		Description: t.Description,
		Amount:      json.RawMessage(t.Amount.String()),
		Type:        t.Type,
		Category:    t.Category,
		Date:        t.Date,
	})
}

// TransactionInput carries the user-supplied fields of an add or edit.
// The ID is assigned (add) or preserved (edit) by the ledger service.
type TransactionInput struct {
	Description string
	Amount      decimal.Decimal
	Type        Type
	Category    string
	Date        civil.Date
}

// Filter narrows a ledger listing. Zero value matches everything.
type Filter struct {
	Query    string // case-insensitive substring over description and category
	Category string // exact category match
}

// Totals are the ledger sums grouped by transaction type.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Balance returns income minus expense.
func (t Totals) Balance() decimal.Decimal { return t.Income.Sub(t.Expense) }

// CategoryTotal is one row of a per-category breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}
