// Package render formats ledger values for display and export.
package render

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/spendify/spendify-go/internal/model"
)

// Amount formats a decimal amount in the given currency, e.g.
// "LKR 1,234.00". Unknown currency codes fall back to the supported one.
func Amount(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(model.DefaultCurrency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	// Currency code rather than symbol: "LKR 1,234.00", not "₨1,234.00".
	f := money.NewFormatter(cur.Fraction, ".", ",", cur.Code, "$ 1")
	return f.Format(minor)
}

// SignedAmount is Amount with expenses prefixed by a minus sign, the way
// transaction rows are shown.
func SignedAmount(txn model.Transaction, currency string) string {
	s := Amount(txn.Amount, currency)
	if txn.Type == model.TypeExpense {
		return "-" + s
	}
	return s
}
