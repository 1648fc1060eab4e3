package service

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/spendify/spendify-go/internal/ident"
	"github.com/spendify/spendify-go/internal/model"
	"github.com/spendify/spendify-go/internal/repository"
)

// EnsureDemo creates the built-in demo account with a seeded ledger and
// profile. It is idempotent: an existing demo account is left untouched.
func EnsureDemo(repo *repository.Gateway) error {
	accounts := repo.Accounts()
	if _, ok := accounts[model.DemoEmail]; ok {
		return nil
	}

	accounts[model.DemoEmail] = model.Account{
		Name:             "Demo User",
		Email:            model.DemoEmail,
		PasswordChecksum: ident.Checksum("password"),
	}
	if err := repo.SaveAccounts(accounts); err != nil {
		return err
	}

	ns := model.NamespaceFor(model.DemoEmail)
	today := civil.DateOf(time.Now())
	txns := []model.Transaction{
		{
			ID:          ident.NewID(),
			Description: "Salary",
			Amount:      decimal.NewFromInt(200000),
			Type:        model.TypeIncome,
			Category:    "Salary",
			Date:        today.AddDays(-10),
		},
		{
			ID:          ident.NewID(),
			Description: "Grocery",
			Amount:      decimal.NewFromInt(7300),
			Type:        model.TypeExpense,
			Category:    "Food",
			Date:        today.AddDays(-8),
		},
	}
	if err := repo.SaveLedger(ns, txns); err != nil {
		return err
	}
	return repo.SaveProfile(ns, model.Profile{Name: "Demo User", Currency: model.DefaultCurrency})
}
