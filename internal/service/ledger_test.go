package service

import (
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spendify/spendify-go/internal/model"
	"github.com/spendify/spendify-go/internal/repository"
	"github.com/spendify/spendify-go/internal/storage"
)

type testApp struct {
	sessions *SessionManager
	ledger   *LedgerService
	profiles *ProfileService
	repo     *repository.Gateway
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	repo := repository.NewGateway(storage.NewMemStore(), zerolog.Nop())
	sessions := NewSessionManager(repo, NewDirectory(repo))
	return &testApp{
		sessions: sessions,
		ledger:   NewLedgerService(repo, sessions),
		profiles: NewProfileService(repo, sessions),
		repo:     repo,
	}
}

func (a *testApp) signIn(t *testing.T, name, email string) {
	t.Helper()
	if _, err := a.sessions.Signup(name, email, "secret1"); err != nil {
		t.Fatalf("Signup() unexpected error: %v", err)
	}
}

func input(description string, amount int64, typ model.Type, category, date string) model.TransactionInput {
	in := model.TransactionInput{
		Description: description,
		Amount:      decimal.NewFromInt(amount),
		Type:        typ,
		Category:    category,
	}
	if date != "" {
		d, err := civil.ParseDate(date)
		if err != nil {
			panic(err)
		}
		in.Date = d
	}
	return in
}

func TestAddRequiresSession(t *testing.T) {
	app := newTestApp(t)

	_, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", "2024-01-01"))
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Add() while Anonymous = %v, want ErrNotAuthenticated", err)
	}
}

func TestAddValidation(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	cases := []struct {
		name string
		in   model.TransactionInput
		want error
	}{
		{"blank description", input("  ", 500, model.TypeExpense, "Food", ""), ErrDescriptionRequired},
		{"zero amount", input("Coffee", 0, model.TypeExpense, "Food", ""), ErrAmountNotPositive},
		{"negative amount", input("Coffee", -5, model.TypeExpense, "Food", ""), ErrAmountNotPositive},
		{"blank category", input("Coffee", 500, model.TypeExpense, " ", ""), ErrCategoryRequired},
		{"bad type", input("Coffee", 500, model.Type("transfer"), "Food", ""), ErrInvalidType},
	}
	for _, tc := range cases {
		if _, err := app.ledger.Add(tc.in); !errors.Is(err, tc.want) {
			t.Errorf("Add() %s = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestAddDefaultsDateToToday(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	txn, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", ""))
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if !txn.Date.IsValid() {
		t.Errorf("Add() date = %v, want today's date", txn.Date)
	}
}

func TestAddThenRemoveRoundTrip(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	if _, err := app.ledger.Add(input("Rent", 25000, model.TypeExpense, "Rent", "2024-01-01")); err != nil {
		t.Fatal(err)
	}
	before, err := app.ledger.List(model.Filter{})
	if err != nil {
		t.Fatal(err)
	}

	txn, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", "2024-01-02"))
	if err != nil {
		t.Fatal(err)
	}
	if txn.ID == "" {
		t.Fatal("Add() assigned empty id")
	}
	if err := app.ledger.Remove(txn.ID); err != nil {
		t.Fatalf("Remove() unexpected error: %v", err)
	}

	after, err := app.ledger.List(model.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before) {
		t.Fatalf("ledger has %d transactions after add+remove, want %d", len(after), len(before))
	}
	for i := range before {
		if after[i].ID != before[i].ID {
			t.Errorf("transaction %d = %q, want %q", i, after[i].ID, before[i].ID)
		}
	}
}

func TestRemoveNotFound(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	if err := app.ledger.Remove("missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Remove() = %v, want ErrTransactionNotFound", err)
	}
}

func TestUpdateTargetsOnlyOneRecord(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	first, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", "2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := app.ledger.Add(input("Bus", 120, model.TypeExpense, "Transport", "2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}
	third, err := app.ledger.Add(input("Salary", 90000, model.TypeIncome, "Salary", "2024-01-01"))
	if err != nil {
		t.Fatal(err)
	}

	updated, err := app.ledger.Update(second.ID, input("Train", 340, model.TypeExpense, "Transport", "2024-01-01"))
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if updated.ID != second.ID {
		t.Errorf("Update() id = %q, want preserved %q", updated.ID, second.ID)
	}
	if updated.Description != "Train" {
		t.Errorf("Update() description = %q, want Train", updated.Description)
	}

	list, err := app.ledger.List(model.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("ledger has %d transactions, want 3", len(list))
	}
	// Same date throughout, so listing preserves insertion order.
	wantOrder := []string{first.ID, second.ID, third.ID}
	for i, want := range wantOrder {
		if list[i].ID != want {
			t.Errorf("position %d = %q, want %q (order disturbed)", i, list[i].ID, want)
		}
	}
	if list[0].Description != "Coffee" || list[2].Description != "Salary" {
		t.Error("Update() modified records other than the target")
	}
}

func TestUpdateNotFound(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	_, err := app.ledger.Update("missing", input("Coffee", 500, model.TypeExpense, "Food", ""))
	if !errors.Is(err, ErrTransactionNotFound) {
		t.Errorf("Update() = %v, want ErrTransactionNotFound", err)
	}
}

func TestTotalsByType(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	if _, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", "2024-01-01")); err != nil {
		t.Fatal(err)
	}

	totals, err := app.ledger.TotalsByType()
	if err != nil {
		t.Fatalf("TotalsByType() unexpected error: %v", err)
	}
	if !totals.Expense.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expense total = %s, want 500", totals.Expense)
	}
	if !totals.Income.Equal(decimal.Zero) {
		t.Errorf("income total = %s, want 0", totals.Income)
	}

	if _, err := app.ledger.Add(input("Salary", 90000, model.TypeIncome, "Salary", "2024-01-05")); err != nil {
		t.Fatal(err)
	}
	totals, err = app.ledger.TotalsByType()
	if err != nil {
		t.Fatal(err)
	}
	if !totals.Balance().Equal(decimal.NewFromInt(89500)) {
		t.Errorf("balance = %s, want 89500", totals.Balance())
	}
}

func TestTotalsByCategory(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	for _, in := range []model.TransactionInput{
		input("Coffee", 500, model.TypeExpense, "Food", "2024-01-01"),
		input("Grocery", 7300, model.TypeExpense, "Food", "2024-01-02"),
		input("Bus", 120, model.TypeExpense, "Transport", "2024-01-03"),
		input("Salary", 90000, model.TypeIncome, "Salary", "2024-01-04"),
	} {
		if _, err := app.ledger.Add(in); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := app.ledger.TotalsByCategory(true)
	if err != nil {
		t.Fatalf("TotalsByCategory() unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("TotalsByCategory() returned %d rows, want 3 (income categories keep a bucket)", len(rows))
	}
	if rows[0].Category != "Food" || !rows[0].Total.Equal(decimal.NewFromInt(7800)) {
		t.Errorf("row 0 = %+v, want Food 7800", rows[0])
	}
	if rows[1].Category != "Transport" || !rows[1].Total.Equal(decimal.NewFromInt(120)) {
		t.Errorf("row 1 = %+v, want Transport 120", rows[1])
	}
	if rows[2].Category != "Salary" || !rows[2].Total.Equal(decimal.Zero) {
		t.Errorf("row 2 = %+v, want Salary 0 (expenses only)", rows[2])
	}

	all, err := app.ledger.TotalsByCategory(false)
	if err != nil {
		t.Fatal(err)
	}
	if all[0].Category != "Salary" || !all[0].Total.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("all-types row 0 = %+v, want Salary 90000", all[0])
	}
}

func TestRecentOrderingAndTies(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	if _, err := app.ledger.Add(input("Older", 100, model.TypeExpense, "Other", "2024-01-01")); err != nil {
		t.Fatal(err)
	}
	tieA, err := app.ledger.Add(input("Tie A", 100, model.TypeExpense, "Other", "2024-01-05"))
	if err != nil {
		t.Fatal(err)
	}
	tieB, err := app.ledger.Add(input("Tie B", 100, model.TypeExpense, "Other", "2024-01-05"))
	if err != nil {
		t.Fatal(err)
	}

	recent, err := app.ledger.Recent(2)
	if err != nil {
		t.Fatalf("Recent() unexpected error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Recent(2) returned %d transactions, want 2", len(recent))
	}
	// Ties keep insertion order: A before B; the older record is truncated away.
	if recent[0].ID != tieA.ID || recent[1].ID != tieB.ID {
		t.Errorf("Recent(2) = [%s %s], want [%s %s]", recent[0].Description, recent[1].Description, "Tie A", "Tie B")
	}
}

func TestListFilter(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	for _, in := range []model.TransactionInput{
		input("Morning coffee", 500, model.TypeExpense, "Food", "2024-01-01"),
		input("Bus ticket", 120, model.TypeExpense, "Transport", "2024-01-02"),
	} {
		if _, err := app.ledger.Add(in); err != nil {
			t.Fatal(err)
		}
	}

	byQuery, err := app.ledger.List(model.Filter{Query: "COFFEE"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byQuery) != 1 || byQuery[0].Description != "Morning coffee" {
		t.Errorf("List(query) = %+v, want the coffee record", byQuery)
	}

	byCategory, err := app.ledger.List(model.Filter{Category: "Transport"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byCategory) != 1 || byCategory[0].Category != "Transport" {
		t.Errorf("List(category) = %+v, want the transport record", byCategory)
	}
}

func TestNamespaceIsolation(t *testing.T) {
	app := newTestApp(t)

	// User A records three transactions.
	app.signIn(t, "Alice", "alice@x.com")
	for i := 0; i < 3; i++ {
		if _, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", "2024-01-01")); err != nil {
			t.Fatal(err)
		}
	}
	if err := app.sessions.Logout(); err != nil {
		t.Fatal(err)
	}

	// User B sees none of them.
	app.signIn(t, "Bob", "bob@x.com")
	list, err := app.ledger.List(model.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("Bob sees %d transactions, want 0", len(list))
	}

	// And A's ledger is intact when A returns.
	if err := app.sessions.Logout(); err != nil {
		t.Fatal(err)
	}
	if _, err := app.sessions.Login("alice@x.com", "secret1", false); err != nil {
		t.Fatal(err)
	}
	list, err = app.ledger.List(model.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Errorf("Alice sees %d transactions after returning, want 3", len(list))
	}
}

func TestClear(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	if _, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", "2024-01-01")); err != nil {
		t.Fatal(err)
	}
	if err := app.ledger.Clear(); err != nil {
		t.Fatalf("Clear() unexpected error: %v", err)
	}
	list, err := app.ledger.List(model.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("ledger has %d transactions after Clear(), want 0", len(list))
	}
}

func TestSeedDemoAppends(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	if _, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", "2024-01-01")); err != nil {
		t.Fatal(err)
	}
	if err := app.ledger.SeedDemo(); err != nil {
		t.Fatalf("SeedDemo() unexpected error: %v", err)
	}
	list, err := app.ledger.List(model.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Errorf("ledger has %d transactions after SeedDemo(), want 3", len(list))
	}
}

func TestSnapshot(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	if _, err := app.ledger.Add(input("Coffee", 500, model.TypeExpense, "Food", "2024-01-01")); err != nil {
		t.Fatal(err)
	}

	snap, err := app.ledger.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() unexpected error: %v", err)
	}
	if snap.Profile.Name != "Alice" {
		t.Errorf("Snapshot() profile = %+v, want Alice's", snap.Profile)
	}
	if len(snap.Txns) != 1 {
		t.Fatalf("Snapshot() has %d transactions, want 1", len(snap.Txns))
	}

	// The snapshot is a copy: mutating it must not touch the ledger.
	snap.Txns[0].Description = "tampered"
	list, err := app.ledger.List(model.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if list[0].Description != "Coffee" {
		t.Error("mutating a Snapshot() copy changed the stored ledger")
	}
}

func TestProfileSaveFallbackChain(t *testing.T) {
	app := newTestApp(t)
	app.signIn(t, "Alice", "alice@x.com")

	// Explicit name wins.
	profile, err := app.profiles.Save("  Ali  ")
	if err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if profile.Name != "Ali" {
		t.Errorf("Save() name = %q, want trimmed %q", profile.Name, "Ali")
	}

	// Blank keeps the previously saved name.
	profile, err = app.profiles.Save("")
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name != "Ali" {
		t.Errorf("Save(\"\") name = %q, want previous %q", profile.Name, "Ali")
	}

	got, err := app.profiles.Get()
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got.Currency != model.DefaultCurrency {
		t.Errorf("Get() currency = %q, want %q", got.Currency, model.DefaultCurrency)
	}
}

func TestProfileRequiresSession(t *testing.T) {
	app := newTestApp(t)

	if _, err := app.profiles.Get(); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Get() while Anonymous = %v, want ErrNotAuthenticated", err)
	}
	if _, err := app.profiles.Save("x"); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("Save() while Anonymous = %v, want ErrNotAuthenticated", err)
	}
}

func TestEnsureDemoIdempotent(t *testing.T) {
	app := newTestApp(t)

	if err := EnsureDemo(app.repo); err != nil {
		t.Fatalf("EnsureDemo() unexpected error: %v", err)
	}
	ns := model.NamespaceFor(model.DemoEmail)
	first := app.repo.Ledger(ns)
	if len(first) != 2 {
		t.Fatalf("demo ledger has %d transactions, want 2", len(first))
	}

	if err := EnsureDemo(app.repo); err != nil {
		t.Fatalf("EnsureDemo() second run unexpected error: %v", err)
	}
	if again := app.repo.Ledger(ns); len(again) != 2 {
		t.Errorf("demo ledger has %d transactions after rerun, want 2", len(again))
	}

	// "demo@local" has no dot after the @, so the email form of login
	// rejects it; the demo account is reached by display name instead.
	if _, err := app.sessions.Login(model.DemoEmail, "password", false); err != ErrInvalidEmail {
		t.Errorf("Login(%q) error = %v, want ErrInvalidEmail", model.DemoEmail, err)
	}
	account, err := app.sessions.Login("Demo User", "password", false)
	if err != nil {
		t.Fatalf("Login(Demo User) unexpected error: %v", err)
	}
	if account.Email != model.DemoEmail {
		t.Errorf("Login(Demo User) email = %q, want %q", account.Email, model.DemoEmail)
	}
}
