package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/spendify/spendify-go/internal/ident"
	"github.com/spendify/spendify-go/internal/model"
	"github.com/spendify/spendify-go/internal/repository"
)

var (
	ErrDescriptionRequired = errors.New("enter a description")
	ErrAmountNotPositive   = errors.New("enter an amount > 0")
	ErrCategoryRequired    = errors.New("pick a category")
	ErrInvalidType         = errors.New("type must be income or expense")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// fallbackCategory buckets transactions with no category in breakdowns.
const fallbackCategory = "Other"

// Namespacer supplies the storage partition ledger operations run under.
// It is satisfied by the SessionManager.
type Namespacer interface {
	Namespace() (model.Namespace, error)
}

// LedgerService manages the active user's transactions. Every operation
// resolves the namespace at call time, so a session switch can never leak
// a previous user's records, and every operation fails with
// ErrNotAuthenticated while Anonymous.
type LedgerService struct {
	repo     *repository.Gateway
	sessions Namespacer
}

// NewLedgerService creates a LedgerService.
func NewLedgerService(repo *repository.Gateway, sessions Namespacer) *LedgerService {
	return &LedgerService{repo: repo, sessions: sessions}
}

// Add validates input, assigns a fresh id, appends the transaction and
// persists the ledger.
func (s *LedgerService) Add(input model.TransactionInput) (model.Transaction, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return model.Transaction{}, err
	}
	txn, err := buildTransaction(ident.NewID(), input)
	if err != nil {
		return model.Transaction{}, err
	}

	txns := append(s.repo.Ledger(ns), txn)
	if err := s.repo.SaveLedger(ns, txns); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// Update replaces the transaction with the given id in place, keeping its
// id and its position in the ledger.
func (s *LedgerService) Update(id string, input model.TransactionInput) (model.Transaction, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return model.Transaction{}, err
	}
	txn, err := buildTransaction(id, input)
	if err != nil {
		return model.Transaction{}, err
	}

	txns := s.repo.Ledger(ns)
	idx := indexByID(txns, id)
	if idx < 0 {
		return model.Transaction{}, ErrTransactionNotFound
	}
	txns[idx] = txn
	if err := s.repo.SaveLedger(ns, txns); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// Remove deletes the transaction with the given id.
func (s *LedgerService) Remove(id string) error {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return err
	}

	txns := s.repo.Ledger(ns)
	idx := indexByID(txns, id)
	if idx < 0 {
		return ErrTransactionNotFound
	}
	txns = append(txns[:idx], txns[idx+1:]...)
	return s.repo.SaveLedger(ns, txns)
}

// List returns the transactions matching filter, newest first.
func (s *LedgerService) List(filter model.Filter) ([]model.Transaction, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return nil, err
	}

	var out []model.Transaction
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	for _, txn := range s.repo.Ledger(ns) {
		if filter.Category != "" && txn.Category != filter.Category {
			continue
		}
		if query != "" {
			haystack := strings.ToLower(txn.Description + " " + txn.Category)
			if !strings.Contains(haystack, query) {
				continue
			}
		}
		out = append(out, txn)
	}
	sortByDateDesc(out)
	return out, nil
}

// Recent returns the n most recent transactions by date. Transactions on
// the same date keep their insertion order.
func (s *LedgerService) Recent(n int) ([]model.Transaction, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return nil, err
	}

	txns := append([]model.Transaction(nil), s.repo.Ledger(ns)...)
	sortByDateDesc(txns)
	if n >= 0 && len(txns) > n {
		txns = txns[:n]
	}
	return txns, nil
}

// TotalsByType sums amounts grouped by transaction type.
func (s *LedgerService) TotalsByType() (model.Totals, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return model.Totals{}, err
	}

	totals := model.Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, txn := range s.repo.Ledger(ns) {
		switch txn.Type {
		case model.TypeIncome:
			totals.Income = totals.Income.Add(txn.Amount)
		case model.TypeExpense:
			totals.Expense = totals.Expense.Add(txn.Amount)
		}
	}
	return totals, nil
}

// TotalsByCategory returns per-category totals sorted by total descending,
// ties broken by category name. With onlyExpenses, every category still
// gets a bucket but only expense amounts are summed, which is what the
// insight view shows.
func (s *LedgerService) TotalsByCategory(onlyExpenses bool) ([]model.CategoryTotal, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return nil, err
	}

	buckets := map[string]decimal.Decimal{}
	for _, txn := range s.repo.Ledger(ns) {
		category := txn.Category
		if category == "" {
			category = fallbackCategory
		}
		if _, ok := buckets[category]; !ok {
			buckets[category] = decimal.Zero
		}
		if onlyExpenses && txn.Type != model.TypeExpense {
			continue
		}
		buckets[category] = buckets[category].Add(txn.Amount)
	}

	out := make([]model.CategoryTotal, 0, len(buckets))
	for category, total := range buckets {
		out = append(out, model.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// Clear empties the active user's ledger.
func (s *LedgerService) Clear() error {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return err
	}
	return s.repo.SaveLedger(ns, nil)
}

// SeedDemo appends a couple of sample transactions to the active ledger.
func (s *LedgerService) SeedDemo() error {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return err
	}

	today := civil.DateOf(time.Now())
	demo := []model.Transaction{
		{
			ID:          ident.NewID(),
			Description: "Cafe",
			Amount:      decimal.NewFromInt(560),
			Type:        model.TypeExpense,
			Category:    "Food",
			Date:        today.AddDays(-2),
		},
		{
			ID:          ident.NewID(),
			Description: "Freelance",
			Amount:      decimal.NewFromInt(48000),
			Type:        model.TypeIncome,
			Category:    "Salary",
			Date:        today.AddDays(-7),
		},
	}
	txns := append(s.repo.Ledger(ns), demo...)
	return s.repo.SaveLedger(ns, txns)
}

// Snapshot returns the export document for the active user: profile plus
// a copy of the full ledger.
func (s *LedgerService) Snapshot() (model.Export, error) {
	ns, err := s.sessions.Namespace()
	if err != nil {
		return model.Export{}, err
	}
	txns := s.repo.Ledger(ns)
	if txns == nil {
		txns = []model.Transaction{}
	}
	return model.Export{
		Profile: s.repo.Profile(ns),
		Txns:    append([]model.Transaction(nil), txns...),
	}, nil
}

// buildTransaction validates input and assembles a record with the given id.
func buildTransaction(id string, input model.TransactionInput) (model.Transaction, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return model.Transaction{}, ErrDescriptionRequired
	}
	if !input.Amount.IsPositive() {
		return model.Transaction{}, ErrAmountNotPositive
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		return model.Transaction{}, ErrCategoryRequired
	}
	if !input.Type.Valid() {
		return model.Transaction{}, ErrInvalidType
	}
	date := input.Date
	if !date.IsValid() {
		date = civil.DateOf(time.Now())
	}
	return model.Transaction{
		ID:          id,
		Description: description,
		Amount:      input.Amount,
		Type:        input.Type,
		Category:    category,
		Date:        date,
	}, nil
}

func indexByID(txns []model.Transaction, id string) int {
	for i, txn := range txns {
		if txn.ID == id {
			return i
		}
	}
	return -1
}

// sortByDateDesc orders newest first, keeping insertion order for equal dates.
func sortByDateDesc(txns []model.Transaction) {
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.After(txns[j].Date)
	})
}
