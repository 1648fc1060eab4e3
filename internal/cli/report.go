package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"

	"github.com/spendify/spendify-go/internal/model"
	"github.com/spendify/spendify-go/internal/render"
)

// summaryCmd implements the 'summary' subcommand.
type summaryCmd struct {
	app    *App
	recent int
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show balance, totals and recent activity" }
func (*summaryCmd) Usage() string {
	return `spendify summary [-recent <n>]

  Shows your balance, income and expense totals, and the most recent
  transactions.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.recent, "recent", 5, "number of recent transactions to show")
}

func (c *summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	totals, err := c.app.Ledger.TotalsByType()
	if err != nil {
		return fail(err)
	}
	profile, err := c.app.Profiles.Get()
	if err != nil {
		return fail(err)
	}
	recent, err := c.app.Ledger.Recent(c.recent)
	if err != nil {
		return fail(err)
	}

	account, err := c.app.Sessions.Current()
	if err != nil {
		return fail(err)
	}
	name := profile.Name
	if name == "" {
		name = account.Name
	}

	fmt.Fprintf(c.app.Out, "%s <%s>\n\n", name, account.Email)
	fmt.Fprintf(c.app.Out, "Balance: %s\n", render.Amount(totals.Balance(), profile.Currency))
	fmt.Fprintf(c.app.Out, "Income:  %s\n", render.Amount(totals.Income, profile.Currency))
	fmt.Fprintf(c.app.Out, "Expense: %s\n", render.Amount(totals.Expense, profile.Currency))

	if len(recent) == 0 {
		fmt.Fprintln(c.app.Out, "\nNo transactions yet")
		return subcommands.ExitSuccess
	}
	fmt.Fprintln(c.app.Out)
	printTransactions(c.app, recent, profile.Currency)
	return subcommands.ExitSuccess
}

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	app      *App
	query    string
	category string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list transactions, newest first" }
func (*historyCmd) Usage() string {
	return `spendify history [-q <search>] [-c <category>]

  Lists your transactions, newest first, optionally filtered by a search
  term or an exact category.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "search over description and category")
	f.StringVar(&c.category, "c", "", "exact category filter")
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	list, err := c.app.Ledger.List(model.Filter{Query: c.query, Category: c.category})
	if err != nil {
		return fail(err)
	}
	profile, err := c.app.Profiles.Get()
	if err != nil {
		return fail(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(c.app.Out, "No transactions")
		return subcommands.ExitSuccess
	}
	printTransactions(c.app, list, profile.Currency)
	return subcommands.ExitSuccess
}

// categoriesCmd holds the flags for the 'categories' subcommand.
type categoriesCmd struct {
	app *App
	all bool
}

func (*categoriesCmd) Name() string     { return "categories" }
func (*categoriesCmd) Synopsis() string { return "show per-category totals" }
func (*categoriesCmd) Usage() string {
	return `spendify categories [-all]

  Shows per-category totals, biggest first. By default only expenses are
  summed; -all includes income.
`
}

func (c *categoriesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.all, "all", false, "sum income as well as expenses")
}

func (c *categoriesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rows, err := c.app.Ledger.TotalsByCategory(!c.all)
	if err != nil {
		return fail(err)
	}
	profile, err := c.app.Profiles.Get()
	if err != nil {
		return fail(err)
	}
	if len(rows) == 0 {
		fmt.Fprintln(c.app.Out, "No data yet")
		return subcommands.ExitSuccess
	}

	w := tabwriter.NewWriter(c.app.Out, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row.Category, render.Amount(row.Total, profile.Currency))
	}
	w.Flush()
	return subcommands.ExitSuccess
}

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	app  *App
	path string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export your profile and ledger as JSON" }
func (*exportCmd) Usage() string {
	return `spendify export [-o <file>]

  Writes a JSON document with your profile and all transactions, to the
  given file or to stdout.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "o", "", "output file (default stdout)")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	snap, err := c.app.Ledger.Snapshot()
	if err != nil {
		return fail(err)
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fail(err)
	}

	if c.path == "" {
		fmt.Fprintln(c.app.Out, string(raw))
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(c.path, append(raw, '\n'), 0o644); err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.app.Out, "Exported %d transactions to %s\n", len(snap.Txns), c.path)
	return subcommands.ExitSuccess
}

// printTransactions renders one line per transaction.
func printTransactions(app *App, txns []model.Transaction, currency string) {
	w := tabwriter.NewWriter(app.Out, 0, 4, 2, ' ', 0)
	for _, txn := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			txn.Date, txn.Description, txn.Category, render.SignedAmount(txn, currency), txn.ID)
	}
	w.Flush()
}
