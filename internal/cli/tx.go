package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cloud.google.com/go/civil"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/spendify/spendify-go/internal/model"
)

// txnFlags are the fields shared by 'add' and 'edit'.
type txnFlags struct {
	description string
	amount      string
	typ         string
	category    string
	date        string
}

func (t *txnFlags) register(f *flag.FlagSet) {
	f.StringVar(&t.description, "d", "", "description")
	f.StringVar(&t.amount, "a", "", "amount (> 0)")
	f.StringVar(&t.typ, "t", string(model.TypeExpense), "type: income or expense")
	f.StringVar(&t.category, "c", "", "category")
	f.StringVar(&t.date, "on", "", "date (YYYY-MM-DD, default today)")
}

func (t *txnFlags) input() (model.TransactionInput, error) {
	in := model.TransactionInput{
		Description: t.description,
		Type:        model.Type(t.typ),
		Category:    t.category,
	}
	if t.amount != "" {
		amount, err := decimal.NewFromString(t.amount)
		if err != nil {
			return model.TransactionInput{}, fmt.Errorf("invalid amount %q: %w", t.amount, err)
		}
		in.Amount = amount
	}
	if t.date != "" {
		date, err := civil.ParseDate(t.date)
		if err != nil {
			return model.TransactionInput{}, fmt.Errorf("invalid date %q: %w", t.date, err)
		}
		in.Date = date
	}
	return in, nil
}

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	app *App
	txnFlags
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction" }
func (*addCmd) Usage() string {
	return `spendify add -d <description> -a <amount> -c <category> [-t income|expense] [-on <date>]

  Records a transaction in your ledger.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) { c.register(f) }

func (c *addCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	in, err := c.input()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	txn, err := c.app.Ledger.Add(in)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.app.Out, "Added %s (%s)\n", txn.Description, txn.ID)
	return subcommands.ExitSuccess
}

// editCmd holds the flags for the 'edit' subcommand.
type editCmd struct {
	app *App
	id  string
	txnFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "replace a transaction by id" }
func (*editCmd) Usage() string {
	return `spendify edit -id <id> -d <description> -a <amount> -c <category> [-t income|expense] [-on <date>]

  Replaces the transaction with the given id, keeping the id.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "transaction id")
	c.register(f)
}

func (c *editCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return usage(c)
	}
	in, err := c.input()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	txn, err := c.app.Ledger.Update(c.id, in)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.app.Out, "Updated %s (%s)\n", txn.Description, txn.ID)
	return subcommands.ExitSuccess
}

// rmCmd holds the flags for the 'rm' subcommand.
type rmCmd struct {
	app *App
	id  string
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete a transaction by id" }
func (*rmCmd) Usage() string {
	return `spendify rm -id <id>

  Deletes the transaction with the given id.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "transaction id")
}

func (c *rmCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		return usage(c)
	}
	if err := c.app.Ledger.Remove(c.id); err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.app.Out, "Deleted %s\n", c.id)
	return subcommands.ExitSuccess
}

// clearCmd implements the 'clear' subcommand.
type clearCmd struct {
	app *App
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete ALL of your transactions" }
func (*clearCmd) Usage() string {
	return `spendify clear

  Empties your ledger. Accounts and profile are kept.
`
}

func (*clearCmd) SetFlags(*flag.FlagSet) {}

func (c *clearCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.Ledger.Clear(); err != nil {
		return fail(err)
	}
	fmt.Fprintln(c.app.Out, "Ledger cleared")
	return subcommands.ExitSuccess
}

// demoCmd implements the 'demo' subcommand.
type demoCmd struct {
	app *App
}

func (*demoCmd) Name() string     { return "demo" }
func (*demoCmd) Synopsis() string { return "append sample transactions" }
func (*demoCmd) Usage() string {
	return `spendify demo

  Appends a couple of sample transactions to your ledger.
`
}

func (*demoCmd) SetFlags(*flag.FlagSet) {}

func (c *demoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.Ledger.SeedDemo(); err != nil {
		return fail(err)
	}
	fmt.Fprintln(c.app.Out, "Demo transactions added")
	return subcommands.ExitSuccess
}
