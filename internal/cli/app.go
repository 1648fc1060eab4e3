// Package cli implements the tracker's command line surface: one
// subcommand per user action, all driving the core services.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/spendify/spendify-go/internal/service"
)

// App bundles the core services the subcommands operate on.
type App struct {
	Sessions *service.SessionManager
	Ledger   *service.LedgerService
	Profiles *service.ProfileService
	Out      io.Writer
}

// Register adds every subcommand to the commander.
func Register(c *subcommands.Commander, app *App) {
	c.Register(&loginCmd{app: app}, "account")
	c.Register(&signupCmd{app: app}, "account")
	c.Register(&logoutCmd{app: app}, "account")
	c.Register(&profileCmd{app: app}, "account")

	c.Register(&addCmd{app: app}, "transactions")
	c.Register(&editCmd{app: app}, "transactions")
	c.Register(&rmCmd{app: app}, "transactions")
	c.Register(&historyCmd{app: app}, "transactions")
	c.Register(&clearCmd{app: app}, "transactions")
	c.Register(&demoCmd{app: app}, "transactions")

	c.Register(&summaryCmd{app: app}, "reports")
	c.Register(&categoriesCmd{app: app}, "reports")
	c.Register(&exportCmd{app: app}, "reports")
}

// fail prints an operation error and picks the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// usage prints a command's usage text and signals a usage error.
func usage(c subcommands.Command) subcommands.ExitStatus {
	fmt.Fprint(os.Stderr, c.Usage())
	return subcommands.ExitUsageError
}
