package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// loginCmd holds the flags for the 'login' subcommand.
type loginCmd struct {
	app      *App
	password string
	remember bool
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "sign in by email or display name" }
func (*loginCmd) Usage() string {
	return `spendify login [-remember] -p <password> <email-or-name>

  Signs in and makes your ledger the active one. The identifier may be
  your email or your display name.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.password, "p", "", "account password")
	f.BoolVar(&c.remember, "remember", false, "sign back in automatically on the next start")
}

func (c *loginCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage(c)
	}

	account, err := c.app.Sessions.Login(f.Arg(0), c.password, c.remember)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.app.Out, "Signed in as %s <%s>\n", account.Name, account.Email)
	return subcommands.ExitSuccess
}

// signupCmd holds the flags for the 'signup' subcommand.
type signupCmd struct {
	app      *App
	name     string
	password string
}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "create an account and sign in" }
func (*signupCmd) Usage() string {
	return `spendify signup -n <name> -p <password> <email>

  Creates a new account with an empty ledger and signs in.
`
}

func (c *signupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "n", "", "display name")
	f.StringVar(&c.password, "p", "", "password (6+ characters)")
}

func (c *signupCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage(c)
	}

	account, err := c.app.Sessions.Signup(c.name, f.Arg(0), c.password)
	if err != nil {
		return fail(err)
	}
	fmt.Fprintf(c.app.Out, "Welcome, %s! Signed in as %s\n", account.Name, account.Email)
	return subcommands.ExitSuccess
}

// logoutCmd implements the 'logout' subcommand.
type logoutCmd struct {
	app *App
}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "sign out" }
func (*logoutCmd) Usage() string {
	return `spendify logout

  Signs out. Your transactions and profile stay in the store.
`
}

func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (c *logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.Sessions.Logout(); err != nil {
		return fail(err)
	}
	fmt.Fprintln(c.app.Out, "Signed out")
	return subcommands.ExitSuccess
}
