package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

// profileCmd holds the flags for the 'profile' subcommand.
type profileCmd struct {
	app  *App
	name string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "show or update your profile" }
func (*profileCmd) Usage() string {
	return `spendify profile [-name <display-name>]

  Without flags, shows your profile. With -name, saves a new display name.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "new display name")
}

func (c *profileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name != "" {
		profile, err := c.app.Profiles.Save(c.name)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintf(c.app.Out, "Saved profile: %s (%s)\n", profile.Name, profile.Currency)
		return subcommands.ExitSuccess
	}

	profile, err := c.app.Profiles.Get()
	if err != nil {
		return fail(err)
	}
	name := profile.Name
	if name == "" {
		name = "You"
	}
	fmt.Fprintf(c.app.Out, "%s (%s)\n", name, profile.Currency)
	return subcommands.ExitSuccess
}
