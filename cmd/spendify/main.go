package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/spendify/spendify-go/internal/cli"
	"github.com/spendify/spendify-go/internal/config"
	"github.com/spendify/spendify-go/internal/logger"
	"github.com/spendify/spendify-go/internal/repository"
	"github.com/spendify/spendify-go/internal/service"
	"github.com/spendify/spendify-go/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	store, err := storage.NewFileStore(cfg.StorePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.StorePath).Msg("opening store failed")
		os.Exit(1)
	}
	repo := repository.NewGateway(store, log)

	if !cfg.NoDemo {
		if err := service.EnsureDemo(repo); err != nil {
			log.Warn().Err(err).Msg("seeding demo account failed")
		}
	}

	sessions := service.NewSessionManager(repo, service.NewDirectory(repo))
	if account, ok := sessions.Resume(); ok {
		log.Debug().Str("email", account.Email).Msg("session resumed")
	}

	app := &cli.App{
		Sessions: sessions,
		Ledger:   service.NewLedgerService(repo, sessions),
		Profiles: service.NewProfileService(repo, sessions),
		Out:      os.Stdout,
	}

	commander := subcommands.NewCommander(flag.CommandLine, "spendify")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, app)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
