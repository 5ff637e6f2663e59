package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/acarreno/roadmap/internal/cli"
	"github.com/acarreno/roadmap/internal/config"
	"github.com/acarreno/roadmap/internal/db"
	"github.com/acarreno/roadmap/internal/repository"
	"github.com/acarreno/roadmap/internal/snapshot"
	"github.com/acarreno/roadmap/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "roadmap",
	})

	var st store.Store
	var closeFn func() error

	switch cfg.Storage {
	case config.BackendSQLite:
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		closeFn = database.Close

		st, err = store.OpenRepoStore(
			context.Background(),
			repository.NewSQLiteTaskRepo(database),
			repository.NewSQLiteSubtaskRepo(database),
			repository.NewSQLiteUserRepo(database),
			db.NewSQLiteUnitOfWork(database),
		)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
	default:
		st, err = store.OpenSnapshotStore(snapshot.New(cfg.SnapshotPath), logger)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
	}
	if closeFn != nil {
		defer closeFn()
	}

	app := &cli.App{
		Store:  st,
		Config: cfg,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
