package main

import (
	"fmt"
	"os"

	"github.com/legalaid/caseprogress/internal/catalog"
	"github.com/legalaid/caseprogress/internal/cli"
	"github.com/legalaid/caseprogress/internal/config"
	"github.com/legalaid/caseprogress/internal/db"
	"github.com/legalaid/caseprogress/internal/engine"
	"github.com/legalaid/caseprogress/internal/logger"
	"github.com/legalaid/caseprogress/internal/repository"
	"github.com/legalaid/caseprogress/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	log, closer, err := logger.New(logger.Config{
		LogDir: cfg.LogDir,
		Debug:  cfg.Debug,
		JSON:   cfg.LogJSON,
	})
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closer.Close()

	// Service catalog: YAML override or the built-in table
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		if cat, err = catalog.Load(cfg.CatalogPath); err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		log.Info("catalog loaded", "path", cfg.CatalogPath, "categories", len(cat.Categories()))
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	caseRepo := repository.NewSQLiteCaseRepo(database)
	recordRepo := repository.NewSQLiteServiceRecordRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.LogUseCases {
		observer = service.NewLogUseCaseObserver(log)
	}

	eng := engine.New(cat, engine.WithLogger(log))
	notifier := service.NewLogReviewNotifier(log)

	app := &cli.App{
		Cases:    service.NewCaseService(caseRepo, observer),
		Records:  service.NewRecordService(recordRepo, uow, observer),
		Progress: service.NewProgressService(caseRepo, recordRepo, eng, notifier, observer),
		Import:   service.NewImportService(uow, observer),
		Catalog:  cat,
	}

	// Forms and the timeline browser need a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	log.Debug("starting", "db", cfg.DBPath)

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
