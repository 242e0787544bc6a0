package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/timestudy/internal/cli"
	"github.com/alexanderramin/timestudy/internal/config"
	"github.com/alexanderramin/timestudy/internal/db"
	"github.com/alexanderramin/timestudy/internal/repository"
	"github.com/alexanderramin/timestudy/internal/service"
	"github.com/mattn/go-isatty"
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
		return fmt.Errorf("loading config: %w", err)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	studyRepo := repository.NewSQLiteStudyRepo(database)
	measurementRepo := repository.NewSQLiteMeasurementRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Wire services
	studySvc := service.NewStudyService(studyRepo, observers...)

	app := &cli.App{
		Studies:          studySvc,
		Measurements:     service.NewMeasurementService(measurementRepo, uow, observers...),
		Import:           service.NewImportService(studySvc, uow, observers...),
		Analysis:         service.NewAnalysisService(uow, logger, observers...),
		AnalysisDefaults: cfg.AnalysisDefaults(),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
