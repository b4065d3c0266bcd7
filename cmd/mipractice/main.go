package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/mipractice/internal/cli"
	"github.com/alexanderramin/mipractice/internal/db"
	"github.com/alexanderramin/mipractice/internal/dialogue"
	"github.com/alexanderramin/mipractice/internal/intelligence"
	"github.com/alexanderramin/mipractice/internal/llm"
	"github.com/alexanderramin/mipractice/internal/repository"
	"github.com/alexanderramin/mipractice/internal/scenario"
	"github.com/alexanderramin/mipractice/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.mipractice/mipractice.db
	dbPath := os.Getenv("MIPRACTICE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".mipractice", "mipractice.db")
	}

	catalog := scenario.DefaultCatalog()
	if path := os.Getenv("MIPRACTICE_SCENARIOS"); path != "" {
		loaded, err := scenario.LoadCatalog(path)
		if err != nil {
			return fmt.Errorf("loading scenario catalog: %w", err)
		}
		catalog = loaded
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLitePracticeSessionRepo(database)
	turnRepo := repository.NewSQLiteTurnRepo(database)
	subRepo := repository.NewSQLiteSubscriptionRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if enabled, _ := strconv.ParseBool(os.Getenv("MIPRACTICE_LOG")); enabled {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	generator := scenario.NewSeededGenerator(catalog, time.Now().UnixNano())
	responder := dialogue.NewResponder()

	// Patients answer from the canned banks unless a model is configured.
	patients := intelligence.NewMockPatientService(responder)
	reviewer := intelligence.NewFeedbackService(nil, nil)

	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client, err := llm.NewClient(llmCfg, observer)
		if err != nil {
			return fmt.Errorf("configuring language model: %w", err)
		}
		patients = intelligence.NewPatientService(client, observer, responder)
		reviewer = intelligence.NewFeedbackService(client, observer)
	}

	app := &cli.App{
		Catalog:      catalog,
		Generator:    generator,
		Responder:    responder,
		Sessions:     service.NewPracticeSessionService(sessionRepo, turnRepo, uow, generator, patients, reviewer, observers...),
		Subscription: service.NewSubscriptionService(subRepo, sessionRepo),
		Settings:     service.NewSettingsService(settingsRepo),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
