package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/dmarovic/inflow/internal/approval"
	"github.com/dmarovic/inflow/internal/cli"
	"github.com/dmarovic/inflow/internal/db"
	"github.com/dmarovic/inflow/internal/intake"
	"github.com/dmarovic/inflow/internal/llm"
	"github.com/dmarovic/inflow/internal/observability"
	"github.com/dmarovic/inflow/internal/repository"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	log := observability.Logger()

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewSlogObserver(log)
	}
	client := llm.NewOllamaClient(llmCfg, observer)

	// Determine DB path: env var or default ~/.inflow/inflow.db.
	dbPath := os.Getenv("INFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".inflow", "inflow.db")
	}

	sqlDB, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	draftRepo := repository.NewSQLiteDraftRepo(sqlDB)
	uow := db.NewSQLiteUnitOfWork(sqlDB)
	approvalSvc := approval.NewService(uow, draftRepo, log)

	orchCfg := intake.LoadOrchestratorConfig()
	orch := intake.NewOrchestrator(
		intake.NewInterpreter(client),
		intake.NewMemorySessionStore(orchCfg.SessionTTL),
		draftRepo,
		orchCfg,
		log,
	)

	app := &cli.App{
		Orchestrator: orch,
		Approval:     approvalSvc,
		HTTPAddr:     os.Getenv("INFLOW_HTTP_ADDR"),
	}

	return cli.NewRootCmd(app).Execute()
}
