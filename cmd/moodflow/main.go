package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/ameliedv/moodflow/internal/cli"
	"github.com/ameliedv/moodflow/internal/db"
	"github.com/ameliedv/moodflow/internal/llm"
	"github.com/ameliedv/moodflow/internal/planner"
	"github.com/ameliedv/moodflow/internal/repository"
	"github.com/ameliedv/moodflow/internal/retrieval"
	"github.com/ameliedv/moodflow/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// DB path: env var or default ~/.moodflow/moodflow.db
	dbPath := os.Getenv("MOODFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".moodflow", "moodflow.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewOllamaClient(llmCfg, observer)

	svc := planner.NewService(
		repository.NewSQLiteScheduleRepo(database),
		retrieval.NewHTTPRetriever(retrieval.LoadConfig()),
		planner.NewLLMOracle(client),
		session.NewManager(),
		logger,
	)

	app := &cli.App{
		Planner: svc,
		Oracle:  client,
		Logger:  logger,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}

func logLevel() slog.Level {
	switch os.Getenv("MOODFLOW_LOG_LEVEL") {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
