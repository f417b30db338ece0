// Package app wires configuration into the running application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"VentureScanner/internal/analysis"
	"VentureScanner/internal/api"
	"VentureScanner/internal/config"
	"VentureScanner/internal/drivers"
	"VentureScanner/internal/infrastructure/export"
	"VentureScanner/internal/infrastructure/llm"
	"VentureScanner/internal/infrastructure/scraper"
	"VentureScanner/internal/infrastructure/storage"
	"VentureScanner/internal/input"
	"VentureScanner/internal/logging"
	"VentureScanner/internal/orchestrator"
	"VentureScanner/internal/ports"
	"VentureScanner/internal/research"
)

// Application wires configs to the analysis pipeline and HTTP surface.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	manager *orchestrator.JobManager
	repo    ports.AnalysisRepository
	server  *api.Server
}

// New builds a runnable application instance. Persistence is optional:
// with no database configured results are only exported to disk.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	llmClient := llm.NewClient(cfg.LLM)
	pageScraper := scraper.New(cfg.Scraper, nil)

	httpClient := &http.Client{Timeout: 20 * time.Second}
	sources := drivers.NewManager(baseLogger.With("component", "drivers"))
	sources.Register(drivers.NewWaybackDriver(httpClient, ""),
		cfg.Drivers.Wayback.Enabled, true)
	sources.Register(drivers.NewTavilyDriver(cfg.Drivers.Tavily.APIKey, httpClient, ""),
		cfg.Drivers.Tavily.Enabled, cfg.Drivers.Tavily.APIKey != "")
	sources.Register(drivers.NewCrunchbaseDriver(cfg.Drivers.Crunchbase.APIKey, httpClient, ""),
		cfg.Drivers.Crunchbase.Enabled, cfg.Drivers.Crunchbase.APIKey != "")
	sources.Register(drivers.NewSerpAPIDriver(cfg.Drivers.SerpAPI.APIKey, httpClient, ""),
		cfg.Drivers.SerpAPI.Enabled, cfg.Drivers.SerpAPI.APIKey != "")

	researcher := research.NewResearcher(llmClient, pageScraper, sources,
		baseLogger.With("component", "research"))
	scorer := research.NewScorer(llmClient)

	protocol := analysis.NewProtocol(researcher, scorer, cfg.Analysis.Alpha,
		baseLogger.With("component", "protocol"))

	var repo ports.AnalysisRepository
	if cfg.Database.DSN != "" {
		db, err := storage.Open(ctx, cfg.Database.DSN)
		if err != nil {
			baseLogger.Warn("database unavailable, persistence disabled", "error", err)
		} else {
			repo = storage.NewPostgresRepository(db)
		}
	}

	exporter := export.NewJSONExporter(cfg.Analysis.OutputDir, baseLogger)

	manager := orchestrator.NewJobManager(protocol, repo, exporter,
		cfg.Analysis.MaxConcurrent, baseLogger.With("component", "jobs"))

	jobs := api.NewJobHandler(manager, repo, baseLogger)
	server := api.NewServer(cfg.Server.Addr, jobs, baseLogger)

	return &Application{
		cfg:     cfg,
		logger:  baseLogger,
		manager: manager,
		repo:    repo,
		server:  server,
	}, nil
}

// RunBatch analyzes every company listed in the input file and blocks
// until the whole job reaches a terminal state.
func (a *Application) RunBatch(ctx context.Context, inputPath string) error {
	companies, err := input.ParseCompanyFile(inputPath)
	if err != nil {
		return fmt.Errorf("parse input: %w", err)
	}
	if len(companies) == 0 {
		return errors.New("input file lists no companies")
	}

	job, err := a.manager.CreateJob(companies)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	processed, err := a.manager.ProcessJob(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("process job: %w", err)
	}

	progress := processed.Progress()
	a.logger.Info("batch finished",
		"status", string(processed.Status),
		"completed", progress.Completed,
		"failed", progress.Failed)

	if progress.Failed > 0 {
		return fmt.Errorf("%d of %d companies failed", progress.Failed, progress.Total)
	}
	return nil
}

// Serve runs the HTTP API until the context is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	}
}
