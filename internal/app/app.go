package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"intelhub/internal/auth"
	"intelhub/internal/config"
	"intelhub/internal/domain"
	"intelhub/internal/infrastructure/email"
	"intelhub/internal/infrastructure/extract"
	"intelhub/internal/infrastructure/feed"
	"intelhub/internal/infrastructure/httpapi"
	"intelhub/internal/infrastructure/llm"
	"intelhub/internal/infrastructure/scheduler"
	"intelhub/internal/infrastructure/search"
	"intelhub/internal/infrastructure/storage"
	"intelhub/internal/ports"
	"intelhub/internal/retry"
	"intelhub/internal/scanner"
	"intelhub/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	articles  ports.ArticleStore
	scan      *usecase.Scan
	router    http.Handler
	scheduler ports.Scheduler
}

// New builds a runnable application instance. Missing database or JWT
// configuration is fatal here; a missing OpenAI key is not — the pipeline
// degrades to defensive-default records.
func New(cfg config.Config, logger *slog.Logger) (*Application, error) {
	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	articles := storage.NewArticleRepository(db)
	users := storage.NewUserRepository(db)

	registry := scanner.NewRegistry()
	registry.Register(search.NewDuckDuckGo(nil, deptQueries(cfg.Scan.Queries),
		cfg.Scan.MaxResultsPerSource, logger.With("component", "source.web")))
	registry.Register(feed.NewSource(namedFeeds(cfg.Scan.Feeds),
		cfg.Scan.MaxItemsPerFeed, logger.With("component", "source.rss")))

	var enricher ports.Enricher
	if cfg.OpenAI.APIKey != "" {
		enricher = llm.NewOpenAIClient(cfg.OpenAI)
	} else {
		logger.Warn("openai api key missing; enrichment degrades to default records")
	}

	scan := usecase.NewScan(usecase.ScanDeps{
		Registry:  registry,
		Store:     articles,
		Extractor: extract.New(nil, cfg.Scan.ExtractTimeout),
		Enricher:  enricher,
		Logger:    logger.With("component", "pipeline"),
		Settings: usecase.Settings{
			MaxLLMCalls:    cfg.Scan.MaxLLMCallsPerRun,
			MinTextChars:   cfg.Scan.MinTextChars,
			InterCallDelay: cfg.Scan.InterCallDelay,
			Keywords:       cfg.Scan.Keywords,
			Topics:         cfg.Scan.Topics,
			Retry:          retry.Policy{MaxAttempts: 3, Backoff: 2 * time.Second},
		},
	})

	digest := usecase.NewDigest(articles, email.NewNotifier(cfg.SMTP),
		logger.With("component", "digest"))

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("configure auth: %w", err)
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Users:          users,
		Articles:       articles,
		Tokens:         tokens,
		Scans:          scan,
		Digest:         digest,
		Logger:         logger.With("component", "http"),
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	return &Application{
		cfg:       cfg,
		logger:    logger,
		articles:  articles,
		scan:      scan,
		router:    router,
		scheduler: scheduler.NewTickerScheduler(time.Hour),
	}, nil
}

// Run serves the API and keeps the background scan loop alive until the
// context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.scheduler.Start(ctx, a.scanIfEmpty(ctx)); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer func() { _ = a.scheduler.Stop(context.Background()) }()

	server := &http.Server{Addr: a.cfg.HTTP.Addr, Handler: a.router}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", a.cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}

// scanIfEmpty runs a full scan whenever the current day has no articles
// yet, mirroring the dashboard's "scan on empty feed" behavior.
func (a *Application) scanIfEmpty(ctx context.Context) func(time.Time) {
	return func(now time.Time) {
		midnight := now.Truncate(24 * time.Hour)
		count, err := a.articles.CountSince(ctx, midnight)
		if err != nil {
			a.logger.Warn("article count failed", "error", err)
			return
		}
		if count > 0 {
			return
		}

		report, err := a.scan.Run(ctx, usecase.Request{})
		if err != nil {
			a.logger.Warn("scheduled scan failed", "error", err)
			return
		}
		a.logger.Info("scheduled scan finished", "new", report.New)
	}
}

func deptQueries(cfg []config.DeptQuery) []search.DeptQuery {
	queries := make([]search.DeptQuery, 0, len(cfg))
	for _, q := range cfg {
		dept := domain.Department(q.Department)
		if !domain.ValidDepartment(dept) {
			dept = domain.DefaultDepartment
		}
		queries = append(queries, search.DeptQuery{Department: dept, Query: q.Query})
	}
	return queries
}

func namedFeeds(cfg []config.FeedSource) []feed.NamedFeed {
	feeds := make([]feed.NamedFeed, 0, len(cfg))
	for _, f := range cfg {
		feeds = append(feeds, feed.NamedFeed{Name: f.Name, URL: f.URL})
	}
	return feeds
}
