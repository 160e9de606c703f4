package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"intelhub/internal/analysis"
	"intelhub/internal/domain"
	"intelhub/internal/normalize"
	"intelhub/internal/ports"
	"intelhub/internal/prefilter"
	"intelhub/internal/retry"
	"intelhub/internal/scanner"
)

// Settings bounds one scan run.
type Settings struct {
	MaxLLMCalls    int
	MinTextChars   int
	InterCallDelay time.Duration
	Keywords       []string
	Topics         []string
	Retry          retry.Policy
}

// ScanDeps wires all driven adapters into the ingestion engine. Enricher
// may be nil (missing credentials): the pipeline then degrades to
// defensive-default records instead of crashing.
type ScanDeps struct {
	Registry  *scanner.Registry
	Store     ports.ArticleStore
	Extractor ports.Extractor
	Enricher  ports.Enricher
	Logger    *slog.Logger
	Settings  Settings
	Now       func() time.Time
}

// Scan implements the fetch → dedupe → enrich → persist workflow. Runs are
// strictly sequential: adapter order, then candidate order.
type Scan struct {
	registry  *scanner.Registry
	store     ports.ArticleStore
	extractor ports.Extractor
	enricher  ports.Enricher
	logger    *slog.Logger
	settings  Settings
	filter    *prefilter.Filter
	limiter   *rate.Limiter
	now       func() time.Time
}

// Request selects which sources and departments a run covers. Empty slices
// mean everything registered/configured.
type Request struct {
	Sources     []string
	Departments []domain.Department
}

// Report summarizes a completed run. A scan always completes; partial
// source failures are absorbed by the adapters and never surface here.
type Report struct {
	New      int
	Outcomes map[domain.Outcome]int
}

// NewScan constructs the engine.
func NewScan(deps ScanDeps) *Scan {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	var limiter *rate.Limiter
	if deps.Settings.InterCallDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(deps.Settings.InterCallDelay), 1)
	}

	return &Scan{
		registry:  deps.Registry,
		store:     deps.Store,
		extractor: deps.Extractor,
		enricher:  deps.Enricher,
		logger:    deps.Logger,
		settings:  deps.Settings,
		filter:    prefilter.NewFilter(deps.Settings.Keywords),
		limiter:   limiter,
		now:       now,
	}
}

// Run executes one scan. The budget is reset here and shared across every
// source; once it is exhausted the run terminates early.
func (s *Scan) Run(ctx context.Context, req Request) (Report, error) {
	if s.registry == nil {
		return Report{}, fmt.Errorf("source registry is not configured")
	}
	if s.store == nil {
		return Report{}, fmt.Errorf("article store is not configured")
	}

	sources, err := s.selectSources(req.Sources)
	if err != nil {
		return Report{}, err
	}

	budget := prefilter.NewBudget(s.settings.MaxLLMCalls)
	report := Report{Outcomes: map[domain.Outcome]int{}}
	collectReq := scanner.Request{Departments: req.Departments}

	for _, src := range sources {
		if budget.Exhausted() {
			break
		}

		candidates := src.Collect(ctx, collectReq)
		s.debug("source collected", "source", src.Name(), "candidates", len(candidates))

		for _, c := range candidates {
			if budget.Exhausted() {
				report.Outcomes[domain.OutcomeSkipBudget]++
				break
			}

			outcome := s.ingest(ctx, c, budget)
			report.Outcomes[outcome]++
			if outcome == domain.OutcomeIngested {
				report.New++
			}
		}
	}

	s.info("scan complete", "new", report.New, "llm_calls", budget.Used())
	return report, nil
}

// ingest runs the straight-line per-candidate pipeline with early-exit
// skip points. Every outcome is terminal for that candidate only.
func (s *Scan) ingest(ctx context.Context, c domain.Candidate, budget *prefilter.Budget) domain.Outcome {
	if c.Title == "" || c.URL == "" {
		return domain.OutcomeFailed
	}

	if !s.filter.Admit(c.Title, c.Snippet) {
		return domain.OutcomeSkipPrefilter
	}

	canonical := normalize.Canonicalize(c.URL)
	if canonical == "" {
		return domain.OutcomeFailed
	}
	id := normalize.Key(canonical)

	// Idempotency guard: before extraction, so a duplicate costs nothing.
	exists, err := s.store.Exists(ctx, id)
	if err != nil {
		s.warn("existence check failed", "url", canonical, "error", err)
		return domain.OutcomeFailed
	}
	if exists {
		return domain.OutcomeSkipDuplicate
	}

	body := s.extractBody(ctx, canonical)
	text, ok := prefilter.SelectText(body, c.Snippet, s.settings.MinTextChars)
	if !ok {
		return domain.OutcomeSkipNoText
	}

	if budget.Exhausted() {
		return domain.OutcomeSkipBudget
	}

	res := s.enrich(ctx, c, text, budget)

	article := domain.NewsArticle{
		ID:          id,
		Title:       res.Title,
		URL:         canonical,
		Source:      c.SourceName,
		PublishedAt: s.now(),
		Analysis:    res.Analysis,
	}

	if err := s.store.Upsert(ctx, article); err != nil {
		s.warn("persist failed", "url", canonical, "error", err)
		return domain.OutcomeFailed
	}

	if s.limiter != nil {
		_ = s.limiter.Wait(ctx)
	}

	return domain.OutcomeIngested
}

// extractBody attempts full-text extraction; failure is non-fatal and the
// caller falls back to the candidate snippet.
func (s *Scan) extractBody(ctx context.Context, url string) string {
	if s.extractor == nil {
		return ""
	}

	var body string
	err := s.settings.Retry.Do(ctx, func(ctx context.Context) error {
		text, err := s.extractor.Extract(ctx, url)
		if err != nil {
			return err
		}
		body = text
		return nil
	})
	if err != nil {
		s.debug("extraction failed", "url", url, "error", err)
		return ""
	}
	return body
}

// enrich calls the model under the retry policy. Exhausted retries and a
// nil enricher both produce the same defensive-default record; a bad
// enrichment never aborts the scan.
func (s *Scan) enrich(ctx context.Context, c domain.Candidate, text string, budget *prefilter.Budget) analysis.Result {
	fb := analysis.Fallback{Title: c.Title, Text: text, Hint: c.DeptHint}

	if s.enricher == nil {
		return analysis.Finalize(analysis.ParseOutcome{}, fb, s.settings.Topics)
	}

	budget.Spend()
	prompt := analysis.Prompt(c.Title, c.DeptHint, text, s.settings.Topics)

	var raw string
	err := s.settings.Retry.Do(ctx, func(ctx context.Context) error {
		out, err := s.enricher.Complete(ctx, prompt)
		if err != nil {
			return err
		}
		raw = out
		return nil
	})
	if err != nil {
		s.warn("enrichment failed", "title", c.Title, "error", err)
		return analysis.Finalize(analysis.ParseOutcome{}, fb, s.settings.Topics)
	}

	return analysis.Finalize(analysis.Parse(raw), fb, s.settings.Topics)
}

func (s *Scan) selectSources(names []string) ([]scanner.Source, error) {
	if len(names) == 0 {
		return s.registry.Sources(), nil
	}

	sources := make([]scanner.Source, 0, len(names))
	for _, name := range names {
		src, err := s.registry.Resolve(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func (s *Scan) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Scan) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Scan) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
