package search

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"intelhub/internal/domain"
	"intelhub/internal/scanner"
)

const defaultEndpoint = "https://html.duckduckgo.com/html/"

// DuckDuckGo pulls recent web hits for each department's seed query from
// the DuckDuckGo HTML endpoint. Backend failures are logged and yield an
// empty batch for that department; one failing department never blocks the
// others.
type DuckDuckGo struct {
	client     *http.Client
	endpoint   string
	queries    []DeptQuery
	maxResults int
	logger     *slog.Logger
}

// DeptQuery pairs a department with its seed query string.
type DeptQuery struct {
	Department domain.Department
	Query      string
}

var _ scanner.Source = (*DuckDuckGo)(nil)

// NewDuckDuckGo wires an HTTP client; maxResults caps hits per department.
func NewDuckDuckGo(client *http.Client, queries []DeptQuery, maxResults int, log *slog.Logger) *DuckDuckGo {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if maxResults <= 0 {
		maxResults = 2
	}
	return &DuckDuckGo{
		client:     client,
		endpoint:   defaultEndpoint,
		queries:    queries,
		maxResults: maxResults,
		logger:     log,
	}
}

// Name identifies the source inside the registry.
func (d *DuckDuckGo) Name() string {
	return "web"
}

// Collect walks the configured department queries, restricted to the
// requested departments when the filter is non-empty.
func (d *DuckDuckGo) Collect(ctx context.Context, req scanner.Request) []domain.Candidate {
	wanted := map[domain.Department]bool{}
	for _, dept := range req.Departments {
		wanted[dept] = true
	}

	var candidates []domain.Candidate
	for _, q := range d.queries {
		if len(wanted) > 0 && !wanted[q.Department] {
			continue
		}
		if q.Query == "" {
			continue
		}

		hits, err := d.search(ctx, q)
		if err != nil {
			d.debug("search failed", "department", q.Department, "error", err)
			continue
		}
		candidates = append(candidates, hits...)
	}

	d.debug("web source done", "candidates", len(candidates))
	return candidates
}

func (d *DuckDuckGo) search(ctx context.Context, q DeptQuery) ([]domain.Candidate, error) {
	doc, err := d.fetchDocument(ctx, q.Query+" latest news")
	if err != nil {
		return nil, err
	}

	var hits []domain.Candidate
	doc.Find("div.result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if len(hits) >= d.maxResults {
			return false
		}

		link := sel.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		href = resolveRedirect(href)
		snippet := strings.TrimSpace(sel.Find("a.result__snippet").First().Text())

		if title == "" || href == "" {
			return true
		}

		hits = append(hits, domain.Candidate{
			Title:      title,
			URL:        href,
			Snippet:    snippet,
			SourceName: "Open Web",
			DeptHint:   q.Department,
		})
		return true
	})

	return hits, nil
}

func (d *DuckDuckGo) fetchDocument(ctx context.Context, query string) (*goquery.Document, error) {
	form := url.Values{}
	form.Set("q", query)
	form.Set("df", "d") // past day
	form.Set("kl", "wt-wt")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.endpoint+"?"+form.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "intelhub/1.0")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search backend returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

// resolveRedirect unwraps DuckDuckGo's /l/?uddg=... redirect links to the
// destination URL; anything else passes through untouched.
func resolveRedirect(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func (d *DuckDuckGo) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
