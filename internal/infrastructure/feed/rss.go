package feed

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mmcdole/gofeed"

	"intelhub/internal/domain"
	"intelhub/internal/scanner"
)

// Source pulls the most recent entries from a fixed list of RSS/Atom
// feeds. A malformed or unreachable feed yields zero entries for that feed,
// never a hard failure.
type Source struct {
	parser   *gofeed.Parser
	feeds    []NamedFeed
	maxItems int
	logger   *slog.Logger
}

// NamedFeed is one (name, feed-URL) pair.
type NamedFeed struct {
	Name string
	URL  string
}

var _ scanner.Source = (*Source)(nil)

// NewSource builds the feed adapter; maxItems caps entries per feed.
func NewSource(feeds []NamedFeed, maxItems int, log *slog.Logger) *Source {
	if maxItems <= 0 {
		maxItems = 25
	}
	return &Source{
		parser:   gofeed.NewParser(),
		feeds:    feeds,
		maxItems: maxItems,
		logger:   log,
	}
}

// Name identifies the source inside the registry.
func (s *Source) Name() string {
	return "rss"
}

// Collect fetches every configured feed in order. Feeds carry no
// department signal, so entries get the default hint and the model decides
// the final department.
func (s *Source) Collect(ctx context.Context, _ scanner.Request) []domain.Candidate {
	var candidates []domain.Candidate
	for _, f := range s.feeds {
		parsed, err := s.parser.ParseURLWithContext(f.URL, ctx)
		if err != nil {
			s.debug("feed fetch failed", "feed", f.Name, "error", err)
			continue
		}

		count := 0
		for _, item := range parsed.Items {
			if count >= s.maxItems {
				break
			}

			title := strings.TrimSpace(item.Title)
			link := strings.TrimSpace(item.Link)
			if title == "" || link == "" {
				continue
			}

			candidates = append(candidates, domain.Candidate{
				Title:      title,
				URL:        link,
				Snippet:    strings.TrimSpace(item.Description),
				SourceName: f.Name,
				DeptHint:   domain.DefaultDepartment,
			})
			count++
		}
		s.debug("feed produced entries", "feed", f.Name, "count", count)
	}

	return candidates
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
