package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"intelhub/internal/domain"
	"intelhub/internal/scanner"
)

const rssBody = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Tech Feed</title>
    <item>
      <title>Agents everywhere</title>
      <link>https://example.com/agents</link>
      <description>LLM agents reach production.</description>
    </item>
    <item>
      <title>Second item</title>
      <link>https://example.com/second</link>
      <description>More news.</description>
    </item>
    <item>
      <title>Cut by cap</title>
      <link>https://example.com/cut</link>
    </item>
    <item>
      <title></title>
      <link>https://example.com/untitled</link>
    </item>
  </channel>
</rss>`

func TestCollectParsesFeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssBody))
	}))
	defer server.Close()

	src := NewSource([]NamedFeed{{Name: "TechFeed", URL: server.URL}}, 2, nil)
	items := src.Collect(context.Background(), scanner.Request{})

	if len(items) != 2 {
		t.Fatalf("expected 2 entries (capped), got %d", len(items))
	}
	if items[0].Title != "Agents everywhere" {
		t.Fatalf("unexpected title: %s", items[0].Title)
	}
	if items[0].SourceName != "TechFeed" {
		t.Fatalf("unexpected source: %s", items[0].SourceName)
	}
	if items[0].DeptHint != domain.DefaultDepartment {
		t.Fatalf("feed entries must carry the default hint, got %s", items[0].DeptHint)
	}
}

func TestCollectMalformedFeed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<<< not xml at all"))
	}))
	defer server.Close()

	src := NewSource([]NamedFeed{
		{Name: "Broken", URL: server.URL},
	}, 10, nil)

	if items := src.Collect(context.Background(), scanner.Request{}); len(items) != 0 {
		t.Fatalf("malformed feed must yield zero entries, got %d", len(items))
	}
}

func TestCollectOneBadFeedDoesNotBlockOthers(t *testing.T) {
	t.Parallel()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssBody))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	src := NewSource([]NamedFeed{
		{Name: "Bad", URL: bad.URL},
		{Name: "Good", URL: good.URL},
	}, 1, nil)

	items := src.Collect(context.Background(), scanner.Request{})
	if len(items) != 1 {
		t.Fatalf("expected the good feed to still produce, got %d", len(items))
	}
}
