package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"intelhub/internal/domain"
	"intelhub/internal/scanner"
)

const resultsPage = `
<html><body>
  <div class="result">
    <a class="result__a" href="https://example.com/ai-news?utm_source=ddg">AI hits the factory floor</a>
    <a class="result__snippet">Manufacturers adopt machine learning at scale.</a>
  </div>
  <div class="result">
    <a class="result__a" href="/l/?uddg=https%3A%2F%2Fexample.org%2Fsecond">Second story</a>
    <a class="result__snippet">More coverage.</a>
  </div>
  <div class="result">
    <a class="result__a" href="https://example.com/third">Third story</a>
    <a class="result__snippet">Should be cut by the cap.</a>
  </div>
  <div class="result">
    <a class="result__a" href="https://example.com/untitled"></a>
  </div>
</body></html>`

func newTestSource(t *testing.T, handler http.HandlerFunc, maxResults int) (*DuckDuckGo, func()) {
	t.Helper()
	server := httptest.NewServer(handler)
	src := NewDuckDuckGo(server.Client(), []DeptQuery{
		{Department: domain.DeptTechnology, Query: "industrial ai"},
	}, maxResults, nil)
	src.endpoint = server.URL + "/html/"
	return src, server.Close
}

func TestCollectParsesResults(t *testing.T) {
	t.Parallel()

	src, done := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Error("expected query parameter")
		}
		_, _ = w.Write([]byte(resultsPage))
	}, 2)
	defer done()

	hits := src.Collect(context.Background(), scanner.Request{})
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits (capped), got %d", len(hits))
	}
	if hits[0].Title != "AI hits the factory floor" {
		t.Fatalf("unexpected title: %s", hits[0].Title)
	}
	if hits[0].DeptHint != domain.DeptTechnology {
		t.Fatalf("unexpected hint: %s", hits[0].DeptHint)
	}
	if hits[1].URL != "https://example.org/second" {
		t.Fatalf("redirect link must be unwrapped, got %s", hits[1].URL)
	}
}

func TestCollectDepartmentFilter(t *testing.T) {
	t.Parallel()

	src, done := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(resultsPage))
	}, 5)
	defer done()

	hits := src.Collect(context.Background(), scanner.Request{
		Departments: []domain.Department{domain.DeptLegal},
	})
	if len(hits) != 0 {
		t.Fatalf("filtered-out department must produce nothing, got %d", len(hits))
	}
}

func TestCollectToleratesBackendFailure(t *testing.T) {
	t.Parallel()

	src, done := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, 5)
	defer done()

	hits := src.Collect(context.Background(), scanner.Request{})
	if len(hits) != 0 {
		t.Fatalf("failing backend must yield an empty batch, got %d", len(hits))
	}
}
