package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const articlePage = `<html><head><title>Story</title></head><body>
<article>
<h1>Machine learning on the line</h1>
<p>Plants across the region are rolling out machine learning systems to cut waste.
The first deployments reduced downtime by double digits, according to operators.</p>
<p>Suppliers expect the trend to keep accelerating through the year as tooling
matures and integration costs fall for mid-sized manufacturers everywhere.</p>
</article>
</body></html>`

func TestExtractReturnsArticleText(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	}))
	defer server.Close()

	e := New(server.Client(), 5*time.Second)
	text, err := e.Extract(context.Background(), server.URL+"/story")
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if !strings.Contains(text, "machine learning systems") {
		t.Fatalf("expected body text, got %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Fatal("expected plain text, got markup")
	}
}

func TestExtractNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	e := New(server.Client(), 5*time.Second)
	if _, err := e.Extract(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestExtractTimeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	e := New(server.Client(), 20*time.Millisecond)
	if _, err := e.Extract(context.Background(), server.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}
