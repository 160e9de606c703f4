package analysis

import (
	"strings"
	"testing"

	"intelhub/internal/domain"
)

var vocabulary = []string{
	"LLMs & Agents", "RAG & Search", "Automation", "Regulation",
}

func TestParseExtractsJSONSpan(t *testing.T) {
	t.Parallel()

	raw := "Sure, here is the analysis:\n```json\n" +
		`{"title":"Improved","summary":"Short.","action":"Pilot it","score":82,` +
		`"department":"Technology & Innovation","topics":["Automation"],"confidence":0.9}` +
		"\n```\nLet me know if you need anything else."

	p := Parse(raw)
	if !p.Valid {
		t.Fatal("expected valid parse")
	}
	if p.Fields.Title != "Improved" {
		t.Fatalf("unexpected title: %s", p.Fields.Title)
	}
	if p.Fields.Score == nil || *p.Fields.Score != 82 {
		t.Fatalf("unexpected score: %v", p.Fields.Score)
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"plain prose with no braces",
		"{not json at all]",
		"",
	} {
		if Parse(raw).Valid {
			t.Fatalf("expected malformed outcome for %q", raw)
		}
	}
}

func TestFinalizeMalformedUsesAllDefaults(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("body text ", 50)
	res := Finalize(Parse("no json here"), Fallback{
		Title: "Original title",
		Text:  text,
		Hint:  domain.DeptFinance,
	}, vocabulary)

	if res.Title != "Original title" {
		t.Fatalf("title must fall back, got %s", res.Title)
	}
	if res.Analysis.Department != domain.DeptFinance {
		t.Fatalf("department must fall back to hint, got %s", res.Analysis.Department)
	}
	if res.Analysis.RelevanceScore != 50 {
		t.Fatalf("score must default to 50, got %d", res.Analysis.RelevanceScore)
	}
	if res.Analysis.SuggestedAction != FallbackAction {
		t.Fatalf("action must default, got %s", res.Analysis.SuggestedAction)
	}
	if res.Analysis.Confidence != 0.3 {
		t.Fatalf("confidence must signal fallback, got %v", res.Analysis.Confidence)
	}
	if len(res.Analysis.ExecutiveSummary) == 0 || len(res.Analysis.ExecutiveSummary) > 200 {
		t.Fatalf("summary must be a bounded truncation, got %d chars", len(res.Analysis.ExecutiveSummary))
	}
}

func TestFinalizePartialFields(t *testing.T) {
	t.Parallel()

	res := Finalize(Parse(`{"title":"New title","summary":"A summary."}`), Fallback{
		Title: "Old",
		Text:  "text",
		Hint:  "Unknown Dept",
	}, vocabulary)

	if res.Title != "New title" {
		t.Fatalf("unexpected title: %s", res.Title)
	}
	if res.Analysis.RelevanceScore != 50 {
		t.Fatalf("missing score must default, got %d", res.Analysis.RelevanceScore)
	}
	if res.Analysis.Department != domain.DefaultDepartment {
		t.Fatalf("invalid hint must yield default department, got %s", res.Analysis.Department)
	}
	if res.Analysis.Confidence != 0.5 {
		t.Fatalf("missing confidence must default to 0.5, got %v", res.Analysis.Confidence)
	}
}

func TestFinalizeClampsAndFiltersTopics(t *testing.T) {
	t.Parallel()

	raw := `{"score":240,"topics":["Automation","Made Up","automation","Regulation","RAG & Search","LLMs & Agents"],"confidence":3.5}`
	res := Finalize(Parse(raw), Fallback{Title: "t", Text: "x", Hint: domain.DeptLegal}, vocabulary)

	if res.Analysis.RelevanceScore != 100 {
		t.Fatalf("score must clamp to 100, got %d", res.Analysis.RelevanceScore)
	}
	if len(res.Analysis.Topics) != 3 {
		t.Fatalf("topics must cap at 3 vocabulary values, got %v", res.Analysis.Topics)
	}
	for _, topic := range res.Analysis.Topics {
		if topic == "Made Up" {
			t.Fatal("unknown topic leaked through")
		}
	}
	if res.Analysis.Confidence != 0.5 {
		t.Fatalf("out-of-range confidence must default, got %v", res.Analysis.Confidence)
	}
}

func TestPromptBoundsExcerpt(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 5000)
	p := Prompt("Title", domain.DeptTrends, long, vocabulary)
	if strings.Contains(p, strings.Repeat("a", 1201)) {
		t.Fatal("prompt must cap the text excerpt")
	}
	if !strings.Contains(p, string(domain.DeptTrends)) {
		t.Fatal("prompt must carry the department hint")
	}
}
