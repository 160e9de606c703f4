// Package analysis turns the model's untrusted completion text into a
// complete domain.Analysis, defaulting every field the model failed to
// provide.
package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"intelhub/internal/domain"
)

// Model output is truncated to this many characters of source text.
const excerptChars = 1200

// Summary fallback is a truncation of the source text.
const summaryChars = 200

// FallbackAction is stored when the model did not suggest anything usable.
const FallbackAction = "Review manually"

const (
	neutralScore        = 50
	partialConfidence   = 0.5
	malformedConfidence = 0.3
	maxTopics           = 3
)

// Fields is the raw shape requested from the model. Pointer fields
// distinguish "absent" from zero values.
type Fields struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Action     string   `json:"action"`
	Score      *float64 `json:"score"`
	Department string   `json:"department"`
	Topics     []string `json:"topics"`
	Confidence *float64 `json:"confidence"`
}

// ParseOutcome is the tagged result of parsing a completion: either the
// fields the model produced, or Malformed with nothing usable.
type ParseOutcome struct {
	Valid  bool
	Fields Fields
}

// Parse locates the first '{' and the last '}' in the completion and
// decodes only that span, so surrounding prose and markdown fencing are
// ignored. Anything that still fails to decode is Malformed.
func Parse(raw string) ParseOutcome {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return ParseOutcome{}
	}

	var fields Fields
	if err := json.Unmarshal([]byte(raw[start:end+1]), &fields); err != nil {
		return ParseOutcome{}
	}
	return ParseOutcome{Valid: true, Fields: fields}
}

// Fallback carries the material defaults are built from.
type Fallback struct {
	Title string
	Text  string
	Hint  domain.Department
}

// Result pairs the improved title with the finished analysis record.
type Result struct {
	Title    string
	Analysis domain.Analysis
}

// Finalize fills every analysis field, taking the model's value when
// present and the fallback otherwise. It never fails.
func Finalize(p ParseOutcome, fb Fallback, vocabulary []string) Result {
	res := Result{
		Title: strings.TrimSpace(fb.Title),
		Analysis: domain.Analysis{
			Department:       fallbackDepartment(fb.Hint),
			ExecutiveSummary: truncate(fb.Text, summaryChars),
			SuggestedAction:  FallbackAction,
			RelevanceScore:   neutralScore,
			Confidence:       malformedConfidence,
		},
	}

	if !p.Valid {
		return res
	}

	f := p.Fields
	if t := strings.TrimSpace(f.Title); t != "" {
		res.Title = t
	}
	if s := strings.TrimSpace(f.Summary); s != "" {
		res.Analysis.ExecutiveSummary = s
	}
	if a := strings.TrimSpace(f.Action); a != "" {
		res.Analysis.SuggestedAction = a
	}
	if f.Score != nil {
		res.Analysis.RelevanceScore = clampScore(*f.Score)
	}
	if d := domain.Department(strings.TrimSpace(f.Department)); domain.ValidDepartment(d) {
		res.Analysis.Department = d
	}
	res.Analysis.Topics = filterTopics(f.Topics, vocabulary)
	if f.Confidence != nil && *f.Confidence >= 0 && *f.Confidence <= 1 {
		res.Analysis.Confidence = *f.Confidence
	} else {
		res.Analysis.Confidence = partialConfidence
	}

	return res
}

// Prompt builds the enrichment request for one candidate. The text excerpt
// is capped so a long article never inflates the call.
func Prompt(title string, hint domain.Department, text string, vocabulary []string) string {
	departments := make([]string, 0, len(domain.Departments()))
	for _, d := range domain.Departments() {
		departments = append(departments, string(d))
	}

	return fmt.Sprintf(`You are a competitive-intelligence analyst. Classify and summarize news
about AI, digitalization, and technology applied to business.

DEPARTMENT CONTEXT (if applicable): %s

Return ONLY valid JSON (no markdown) with this schema:
{
  "title": "short improved title",
  "summary": "executive summary, about 30 words",
  "action": "one concrete strategic suggestion",
  "score": 0-100,
  "department": one of [%s],
  "topics": up to %d values from [%s],
  "confidence": 0.0-1.0
}

RULES:
- Clickbait or empty opinion gets a low score.
- Prioritize applied AI, automation, governance, security, regulation, productivity.
- If the department context does not fit, pick the correct department.

ARTICLE:
TITLE: %s

TEXT:
%s`,
		hint,
		strings.Join(departments, ", "),
		maxTopics,
		strings.Join(vocabulary, ", "),
		title,
		truncate(text, excerptChars),
	)
}

func fallbackDepartment(hint domain.Department) domain.Department {
	if domain.ValidDepartment(hint) {
		return hint
	}
	return domain.DefaultDepartment
}

func clampScore(score float64) int {
	if math.IsNaN(score) {
		return neutralScore
	}
	n := int(math.Round(score))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

func filterTopics(topics, vocabulary []string) []string {
	if len(topics) == 0 {
		return nil
	}

	known := make(map[string]string, len(vocabulary))
	for _, v := range vocabulary {
		known[strings.ToLower(strings.TrimSpace(v))] = v
	}

	var kept []string
	seen := map[string]struct{}{}
	for _, t := range topics {
		canonical, ok := known[strings.ToLower(strings.TrimSpace(t))]
		if !ok {
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		kept = append(kept, canonical)
		if len(kept) == maxTopics {
			break
		}
	}
	return kept
}

func truncate(s string, limit int) string {
	s = strings.TrimSpace(s)
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
