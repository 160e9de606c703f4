// Package prefilter holds the cheap gates that run before any paid
// enrichment call: the keyword vocabulary match, the per-run call budget,
// and the minimum-text selection rule.
package prefilter

import "strings"

// Filter admits candidates whose title+snippet mention at least one
// vocabulary keyword. Matching is a case-insensitive substring test.
type Filter struct {
	keywords []string
}

// NewFilter lowercases the vocabulary once up front.
func NewFilter(keywords []string) *Filter {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &Filter{keywords: lowered}
}

// Admit reports whether the combined title+snippet text contains any
// configured keyword. An empty vocabulary admits nothing.
func (f *Filter) Admit(title, snippet string) bool {
	text := strings.ToLower(title + " " + snippet)
	for _, k := range f.keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Budget caps the number of enrichment calls in a single scan run. It is a
// hard ceiling shared across all sources, checked before every attempt.
type Budget struct {
	limit int
	used  int
}

// NewBudget returns a fresh counter for one scan invocation.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Exhausted reports whether the ceiling has been reached.
func (b *Budget) Exhausted() bool {
	return b.used >= b.limit
}

// Spend records one enrichment call.
func (b *Budget) Spend() {
	b.used++
}

// Used returns the number of calls recorded so far.
func (b *Budget) Used() int {
	return b.used
}

// A summary built from fewer characters than this is not trustworthy.
const fallbackMinChars = 200

// SelectText picks the material handed to the model: the extracted body
// when it reaches minChars, otherwise the source snippet. The second return
// is false when neither clears the floor and the candidate must be dropped.
func SelectText(extracted, snippet string, minChars int) (string, bool) {
	text := strings.TrimSpace(extracted)
	if len(text) < minChars {
		text = strings.TrimSpace(snippet)
	}
	if len(text) < fallbackMinChars {
		return "", false
	}
	return text, true
}
