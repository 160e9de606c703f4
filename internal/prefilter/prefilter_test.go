package prefilter

import (
	"strings"
	"testing"
)

func TestFilterAdmit(t *testing.T) {
	t.Parallel()

	f := NewFilter([]string{"ai", "machine learning", "automation"})

	if !f.Admit("New AI rollout", "") {
		t.Fatal("expected keyword in title to admit")
	}
	if !f.Admit("Quarterly report", "factory automation gains") {
		t.Fatal("expected keyword in snippet to admit")
	}
	if !f.Admit("MACHINE LEARNING AT SCALE", "") {
		t.Fatal("matching must be case-insensitive")
	}
	if f.Admit("Celebrity gossip roundup", "nothing relevant here") {
		t.Fatal("candidate without keywords must be rejected")
	}
}

func TestFilterEmptyVocabulary(t *testing.T) {
	t.Parallel()

	f := NewFilter(nil)
	if f.Admit("anything", "at all") {
		t.Fatal("empty vocabulary must admit nothing")
	}
}

func TestBudgetCeiling(t *testing.T) {
	t.Parallel()

	b := NewBudget(2)
	if b.Exhausted() {
		t.Fatal("fresh budget must not be exhausted")
	}
	b.Spend()
	b.Spend()
	if !b.Exhausted() {
		t.Fatal("budget must be exhausted after limit spends")
	}
	if b.Used() != 2 {
		t.Fatalf("expected 2 used, got %d", b.Used())
	}
}

func TestSelectTextPrefersExtracted(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 900)
	got, ok := SelectText(long, "short snippet", 800)
	if !ok || got != long {
		t.Fatal("long extraction must be selected")
	}
}

func TestSelectTextFallsBackToSnippet(t *testing.T) {
	t.Parallel()

	snippet := strings.Repeat("s", 250)
	got, ok := SelectText("too short", snippet, 800)
	if !ok || got != snippet {
		t.Fatal("snippet must be used when extraction is under the threshold")
	}
}

func TestSelectTextRejectsThinMaterial(t *testing.T) {
	t.Parallel()

	if _, ok := SelectText("thin", "also thin", 800); ok {
		t.Fatal("candidate without enough material must be dropped")
	}
}
