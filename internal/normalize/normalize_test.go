package normalize

import "testing"

func TestCanonicalizeStripsTracking(t *testing.T) {
	t.Parallel()

	a := Canonicalize("https://example.com/a?utm_source=x&id=1")
	b := Canonicalize("https://example.com/a?id=1&fbclid=z")

	if a != "https://example.com/a?id=1" {
		t.Fatalf("unexpected canonical form: %s", a)
	}
	if a != b {
		t.Fatalf("tracking variants diverged: %s vs %s", a, b)
	}
}

func TestCanonicalizeParameterOrder(t *testing.T) {
	t.Parallel()

	a := Canonicalize("https://example.com/a?b=2&a=1")
	b := Canonicalize("https://example.com/a?a=1&b=2")
	if a != b {
		t.Fatalf("parameter order changed canonical form: %s vs %s", a, b)
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://example.com/a?utm_campaign=spring&id=7&utm_medium=mail",
		"https://example.com/plain",
		"https://example.com/q?",
		"  https://example.com/pad?fbclid=abc  ",
		"",
	}
	for _, in := range inputs {
		once := Canonicalize(in)
		twice := Canonicalize(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestCanonicalizeTrailingSeparators(t *testing.T) {
	t.Parallel()

	if got := Canonicalize("https://example.com/a?utm_source=x"); got != "https://example.com/a" {
		t.Fatalf("expected bare URL, got %s", got)
	}
	if got := Canonicalize("https://example.com/a?"); got != "https://example.com/a" {
		t.Fatalf("expected trailing ? trimmed, got %s", got)
	}
}

func TestKeyStable(t *testing.T) {
	t.Parallel()

	u := Canonicalize("https://example.com/a?utm_source=x&id=1")
	v := Canonicalize("https://example.com/a?id=1&fbclid=z")
	if Key(u) != Key(v) {
		t.Fatal("equal canonical URLs produced different keys")
	}

	if Key("") == "" {
		t.Fatal("empty input must still yield a stable key")
	}
	if Key("https://example.com/a") == Key("https://example.com/b") {
		t.Fatal("distinct URLs collided")
	}
}
