// Package normalize canonicalizes article URLs and derives the
// deterministic storage key used for deduplication.
package normalize

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"strings"
)

// Canonicalize strips tracking query parameters (any utm_* key, fbclid)
// and trailing '?'/'&' separators. The remaining query is re-encoded with
// keys sorted, so two URLs differing only in parameter order canonicalize
// identically. Canonicalize is idempotent and never fails; input that does
// not parse as a URL is returned trimmed as-is.
func Canonicalize(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimRight(raw, "?&")
	}

	q := u.Query()
	for key := range q {
		lower := strings.ToLower(key)
		if strings.HasPrefix(lower, "utm_") || lower == "fbclid" {
			delete(q, key)
		}
	}

	if len(q) == 0 {
		u.RawQuery = ""
	} else {
		u.RawQuery = q.Encode()
	}

	return strings.TrimRight(u.String(), "?&")
}

// Key returns the hex SHA-1 of the canonical URL string. Callers must
// reject empty URLs before storage; an empty input still yields a stable
// degenerate key.
func Key(canonical string) string {
	sum := sha1.Sum([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
