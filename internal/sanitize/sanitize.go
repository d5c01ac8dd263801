// Package sanitize strips presentation-only wrapping from raw agent output
// so the underlying data string can be interpreted. Agents frequently hand
// back JSON inside markdown code fences, or prose with a stray heading glued
// on top; none of that wrapping is data.
package sanitize

import "strings"

// Clean removes markdown presentation wrapping from s. Rules apply in order
// and each is a no-op when it does not match: fenced-code markers (with an
// optional language tag), a whole-string inline-code pair, a leading heading
// marker run, then surrounding whitespace. Stripping one layer can expose
// another ("# `x`" becomes "`x`"), so the pipeline repeats until the string
// stops changing. Clean is idempotent.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	for {
		next := stripFence(s)
		next = stripInlineCode(next)
		next = stripLeadingHeading(next)
		next = strings.TrimSpace(next)
		if next == s {
			return s
		}
		s = next
	}
}

// stripFence removes a leading ```lang line and a trailing ``` line.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := s[3:]
	// The opening marker may carry a language tag ("```json"); drop through
	// the end of that line.
	if idx := strings.IndexByte(rest, '\n'); idx >= 0 {
		rest = rest[idx+1:]
	} else {
		// Single-line fence like "```json {...} ```".
		rest = strings.TrimSpace(rest)
		if tag, body, ok := strings.Cut(rest, " "); ok && isFenceTag(tag) {
			rest = body
		}
	}
	rest = strings.TrimSpace(rest)
	rest = strings.TrimSuffix(rest, "```")
	return strings.TrimSpace(rest)
}

// isFenceTag reports whether word looks like a fence language tag rather
// than payload text.
func isFenceTag(word string) bool {
	if word == "" || len(word) > 16 {
		return false
	}
	for _, r := range word {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// stripInlineCode unwraps s when the entire string is wrapped in one pair of
// backticks. Interior backticks disqualify the unwrap: the markers must be a
// single surrounding pair, not formatting inside the payload.
func stripInlineCode(s string) string {
	if len(s) < 2 || !strings.HasPrefix(s, "`") || !strings.HasSuffix(s, "`") {
		return s
	}
	inner := s[1 : len(s)-1]
	if strings.Contains(inner, "`") {
		return s
	}
	return inner
}

// stripLeadingHeading removes a run of '#' markers (plus following space)
// from the start of the string.
func stripLeadingHeading(s string) string {
	if !strings.HasPrefix(s, "#") {
		return s
	}
	trimmed := strings.TrimLeft(s, "#")
	if trimmed == s {
		return s
	}
	return strings.TrimLeft(trimmed, " ")
}
