// Package normalise provides the text cleanup applied uniformly before any
// structural decision, so chunk boundaries are never artifacts of raw
// whitespace or PDF line wrapping.
package normalise

import (
	"regexp"
	"strings"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

var (
	hyphenBreak   = regexp.MustCompile(`(\w)-\n(\w)`)
	manyNewlines  = regexp.MustCompile(`\n{3,}`)
	innerSpaceRun = regexp.MustCompile(`\s+`)
)

// Text normalises block text: line endings unified, hyphenated line-break
// splits rejoined ("hy-\nphen" -> "hyphen"), runs of 3+ newlines collapsed
// to 2, surrounding whitespace trimmed.
func Text(s string) string {
	if s == "" {
		return ""
	}
	t := strings.ReplaceAll(s, "\r\n", "\n")
	t = strings.ReplaceAll(t, "\r", "\n")
	t = hyphenBreak.ReplaceAllString(t, "$1$2")
	t = manyNewlines.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// Collapse trims and collapses internal whitespace runs to single spaces.
// Used for term normalisation where display case is preserved but spacing
// must not affect equality.
func Collapse(s string) string {
	return strings.TrimSpace(innerSpaceRun.ReplaceAllString(s, " "))
}

// Table serialises a raw table grid into readable pipe-delimited lines.
// Table chunks keep the raw grid alongside this text form.
func Table(t *domain.Table) string {
	if t == nil || len(t.Rows) == 0 {
		return ""
	}
	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		lines = append(lines, strings.Join(row, " | "))
	}
	return strings.Join(lines, "\n")
}

// Snippet returns a window of text centred on the first occurrence of
// needle, with ellipses marking truncation. When needle is absent the head
// of the text is returned.
func Snippet(text, needle string, maxLen int) string {
	if text == "" {
		return ""
	}
	if maxLen <= 0 {
		maxLen = 240
	}
	idx := -1
	if needle != "" {
		idx = strings.Index(strings.ToLower(text), strings.ToLower(needle))
	}
	if idx == -1 {
		if len(text) > maxLen {
			return text[:maxLen] + "…"
		}
		return text
	}
	start := idx - 80
	if start < 0 {
		start = 0
	}
	end := idx + len(needle) + 160
	if end > len(text) {
		end = len(text)
	}
	snippet := text[start:end]
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(text) {
		snippet = snippet + "…"
	}
	return snippet
}
