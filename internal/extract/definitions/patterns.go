// Package definitions extracts defined terms from candidate chunks using
// an ordered family of patterns with multi-line merge and stop-condition
// handling.
package definitions

import (
	"regexp"
	"strings"
	"unicode"
)

// Pattern families are tried in order per paragraph; the first family that
// matches wins for that span.

const verbPhrase = `(?:means|shall mean|has the meaning|is defined as)`

var (
	quotedPattern = regexp.MustCompile(`["“']([^"“”']{1,80})["”']\s+` + verbPhrase + `\b[,:]?\s*(?s)(.*)`)

	unquotedPattern = regexp.MustCompile(`^((?:[A-Z][A-Za-z0-9-]*)(?:\s+(?:[A-Z][A-Za-z0-9-]*|of|and|or|the|for|in|to)){0,6})\s+` + verbPhrase + `\b[,:]?\s*(?s)(.*)`)

	colonPattern = regexp.MustCompile(`^([A-Z][A-Za-z0-9][A-Za-z0-9 /&-]{0,78}):\s+(?s)(.+)`)

	// Semicolon-delimited runs of quoted definitions within a dense block.
	runPattern = regexp.MustCompile(`["“']([^"“”']{1,80})["”']\s+` + verbPhrase + `\b[,:]?\s*([^;]+)`)

	trigger = regexp.MustCompile(`["“']?[A-Z][^"“”']{0,80}["”']?\s+` + verbPhrase + `\b`)
)

// match is one raw (term, definition) pair before scoring.
type match struct {
	term   string
	def    string
	quoted bool
}

// matcher is one pattern family.
type matcher interface {
	// attempt returns the matches found in the span, or nil.
	attempt(span string) []match
}

// families returns the pattern families in priority order.
func families() []matcher {
	return []matcher{quotedMatcher{}, unquotedMatcher{}, colonMatcher{}, runMatcher{}}
}

// quotedMatcher handles `"Term" means ...`.
type quotedMatcher struct{}

func (quotedMatcher) attempt(span string) []match {
	// A span holding several semicolon-delimited definitions belongs to
	// the run family; matching here would swallow all but the first.
	if len(runPattern.FindAllStringIndex(span, -1)) >= 2 {
		return nil
	}
	m := quotedPattern.FindStringSubmatch(span)
	if m == nil {
		return nil
	}
	return []match{{term: m[1], def: m[2], quoted: true}}
}

// unquotedMatcher handles a capitalized unquoted term before the defining
// verb phrase.
type unquotedMatcher struct{}

func (unquotedMatcher) attempt(span string) []match {
	m := unquotedPattern.FindStringSubmatch(span)
	if m == nil {
		return nil
	}
	return []match{{term: m[1], def: m[2]}}
}

// colonMatcher handles `Term: definition` lines where the term is Title
// Case.
type colonMatcher struct{}

func (colonMatcher) attempt(span string) []match {
	m := colonPattern.FindStringSubmatch(span)
	if m == nil {
		return nil
	}
	if !isTitleCase(m[1]) {
		return nil
	}
	return []match{{term: m[1], def: m[2]}}
}

// runMatcher handles dense semicolon-delimited definition runs. It only
// fires when the span holds at least two quoted definitions, so single
// definitions stay with the quoted family.
type runMatcher struct{}

func (runMatcher) attempt(span string) []match {
	found := runPattern.FindAllStringSubmatch(span, -1)
	if len(found) < 2 {
		return nil
	}
	out := make([]match, 0, len(found))
	for _, m := range found {
		out = append(out, match{term: m[1], def: m[2], quoted: true})
	}
	return out
}

// beginsNewTerm reports whether a span starts its own definition, which
// stops any multi-line merge in progress.
func beginsNewTerm(span string) bool {
	loc := trigger.FindStringIndex(span)
	return loc != nil && loc[0] < 120
}

// acceptTerm rejects terms that cannot plausibly be defined terms:
// overlong, mostly numeric, or spanning line breaks.
func acceptTerm(term string) bool {
	t := strings.TrimSpace(term)
	if t == "" || len(t) > 80 {
		return false
	}
	if strings.ContainsAny(t, "\n\r") {
		return false
	}
	digits, letters := 0, 0
	for _, r := range t {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r):
			letters++
		}
	}
	if digits > letters {
		return false
	}
	return true
}

// cleanDefinition trims leading punctuation and surrounding whitespace.
// Cross-references inside the text are preserved.
func cleanDefinition(def string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(def), ",;:.-– "))
}

func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	titled := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			titled++
		}
	}
	return float64(titled)/float64(len(words)) >= 0.6
}
