// Package sectionize recovers document structure from an ordered block
// stream: heading detection, heading levels, clause references, and the
// heading stack whose contents define each block's section path.
package sectionize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	numberedHeading = regexp.MustCompile(`^\s*\d+(?:\.\d+)*\s+[A-Z]`)
	leadingNumber   = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)\b`)
	numberedClause  = regexp.MustCompile(`^\s*(\d+(?:\.\d+)*)((?:\([a-zA-Z0-9]+\))*)`)
	letteredClause  = regexp.MustCompile(`^\s*\(?([a-z])\)\s+`)
	numericRef      = regexp.MustCompile(`^\d+(?:\.\d+)*$`)
	letteredRef     = regexp.MustCompile(`^\([a-z]\)$`)
	wordRe          = regexp.MustCompile(`[A-Za-z]+`)
)

// headingKeywords are contract section names that mark a line as a heading
// even when its casing alone is inconclusive.
var headingKeywords = map[string]struct{}{
	"definitions":    {},
	"interpretation": {},
	"term":           {},
	"audit":          {},
	"fees":           {},
	"schedule":       {},
	"appendix":       {},
	"annex":          {},
	"exhibit":        {},
	"license":        {},
	"restrictions":   {},
	"termination":    {},
	"renewal":        {},
}

// schedulePrefixes mark top-level attachment sections.
var schedulePrefixes = []string{"schedule", "appendix", "annex", "exhibit"}

// LooksLikeHeading reports whether a line of text is heuristically a
// heading. Used when the parser's heading classification is absent or
// unreliable: short line, no terminal period, numbered-heading shape or a
// high all-caps/title-case ratio.
func LooksLikeHeading(text string) bool {
	t := strings.TrimSpace(text)
	if len(t) < 2 || len(t) > 120 {
		return false
	}
	if strings.HasSuffix(t, ".") {
		return false
	}
	if numberedHeading.MatchString(t) {
		return true
	}

	capsRatio, titleRatio := caseRatios(t)
	if capsRatio > 0.8 || titleRatio > 0.8 {
		return true
	}

	lower := strings.ToLower(t)
	for _, w := range wordRe.FindAllString(lower, -1) {
		if _, ok := headingKeywords[w]; ok {
			if capsRatio > 0.5 || titleRatio > 0.6 {
				return true
			}
			break
		}
	}
	return false
}

// HeadingLevel computes the nesting level of a heading: level 1 for bare
// top-level numbering, all-caps lines, and schedule-type attachments;
// deeper dotted numbering adds a level per dot segment.
func HeadingLevel(text string) int {
	t := strings.TrimSpace(text)
	if t == "" {
		return 2
	}
	if m := leadingNumber.FindStringSubmatch(t); m != nil {
		return strings.Count(m[1], ".") + 1
	}
	if isAllUpper(t) {
		return 1
	}
	lower := strings.ToLower(t)
	for _, p := range schedulePrefixes {
		if strings.HasPrefix(lower, p) {
			return 1
		}
	}
	return 2
}

// IsSchedulePath reports whether a section path leads into a
// schedule/appendix/annex/exhibit attachment.
func IsSchedulePath(sectionPath []string) bool {
	for _, s := range sectionPath {
		lower := strings.ToLower(s)
		for _, p := range schedulePrefixes {
			if strings.HasPrefix(lower, p) {
				return true
			}
		}
	}
	return false
}

// ClauseRef extracts a clause reference and its level from the leading
// text of a block. Matchers run in order: numbered clause with optional
// trailing parentheticals ("2.3(a)"), then lettered sub-item ("(b) ...").
// No match leaves both zero.
func ClauseRef(text string) (string, int) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", 0
	}
	if m := numberedClause.FindStringSubmatch(t); m != nil && m[1] != "" {
		return m[1] + m[2], strings.Count(m[1], ".") + 1
	}
	if m := letteredClause.FindStringSubmatch(t); m != nil {
		return "(" + m[1] + ")", 1
	}
	return "", 0
}

// IsNumericClause reports whether ref is a bare dotted number ("2.3").
func IsNumericClause(ref string) bool {
	return ref != "" && numericRef.MatchString(ref)
}

// IsLetteredClause reports whether ref is a lettered sub-item ("(a)").
func IsLetteredClause(ref string) bool {
	return ref != "" && letteredRef.MatchString(ref)
}

// Frame is one entry of the heading stack.
type Frame struct {
	// Level is the heading's nesting level, 1 at the top.
	Level int

	// Heading is the heading text.
	Heading string
}

// Stack is the heading stack for one sectionizer walk. It is owned by a
// single walk over a single document and is never shared.
type Stack struct {
	frames []Frame
}

// Push pops frames at or below the new heading's level, then pushes it.
func (s *Stack) Push(level int, heading string) {
	for len(s.frames) > 0 && s.frames[len(s.frames)-1].Level >= level {
		s.frames = s.frames[:len(s.frames)-1]
	}
	s.frames = append(s.frames, Frame{Level: level, Heading: heading})
}

// Path returns the current heading texts, root to leaf. The returned
// slice is a copy; later pushes do not mutate it.
func (s *Stack) Path() []string {
	if len(s.frames) == 0 {
		return nil
	}
	path := make([]string, len(s.frames))
	for i, f := range s.frames {
		path[i] = f.Heading
	}
	return path
}

// Leaf returns the innermost heading, or "" for an empty stack.
func (s *Stack) Leaf() string {
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1].Heading
}

// Depth returns the number of frames on the stack.
func (s *Stack) Depth() int {
	return len(s.frames)
}

func caseRatios(t string) (capsRatio, titleRatio float64) {
	letters := 0
	uppers := 0
	for _, r := range t {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}
	if letters > 0 {
		capsRatio = float64(uppers) / float64(letters)
	}
	words := wordRe.FindAllString(t, -1)
	if len(words) > 0 {
		titled := 0
		for _, w := range words {
			r := []rune(w)[0]
			if unicode.IsUpper(r) {
				titled++
			}
		}
		titleRatio = float64(titled) / float64(len(words))
	}
	return capsRatio, titleRatio
}

func isAllUpper(t string) bool {
	hasLetter := false
	for _, r := range t {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}
