package sectionize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeHeading(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "numbered", text: "2.1 License Grant", want: true},
		{name: "all caps", text: "LIMITATION OF LIABILITY", want: true},
		{name: "title case", text: "Fees And Payment Terms", want: true},
		{name: "keyword with mixed case", text: "Definitions and Interpretation", want: true},
		{name: "schedule", text: "SCHEDULE A", want: true},
		{name: "sentence with period", text: "2.1 Licensee shall keep records.", want: false},
		{name: "plain prose", text: "the parties agree as follows", want: false},
		{name: "too short", text: "A", want: false},
		{name: "too long", text: strings.Repeat("VERY LONG HEADING ", 10), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeHeading(tt.text))
		})
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"2 LICENSE GRANT", 1},
		{"2.1 Scope", 2},
		{"2.1.3 Territory", 3},
		{"LIMITATION OF LIABILITY", 1},
		{"Schedule A", 1},
		{"Appendix 1", 1},
		{"Payment Terms", 2},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, HeadingLevel(tt.text))
		})
	}
}

func TestClauseRef(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantRef   string
		wantLevel int
	}{
		{name: "top level", text: "2 The Licensee agrees", wantRef: "2", wantLevel: 1},
		{name: "dotted", text: "2.3 Licensee shall not", wantRef: "2.3", wantLevel: 2},
		{name: "dotted with letter", text: "2.3(a) maintain records", wantRef: "2.3(a)", wantLevel: 2},
		{name: "deep", text: "10.1.2 Notices shall be", wantRef: "10.1.2", wantLevel: 3},
		{name: "lettered item", text: "(b) permit audits of usage", wantRef: "(b)", wantLevel: 1},
		{name: "no ref", text: "The parties agree as follows", wantRef: "", wantLevel: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, level := ClauseRef(tt.text)
			assert.Equal(t, tt.wantRef, ref)
			assert.Equal(t, tt.wantLevel, level)
		})
	}
}

func TestClauseRefPredicates(t *testing.T) {
	assert.True(t, IsNumericClause("2.3"))
	assert.False(t, IsNumericClause("2.3(a)"))
	assert.False(t, IsNumericClause(""))
	assert.True(t, IsLetteredClause("(a)"))
	assert.False(t, IsLetteredClause("2.3"))
}

func TestStackPushPopsSiblingsAndDeeper(t *testing.T) {
	var s Stack
	s.Push(1, "1. DEFINITIONS")
	s.Push(2, "1.1 Interpretation")
	assert.Equal(t, []string{"1. DEFINITIONS", "1.1 Interpretation"}, s.Path())

	s.Push(2, "1.2 Headings")
	assert.Equal(t, []string{"1. DEFINITIONS", "1.2 Headings"}, s.Path())
	assert.Equal(t, "1.2 Headings", s.Leaf())

	s.Push(1, "2. LICENSE")
	assert.Equal(t, []string{"2. LICENSE"}, s.Path())
	assert.Equal(t, 1, s.Depth())
}

func TestStackPathIsACopy(t *testing.T) {
	var s Stack
	s.Push(1, "SCHEDULE A")
	path := s.Path()
	s.Push(1, "SCHEDULE B")
	assert.Equal(t, []string{"SCHEDULE A"}, path)
}

func TestIsSchedulePath(t *testing.T) {
	assert.True(t, IsSchedulePath([]string{"SCHEDULE A", "Licensed Programs"}))
	assert.True(t, IsSchedulePath([]string{"Exhibit 2"}))
	assert.False(t, IsSchedulePath([]string{"2. LICENSE GRANT"}))
	assert.False(t, IsSchedulePath(nil))
}
