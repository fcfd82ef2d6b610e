// Package chunker assembles sectioned, normalised blocks into chunks under
// size and type boundary rules, with content-derived identifiers so
// re-chunking the same blocks reproduces the same chunk set.
package chunker

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/normalise"
	"github.com/thatssomoneybaby/IPdf/internal/sectionize"
)

// Version is the chunking pipeline version.
const Version = "v1"

// DefaultRuleset is the current chunking ruleset tag. Chunk ids are derived
// from it, so bumping the ruleset re-keys every chunk.
const DefaultRuleset = "2026-01"

// DefaultMaxChars is the chunk size ceiling. Single oversized source blocks
// (tables) are kept whole, never split.
const DefaultMaxChars = 2000

// DefaultMaxListItems caps list items per chunk; oversized lists split at
// item boundaries.
const DefaultMaxListItems = 12

// pageSplitFraction: a page boundary only opens a new chunk once the
// current chunk is this close to the size ceiling.
const pageSplitFraction = 0.8

// Assembler walks sectioned blocks and emits chunks.
type Assembler struct {
	maxChars     int
	maxListItems int
	retainNoise  bool
	ruleset      string
}

// Option configures the assembler.
type Option func(*Assembler)

// WithMaxChars sets the chunk character ceiling.
func WithMaxChars(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.maxChars = n
		}
	}
}

// WithMaxListItems sets the list-item ceiling per chunk.
func WithMaxListItems(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.maxListItems = n
		}
	}
}

// WithRetainNoise keeps header/footer blocks in chunk formation instead of
// excluding them.
func WithRetainNoise(retain bool) Option {
	return func(a *Assembler) {
		a.retainNoise = retain
	}
}

// WithRuleset overrides the chunking ruleset tag.
func WithRuleset(ruleset string) Option {
	return func(a *Assembler) {
		if ruleset != "" {
			a.ruleset = ruleset
		}
	}
}

// New creates an assembler with the given options.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		maxChars:     DefaultMaxChars,
		maxListItems: DefaultMaxListItems,
		ruleset:      DefaultRuleset,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Ruleset returns the ruleset tag chunk ids are derived under.
func (a *Assembler) Ruleset() string {
	return a.ruleset
}

// open is the chunk under assembly.
type open struct {
	texts       []string
	pageStart   int
	pageEnd     int
	sectionPath []string
	heading     string
	clauseRef   string
	clauseLevel int
	blockIDs    []string
	listItems   int
	isTable     bool
	isHeading   bool
	table       *domain.Table
}

// Assemble derives the ordered chunk list for a document. The heading
// stack is local to this call; concurrent calls on different documents
// never share state.
func (a *Assembler) Assemble(doc *domain.Document) []domain.Chunk {
	var (
		stack  sectionize.Stack
		chunks []domain.Chunk
		cur    *open
	)

	flush := func() {
		if cur == nil {
			return
		}
		c := a.seal(doc.DocID, cur)
		if c != nil {
			chunks = append(chunks, *c)
		}
		cur = nil
	}

	start := func(b domain.Block, text string, isTable, isHeading bool) {
		ref, level := sectionize.ClauseRef(text)
		o := &open{
			texts:       []string{text},
			pageStart:   b.PageStart,
			pageEnd:     b.PageEnd,
			sectionPath: stack.Path(),
			heading:     stack.Leaf(),
			clauseRef:   ref,
			clauseLevel: level,
			blockIDs:    []string{b.ID},
			isTable:     isTable,
			isHeading:   isHeading,
		}
		if isTable {
			o.table = b.Table
		}
		if b.Kind == domain.BlockListItem {
			o.listItems = 1
		}
		cur = o
	}

	for _, b := range doc.Blocks {
		if b.Kind.IsNoise() && !a.retainNoise {
			continue
		}

		isTable := b.Kind == domain.BlockTable || b.Table != nil
		text := normalise.Text(b.Text)
		if isTable && text == "" {
			text = normalise.Text(normalise.Table(b.Table))
		}
		if text == "" && !isTable {
			continue
		}

		isHeading := b.Kind == domain.BlockHeading || (!isTable && sectionize.LooksLikeHeading(text))

		if isHeading {
			flush()
			level := sectionize.HeadingLevel(text)
			stack.Push(level, text)
			// Heading chunks carry their own heading in the path.
			start(b, text, false, true)
			flush()
			continue
		}

		if isTable {
			// One table, one chunk. A table right after a heading
			// inherits it via the stack.
			flush()
			start(b, text, true, false)
			flush()
			continue
		}

		if cur == nil {
			start(b, text, false, false)
			continue
		}

		if a.boundary(cur, b, text) {
			carryRef, carryLevel := cur.clauseRef, cur.clauseLevel
			carried := b.Kind == domain.BlockListItem && cur.listItems >= a.maxListItems
			flush()
			start(b, text, false, false)
			// A list split at an item boundary keeps the shared
			// clause ref rather than adopting the item's own letter.
			if carried && carryRef != "" &&
				(cur.clauseRef == "" || sectionize.IsLetteredClause(cur.clauseRef)) {
				cur.clauseRef = carryRef
				cur.clauseLevel = carryLevel
			}
			continue
		}

		cur.texts = append(cur.texts, text)
		cur.blockIDs = append(cur.blockIDs, b.ID)
		if b.PageStart > 0 && (cur.pageStart == 0 || b.PageStart < cur.pageStart) {
			cur.pageStart = b.PageStart
		}
		if b.PageEnd > cur.pageEnd {
			cur.pageEnd = b.PageEnd
		}
		if b.Kind == domain.BlockListItem {
			cur.listItems++
		}
		if cur.clauseRef == "" {
			if ref, level := sectionize.ClauseRef(text); ref != "" {
				cur.clauseRef = ref
				cur.clauseLevel = level
			}
		}
	}
	flush()

	return chunks
}

// boundary decides whether the next block opens a new chunk instead of
// merging into the current one.
func (a *Assembler) boundary(cur *open, b domain.Block, text string) bool {
	// A new clause number while the chunk already holds one, except
	// lettered sub-items continuing their parent clause.
	nextRef, _ := sectionize.ClauseRef(text)
	if cur.clauseRef != "" && nextRef != "" && nextRef != cur.clauseRef {
		subItem := sectionize.IsLetteredClause(nextRef) &&
			(sectionize.IsNumericClause(cur.clauseRef) || sectionize.IsLetteredClause(cur.clauseRef))
		if !subItem {
			return true
		}
	}

	length := 0
	for _, t := range cur.texts {
		length += len(t)
	}
	if length+len(text) > a.maxChars {
		return true
	}

	if b.Kind == domain.BlockListItem && cur.listItems >= a.maxListItems {
		return true
	}

	// Page boundaries only split once the chunk is near the ceiling.
	if b.PageStart > cur.pageEnd && float64(length) >= pageSplitFraction*float64(a.maxChars) {
		return true
	}

	return false
}

// seal finalises an open chunk. Empty text after normalisation discards
// the chunk (its blocks contributed nothing).
func (a *Assembler) seal(docID string, o *open) *domain.Chunk {
	text := normalise.Text(strings.Join(o.texts, "\n\n"))
	if text == "" {
		return nil
	}
	c := &domain.Chunk{
		ID:             chunkID(docID, o.blockIDs, a.ruleset),
		Kind:           kindFor(o.sectionPath, o.clauseRef, o.isTable, o.isHeading),
		Text:           text,
		SectionPath:    o.sectionPath,
		Heading:        o.heading,
		ClauseRef:      o.clauseRef,
		ClauseLevel:    o.clauseLevel,
		PageStart:      o.pageStart,
		PageEnd:        o.pageEnd,
		SourceBlockIDs: o.blockIDs,
		CharLen:        len(text),
		Table:          o.table,
	}
	return c
}

// chunkID derives the stable chunk identifier from the document id, the
// ordered source block ids, and the ruleset version. Content-derived, not
// random: re-indexing by id stays idempotent across runs.
func chunkID(docID string, blockIDs []string, ruleset string) string {
	h := sha256.New()
	h.Write([]byte(docID))
	for _, id := range blockIDs {
		h.Write([]byte{'|'})
		h.Write([]byte(id))
	}
	h.Write([]byte{'|'})
	h.Write([]byte(ruleset))
	return hex.EncodeToString(h.Sum(nil))
}

func kindFor(sectionPath []string, clauseRef string, isTable, isHeading bool) domain.ChunkKind {
	switch {
	case isHeading:
		return domain.ChunkHeading
	case isTable:
		return domain.ChunkTable
	}
	for _, s := range sectionPath {
		if strings.Contains(strings.ToLower(s), "definition") {
			return domain.ChunkDefinition
		}
	}
	if sectionize.IsSchedulePath(sectionPath) {
		return domain.ChunkSchedule
	}
	if clauseRef != "" {
		return domain.ChunkClause
	}
	return domain.ChunkParagraph
}
