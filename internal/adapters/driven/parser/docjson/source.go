// Package docjson reads the upstream parsing service's output. The parser
// writes one document.json per document containing an ordered block list;
// this adapter loads and sanitises that file into the domain model.
package docjson

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
)

// DocumentFile is the filename the parser writes per document.
const DocumentFile = "document.json"

// Ensure Source implements the interface.
var _ driven.BlockSource = (*Source)(nil)

// Source loads parsed documents from a directory tree of the form
// <root>/<doc_id>/document.json.
type Source struct {
	root string
}

// NewSource creates a block source rooted at dir. If dir is empty,
// defaults to ~/.ipdf/data/parsed.
func NewSource(dir string) (*Source, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".ipdf", "data", "parsed")
	}
	return &Source{root: dir}, nil
}

// Root returns the source's root directory.
func (s *Source) Root() string {
	return s.root
}

// Load reads and sanitises the parsed document for the given id.
func (s *Source) Load(ctx context.Context, docID string) (*domain.Document, error) {
	if docID == "" {
		return nil, fmt.Errorf("doc id: %w", domain.ErrInvalidInput)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(s.root, docID, DocumentFile))
}

// List returns the doc ids that have parser output, sorted.
func (s *Source) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading parsed directory: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.root, e.Name(), DocumentFile)); err == nil {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// LoadFile reads a single document.json from an explicit path. Used by
// the CLI when the caller points directly at a parser output file.
func LoadFile(path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("parser output %s: %w", path, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading parser output: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding parser output: %w", err)
	}
	if doc.DocID == "" {
		// Fall back to the directory name when the parser omitted it.
		doc.DocID = filepath.Base(filepath.Dir(path))
	}
	sanitise(&doc)
	return &doc, nil
}

// sanitise repairs the irregularities parser output shows in practice:
// unknown block kinds, missing ids, and zero or inverted page numbers.
func sanitise(doc *domain.Document) {
	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		b.Kind = normaliseKind(b.Kind)
		if b.ID == "" {
			b.ID = fmt.Sprintf("b%d", i+1)
		}
		if b.PageStart < 1 {
			b.PageStart = 1
		}
		if b.PageEnd < b.PageStart {
			b.PageEnd = b.PageStart
		}
		if doc.PageCount < b.PageEnd {
			doc.PageCount = b.PageEnd
		}
	}
}

func normaliseKind(k domain.BlockKind) domain.BlockKind {
	switch domain.BlockKind(strings.ToLower(strings.TrimSpace(string(k)))) {
	case domain.BlockHeading, "title", "section_header":
		return domain.BlockHeading
	case domain.BlockParagraph, "text":
		return domain.BlockParagraph
	case domain.BlockListItem, "list":
		return domain.BlockListItem
	case domain.BlockTable:
		return domain.BlockTable
	case domain.BlockHeader, "page_header":
		return domain.BlockHeader
	case domain.BlockFooter, "page_footer":
		return domain.BlockFooter
	default:
		return domain.BlockUnknown
	}
}
