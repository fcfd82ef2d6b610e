package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/storage/file"
	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// fakeChunking returns a fixed chunk set.
type fakeChunking struct {
	set *domain.ChunkSet
	err error
}

func (f *fakeChunking) Chunk(_ context.Context, doc *domain.Document) (*domain.ChunkSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.set != nil {
		return f.set, nil
	}
	return &domain.ChunkSet{
		DocID:    doc.DocID,
		Chunking: domain.ChunkingInfo{Version: "v1", Ruleset: "2026-01"},
		Chunks: []domain.Chunk{{
			ID: "c1", Kind: domain.ChunkParagraph, Text: "text",
			PageStart: 1, PageEnd: 1,
		}},
	}, nil
}

type fakeDefinitions struct {
	res *domain.DefinitionsResult
	err error
}

func (f *fakeDefinitions) Extract(_ context.Context, set *domain.ChunkSet) (*domain.DefinitionsResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &domain.DefinitionsResult{DocID: set.DocID}, nil
}

type fakeEntitlements struct {
	res *domain.EntitlementsResult
	err error
}

func (f *fakeEntitlements) Extract(_ context.Context, set *domain.ChunkSet) (*domain.EntitlementsResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &domain.EntitlementsResult{
		DocID:        set.DocID,
		Entitlements: domain.Entitlements{Status: domain.EntitlementsNotFound},
	}, nil
}

type fakeSearch struct {
	hits []domain.SearchHit
	err  error
}

func (f *fakeSearch) Search(context.Context, string, domain.SearchFilters, domain.SearchMode, int) ([]domain.SearchHit, error) {
	return f.hits, f.err
}

// setupTestServices wires fakes plus a temp-dir result store, returning a
// cleanup that restores the previous wiring.
func setupTestServices(t *testing.T) *file.Store {
	t.Helper()

	store, err := file.NewStore(t.TempDir())
	require.NoError(t, err)

	SetServices(Services{
		Chunking:     &fakeChunking{},
		Definitions:  &fakeDefinitions{},
		Entitlements: &fakeEntitlements{},
		Search:       &fakeSearch{},
		ResultStore:  store,
	})
	t.Cleanup(func() {
		SetServices(Services{})
	})
	return store
}

// execute runs the root command with args and captures output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
