package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

func TestDocumentStorePutAndGet(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, domain.DocumentRecord{DocID: "doc-1", Filename: "msa.pdf"}))

	rec, err := s.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "msa.pdf", rec.Filename)
	assert.Equal(t, domain.StatusQueued, rec.Status)
	assert.False(t, rec.IngestedAt.IsZero())
}

func TestDocumentStoreGetMissing(t *testing.T) {
	s := NewDocumentStore()

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStorePutRejectsEmptyID(t *testing.T) {
	s := NewDocumentStore()

	err := s.Put(context.Background(), domain.DocumentRecord{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStoreListNewestFirst(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	older := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, s.Put(ctx, domain.DocumentRecord{DocID: "doc-old", IngestedAt: older}))
	require.NoError(t, s.Put(ctx, domain.DocumentRecord{DocID: "doc-new", IngestedAt: time.Now().UTC()}))

	recs, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "doc-new", recs[0].DocID)
	assert.Equal(t, "doc-old", recs[1].DocID)
}

func TestDocumentStoreSetStatus(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, domain.DocumentRecord{DocID: "doc-1"}))
	require.NoError(t, s.SetStatus(ctx, "doc-1", domain.StatusReady))

	rec, err := s.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, rec.Status)

	assert.ErrorIs(t, s.SetStatus(ctx, "missing", domain.StatusReady), domain.ErrNotFound)
}

func TestDocumentStoreSetExtractionStatus(t *testing.T) {
	s := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, domain.DocumentRecord{DocID: "doc-1"}))
	require.NoError(t, s.SetExtractionStatus(ctx, "doc-1", "definitions", domain.ExtractionComplete))
	require.NoError(t, s.SetExtractionStatus(ctx, "doc-1", "entitlements", domain.ExtractionRunning))

	rec, err := s.Get(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ExtractionComplete, rec.DefinitionsStatus)
	assert.Equal(t, domain.ExtractionRunning, rec.EntitlementsStatus)

	err = s.SetExtractionStatus(ctx, "doc-1", "summaries", domain.ExtractionComplete)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResultStoreRoundTrips(t *testing.T) {
	s := NewResultStore()
	ctx := context.Background()

	set := &domain.ChunkSet{DocID: "doc-1", Chunks: []domain.Chunk{{ID: "c1", Text: "x"}}}
	require.NoError(t, s.PutChunkSet(ctx, set))
	got, err := s.GetChunkSet(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, set, got)

	_, err = s.GetChunkSet(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNoChunks)

	defs := &domain.DefinitionsResult{DocID: "doc-1"}
	require.NoError(t, s.PutDefinitions(ctx, defs))
	gotDefs, err := s.GetDefinitions(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, defs, gotDefs)

	ents := &domain.EntitlementsResult{DocID: "doc-1"}
	require.NoError(t, s.PutEntitlements(ctx, ents))
	gotEnts, err := s.GetEntitlements(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, ents, gotEnts)
}

func TestResultStoreListChunkSetsSorted(t *testing.T) {
	s := NewResultStore()
	ctx := context.Background()

	require.NoError(t, s.PutChunkSet(ctx, &domain.ChunkSet{DocID: "doc-b"}))
	require.NoError(t, s.PutChunkSet(ctx, &domain.ChunkSet{DocID: "doc-a"}))

	ids, err := s.ListChunkSets(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc-a", "doc-b"}, ids)
}

func TestResultStoreFeedback(t *testing.T) {
	s := NewResultStore()
	ctx := context.Background()

	require.NoError(t, s.AppendFeedback(ctx, domain.FeedbackItem{
		DocID: "doc-1", ItemType: "definitions", ItemKey: "Processor", Verdict: domain.VerdictCorrect,
	}))

	items, err := s.ListFeedback(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEmpty(t, items[0].ID)
	assert.False(t, items[0].CreatedAt.IsZero())
}
