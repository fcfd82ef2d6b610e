package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

func definitionsSet() *domain.ChunkSet {
	return &domain.ChunkSet{
		DocID: "doc-1",
		Chunks: []domain.Chunk{{
			ID:          "c1",
			Kind:        domain.ChunkDefinition,
			Text:        `"Processor" means a central processing unit of a server.`,
			SectionPath: []string{"Definitions"},
			ClauseRef:   "1.1",
			PageStart:   2,
			PageEnd:     2,
		}},
	}
}

func TestDefinitionsExtractStoresResult(t *testing.T) {
	docs := newFakeDocStore()
	results := newFakeResultStore()
	svc := NewDefinitionsService(nil, docs, results)

	res, err := svc.Extract(context.Background(), definitionsSet())
	require.NoError(t, err)
	require.Len(t, res.Definitions, 1)
	assert.Equal(t, "Processor", res.Definitions[0].Term)

	stored, err := results.GetDefinitions(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, res, stored)

	assert.Equal(t, []domain.ExtractionStatus{domain.ExtractionRunning, domain.ExtractionComplete}, docs.extractionStatuses)
}

func TestDefinitionsExtractNilSet(t *testing.T) {
	svc := NewDefinitionsService(nil, nil, nil)
	_, err := svc.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDefinitionsExtractEmptySetMarksFailed(t *testing.T) {
	docs := newFakeDocStore()
	svc := NewDefinitionsService(nil, docs, nil)

	_, err := svc.Extract(context.Background(), &domain.ChunkSet{DocID: "doc-1"})
	assert.ErrorIs(t, err, domain.ErrNoChunks)
	assert.Equal(t, domain.ExtractionFailed, docs.extractionStatuses[len(docs.extractionStatuses)-1])
}

func TestDefinitionsStoreFailureMarksFailed(t *testing.T) {
	docs := newFakeDocStore()
	results := newFakeResultStore()
	results.putErr = assert.AnError
	svc := NewDefinitionsService(nil, docs, results)

	_, err := svc.Extract(context.Background(), definitionsSet())
	require.Error(t, err)
	assert.Equal(t, domain.ExtractionFailed, docs.extractionStatuses[len(docs.extractionStatuses)-1])
}
