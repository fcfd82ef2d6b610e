package mcp

import (
	"context"
	"testing"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

func readReq(uri string) *sdk.ReadResourceRequest {
	return &sdk.ReadResourceRequest{Params: &sdk.ReadResourceParams{URI: uri}}
}

func TestDocumentsResourceEmptyWithoutDocStore(t *testing.T) {
	s := testServer(t, &mockSearch{}, newMockResults())

	res, err := s.handleDocumentsResource(context.Background(), readReq(uriScheme+"documents"))
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "[]", res.Contents[0].Text)
}

func TestDocumentsResourceListsRecords(t *testing.T) {
	s, err := NewServer(&Ports{
		Search:  &mockSearch{},
		Results: newMockResults(),
		Docs:    &mockDocs{recs: []domain.DocumentRecord{{DocID: "doc-1", Status: domain.StatusReady}}},
	})
	require.NoError(t, err)

	res, err := s.handleDocumentsResource(context.Background(), readReq(uriScheme+"documents"))
	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, "doc-1")
	assert.Contains(t, res.Contents[0].Text, "READY")
}

func TestChunksResourceReturnsChunkSet(t *testing.T) {
	results := newMockResults()
	results.chunkSets["doc-1"] = &domain.ChunkSet{
		DocID:  "doc-1",
		Chunks: []domain.Chunk{{ID: "c1", Text: "2.1 Licensor grants a licence."}},
	}
	s := testServer(t, &mockSearch{}, results)

	res, err := s.handleChunksResource(context.Background(), readReq(uriScheme+"documents/doc-1/chunks"))
	require.NoError(t, err)
	assert.Contains(t, res.Contents[0].Text, "Licensor grants")
}

func TestChunksResourceUnknownDocument(t *testing.T) {
	s := testServer(t, &mockSearch{}, newMockResults())

	_, err := s.handleChunksResource(context.Background(), readReq(uriScheme+"documents/doc-1/chunks"))
	assert.Error(t, err)
}

func TestExtractDocID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{uriScheme + "documents/doc-1/chunks", "doc-1"},
		{uriScheme + "documents/abc123/chunks", "abc123"},
		{uriScheme + "documents/chunks", ""},
		{uriScheme + "documents/a/b/chunks", ""},
		{uriScheme + "sources/doc-1/chunks", ""},
		{"https://example.com", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractDocID(tt.uri), tt.uri)
	}
}
