package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// uriScheme is the custom URI scheme for ipdf resources.
const uriScheme = "ipdf://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing processed documents.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "Processing metadata for all documents",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	// Template for a document's chunk set.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{docId}/chunks",
		Name:        "document-chunks",
		Description: "The deterministic chunk set derived from a document",
		MIMEType:    "application/json",
	}, s.handleChunksResource)
}

// handleDocumentsResource returns processing metadata for all documents.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Docs == nil {
		return jsonResource(req.Params.URI, []domain.DocumentRecord{})
	}

	recs, err := s.ports.Docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return jsonResource(req.Params.URI, recs)
}

// handleChunksResource returns the chunk set for a specific document.
func (s *Server) handleChunksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	docID := extractDocID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	set, err := s.ports.Results.GetChunkSet(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNoChunks) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("loading chunk set: %w", err)
	}
	return jsonResource(req.Params.URI, set)
}

// extractDocID pulls the doc id out of ipdf://documents/{docId}/chunks.
func extractDocID(uri string) string {
	rest, ok := strings.CutPrefix(uri, uriScheme+"documents/")
	if !ok {
		return ""
	}
	docID, ok := strings.CutSuffix(rest, "/chunks")
	if !ok || strings.Contains(docID, "/") {
		return ""
	}
	return docID
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
