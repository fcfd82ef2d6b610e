package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query   string `json:"query" jsonschema:"the search query to run over stored chunks"`
	DocID   string `json:"doc_id,omitempty" jsonschema:"limit the search to one document"`
	Section string `json:"section,omitempty" jsonschema:"limit to sections whose path contains this text"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchHitOutput `json:"results"`
	Count   int               `json:"count"`
}

// SearchHitOutput is one search result with its provenance.
type SearchHitOutput struct {
	ChunkID   string  `json:"chunk_id"`
	DocID     string  `json:"doc_id"`
	Score     float64 `json:"score"`
	Snippet   string  `json:"snippet"`
	Section   string  `json:"section,omitempty"`
	ClauseRef string  `json:"clause_ref,omitempty"`
	PageStart int     `json:"page_start"`
	PageEnd   int     `json:"page_end"`
}

// DocInput identifies one document for the extraction tools.
type DocInput struct {
	DocID string `json:"doc_id" jsonschema:"the document id"`
}

// DefinitionsOutput is the output schema for the get_definitions tool.
type DefinitionsOutput struct {
	Found       bool                      `json:"found"`
	Definitions []domain.DefinitionRecord `json:"definitions,omitempty"`
	Dropped     int                       `json:"dropped,omitempty"`
}

// EntitlementsOutput is the output schema for the get_entitlements tool.
type EntitlementsOutput struct {
	Found        bool                 `json:"found"`
	Entitlements *domain.Entitlements `json:"entitlements,omitempty"`
	Dropped      int                  `json:"dropped,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the chunks of all processed contracts by keyword",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_definitions",
		Description: "Get the extracted defined terms for a document, with evidence",
	}, s.handleGetDefinitions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_entitlements",
		Description: "Get the extracted licensing entitlements for a document, with evidence",
	}, s.handleGetEntitlements)
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	filters := domain.SearchFilters{SectionContains: input.Section}
	if input.DocID != "" {
		filters.DocIDs = []string{input.DocID}
	}

	hits, err := s.ports.Search.Search(ctx, input.Query, filters, domain.SearchModeKeyword, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchHitOutput, len(hits)),
		Count:   len(hits),
	}
	for i, h := range hits {
		output.Results[i] = SearchHitOutput{
			ChunkID:   h.ChunkID,
			DocID:     h.DocID,
			Score:     h.Score,
			Snippet:   h.Snippet,
			Section:   joinPath(h.SectionPath),
			ClauseRef: h.ClauseRef,
			PageStart: h.PageStart,
			PageEnd:   h.PageEnd,
		}
	}
	return nil, output, nil
}

// handleGetDefinitions returns the stored definitions result.
// A document that has not been extracted yet reports found=false rather
// than an error, so assistants can distinguish "not run" from failure.
func (s *Server) handleGetDefinitions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocInput,
) (*mcp.CallToolResult, DefinitionsOutput, error) {
	res, err := s.ports.Results.GetDefinitions(ctx, input.DocID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, DefinitionsOutput{Found: false}, nil
		}
		return nil, DefinitionsOutput{}, err
	}
	return nil, DefinitionsOutput{
		Found:       true,
		Definitions: res.Definitions,
		Dropped:     res.Dropped,
	}, nil
}

// handleGetEntitlements returns the stored entitlements result.
func (s *Server) handleGetEntitlements(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocInput,
) (*mcp.CallToolResult, EntitlementsOutput, error) {
	res, err := s.ports.Results.GetEntitlements(ctx, input.DocID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, EntitlementsOutput{Found: false}, nil
		}
		return nil, EntitlementsOutput{}, err
	}
	return nil, EntitlementsOutput{
		Found:        true,
		Entitlements: &res.Entitlements,
		Dropped:      res.Dropped,
	}, nil
}

func joinPath(path []string) string {
	return strings.Join(path, " > ")
}
