package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/parser/docjson"
	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

var (
	chunkJSON  bool
	chunkDebug bool
)

var chunkCmd = &cobra.Command{
	Use:   "chunk [doc-id|document.json]",
	Short: "Chunk a parsed document",
	Long: `Derives the chunk set for a parsed document. The argument is either a
doc id under the parsed data directory or a direct path to a parser
document.json file.

Chunking is deterministic: the same blocks under the same ruleset always
produce the same chunk ids and boundaries.`,
	Args: cobra.ExactArgs(1),
	RunE: runChunk,
}

func init() {
	chunkCmd.Flags().BoolVar(&chunkJSON, "json", false, "output the chunk set as JSON")
	chunkCmd.Flags().BoolVar(&chunkDebug, "debug-md", false, "also write a chunk debug markdown file")
	rootCmd.AddCommand(chunkCmd)
}

func runChunk(cmd *cobra.Command, args []string) error {
	if chunkingService == nil {
		return errors.New("chunking service not configured")
	}

	doc, err := loadDocument(cmd, args[0])
	if err != nil {
		return err
	}

	set, err := chunkingService.Chunk(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("chunking failed: %w", err)
	}

	if chunkDebug && resultStore != nil {
		path, err := resultStore.WriteChunkDebug(set)
		if err != nil {
			return fmt.Errorf("writing debug markdown: %w", err)
		}
		cmd.Printf("Debug markdown: %s\n", path)
	}

	if chunkJSON {
		return printJSON(cmd, set)
	}

	cmd.Printf("Chunked %s: %d chunks (ruleset %s)\n", set.DocID, len(set.Chunks), set.Chunking.Ruleset)
	counts := countKinds(set.Chunks)
	for _, kind := range []domain.ChunkKind{
		domain.ChunkHeading, domain.ChunkDefinition, domain.ChunkClause,
		domain.ChunkSchedule, domain.ChunkTable, domain.ChunkParagraph,
		domain.ChunkUnknown,
	} {
		if counts[kind] > 0 {
			cmd.Printf("  %-12s %d\n", kind, counts[kind])
		}
	}
	return nil
}

// loadDocument resolves the argument as a parser output path when it
// looks like one, otherwise as a doc id.
func loadDocument(cmd *cobra.Command, arg string) (*domain.Document, error) {
	if strings.HasSuffix(arg, ".json") || strings.ContainsAny(arg, "/\\") {
		return docjson.LoadFile(arg)
	}
	if blockSource == nil {
		return nil, errors.New("parser output source not configured")
	}
	return blockSource.Load(cmd.Context(), arg)
}

func countKinds(chunks []domain.Chunk) map[domain.ChunkKind]int {
	counts := make(map[domain.ChunkKind]int)
	for i := range chunks {
		counts[chunks[i].Kind]++
	}
	return counts
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
