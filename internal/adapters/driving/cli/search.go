package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

var (
	searchLimit   int
	searchJSON    bool
	searchDocIDs  []string
	searchKind    string
	searchSection string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search stored chunks",
	Long: `Searches the chunk sets of all processed documents by keyword overlap.
Hits carry chunk ids, section paths, and page numbers, so a result can
always be traced back to its place in the contract.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringSliceVar(&searchDocIDs, "doc", nil, "limit to specific doc ids")
	searchCmd.Flags().StringVar(&searchKind, "kind", "", "limit to one chunk kind (clause, table, ...)")
	searchCmd.Flags().StringVar(&searchSection, "section", "", "limit to sections containing this text")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	filters := domain.SearchFilters{
		DocIDs:          searchDocIDs,
		Kind:            domain.ChunkKind(searchKind),
		SectionContains: searchSection,
	}
	if searchKind != "" && !filters.Kind.IsValid() {
		return fmt.Errorf("unknown chunk kind %q", searchKind)
	}

	hits, err := searchService.Search(cmd.Context(), args[0], filters, domain.SearchModeKeyword, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, hits)
	}

	if len(hits) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, h := range hits {
		section := strings.Join(h.SectionPath, " > ")
		cmd.Printf("[%d] %s p.%d-%d (%.2f)\n", i+1, h.DocID, h.PageStart, h.PageEnd, h.Score)
		if section != "" {
			cmd.Printf("    %s\n", section)
		}
		cmd.Printf("    %s\n\n", h.Snippet)
	}
	return nil
}
