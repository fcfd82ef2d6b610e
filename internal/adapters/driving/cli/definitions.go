package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

var (
	definitionsJSON bool
	definitionsCSV  bool
)

var definitionsCmd = &cobra.Command{
	Use:   "definitions [doc-id]",
	Short: "Extract defined terms from a chunked document",
	Long: `Runs the defined-terms extraction over a document's stored chunk set.
Every extracted term carries evidence pointing at the chunks and pages
it was found on; records without complete evidence are dropped.

The document must have been chunked first (see "ipdf chunk").`,
	Args: cobra.ExactArgs(1),
	RunE: runDefinitions,
}

func init() {
	definitionsCmd.Flags().BoolVar(&definitionsJSON, "json", false, "output the full result as JSON")
	definitionsCmd.Flags().BoolVar(&definitionsCSV, "csv", false, "also export a definitions.csv")
	rootCmd.AddCommand(definitionsCmd)
}

func runDefinitions(cmd *cobra.Command, args []string) error {
	if definitionsService == nil {
		return errors.New("definitions service not configured")
	}
	if resultStore == nil {
		return errors.New("result store not configured")
	}

	set, err := resultStore.GetChunkSet(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNoChunks) {
			return fmt.Errorf("no chunk set for %s; run \"ipdf chunk %s\" first", args[0], args[0])
		}
		return err
	}

	res, err := definitionsService.Extract(cmd.Context(), set)
	if err != nil {
		return fmt.Errorf("definitions extraction failed: %w", err)
	}

	if definitionsCSV {
		path, err := resultStore.ExportDefinitionsCSV(res)
		if err != nil {
			return fmt.Errorf("exporting CSV: %w", err)
		}
		cmd.Printf("CSV: %s\n", path)
	}

	if definitionsJSON {
		return printJSON(cmd, res)
	}

	cmd.Printf("Extracted %d defined terms from %s", len(res.Definitions), res.DocID)
	if res.Dropped > 0 {
		cmd.Printf(" (%d dropped for incomplete evidence)", res.Dropped)
	}
	cmd.Println()
	for _, d := range res.Definitions {
		marker := " "
		if d.Conflict {
			marker = "!"
		}
		cmd.Printf("  %s %-30s %.2f  %s\n", marker, d.Term, d.Confidence, truncate(d.Definition, 70))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
