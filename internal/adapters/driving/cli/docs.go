package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var docsJSON bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List processed documents",
	RunE:  runDocs,
}

func init() {
	docsCmd.Flags().BoolVar(&docsJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(docsCmd)
}

func runDocs(cmd *cobra.Command, _ []string) error {
	if docStore == nil {
		return errors.New("document store not configured")
	}

	recs, err := docStore.List(cmd.Context())
	if err != nil {
		return err
	}

	if docsJSON {
		return printJSON(cmd, recs)
	}

	if len(recs) == 0 {
		cmd.Println("No documents yet.")
		return nil
	}

	cmd.Printf("%-20s %-16s %-6s %-7s %-12s %-12s\n", "DOC", "STATUS", "PAGES", "CHUNKS", "DEFINITIONS", "ENTITLEMENTS")
	for _, r := range recs {
		cmd.Printf("%-20s %-16s %-6d %-7d %-12s %-12s\n",
			truncate(r.DocID, 20), r.Status, r.PageCount, r.ChunkCount,
			string(r.DefinitionsStatus), string(r.EntitlementsStatus))
	}
	return nil
}
