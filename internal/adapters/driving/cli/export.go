package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

var exportCmd = &cobra.Command{
	Use:   "export [doc-id]",
	Short: "Export extraction results for review",
	Long: `Writes the review pack and CSV exports for a document from whatever
extraction results are stored. Extractions that have not run are
skipped, not treated as errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if resultStore == nil {
		return errors.New("result store not configured")
	}
	docID := args[0]

	defs, err := resultStore.GetDefinitions(cmd.Context(), docID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	ents, err := resultStore.GetEntitlements(cmd.Context(), docID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if defs == nil && ents == nil {
		return errors.New("no extraction results stored for " + docID)
	}

	if defs != nil {
		path, err := resultStore.ExportDefinitionsCSV(defs)
		if err != nil {
			return err
		}
		cmd.Printf("Definitions CSV: %s\n", path)
	}
	if ents != nil {
		path, err := resultStore.ExportEntitlementsCSV(ents)
		if err != nil {
			return err
		}
		cmd.Printf("Entitlements CSV: %s\n", path)
	}

	path, err := resultStore.WriteReviewPack(docID, defs, ents)
	if err != nil {
		return err
	}
	cmd.Printf("Review pack: %s\n", path)
	return nil
}
