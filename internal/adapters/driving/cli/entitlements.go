package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

var (
	entitlementsJSON bool
	entitlementsCSV  bool
)

var entitlementsCmd = &cobra.Command{
	Use:   "entitlements [doc-id]",
	Short: "Extract licensing entitlements from a chunked document",
	Long: `Runs the entitlements extraction over a document's stored chunk set.
Tables are the primary lane; prose grants are the fallback. References
to external documents (order forms, SOWs) are captured either way.

A contract that carries no product grants of its own reports
NO_ENTITLEMENTS_FOUND_IN_DOCUMENT rather than an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runEntitlements,
}

func init() {
	entitlementsCmd.Flags().BoolVar(&entitlementsJSON, "json", false, "output the full result as JSON")
	entitlementsCmd.Flags().BoolVar(&entitlementsCSV, "csv", false, "also export an entitlements.csv")
	rootCmd.AddCommand(entitlementsCmd)
}

func runEntitlements(cmd *cobra.Command, args []string) error {
	if entitlementsService == nil {
		return errors.New("entitlements service not configured")
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

	res, err := entitlementsService.Extract(cmd.Context(), set)
	if err != nil {
		return fmt.Errorf("entitlements extraction failed: %w", err)
	}

	if entitlementsCSV {
		path, err := resultStore.ExportEntitlementsCSV(res)
		if err != nil {
			return fmt.Errorf("exporting CSV: %w", err)
		}
		cmd.Printf("CSV: %s\n", path)
	}

	if entitlementsJSON {
		return printJSON(cmd, res)
	}

	ent := res.Entitlements
	cmd.Printf("Status: %s\n", ent.Status)
	if len(ent.Products) > 0 {
		cmd.Printf("Products (%d):\n", len(ent.Products))
		for _, p := range ent.Products {
			qty := p.QuantityRaw
			if p.Quantity != nil {
				qty = fmt.Sprintf("%d", *p.Quantity)
			}
			cmd.Printf("  %-40s %-15s %-10s %.2f\n", truncate(p.Name, 40), p.Metric, qty, p.Confidence)
		}
	}
	if len(ent.References) > 0 {
		cmd.Printf("References (%d):\n", len(ent.References))
		for _, r := range ent.References {
			cmd.Printf("  %-20s %q\n", r.RefType, r.RefText)
		}
	}
	if res.Dropped > 0 {
		cmd.Printf("%d records dropped for incomplete evidence\n", res.Dropped)
	}
	return nil
}
