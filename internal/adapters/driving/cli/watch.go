package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/parser/docjson"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
	"github.com/thatssomoneybaby/IPdf/internal/watcher"
)

var watchExtract bool

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a parser output directory and chunk new documents",
	Long: `Watches a directory of parser output for new documents and chunks
each one as it arrives. Without an argument the configured parsed data
directory is watched. With --extract, both extractions run after chunking.

Runs until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchExtract, "extract", false, "also run definitions and entitlements extraction")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if chunkingService == nil {
		return errors.New("chunking pipeline not configured")
	}
	if watchExtract && (definitionsService == nil || entitlementsService == nil) {
		return errors.New("extraction services not configured")
	}

	source := blockSource
	if len(args) == 1 {
		var err error
		source, err = docjson.NewSource(args[0])
		if err != nil {
			return err
		}
	}
	if source == nil {
		return errors.New("no parser output directory configured")
	}

	w, err := watcher.New(source.Root(), func(ctx context.Context, docID string) error {
		return processDocument(ctx, source, docID)
	})
	if err != nil {
		return err
	}

	err = w.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// processDocument runs the pipeline for one parsed document.
func processDocument(ctx context.Context, source *docjson.Source, docID string) error {
	doc, err := source.Load(ctx, docID)
	if err != nil {
		return fmt.Errorf("loading %s: %w", docID, err)
	}

	set, err := chunkingService.Chunk(ctx, doc)
	if err != nil {
		return fmt.Errorf("chunking %s: %w", docID, err)
	}
	logger.Info("Chunked %s: %d chunks", docID, len(set.Chunks))

	if !watchExtract {
		return nil
	}

	if _, err := definitionsService.Extract(ctx, set); err != nil {
		logger.Warn("Definitions extraction for %s failed: %v", docID, err)
	}
	if _, err := entitlementsService.Extract(ctx, set); err != nil {
		logger.Warn("Entitlements extraction for %s failed: %v", docID, err)
	}
	return nil
}
