// Package cli wires the cobra command tree. Commands talk to the core
// through the driving ports; construction of concrete services happens in
// main and is injected here via SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/parser/docjson"
	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/storage/file"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driven"
	"github.com/thatssomoneybaby/IPdf/internal/core/ports/driving"
	"github.com/thatssomoneybaby/IPdf/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services injected from main.
var (
	chunkingService     driving.ChunkingService
	definitionsService  driving.DefinitionsService
	entitlementsService driving.EntitlementsService
	searchService       driving.SearchService

	blockSource *docjson.Source
	docStore    driven.DocumentStore
	resultStore *file.Store
)

// Services bundles everything the command tree needs.
type Services struct {
	Chunking     driving.ChunkingService
	Definitions  driving.DefinitionsService
	Entitlements driving.EntitlementsService
	Search       driving.SearchService

	BlockSource *docjson.Source
	DocStore    driven.DocumentStore
	ResultStore *file.Store
}

// SetServices injects the concrete services before Execute runs.
func SetServices(s Services) {
	chunkingService = s.Chunking
	definitionsService = s.Definitions
	entitlementsService = s.Entitlements
	searchService = s.Search
	blockSource = s.BlockSource
	docStore = s.DocStore
	resultStore = s.ResultStore
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ipdf",
	Short: "Contract chunking and extraction",
	Long: `ipdf turns parsed contract PDFs into deterministic, evidence-bearing
chunks and extracts defined terms and licensing entitlements from them.

The upstream parsing service writes one document.json per document;
ipdf consumes those block lists. Every extracted record carries evidence
pointing back to the exact chunks and pages it came from.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context, so
// long-running commands stop on SIGINT.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
