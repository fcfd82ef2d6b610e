// Command ipdf chunks parsed contract PDFs and extracts defined terms and
// licensing entitlements from them, keeping evidence for every record.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	configfile "github.com/thatssomoneybaby/IPdf/internal/adapters/driven/config/file"
	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/parser/docjson"
	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/search/keyword"
	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/storage/file"
	"github.com/thatssomoneybaby/IPdf/internal/adapters/driven/storage/sqlite"
	"github.com/thatssomoneybaby/IPdf/internal/adapters/driving/cli"
	"github.com/thatssomoneybaby/IPdf/internal/chunker"
	"github.com/thatssomoneybaby/IPdf/internal/core/services"
	"github.com/thatssomoneybaby/IPdf/internal/extract"
	"github.com/thatssomoneybaby/IPdf/internal/extract/definitions"
	"github.com/thatssomoneybaby/IPdf/internal/extract/entitlements"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dataDir := cfg.GetString("data.dir")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ipdf", "data")
	}

	metaStore, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening metadata store: %w", err)
	}
	defer metaStore.Close()
	docStore := metaStore.DocumentStore()

	resultStore, err := file.NewStore(filepath.Join(dataDir, "results"))
	if err != nil {
		return fmt.Errorf("opening result store: %w", err)
	}

	blockSource, err := docjson.NewSource(filepath.Join(dataDir, "parsed"))
	if err != nil {
		return fmt.Errorf("opening parser output source: %w", err)
	}

	engine := keyword.NewThrottled(keyword.NewEngine(resultStore))

	// Limits come from config when set, compiled defaults otherwise. The
	// option constructors ignore zero values.
	assembler := chunker.New(
		chunker.WithMaxChars(cfg.GetInt("chunking.max_chars")),
		chunker.WithMaxListItems(cfg.GetInt("chunking.max_list_items")),
	)

	// The search collaborator widens candidate selection on sparse
	// documents; extraction still works without it.
	selector := extract.NewSelector(
		extract.WithSearchEngine(engine),
		extract.WithCandidateCap(cfg.GetInt("extraction.candidate_cap")),
		extract.WithSmallDocThreshold(cfg.GetInt("extraction.small_doc_threshold")),
		extract.WithSearchTimeout(time.Duration(cfg.GetInt("extraction.search_timeout_ms"))*time.Millisecond),
	)
	defsEngine := definitions.NewEngine(definitions.WithSelector(selector))
	entsEngine := entitlements.NewEngine(entitlements.WithSelector(selector))

	cli.SetServices(cli.Services{
		Chunking:     services.NewChunkingService(assembler, docStore, resultStore),
		Definitions:  services.NewDefinitionsService(defsEngine, docStore, resultStore),
		Entitlements: services.NewEntitlementsService(entsEngine, docStore, resultStore),
		Search:       services.NewSearchService(engine),
		BlockSource:  blockSource,
		DocStore:     docStore,
		ResultStore:  resultStore,
	})

	return cli.ExecuteContext(ctx)
}
