package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thatssomoneybaby/IPdf/internal/adapters/driving/tui"
	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

var reviewCmd = &cobra.Command{
	Use:   "review [doc-id]",
	Short: "Review extraction results interactively",
	Long: `Opens an interactive session over a document's extraction results.
Each record is shown with its evidence; verdicts (correct, incorrect,
partial) are recorded as feedback alongside the results.

Controls:
  ↑/k, ↓/j - Move between records
  c         - Mark correct
  x         - Mark incorrect
  p         - Mark partially correct
  q         - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	if resultStore == nil {
		return errors.New("result store not configured")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("review needs an interactive terminal; use \"ipdf export\" instead")
	}

	// Panic recovery keeps a render bug from eating the stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in review: %v\n%s\n", r, debug.Stack())
		}
	}()

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

	model := tui.NewModel(cmd.Context(), docID, resultStore, defs, ents)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("review session failed: %w", err)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		return fmt.Errorf("recording feedback: %w", m.Err())
	}
	return nil
}
