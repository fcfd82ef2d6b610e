// Package tui provides the interactive review interface. A reviewer walks
// through extracted records one by one, sees the evidence each carries,
// and files a verdict that is persisted as feedback.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thatssomoneybaby/IPdf/internal/core/domain"
)

// FeedbackWriter persists review verdicts.
type FeedbackWriter interface {
	AppendFeedback(ctx context.Context, item domain.FeedbackItem) error
}

// Item is one reviewable record with its evidence.
type Item struct {
	ItemType string // definitions | entitlements
	Key      string // term or product name
	Body     string
	Location string
	Evidence []domain.Evidence
	Conflict bool

	// Verdict is set once the reviewer has judged the item.
	Verdict domain.FeedbackVerdict
}

// KeyMap defines the review keybindings.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Correct   key.Binding
	Incorrect key.Binding
	Partial   key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default review keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Correct: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "correct"),
		),
		Incorrect: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "incorrect"),
		),
		Partial: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "partial"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	conflictStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	partialStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

// Model is the bubbletea model for the review session.
type Model struct {
	docID  string
	items  []Item
	cursor int
	keys   KeyMap
	writer FeedbackWriter
	ctx    context.Context
	err    error
}

// NewModel builds a review session over extraction results. Either result
// may be nil when that extraction has not run.
func NewModel(ctx context.Context, docID string, writer FeedbackWriter, defs *domain.DefinitionsResult, ents *domain.EntitlementsResult) Model {
	return Model{
		docID:  docID,
		items:  buildItems(defs, ents),
		keys:   DefaultKeyMap(),
		writer: writer,
		ctx:    ctx,
	}
}

// Items exposes the review items, mainly for tests.
func (m Model) Items() []Item {
	return m.items
}

func buildItems(defs *domain.DefinitionsResult, ents *domain.EntitlementsResult) []Item {
	var items []Item
	if defs != nil {
		for _, d := range defs.Definitions {
			loc := d.Location.ClauseRef
			if len(d.Location.SectionPath) > 0 {
				loc = strings.Join(d.Location.SectionPath, " > ") + " " + loc
			}
			items = append(items, Item{
				ItemType: "definitions",
				Key:      d.Term,
				Body:     d.Definition,
				Location: strings.TrimSpace(loc),
				Evidence: d.Evidence,
				Conflict: d.Conflict,
			})
		}
	}
	if ents != nil {
		for _, p := range ents.Entitlements.Products {
			body := p.Metric
			if p.Quantity != nil {
				body = fmt.Sprintf("%s x %d", p.Metric, *p.Quantity)
			} else if p.QuantityRaw != "" {
				body = fmt.Sprintf("%s x %s", p.Metric, p.QuantityRaw)
			}
			items = append(items, Item{
				ItemType: "entitlements",
				Key:      p.Name,
				Body:     body,
				Evidence: p.Evidence,
			})
		}
	}
	return items
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(keyMsg, m.keys.Correct):
		return m.record(domain.VerdictCorrect)

	case key.Matches(keyMsg, m.keys.Incorrect):
		return m.record(domain.VerdictIncorrect)

	case key.Matches(keyMsg, m.keys.Partial):
		return m.record(domain.VerdictPartial)
	}
	return m, nil
}

// record files the verdict for the current item and advances. The session
// ends when every item has a verdict.
func (m Model) record(verdict domain.FeedbackVerdict) (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, tea.Quit
	}

	item := &m.items[m.cursor]
	item.Verdict = verdict

	if m.writer != nil {
		err := m.writer.AppendFeedback(m.ctx, domain.FeedbackItem{
			DocID:    m.docID,
			ItemType: item.ItemType,
			ItemKey:  item.Key,
			Verdict:  verdict,
		})
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
	}

	if m.remaining() == 0 {
		return m, tea.Quit
	}
	// Advance to the next unjudged item, wrapping once.
	for i := 1; i <= len(m.items); i++ {
		next := (m.cursor + i) % len(m.items)
		if m.items[next].Verdict == "" {
			m.cursor = next
			break
		}
	}
	return m, nil
}

func (m Model) remaining() int {
	n := 0
	for i := range m.items {
		if m.items[i].Verdict == "" {
			n++
		}
	}
	return n
}

// Err reports a feedback write failure, if the session ended with one.
func (m Model) Err() error {
	return m.err
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Reviewing %s", m.docID)))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d of %d remaining", m.remaining(), len(m.items))))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(mutedStyle.Render("Nothing to review."))
		b.WriteString("\n")
		return b.String()
	}

	for i, item := range m.items {
		prefix := "  "
		name := item.Key
		if i == m.cursor {
			prefix = "> "
			name = selectedStyle.Render(name)
		}
		b.WriteString(prefix + verdictMark(item.Verdict) + " " + name)
		if item.Conflict {
			b.WriteString(" " + conflictStyle.Render("[conflict]"))
		}
		b.WriteString("\n")
	}

	cur := m.items[m.cursor]
	b.WriteString("\n")
	if cur.Location != "" {
		b.WriteString(mutedStyle.Render(cur.Location) + "\n")
	}
	b.WriteString(cur.Body + "\n")
	for _, ev := range cur.Evidence {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  p.%d-%d %s", ev.PageStart, ev.PageEnd, ev.Snippet)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("c correct · x incorrect · p partial · j/k move · q quit"))
	b.WriteString("\n")
	return b.String()
}

func verdictMark(v domain.FeedbackVerdict) string {
	switch v {
	case domain.VerdictCorrect:
		return correctStyle.Render("✓")
	case domain.VerdictIncorrect:
		return wrongStyle.Render("✗")
	case domain.VerdictPartial:
		return partialStyle.Render("~")
	default:
		return " "
	}
}
