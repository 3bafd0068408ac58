package interactive

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// multiSelectModel is the bubbletea model for picking several transactions
type multiSelectModel struct {
	options   []string
	cursor    int
	selected  map[int]bool
	title     string
	done      bool
	cancelled bool
}

func newMultiSelectModel(options []string, title string) multiSelectModel {
	return multiSelectModel{
		options:  options,
		selected: make(map[int]bool),
		title:    title,
	}
}

func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.chosen()) < len(m.options)
		for i := range m.options {
			m.selected[i] = all
		}
	case "enter":
		if len(m.chosen()) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m multiSelectModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, option := range m.options {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		fmt.Fprintf(&b, "%s %s %s\n", cursor, checkbox, option)
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))

	return b.String()
}

// chosen returns the selected indices in list order
func (m multiSelectModel) chosen() []int {
	var out []int
	for i := range m.options {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

// MultiSelectorAdapter picks several transactions with a checkbox list
type MultiSelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewMultiSelectorAdapter creates a new multi-select adapter
func NewMultiSelectorAdapter(cfg *config.RuntimeConfig) *MultiSelectorAdapter {
	return &MultiSelectorAdapter{config: cfg}
}

// SelectTransactions shows the checkbox list and returns the chosen records
func (s *MultiSelectorAdapter) SelectTransactions(ctx context.Context, records []models.TransactionRecord, prompt string) ([]models.TransactionRecord, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no transactions to select")
	}

	p := tea.NewProgram(newMultiSelectModel(FormatTransactionOptions(records), prompt), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	m := final.(multiSelectModel)
	if m.cancelled || !m.done {
		return nil, fmt.Errorf("selection cancelled")
	}

	var out []models.TransactionRecord
	for _, i := range m.chosen() {
		out = append(out, records[i])
	}
	return out, nil
}

// Ensure the adapter implements the interface
var _ usecase.TransactionMultiSelector = (*MultiSelectorAdapter)(nil)
