package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectTransaction selects one transaction from a list
func (s *SelectorAdapter) SelectTransaction(ctx context.Context, records []models.TransactionRecord, prompt string) (*models.TransactionRecord, error) {
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no transactions provided for selection")
	}

	if len(records) == 1 {
		return &records[0], nil
	}

	options := FormatTransactionOptions(records)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearcher(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}

	return &records[index], nil
}

// FormatTransactionOptions renders one line per record, e.g.
// "0x1234…cdef APPROVE nonce 3 [cancelled]"
func FormatTransactionOptions(records []models.TransactionRecord) []string {
	options := make([]string, len(records))
	for i, r := range records {
		kind := "UNKNOWN"
		if r.Info != nil {
			kind = string(r.Info.Kind())
		}

		line := fmt.Sprintf("%s %s nonce %d",
			color.New(color.FgWhite, color.Bold).Sprint(ShortHash(r.Hash.Hex())),
			color.New(color.FgBlue).Sprint(kind),
			r.Nonce,
		)
		if r.Cancelled {
			line += " " + color.New(color.FgYellow).Sprint("[cancelled]")
		}
		options[i] = line
	}
	return options
}

// ShortHash abbreviates a hex hash to its first and last four digits
func ShortHash(hex string) string {
	if len(hex) <= 12 {
		return hex
	}
	return hex[:6] + "…" + hex[len(hex)-4:]
}

// fuzzySearcher builds a promptui search function over the plain option text
func fuzzySearcher(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.TransactionSelector = (*SelectorAdapter)(nil)
