package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/holiman/uint256"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var (
	chainHeader    = color.New(color.BgCyan, color.FgBlack, color.Bold)
	hashStyle      = color.New(color.FgWhite, color.Bold)
	kindStyle      = color.New(color.FgBlue)
	detailStyle    = color.New(color.FgWhite)
	timestampStyle = color.New(color.Faint)
	pendingStyle   = color.New(color.FgYellow)
	successStyle   = color.New(color.FgGreen)
	failedStyle    = color.New(color.FgRed)
	cancelledStyle = color.New(color.FgMagenta)

	maxUint256 = new(uint256.Int).SetAllOne()
	titleCase  = cases.Title(language.English)
)

// TransactionsRenderer renders ledger records
type TransactionsRenderer struct {
	out    io.Writer
	format string
	now    func() time.Time
}

// NewTransactionsRenderer creates a new transactions renderer
func NewTransactionsRenderer(out io.Writer, format string) *TransactionsRenderer {
	return &TransactionsRenderer{out: out, format: format, now: time.Now}
}

// RenderList renders a list result grouped by chain
func (r *TransactionsRenderer) RenderList(result *usecase.TransactionListResult) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return WriteStructured(r.out, r.format, listDocument(result))
	}

	if len(result.Transactions) == 0 {
		fmt.Fprintln(r.out, "No transactions found")
		return nil
	}

	byChain := lo.GroupBy(result.Transactions, func(rec models.TransactionRecord) uint64 { return rec.ChainID })
	chainIDs := lo.Keys(byChain)
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

	for i, chainID := range chainIDs {
		if i > 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintln(r.out, chainHeader.Sprintf(" Chain %d ", chainID))
		fmt.Fprintln(r.out, r.table(byChain[chainID]))
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, summaryLine(result.Summary))
	return nil
}

// RenderRecord renders a single record after add, finalize or cancel
func (r *TransactionsRenderer) RenderRecord(action string, record *models.TransactionRecord) error {
	switch r.format {
	case FormatJSON, FormatYAML:
		return WriteStructured(r.out, r.format, record)
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s %s on chain %d", action, record.Hash.Hex(), record.ChainID)))
	fmt.Fprintf(r.out, "  %-9s %s\n", "Type:", kindStyle.Sprint(kindName(record.Info)))
	fmt.Fprintf(r.out, "  %-9s %s\n", "Details:", Describe(record.Info))
	fmt.Fprintf(r.out, "  %-9s %s\n", "Status:", StatusLabel(record))
	fmt.Fprintf(r.out, "  %-9s %s\n", "From:", record.From.Hex())
	fmt.Fprintf(r.out, "  %-9s %d\n", "Nonce:", record.Nonce)
	if record.BlockNumber != 0 {
		fmt.Fprintf(r.out, "  %-9s %d\n", "Block:", record.BlockNumber)
	}
	return nil
}

func (r *TransactionsRenderer) table(records []models.TransactionRecord) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Options.SeparateHeader = false
	t.Style().Box = table.BoxStyle{PaddingRight: "   "}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 5, Align: text.AlignRight},
	})

	for _, rec := range records {
		t.AppendRow(table.Row{
			hashStyle.Sprint(ShortHash(rec.Hash)),
			kindStyle.Sprint(kindName(rec.Info)),
			detailStyle.Sprint(Describe(rec.Info)),
			StatusLabel(&rec),
			fmt.Sprintf("#%d", rec.Nonce),
			timestampStyle.Sprint(Age(r.now(), rec.AddedTime)),
		})
	}
	return t.Render()
}

// StatusLabel renders the status in title case with its color, plus the cancellation marker
func StatusLabel(rec *models.TransactionRecord) string {
	label := titleCase.String(strings.ToLower(string(rec.Status)))
	switch rec.Status {
	case models.TransactionStatusSuccess:
		label = successStyle.Sprint(label)
	case models.TransactionStatusFailed:
		label = failedStyle.Sprint(label)
	default:
		label = pendingStyle.Sprint(label)
	}
	if rec.Cancelled {
		label += " " + cancelledStyle.Sprint("(cancelled)")
	}
	return label
}

// Describe summarizes the intent payload in one line
func Describe(info models.TransactionInfo) string {
	switch i := info.(type) {
	case models.ApproveInfo:
		if i.IsRevocation() {
			return fmt.Sprintf("revoke %s for %s", ShortAddress(i.TokenAddress), ShortAddress(i.Spender))
		}
		return fmt.Sprintf("approve %s of %s for %s", FormatAmount(i.ApprovalAmount), ShortAddress(i.TokenAddress), ShortAddress(i.Spender))
	case models.ClaimInfo:
		return fmt.Sprintf("claim to %s", ShortAddress(i.Recipient))
	case models.SendInfo:
		return fmt.Sprintf("send %s of %s to %s", FormatAmount(i.Amount), ShortAddress(i.TokenAddress), ShortAddress(i.Recipient))
	case models.WrapInfo:
		if i.Unwrapped {
			return fmt.Sprintf("unwrap %s", FormatAmount(i.Amount))
		}
		return fmt.Sprintf("wrap %s", FormatAmount(i.Amount))
	default:
		return "-"
	}
}

// FormatAmount prints a raw token amount; the max uint256 allowance reads as unlimited
func FormatAmount(a *uint256.Int) string {
	if a == nil {
		return "0"
	}
	if a.Eq(maxUint256) {
		return "unlimited"
	}
	return a.Dec()
}

// ShortHash abbreviates a transaction hash
func ShortHash(h common.Hash) string {
	s := h.Hex()
	return s[:10] + "…" + s[len(s)-6:]
}

// ShortAddress abbreviates an address
func ShortAddress(a common.Address) string {
	s := a.Hex()
	return s[:6] + "…" + s[len(s)-4:]
}

// Age prints how long ago t was, at minute resolution past the first minute
func Age(now, t time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("2006-01-02")
	}
}

func kindName(info models.TransactionInfo) string {
	if info == nil {
		return "UNKNOWN"
	}
	return string(info.Kind())
}

func summaryLine(s usecase.TransactionSummary) string {
	parts := []string{fmt.Sprintf("%d transaction%s", s.Total, lo.Ternary(s.Total == 1, "", "s"))}
	for _, status := range []models.TransactionStatus{
		models.TransactionStatusPending,
		models.TransactionStatusSuccess,
		models.TransactionStatusFailed,
	} {
		if n := s.ByStatus[status]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, strings.ToLower(string(status))))
		}
	}
	if s.Cancelled > 0 {
		parts = append(parts, fmt.Sprintf("%d cancelled", s.Cancelled))
	}
	return strings.Join(parts, ", ")
}

type listSummary struct {
	Total     int            `json:"total"`
	ByChain   map[string]int `json:"byChain"`
	ByStatus  map[string]int `json:"byStatus"`
	Cancelled int            `json:"cancelled"`
}

type listDoc struct {
	Transactions []models.TransactionRecord `json:"transactions"`
	Summary      listSummary                `json:"summary"`
}

func listDocument(result *usecase.TransactionListResult) listDoc {
	txs := result.Transactions
	if txs == nil {
		txs = []models.TransactionRecord{}
	}
	return listDoc{
		Transactions: txs,
		Summary: listSummary{
			Total:     result.Summary.Total,
			ByChain:   lo.MapKeys(result.Summary.ByChain, func(_ int, k uint64) string { return fmt.Sprint(k) }),
			ByStatus:  lo.MapKeys(result.Summary.ByStatus, func(_ int, k models.TransactionStatus) string { return string(k) }),
			Cancelled: result.Summary.Cancelled,
		},
	}
}

// WriteStructured writes v as indented JSON or as YAML. YAML goes through the
// JSON encoding so hashes, addresses and amounts keep their string forms.
func WriteStructured(out io.Writer, format string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	if format != FormatYAML {
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
