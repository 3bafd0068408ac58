package render

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
	"gopkg.in/yaml.v3"
)

var (
	usdc    = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	permit2 = common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3")
	now     = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func init() {
	color.NoColor = true
}

func sampleResult() *usecase.TransactionListResult {
	records := []models.TransactionRecord{
		{
			Hash:      common.HexToHash("0x123"),
			ChainID:   1,
			Nonce:     4,
			Info:      models.ApproveInfo{TokenAddress: usdc, Spender: permit2, ApprovalAmount: uint256.NewInt(10000)},
			AddedTime: now.Add(-5 * time.Minute),
			Status:    models.TransactionStatusPending,
		},
		{
			Hash:      common.HexToHash("0x456"),
			ChainID:   8453,
			Nonce:     9,
			Info:      models.WrapInfo{Unwrapped: true, Amount: uint256.NewInt(7)},
			AddedTime: now.Add(-2 * time.Hour),
			Status:    models.TransactionStatusFailed,
			Cancelled: true,
		},
	}
	return &usecase.TransactionListResult{
		Transactions: records,
		Summary: usecase.TransactionSummary{
			Total:     2,
			ByChain:   map[uint64]int{1: 1, 8453: 1},
			ByStatus:  map[models.TransactionStatus]int{models.TransactionStatusPending: 1, models.TransactionStatusFailed: 1},
			Cancelled: 1,
		},
	}
}

func TestRenderListTable(t *testing.T) {
	var buf bytes.Buffer
	r := NewTransactionsRenderer(&buf, FormatTable)
	r.now = func() time.Time { return now }

	require.NoError(t, r.RenderList(sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "Chain 1")
	assert.Contains(t, out, "Chain 8453")
	assert.Contains(t, out, "approve 10000 of 0xA0b8…eB48 for 0x0000…8BA3")
	assert.Contains(t, out, "unwrap 7")
	assert.Contains(t, out, "Pending")
	assert.Contains(t, out, "Failed (cancelled)")
	assert.Contains(t, out, "5m ago")
	assert.Contains(t, out, "2h ago")
	assert.Contains(t, out, "2 transactions, 1 pending, 1 failed, 1 cancelled")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("Chain 1 ")), bytes.Index(buf.Bytes(), []byte("Chain 8453")))
}

func TestRenderListEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTransactionsRenderer(&buf, FormatTable).RenderList(&usecase.TransactionListResult{}))
	assert.Equal(t, "No transactions found\n", buf.String())
}

func TestRenderListJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTransactionsRenderer(&buf, FormatJSON).RenderList(sampleResult()))

	var doc struct {
		Transactions []map[string]any `json:"transactions"`
		Summary      struct {
			Total   int            `json:"total"`
			ByChain map[string]int `json:"byChain"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Transactions, 2)
	assert.Equal(t, common.HexToHash("0x123").Hex(), doc.Transactions[0]["hash"])
	assert.Equal(t, 2, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.ByChain["8453"])
}

func TestRenderListYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTransactionsRenderer(&buf, FormatYAML).RenderList(sampleResult()))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	txs := doc["transactions"].([]any)
	require.Len(t, txs, 2)
	first := txs[0].(map[string]any)
	assert.Equal(t, common.HexToHash("0x123").Hex(), first["hash"])
	assert.Equal(t, 1, first["chainId"])
	info := first["info"].(map[string]any)
	assert.Equal(t, "APPROVE", info["type"])
	assert.Equal(t, "10000", info["approvalAmount"])
}

func TestDescribe(t *testing.T) {
	recipient := common.HexToAddress("0x0000000000000000000000000000000000000123")

	tests := []struct {
		name string
		info models.TransactionInfo
		want string
	}{
		{"revocation", models.ApproveInfo{TokenAddress: usdc, Spender: permit2}, "revoke 0xA0b8…eB48 for 0x0000…8BA3"},
		{"unlimited", models.ApproveInfo{TokenAddress: usdc, Spender: permit2, ApprovalAmount: new(uint256.Int).SetAllOne()}, "approve unlimited of 0xA0b8…eB48 for 0x0000…8BA3"},
		{"claim", models.ClaimInfo{Recipient: recipient}, "claim to 0x0000…0123"},
		{"send", models.SendInfo{TokenAddress: usdc, Recipient: recipient, Amount: uint256.NewInt(5)}, "send 5 of 0xA0b8…eB48 to 0x0000…0123"},
		{"wrap", models.WrapInfo{Amount: uint256.NewInt(1)}, "wrap 1"},
		{"none", nil, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.info))
		})
	}
}

func TestAge(t *testing.T) {
	assert.Equal(t, "just now", Age(now, now.Add(-10*time.Second)))
	assert.Equal(t, "59m ago", Age(now, now.Add(-59*time.Minute)))
	assert.Equal(t, "23h ago", Age(now, now.Add(-23*time.Hour)))
	assert.Equal(t, "2024-04-28", Age(now, now.Add(-72*time.Hour)))
}
