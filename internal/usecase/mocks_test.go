package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/mock"
	"github.com/trebuchet-org/txledger/internal/adapters/repository/transactions"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/ledger"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

const (
	mainnet uint64 = 1
	base    uint64 = 8453
)

var (
	usdc    = common.HexToAddress("0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48")
	permit2 = common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3")
	sender  = common.HexToAddress("0x0000000000000000000000000000000000000123")

	hashA = common.HexToHash("0x123")
	hashB = common.HexToHash("0x456")
	hashC = common.HexToHash("0x789")

	now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return now }

func newStore() usecase.TransactionStore {
	return transactions.NewRepository(ledger.New())
}

func mainnetConfig() *config.RuntimeConfig {
	return &config.RuntimeConfig{
		Network: &config.Network{Name: "mainnet", ChainID: mainnet, RPCURL: "http://rpc.local"},
	}
}

func approve(amount uint64) models.ApproveInfo {
	return models.ApproveInfo{TokenAddress: usdc, Spender: permit2, ApprovalAmount: uint256.NewInt(amount)}
}

// MockReceiptFetcher is a mock implementation of ReceiptFetcher
type MockReceiptFetcher struct {
	mock.Mock
}

func (m *MockReceiptFetcher) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	return m.Called(ctx, rpcURL, chainID).Error(0)
}

func (m *MockReceiptFetcher) FetchReceipt(ctx context.Context, hash common.Hash) (*models.Receipt, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Receipt), args.Error(1)
}

func (m *MockReceiptFetcher) Close() {
	m.Called()
}

// MockSelector is a mock implementation of TransactionSelector
type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectTransaction(ctx context.Context, records []models.TransactionRecord, prompt string) (*models.TransactionRecord, error) {
	args := m.Called(ctx, records, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionRecord), args.Error(1)
}

// MockMultiSelector is a mock implementation of TransactionMultiSelector
type MockMultiSelector struct {
	mock.Mock
}

func (m *MockMultiSelector) SelectTransactions(ctx context.Context, records []models.TransactionRecord, prompt string) ([]models.TransactionRecord, error) {
	args := m.Called(ctx, records, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TransactionRecord), args.Error(1)
}

// recordingMetrics counts calls per metric
type recordingMetrics struct {
	mu        sync.Mutex
	added     int
	finalized map[models.TransactionStatus]int
	cancelled int
	pending   []int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{finalized: make(map[models.TransactionStatus]int)}
}

func (m *recordingMetrics) TransactionAdded(uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.added++
}

func (m *recordingMetrics) TransactionFinalized(_ uint64, status models.TransactionStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finalized[status]++
}

func (m *recordingMetrics) TransactionCancelled(uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelled++
}

func (m *recordingMetrics) PendingObserved(_ uint64, pending int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, pending)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	events []usecase.ProgressEvent
	infos  []string
	errors []string
}

func (m *MockProgressSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(message string) {
	m.infos = append(m.infos, message)
}

func (m *MockProgressSink) Error(message string) {
	m.errors = append(m.errors, message)
}

var (
	_ usecase.ReceiptFetcher           = (*MockReceiptFetcher)(nil)
	_ usecase.TransactionSelector      = (*MockSelector)(nil)
	_ usecase.TransactionMultiSelector = (*MockMultiSelector)(nil)
	_ usecase.LedgerMetrics            = (*recordingMetrics)(nil)
	_ usecase.ProgressSink             = (*MockProgressSink)(nil)
)
