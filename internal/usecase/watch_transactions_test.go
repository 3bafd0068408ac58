package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

func TestWatchTransactionsOnce(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	seed(t, store, mainnet, hashA, approve(1))
	seed(t, store, mainnet, hashB, approve(2))
	seed(t, store, mainnet, hashC, approve(3))
	seed(t, store, base, hashA, approve(4))

	fetcher := &MockReceiptFetcher{}
	fetcher.On("Connect", mock.Anything, "http://rpc.local", mainnet).Return(nil)
	fetcher.On("FetchReceipt", mock.Anything, hashA).Return(&models.Receipt{Status: models.TransactionStatusSuccess, BlockNumber: 10}, nil)
	fetcher.On("FetchReceipt", mock.Anything, hashB).Return(nil, nil)
	fetcher.On("FetchReceipt", mock.Anything, hashC).Return(nil, errors.New("rate limited"))
	fetcher.On("Close").Return()

	sink := &MockProgressSink{}
	metrics := newRecordingMetrics()
	uc := usecase.NewWatchTransactions(mainnetConfig(), store, fetcher, sink, metrics, fixedClock)

	result, err := uc.Run(ctx, usecase.WatchTransactionsParams{Once: true})
	require.NoError(t, err)

	assert.Equal(t, mainnet, result.ChainID)
	assert.Equal(t, 1, result.Passes)
	assert.Equal(t, 3, result.Checked)
	assert.Equal(t, 2, result.StillPending)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.Finalized, 1)
	assert.Equal(t, hashA, result.Finalized[0].Hash)

	got, err := store.GetTransaction(ctx, mainnet, hashA)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusSuccess, got.Status)
	assert.Equal(t, uint64(10), got.BlockNumber)
	require.NotNil(t, got.ConfirmedTime)
	assert.Equal(t, now, *got.ConfirmedTime)

	// other chains are untouched
	other, err := store.GetTransaction(ctx, base, hashA)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusPending, other.Status)

	assert.Equal(t, 1, metrics.finalized[models.TransactionStatusSuccess])
	assert.Equal(t, []int{3, 2}, metrics.pending)
	assert.Len(t, sink.errors, 1)
	assert.Contains(t, sink.errors[0], "rate limited")
	fetcher.AssertExpectations(t)
}

func TestWatchTransactionsSkipsRecordsSettledElsewhere(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	seed(t, store, mainnet, hashA, approve(1))
	seed(t, store, mainnet, hashB, approve(2))

	mined := &models.Receipt{Status: models.TransactionStatusSuccess, BlockNumber: 10}
	fetcher := &MockReceiptFetcher{}
	fetcher.On("Connect", mock.Anything, mock.Anything, mainnet).Return(nil)
	// finalized and removed by another command while the receipt was in flight
	fetcher.On("FetchReceipt", mock.Anything, hashA).Run(func(mock.Arguments) {
		require.NoError(t, store.FinalizeTransaction(ctx, mainnet, hashA, models.Receipt{Status: models.TransactionStatusFailed}))
	}).Return(mined, nil)
	fetcher.On("FetchReceipt", mock.Anything, hashB).Run(func(mock.Arguments) {
		require.NoError(t, store.RemoveTransaction(ctx, mainnet, hashB))
	}).Return(mined, nil)
	fetcher.On("Close").Return()

	metrics := newRecordingMetrics()
	uc := usecase.NewWatchTransactions(mainnetConfig(), store, fetcher, usecase.NopProgress{}, metrics, fixedClock)

	result, err := uc.Run(ctx, usecase.WatchTransactionsParams{Once: true})
	require.NoError(t, err)

	assert.Empty(t, result.Finalized)
	assert.Equal(t, 0, result.StillPending)
	assert.Empty(t, metrics.finalized)

	got, err := store.GetTransaction(ctx, mainnet, hashA)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusFailed, got.Status)

	_, err = store.GetTransaction(ctx, mainnet, hashB)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWatchTransactionsStopsWithContext(t *testing.T) {
	store := newStore()
	seed(t, store, mainnet, hashB, approve(2))

	fetcher := &MockReceiptFetcher{}
	fetcher.On("Connect", mock.Anything, mock.Anything, mainnet).Return(nil)
	fetcher.On("FetchReceipt", mock.Anything, hashB).Return(nil, nil)
	fetcher.On("Close").Return()

	uc := usecase.NewWatchTransactions(mainnetConfig(), store, fetcher, usecase.NopProgress{}, usecase.NopMetrics{}, fixedClock)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := uc.Run(ctx, usecase.WatchTransactionsParams{Interval: 5 * time.Millisecond})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Passes, 2)
	assert.Equal(t, 1, result.StillPending)
	fetcher.AssertCalled(t, "Close")
}

func TestWatchTransactionsRequiresNetwork(t *testing.T) {
	ctx := context.Background()
	fetcher := &MockReceiptFetcher{}

	uc := usecase.NewWatchTransactions(&config.RuntimeConfig{}, newStore(), fetcher, usecase.NopProgress{}, usecase.NopMetrics{}, fixedClock)
	_, err := uc.Run(ctx, usecase.WatchTransactionsParams{Once: true})
	assert.ErrorIs(t, err, domain.ErrNoActiveChain)

	uc = usecase.NewWatchTransactions(&config.RuntimeConfig{ChainID: mainnet}, newStore(), fetcher, usecase.NopProgress{}, usecase.NopMetrics{}, fixedClock)
	_, err = uc.Run(ctx, usecase.WatchTransactionsParams{Once: true})
	assert.ErrorContains(t, err, "RPC URL")

	fetcher.AssertNotCalled(t, "Connect", mock.Anything, mock.Anything, mock.Anything)
}

func TestWatchTransactionsConnectFailure(t *testing.T) {
	fetcher := &MockReceiptFetcher{}
	fetcher.On("Connect", mock.Anything, mock.Anything, mainnet).Return(errors.New("chain ID mismatch"))

	uc := usecase.NewWatchTransactions(mainnetConfig(), newStore(), fetcher, usecase.NopProgress{}, usecase.NopMetrics{}, fixedClock)
	_, err := uc.Run(context.Background(), usecase.WatchTransactionsParams{Once: true})
	assert.ErrorContains(t, err, "chain ID mismatch")
	fetcher.AssertNotCalled(t, "Close")
}
