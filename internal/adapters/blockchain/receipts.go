package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

const requestTimeout = 5 * time.Second

// receiptClient is the subset of ethclient.Client the fetcher needs
type receiptClient interface {
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	Close()
}

// ReceiptFetcherAdapter implements the ReceiptFetcher interface using ethclient
type ReceiptFetcherAdapter struct {
	client  receiptClient
	chainID uint64
	log     *slog.Logger
}

// NewReceiptFetcherAdapter creates a new receipt fetcher
func NewReceiptFetcherAdapter(log *slog.Logger) *ReceiptFetcherAdapter {
	return &ReceiptFetcherAdapter{log: log.With("component", "ReceiptFetcher")}
}

// Connect dials the RPC endpoint and verifies it serves chainID
func (f *ReceiptFetcherAdapter) Connect(ctx context.Context, rpcURL string, chainID uint64) error {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC: %w", err)
	}
	if err := f.attach(ctx, client, chainID); err != nil {
		client.Close()
		return err
	}
	f.log.Debug("connected", "chain_id", f.chainID)
	return nil
}

func (f *ReceiptFetcherAdapter) attach(ctx context.Context, client receiptClient, chainID uint64) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}

	// If chainID was 0, use the network's chain ID
	if chainID == 0 {
		chainID = networkChainID.Uint64()
	} else if networkChainID.Uint64() != chainID {
		return fmt.Errorf("chain ID mismatch: expected %d, got %d", chainID, networkChainID.Uint64())
	}

	f.client = client
	f.chainID = chainID
	return nil
}

// FetchReceipt returns the outcome of a mined transaction, or nil while it is
// still pending
func (f *ReceiptFetcherAdapter) FetchReceipt(ctx context.Context, hash common.Hash) (*models.Receipt, error) {
	if f.client == nil {
		return nil, fmt.Errorf("not connected to blockchain")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	receipt, err := f.client.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}

	out := &models.Receipt{Status: models.TransactionStatusFailed}
	if receipt.Status == types.ReceiptStatusSuccessful {
		out.Status = models.TransactionStatusSuccess
	}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()

		header, err := f.client.HeaderByNumber(ctx, receipt.BlockNumber)
		if err != nil {
			f.log.Debug("block header unavailable", "block", out.BlockNumber, "error", err)
		} else {
			out.ConfirmedTime = time.Unix(int64(header.Time), 0).UTC()
		}
	}
	return out, nil
}

// Close drops the RPC connection
func (f *ReceiptFetcherAdapter) Close() {
	if f.client != nil {
		f.client.Close()
		f.client = nil
	}
}

// Ensure the adapter implements the interface
var _ usecase.ReceiptFetcher = (*ReceiptFetcherAdapter)(nil)
