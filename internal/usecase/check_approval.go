package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain/config"
)

// ApprovalQuery names a token allowance
type ApprovalQuery struct {
	Token   common.Address
	Spender common.Address
}

// CheckApproval answers whether approvals or revocations are in flight on the
// active chain. Without an active chain both answers are false.
type CheckApproval struct {
	config *config.RuntimeConfig
	store  TransactionStore
}

// NewCheckApproval creates a new CheckApproval use case
func NewCheckApproval(cfg *config.RuntimeConfig, store TransactionStore) *CheckApproval {
	return &CheckApproval{config: cfg, store: store}
}

// HasPendingApproval reports a pending non-zero approval for the query
func (uc *CheckApproval) HasPendingApproval(ctx context.Context, q ApprovalQuery) (bool, error) {
	chainID := uc.config.ActiveChain()
	if chainID == 0 {
		return false, nil
	}
	return uc.store.HasPendingApproval(ctx, chainID, q.Token, q.Spender)
}

// HasPendingRevocation reports a pending zero approval for the query
func (uc *CheckApproval) HasPendingRevocation(ctx context.Context, q ApprovalQuery) (bool, error) {
	chainID := uc.config.ActiveChain()
	if chainID == 0 {
		return false, nil
	}
	return uc.store.HasPendingRevocation(ctx, chainID, q.Token, q.Spender)
}
