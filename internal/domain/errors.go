package domain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested record doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidChainID is returned when a chain ID is zero or unknown
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrInvalidHash is returned when a transaction hash is empty or malformed
	ErrInvalidHash = errors.New("invalid transaction hash")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidStatus is returned when a status is not valid for the requested transition
	ErrInvalidStatus = errors.New("invalid transaction status")

	// ErrUnknownTransactionKind is returned when decoding an info payload of an unknown type
	ErrUnknownTransactionKind = models.ErrUnknownTransactionKind

	// ErrNoActiveChain is returned when an operation needs the active chain and none is configured
	ErrNoActiveChain = errors.New("no active chain configured (use --chain or --network)")
)

// RecordNotFoundError reports a missing record at a ledger key.
type RecordNotFoundError struct {
	ChainID uint64
	Hash    common.Hash
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("transaction %s not found on chain %d", e.Hash.Hex(), e.ChainID)
}

func (e *RecordNotFoundError) Unwrap() error {
	return ErrNotFound
}
