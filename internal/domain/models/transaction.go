package models

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TransactionStatus represents the status of a transaction
type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "PENDING"
	TransactionStatusSuccess TransactionStatus = "SUCCESS"
	TransactionStatusFailed  TransactionStatus = "FAILED"
)

// IsTerminal reports whether the status ends the transaction lifecycle
func (s TransactionStatus) IsTerminal() bool {
	return s == TransactionStatusSuccess || s == TransactionStatusFailed
}

// IsValid reports whether s is one of the known statuses
func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusPending || s.IsTerminal()
}

// OriginType records where a transaction was created
type OriginType string

const (
	OriginInternal OriginType = "INTERNAL"
	OriginExternal OriginType = "EXTERNAL"
)

// TransactionRecord is a tracked wallet transaction
type TransactionRecord struct {
	// Identification
	ID      string      `json:"id"` // hash at creation time, survives cancellation
	Hash    common.Hash `json:"hash"`
	ChainID uint64      `json:"chainId"`

	// Submission details
	Nonce uint64          `json:"nonce"`
	From  common.Address  `json:"from"`
	Info  TransactionInfo `json:"-"`

	// Lifecycle
	AddedTime     time.Time         `json:"addedTime"`
	Deadline      *time.Time        `json:"deadline,omitempty"`
	Status        TransactionStatus `json:"status"`
	Cancelled     bool              `json:"cancelled,omitempty"`
	OriginType    OriginType        `json:"transactionOriginType"`
	ConfirmedTime *time.Time        `json:"confirmedTime,omitempty"`
	BlockNumber   uint64            `json:"blockNumber,omitempty"`
}

// IsPending reports whether the record still awaits confirmation
func (r *TransactionRecord) IsPending() bool {
	return r.Status == TransactionStatusPending
}

// Clone returns a deep copy of the record
func (r *TransactionRecord) Clone() TransactionRecord {
	out := *r
	if r.Deadline != nil {
		d := *r.Deadline
		out.Deadline = &d
	}
	if r.ConfirmedTime != nil {
		c := *r.ConfirmedTime
		out.ConfirmedTime = &c
	}
	if r.Info != nil {
		out.Info = r.Info.clone()
	}
	return out
}

// Receipt carries the outcome of a mined transaction
type Receipt struct {
	Status        TransactionStatus
	BlockNumber   uint64
	ConfirmedTime time.Time
}
