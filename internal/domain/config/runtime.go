package config

import (
	"time"
)

// StorageBackend selects the persistence layer of the ledger
type StorageBackend string

const (
	BackendMemory StorageBackend = "memory"
	BackendFile   StorageBackend = "file"
	BackendSQLite StorageBackend = "sqlite"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Storage
	DataDir string
	Backend StorageBackend

	// Context settings
	ChainID  uint64   // active chain, 0 if none
	Network  *Network // nil if not specified
	Networks map[string]*Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	Timeout        time.Duration

	// Watcher settings
	PollInterval time.Duration
	MetricsAddr  string
}

// ActiveChain returns the chain all chain-scoped queries run against
func (c *RuntimeConfig) ActiveChain() uint64 {
	if c.ChainID != 0 {
		return c.ChainID
	}
	if c.Network != nil {
		return c.Network.ChainID
	}
	return 0
}
