package usecase

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
	"github.com/trebuchet-org/txledger/internal/domain/models"
)

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// NetworkStatus is one configured network with its ledger activity
type NetworkStatus struct {
	Name      string `json:"name"`
	ChainID   uint64 `json:"chainId"`
	RPCURL    string `json:"rpcUrl,omitempty"`
	// RPCEnvVar is set when the RPC URL comes from the environment
	RPCEnvVar string `json:"rpcEnvVar,omitempty"`
	Active    bool   `json:"active"`
	Pending   int    `json:"pending"`
}

// ListNetworks is a use case for listing configured networks
type ListNetworks struct {
	config *config.RuntimeConfig
	store  TransactionStore
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(cfg *config.RuntimeConfig, store TransactionStore) *ListNetworks {
	return &ListNetworks{
		config: cfg,
		store:  store,
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	pending, err := uc.store.ListTransactions(ctx, domain.TransactionFilter{Status: models.TransactionStatusPending})
	if err != nil {
		return nil, err
	}
	pendingByChain := lo.CountValuesBy(pending, func(r models.TransactionRecord) uint64 { return r.ChainID })

	active := uc.config.ActiveChain()
	networks := make([]NetworkStatus, 0, len(uc.config.Networks))
	for name, n := range uc.config.Networks {
		networks = append(networks, NetworkStatus{
			Name:      name,
			ChainID:   n.ChainID,
			RPCURL:    n.RPCURL,
			RPCEnvVar: n.RPCEnvVar,
			Active:    active != 0 && n.ChainID == active,
			Pending:   pendingByChain[n.ChainID],
		})
	}

	sort.Slice(networks, func(i, j int) bool {
		return networks[i].Name < networks[j].Name
	})

	return &ListNetworksResult{Networks: networks}, nil
}
