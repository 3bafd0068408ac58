package config

// Network represents network configuration
type Network struct {
	ChainID uint64 `json:"chainId" toml:"chain_id"`
	Name    string `json:"name" toml:"-"`
	RPCURL  string `json:"rpcUrl" toml:"rpc_url"`

	// RPCEnvVar names the variable the RPC URL is read from, if any
	RPCEnvVar string `json:"rpcEnvVar,omitempty" toml:"-"`
}

// NetworksFile is the raw layout of networks.toml
type NetworksFile struct {
	Networks map[string]Network `toml:"networks"`
}
