package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/trebuchet-org/txledger/internal/domain"
	"github.com/trebuchet-org/txledger/internal/domain/config"
)

// NetworksFileName is read from the data directory
const NetworksFileName = "networks.toml"

// LoadEnvFiles loads .env and .env.local from each directory. Variables that
// are already set are not overridden, so earlier directories win.
func LoadEnvFiles(dirs ...string) {
	for _, dir := range dirs {
		for _, name := range []string{".env", ".env.local"} {
			envFile := filepath.Join(dir, name)
			if _, err := os.Stat(envFile); err != nil {
				continue
			}
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadNetworks reads networks.toml from dataDir. A missing file yields no networks.
//
//	[networks.base]
//	chain_id = 8453
//	rpc_url = "${BASE_RPC_URL}"
//
// A network without rpc_url reads <NAME>_RPC_URL from the environment.
func LoadNetworks(dataDir string) (map[string]*config.Network, error) {
	path := filepath.Join(dataDir, NetworksFileName)
	networks := make(map[string]*config.Network)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return networks, nil
	}

	var raw config.NetworksFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", NetworksFileName, err)
	}

	for name, n := range raw.Networks {
		if n.ChainID == 0 {
			return nil, fmt.Errorf("network %s in %s: %w", name, NetworksFileName, domain.ErrInvalidChainID)
		}
		network := n
		network.Name = name
		network.RPCURL, network.RPCEnvVar = resolveRPCURL(name, n.RPCURL)
		networks[name] = &network
	}
	return networks, nil
}

// ResolveNetwork looks up a configured network by name
func ResolveNetwork(networks map[string]*config.Network, name string) (*config.Network, error) {
	if network, ok := networks[name]; ok {
		return network, nil
	}

	names := lo.Keys(networks)
	if len(names) == 0 {
		return nil, fmt.Errorf("network '%s' not found: no networks configured in %s", name, NetworksFileName)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("network '%s' not found in %s (available: %s)", name, NetworksFileName, strings.Join(names, ", "))
}

// ParseChainID accepts decimal or 0x-prefixed hex chain IDs
func ParseChainID(raw string) (uint64, error) {
	chainID, err := strconv.ParseUint(strings.TrimSpace(raw), 0, 64)
	if err != nil || chainID == 0 {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidChainID, raw)
	}
	return chainID, nil
}
