package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/txledger/internal/domain/config"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. TXLEDGER_BACKEND
	EnvPrefix = "TXLEDGER"

	defaultDirName = ".txledger"
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	// .env files are loaded before networks.toml so ${VAR} references expand
	LoadEnvFiles(".", dataDir)

	networks, err := LoadNetworks(dataDir)
	if err != nil {
		return nil, err
	}

	backend := config.StorageBackend(strings.ToLower(v.GetString("backend")))
	switch backend {
	case config.BackendMemory, config.BackendFile, config.BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown storage backend %q (expected memory, file or sqlite)", backend)
	}

	cfg := &config.RuntimeConfig{
		DataDir:        dataDir,
		Backend:        backend,
		Networks:       networks,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Timeout:        v.GetDuration("timeout"),
		PollInterval:   v.GetDuration("poll_interval"),
		MetricsAddr:    v.GetString("metrics_addr"),
	}

	if raw := v.GetString("chain"); raw != "" {
		chainID, err := ParseChainID(raw)
		if err != nil {
			return nil, err
		}
		cfg.ChainID = chainID
	}

	if name := v.GetString("network"); name != "" {
		network, err := ResolveNetwork(networks, name)
		if err != nil {
			return nil, err
		}
		if cfg.ChainID != 0 && cfg.ChainID != network.ChainID {
			return nil, fmt.Errorf("--chain %d does not match network %s (chain %d)", cfg.ChainID, name, network.ChainID)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// DefaultDataDir returns ~/.txledger, or ./.txledger when there is no home directory
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDirName
	}
	return filepath.Join(home, defaultDirName)
}

// SetupViper creates a viper instance layered as flags > env > config.json > defaults
func SetupViper(cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("backend", string(config.BackendFile))
	v.SetDefault("timeout", "5m")
	v.SetDefault("poll_interval", "12s")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("json", false)

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(FlagKey(f.Name), f); err != nil {
				panic(err)
			}
		})
	}

	dataDir := v.GetString("data_dir")
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dataDir)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	return v
}

// FlagKey maps a flag name to its viper key: non-interactive -> non_interactive
func FlagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}
