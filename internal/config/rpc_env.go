package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR_NAME} patterns in TOML values
var envVarPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// DetectEnvVar checks if a raw TOML value is a simple ${VAR_NAME} reference.
// Returns the variable name and true if the value is a pure env var reference.
func DetectEnvVar(rawValue string) (string, bool) {
	matches := envVarPattern.FindStringSubmatch(rawValue)
	if len(matches) == 2 {
		return matches[1], true
	}
	return "", false
}

// GenerateEnvVarName generates the conventional env var name for a network's RPC URL.
// Examples: base -> BASE_RPC_URL, base-sepolia -> BASE_SEPOLIA_RPC_URL
func GenerateEnvVarName(networkName string) string {
	name := strings.ToUpper(networkName)
	name = strings.NewReplacer("-", "_", ".", "_").Replace(name)
	return name + "_RPC_URL"
}

// resolveRPCURL expands raw and reports which env var supplies it, if any.
// An empty raw value falls back to the conventional <NAME>_RPC_URL variable.
func resolveRPCURL(networkName, raw string) (url, envVar string) {
	if raw == "" {
		envVar = GenerateEnvVarName(networkName)
		return os.Getenv(envVar), envVar
	}
	if name, ok := DetectEnvVar(raw); ok {
		envVar = name
	}
	return os.ExpandEnv(raw), envVar
}
