package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tronFile = "tron.yaml"

// LoadTron loads the light bike configuration.
// Search order: customPath -> ~/.lightbike/configs/tron.yaml -> ./configs/tron.yaml -> embedded default.
// Files are applied over the defaults, so they only need the keys they change.
// A custom path that cannot be read, parsed or validated is an error; the
// other locations are skipped when unusable.
func LoadTron(customPath string) (TronConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TronConfig{}, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parseTron(data)
		if err != nil {
			return TronConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(tronFile), filepath.Join("configs", tronFile)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parseTron(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg, err := parseTron(defaultTronYAML)
	if err != nil {
		return DefaultTronConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseTron decodes data over the defaults and validates the result.
func parseTron(data []byte) (TronConfig, error) {
	cfg := DefaultTronConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TronConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TronConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lightbike", "configs", filename)
}
