package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name looked up in the config directories.
const ConfigFile = "typejump.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.typejump/configs/typejump.yaml ->
// ./configs/typejump.yaml -> embedded default -> hardcoded default.
// A file only needs the keys it changes; the rest keep their defaults.
// TYPEJUMP_* environment variables are applied last and the result is validated.
func Load(customPath string) (GameConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (GameConfig, error) {
	cfg := DefaultGameConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultGameConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	candidate := DefaultGameConfig()
	if err := yaml.Unmarshal(defaultYAML, &candidate); err != nil {
		return cfg, nil // Hardcoded fallback
	}
	return candidate, nil
}

// searchPaths returns the config file locations tried after a custom path.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath(ConfigFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", ConfigFile))
}

// ApplyEnv overrides cfg with any TYPEJUMP_* variables that are set.
func ApplyEnv(cfg *GameConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// UserDir returns ~/.typejump, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".typejump")
}

func userConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}
