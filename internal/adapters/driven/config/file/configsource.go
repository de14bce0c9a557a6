// Package file provides the TOML-backed engine configuration source.
// Stored values overlay the engine defaults, so a config file only needs
// the keys it actually changes.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/scenekit/internal/core/domain"
	"github.com/custodia-labs/scenekit/internal/core/ports/driven"
)

// Ensure ConfigSource implements the interface.
var _ driven.ConfigSource = (*ConfigSource)(nil)

// ConfigSource reads engine configuration from a TOML file.
type ConfigSource struct {
	filePath string
}

// NewConfigSource creates a TOML config source. If configDir is empty,
// defaults to ~/.scenekit/config.toml. A missing file is not an error;
// Load then returns the defaults.
func NewConfigSource(configDir string) (*ConfigSource, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".scenekit")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigSource{filePath: filepath.Join(configDir, "config.toml")}, nil
}

// Load returns the effective engine configuration: defaults overlaid
// with whatever the file sets.
func (s *ConfigSource) Load() (domain.EngineConfig, error) {
	cfg := domain.DefaultEngineConfig()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	// Unmarshalling into the pre-populated struct leaves absent keys at
	// their default values.
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return domain.DefaultEngineConfig(), fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save persists the configuration to disk.
func (s *ConfigSource) Save(cfg domain.EngineConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigSource) Path() string {
	return s.filePath
}
