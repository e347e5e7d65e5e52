package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrConfigFormatUnsupported is returned for config files that are neither YAML nor TOML.
var ErrConfigFormatUnsupported = errors.New("proposals config: unsupported config file format")

// Load reads a YAML or TOML file and applies it over DefaultConfig. Keys
// absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("proposals config: read %s: %w", path, err)
	}

	if err := Decode(&cfg, filepath.Ext(path), data); err != nil {
		return cfg, fmt.Errorf("proposals config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Decode applies data in the format implied by ext (".yaml", ".yml" or ".toml") onto cfg.
func Decode(cfg *Config, ext string, data []byte) error {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return yaml.Unmarshal(data, cfg)
	case "toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrConfigFormatUnsupported, ext)
	}
}
