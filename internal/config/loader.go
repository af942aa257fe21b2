package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"autotune/pkg/types"
)

// Concurrency selects how sweep levels are produced.
// Mode "doubling" doubles from Start up to Max; mode "explicit" uses Levels
// as given.
type Concurrency struct {
	Mode   string `json:"mode" yaml:"mode" toml:"mode"`
	Start  int    `json:"start" yaml:"start" toml:"start"`
	Max    int    `json:"max" yaml:"max" toml:"max"`
	Levels []int  `json:"levels" yaml:"levels" toml:"levels"`
}

// Config holds runtime parameters for a search run.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr              string               `json:"addr" yaml:"addr" toml:"addr"`
	ServerURL         string               `json:"server_url" yaml:"server_url" toml:"server_url"`
	Repository        string               `json:"repository" yaml:"repository" toml:"repository"`
	CheckpointPath    string               `json:"checkpoint_path" yaml:"checkpoint_path" toml:"checkpoint_path"`
	MeasureTimeoutSec int                  `json:"measure_timeout_sec" yaml:"measure_timeout_sec" toml:"measure_timeout_sec"`
	Concurrency       Concurrency          `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	Models            []types.SearchBounds `json:"models" yaml:"models" toml:"models"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil { return cfg, err }
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil { return cfg, err }
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
