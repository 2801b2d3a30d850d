// Package telconfig loads the optional tel.yaml project file: import search
// roots and the engine's max-parallelism override. Absent a config file, the
// engine runs with its own GOMAXPROCS-derived default (see engine.New) and
// an empty import root list (imports resolve relative to the importing
// file only, per spec.md §6).
package telconfig

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the shape of tel.yaml.
type Config struct {
	// ImportRoots are additional base directories searched for imports,
	// beyond the importing file's own parent directory.
	ImportRoots []string `yaml:"import_roots"`
	// MaxParallelism overrides engine.New's GOMAXPROCS-derived default.
	// Zero or negative means "let the engine choose".
	MaxParallelism int `yaml:"max_parallelism"`
}

// Load reads and parses path. A missing file is not an error — it returns
// the zero Config, matching spec.md's "config is optional" stance.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
