// Package config loads tool configuration from a YAML file. All fields are
// optional; the zero-value Config is usable and command-line flags override
// whatever the file supplies.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/cfkb/pkg/cfkb/validate"
)

// Config describes a load run: where the two input files live, which
// optional validation passes to run and, if set, the SQLite file snapshots
// are written to.
type Config struct {
	RulesPath  string           `yaml:"rules"`
	FactsPath  string           `yaml:"facts"`
	Validate   validate.Options `yaml:"validate"`
	SnapshotDB string           `yaml:"snapshot_db"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
