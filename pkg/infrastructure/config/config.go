// Package config loads the optional YAML run configuration. Command-line
// flags override anything set here.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/exfactory/shipmatch/pkg/domain/entities"
)

// File is the on-disk run configuration.
type File struct {
	BuyerSpecific bool     `yaml:"buyer_specific"`
	CombinePOIn   string   `yaml:"combine_po_in"`
	FlaggedBuyers []string `yaml:"flagged_buyers"`
	LogLevel      string   `yaml:"log_level"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{
		CombinePOIn: "source",
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ReconcileConfig converts the file into the engine's run configuration.
func (f *File) ReconcileConfig() (entities.ReconcileConfig, error) {
	side, err := entities.ParseCombineSide(f.CombinePOIn)
	if err != nil {
		return entities.ReconcileConfig{}, err
	}
	return entities.ReconcileConfig{
		BuyerSpecific: f.BuyerSpecific,
		CombinePOIn:   side,
		FlaggedBuyers: f.FlaggedBuyers,
	}, nil
}
