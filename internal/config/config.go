// Package config loads the optional .p4c.yaml configuration file
// described in SPEC_FULL.md's Configuration section. It is a purely
// ambient concern: nothing it controls changes the semantics of spec.md
// §§1-9, only how much arena headroom a given invocation is given (the
// recovery settings are decoded but not acted on by any stage).
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the decoded form of .p4c.yaml.
type Config struct {
	// Recovery is decoded from the config file (and the --recovery
	// flag), but no stage reads it: compilation halts at the first
	// lexical error whether it is true or false, and lexical errors are
	// never collected.
	Recovery bool `yaml:"recovery"`

	// MaxErrors is decoded like Recovery and, like it, is not read by
	// any stage; no lexical errors are collected for it to bound.
	MaxErrors int `yaml:"max-errors"`

	// ArenaPageBudget is an advisory total byte budget passed to
	// arena.Reserve, letting a caller size the reservation for large
	// sources without recompiling the front end.
	ArenaPageBudget int `yaml:"arena-page-budget"`
}

// Default returns the configuration used when no .p4c.yaml is present.
func Default() Config {
	return Config{Recovery: false, MaxErrors: 0, ArenaPageBudget: 4 << 20}
}

// Load reads and decodes the YAML config file at path. A missing file
// is not an error; Default() is returned instead, since the config file
// is always optional.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
