package form

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleConfig declares one built-in validation rule for a field.
// See package rules for the supported names.
type RuleConfig struct {
	Name    string `json:"name" yaml:"name"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// FieldConfig lists the rules applied to the value at Path.
type FieldConfig struct {
	Path  string       `json:"path" yaml:"path"`
	Rules []RuleConfig `json:"rules" yaml:"rules"`
}

// Config controls a Form.
//
// Example YAML:
//
//	reducer_name: signup
//	observer: slog
//	max_concurrency: 4
//	fields:
//	  - path: email
//	    rules:
//	      - name: required
//	      - name: email
//	        message: not an email address
type Config struct {
	// ReducerName selects the slice of the store state holding the form.
	// Empty means the whole state is the form state.
	ReducerName string `json:"reducer_name,omitempty" yaml:"reducer_name,omitempty"`

	// Observer names a registered observer ("noop", "slog", ...).
	Observer string `json:"observer,omitempty" yaml:"observer,omitempty"`

	// MaxConcurrency bounds how many validators run at once (0 = unbounded).
	MaxConcurrency int `json:"max_concurrency,omitempty" yaml:"max_concurrency,omitempty"`

	// Fields declares rule-based validators, registered by rules.Register.
	Fields []FieldConfig `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// DefaultConfig returns a Config for a whole-state form that emits no events.
func DefaultConfig() Config {
	return Config{
		Observer: "noop",
	}
}

// Merge applies the non-zero fields of source onto c.
func (c *Config) Merge(source *Config) {
	if source.ReducerName != "" {
		c.ReducerName = source.ReducerName
	}

	if source.Observer != "" {
		c.Observer = source.Observer
	}

	if source.MaxConcurrency > 0 {
		c.MaxConcurrency = source.MaxConcurrency
	}

	if len(source.Fields) > 0 {
		c.Fields = source.Fields
	}
}

// LoadConfig reads a JSON or YAML (.yaml, .yml) config file and merges it
// over DefaultConfig.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}
