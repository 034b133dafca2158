// Package dirstate remembers the folders used by the previous run.
package dirstate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is the content of the state file.
type State struct {
	TargetDir string `yaml:"target_dir,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
}

// Load reads the state file at path. A missing file yields an empty State.
func Load(path string) (State, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read state: %w", err)
	}

	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("parse state %s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating the parent directory when needed.
func Save(path string, s State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Resolve returns flag when set, otherwise the remembered value.
func Resolve(flag, remembered string) string {
	if flag != "" {
		return flag
	}
	return remembered
}
