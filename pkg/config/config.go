// Package config loads YAML configuration files with environment
// variable expansion.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator lets a config struct check itself after loading.
type Validator interface {
	Validate() error
}

// Load reads filename, expands ${VAR} references against the process
// environment, and unmarshals the result into target. When target
// implements Validator the loaded value is validated before return.
func Load[T any](filename string, target *T) error {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", filename, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(raw))), target); err != nil {
		return fmt.Errorf("config: parse %s: %w", filename, err)
	}
	return validate(target)
}

// LoadIfPresent is Load for optional files: a missing file leaves
// target untouched and reports loaded=false instead of an error.
func LoadIfPresent[T any](filename string, target *T) (bool, error) {
	err := Load(filename, target)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func validate(target any) error {
	v, ok := target.(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}
