// Package config loads the patrol configuration from YAML with environment
// variable expansion.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Validator is implemented by configuration types that check themselves.
type Validator interface {
	Validate() error
}

// Load reads filename and applies it to target with Decode.
// Fields absent from the file keep the values target already holds.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := Decode(data, target); err != nil {
		return fmt.Errorf("config: %s: %w", filename, err)
	}

	return nil
}

// Decode expands ${VAR} references in data, decodes it over target and
// validates the result. Unknown keys are rejected so a misspelt weight
// cannot silently fall back to its default. An empty document only validates.
func Decode[T any](data []byte, target *T) error {
	dec := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse: %w", err)
	}

	return validate(target)
}

// LoadOrDefault is Load, except that a missing file leaves target as is
// and only validates it.
func LoadOrDefault[T any](filename string, target *T) error {
	if filename != "" {
		if _, err := os.Stat(filename); !errors.Is(err, os.ErrNotExist) {
			return Load(filename, target)
		}
	}
	if err := validate(target); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

func validate[T any](target *T) error {
	v, ok := any(target).(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}
