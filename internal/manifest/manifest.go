package manifest

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for packing lists or item flags that cannot be used.
var ErrInvalid = errors.New("invalid packing list")

//go:embed demo.yaml
var demo []byte

// Entry is one item to pack.
type Entry struct {
	Name   string `yaml:"name"`
	Weight int    `yaml:"weight"`
}

// Manifest describes a packing session: who packs, what goes in, and what
// comes back out (by exact item name) afterwards.
type Manifest struct {
	Student string   `yaml:"student"`
	Items   []Entry  `yaml:"items"`
	Unpack  []string `yaml:"unpack"`
}

// Load reads a packing list from a YAML file.
func Load(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML packing list.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse YAML: %w", err)
	}
	m.Student = strings.TrimSpace(m.Student)
	if m.Student == "" {
		return Manifest{}, fmt.Errorf("%w: student name is required", ErrInvalid)
	}
	for i, entry := range m.Items {
		if strings.TrimSpace(entry.Name) == "" {
			return Manifest{}, fmt.Errorf("%w: item %d has no name", ErrInvalid, i+1)
		}
	}
	return m, nil
}

// Default returns the built-in demo session.
func Default() Manifest {
	m, err := Parse(demo)
	if err != nil {
		panic(fmt.Sprintf("parse embedded demo: %v", err))
	}
	return m
}

// ParseItem parses a "name:weight" flag value. The name may itself contain colons.
func ParseItem(raw string) (Entry, error) {
	idx := strings.LastIndex(raw, ":")
	if idx < 0 {
		return Entry{}, fmt.Errorf("%w: item %q must look like name:weight", ErrInvalid, raw)
	}
	name := strings.TrimSpace(raw[:idx])
	if name == "" {
		return Entry{}, fmt.Errorf("%w: item %q has no name", ErrInvalid, raw)
	}
	weight, err := strconv.Atoi(strings.TrimSpace(raw[idx+1:]))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: invalid weight in %q", ErrInvalid, raw)
	}
	return Entry{Name: name, Weight: weight}, nil
}
