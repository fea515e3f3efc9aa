package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the on-disk format for projects loaded at startup.
type SeedFile struct {
	Projects []SeedEntry `yaml:"projects"`
}

// SeedEntry is one project in a seed file. People is kept as text so that it
// goes through the same parsing as the form.
type SeedEntry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	People      string `yaml:"people"`
}

// LoadSeedFile reads and validates a seed file without touching any store.
func LoadSeedFile(path string) ([]Input, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from local config
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes seed YAML and validates each entry like a form submission.
func ParseSeed(data []byte) ([]Input, error) {
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	inputs := make([]Input, 0, len(f.Projects))
	for i, e := range f.Projects {
		in, ok := Draft(e).Validate()
		if !ok {
			return nil, fmt.Errorf("seed project %d (%q): invalid inputs", i, e.Title)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// Seed adds every input to the store in order.
func (s *Store) Seed(inputs []Input) {
	for _, in := range inputs {
		s.AddProject(in.Title, in.Description, in.People)
	}
}
