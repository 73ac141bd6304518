package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance scenario: a CUE fixture lowered at a
// fixed tier against a fixed import table.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is the path to the CUE fixture, relative to the scenario
	// file location.
	Fixture string `yaml:"fixture"`

	// Kind selects the lowering entry point: "statement" or "expression".
	Kind string `yaml:"kind"`

	// Tier is the capability tier: "legacy" or "modern".
	Tier string `yaml:"tier"`

	// Imports is the module-to-alias table seeding the import resolver.
	// Modules missing from the table get sequential aliases.
	Imports map[string]string `yaml:"imports,omitempty"`

	// dir is the directory the scenario file was loaded from; fixture
	// paths resolve against it.
	dir string
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("scenario %s: name is required", path)
	}
	if s.Fixture == "" {
		return nil, fmt.Errorf("scenario %s: fixture is required", path)
	}
	switch s.Kind {
	case "statement", "expression":
	default:
		return nil, fmt.Errorf("scenario %s: kind must be statement or expression, got %q", path, s.Kind)
	}
	switch s.Tier {
	case "legacy", "modern":
	default:
		return nil, fmt.Errorf("scenario %s: tier must be legacy or modern, got %q", path, s.Tier)
	}
	s.dir = filepath.Dir(path)
	return &s, nil
}

// LoadScenarios loads every scenario under dir, sorted by name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	sort.Slice(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios, nil
}

// FixturePath resolves the fixture path against the scenario location.
func (s *Scenario) FixturePath() string {
	return filepath.Join(s.dir, s.Fixture)
}

// GoldenPath returns the golden file for this scenario. Golden files live
// in a golden directory next to the scenario directory.
func (s *Scenario) GoldenPath() string {
	return filepath.Join(s.dir, "..", "golden", s.Name+".golden")
}
