package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/slate-compiler/slate/internal/translate"
)

// Config is the optional project configuration loaded from a slate.yaml
// file. Flags override config values.
type Config struct {
	// Tier is the default capability tier: "legacy" or "modern".
	Tier string `yaml:"tier,omitempty"`

	// Imports is the module-to-alias table seeding the import resolver.
	Imports map[string]string `yaml:"imports,omitempty"`
}

// LoadConfig reads a YAML config file. A missing path returns an empty
// config without error so the flag can stay optional.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Tier {
	case "", "legacy", "modern":
		return nil
	default:
		return fmt.Errorf("tier must be legacy or modern, got %q", c.Tier)
	}
}

// ResolveTier picks the effective tier from the flag value, falling back to
// the config, then to legacy.
func (c *Config) ResolveTier(flag string) (translate.Tier, error) {
	name := flag
	if name == "" {
		name = c.Tier
	}
	switch name {
	case "", "legacy":
		return translate.TierLegacy, nil
	case "modern":
		return translate.TierModern, nil
	default:
		return 0, fmt.Errorf("unknown tier %q", name)
	}
}
