package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override the config file.
// Nested keys use a double underscore, e.g. RR_GUIDELINES__MAX_STREAK.
const EnvPrefix = "RR_"

const (
	StrategyRoundRobin       = "round_robin"
	StrategyDoubleRoundRobin = "double_round_robin"
)

type Guidelines struct {
	// MaxStreak is the longest run of consecutive home (or away) games a
	// team should have. Zero disables the check.
	MaxStreak int `yaml:"max_streak"`
}

type Config struct {
	League     string     `yaml:"league"`
	Teams      []string   `yaml:"teams"`
	Strategy   string     `yaml:"strategy"`
	Guidelines Guidelines `yaml:"guidelines"`
}

// Load reads a YAML config file, applies RR_ environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Strategy == "" {
		cfg.Strategy = StrategyRoundRobin
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Teams) < 2 {
		return fmt.Errorf("at least two teams are required, got %d", len(c.Teams))
	}

	seen := make(map[string]bool)
	for i, team := range c.Teams {
		if strings.TrimSpace(team) == "" {
			return fmt.Errorf("team %d has no name", i+1)
		}
		if seen[team] {
			return fmt.Errorf("team %q appears more than once", team)
		}
		seen[team] = true
	}

	switch c.Strategy {
	case StrategyRoundRobin, StrategyDoubleRoundRobin:
	default:
		return fmt.Errorf("unknown strategy: %q", c.Strategy)
	}

	if c.Guidelines.MaxStreak < 0 {
		return fmt.Errorf("max_streak must not be negative, got %d", c.Guidelines.MaxStreak)
	}
	return nil
}
