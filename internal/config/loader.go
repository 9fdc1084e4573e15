package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if SHERRIN_CONFIG is set
//  3. env (prefix SHERRIN_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("SHERRIN_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: SHERRIN_ADDR, SHERRIN_MY_TEAM, ...
	// Map env keys like SHERRIN_MY_TEAM -> my_team (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SHERRIN_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "sherrin_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch {
	case cfg.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.MyTeam < 1 || cfg.MyTeam > cfg.Teams:
		return fmt.Errorf("%w: my_team %d outside 1..%d", ErrInvalidConfig, cfg.MyTeam, cfg.Teams)
	case cfg.FeedIntervalMS < 0:
		return fmt.Errorf("%w: feed_interval_ms must not be negative", ErrInvalidConfig)
	case cfg.MaxBoardLimit < 1:
		return fmt.Errorf("%w: max_board_limit must be positive", ErrInvalidConfig)
	}
	if err := cfg.Roster().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
