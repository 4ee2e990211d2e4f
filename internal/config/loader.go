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
//  1. defaults (New())
//  2. file (YAML) if SHIFTSYNC_CONFIG is set
//  3. env (prefix SHIFTSYNC_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SHIFTSYNC_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrLoadConfig, err)
		}
	}

	// Environment variables: SHIFTSYNC_ADDR, SHIFTSYNC_QUEUE_SIZE, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("SHIFTSYNC_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "shiftsync_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.MaxAutofillCount <= 0:
		return fmt.Errorf("%w: max_autofill_count must be positive", ErrInvalidConfig)
	case c.PaymentLatencyMinMS < 0 || c.PaymentLatencyMaxMS < c.PaymentLatencyMinMS:
		return fmt.Errorf("%w: payment latency bounds are inverted", ErrInvalidConfig)
	}
	return nil
}
