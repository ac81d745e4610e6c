package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const envPrefix = "DKCARDS_"

// parseEnv overlays cfg with DKCARDS_* variables from environ. Unset
// variables leave the field alone.
func parseEnv(cfg *Config, environ []string) error {
	opts := env.Options{
		Prefix:      envPrefix,
		Environment: env.ToMap(environ),
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
