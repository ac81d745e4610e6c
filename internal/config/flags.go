package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dkcards/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-d string          store DSN
//	-cost int          bcrypt cost
//	-ttl duration      session lifetime (0 = until logout)
//	-log-level string  debug, info, warn or error
//	-log-format string text or json
//
// Other arguments, such as -c, are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, "d", "cost", "ttl", "log-level", "log-format")

	fs := flag.NewFlagSet("dkcards", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StoreDSN, "d", cfg.StoreDSN, "store DSN (sqlite path or postgres:// URL)")
	fs.IntVar(&cfg.BcryptCost, "cost", cfg.BcryptCost, "bcrypt cost")
	fs.DurationVar(&cfg.SessionTTL, "ttl", cfg.SessionTTL, "session lifetime, 0 for no expiry")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format, text or json")

	if err := fs.Parse(filtered); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
