package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the wallet.
//
//   - StoreDSN: sqlite path, ":memory:", "file:" URI or postgres:// URL.
//   - BcryptCost: work factor for new secret hashes.
//   - SessionSecret: HS256 key for session tokens; random when empty.
//   - SessionTTL: token lifetime; zero means sessions last until logout.
type Config struct {
	StoreDSN      string        `env:"STORE_DSN"`
	BcryptCost    int           `env:"BCRYPT_COST"`
	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL"`
	LogLevel      string        `env:"LOG_LEVEL"`
	LogFormat     string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.StoreDSN = "dkcards.db"
	c.BcryptCost = bcrypt.DefaultCost
	c.SessionSecret = ""
	c.SessionTTL = 0
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.StoreDSN) == "" {
		return errors.New("store dsn is empty")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("negative session ttl %s", c.SessionTTL)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file, environ
// ("KEY=value" pairs, as from os.Environ) and args (without the program
// name). Later sources take precedence over earlier ones.
func LoadConfig(args, environ []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, environ); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
