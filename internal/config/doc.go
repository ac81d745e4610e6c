// Package config loads the wallet's runtime settings.
//
// Sources are applied in order, each overriding the previous one:
//
//  1. built-in defaults (LoadDefaults);
//  2. a JSON file named by -c or -config;
//  3. DKCARDS_* environment variables;
//  4. command-line flags -d, -cost, -ttl, -log-level.
//
// JSON keys:
//
//	{
//	  "store_dsn": "dkcards.db",
//	  "bcrypt_cost": 10,
//	  "session_secret": "...",
//	  "session_ttl": "12h",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
//
// Durations in JSON may be strings ("90s") or integer nanoseconds.
package config
