package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays configuration from environment variables using the
// `env` struct tags on Config. Unset variables leave the current values
// untouched. Malformed values panic, matching the other parse steps.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
