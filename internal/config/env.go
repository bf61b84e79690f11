package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// ParseEnv overrides fields tagged with `env` from environment variables.
// Unset variables leave the loaded values untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
