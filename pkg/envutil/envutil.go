// Package envutil reads tuning knobs from environment variables with
// validation and defaults. Action inputs are NOT read here; those flow
// through explicit InputSet construction in pkg/actionenv.
package envutil

import (
	"os"
	"strconv"

	"github.com/actionsmith/inputguard/pkg/logger"
)

// GetIntFromEnv reads an integer from the named environment variable.
// The default is returned when the variable is unset, fails to parse as
// a base-10 integer, or falls outside [minValue, maxValue]. A nil log
// is allowed.
func GetIntFromEnv(name string, defaultValue, minValue, maxValue int, log *logger.Logger) int {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		if log != nil {
			log.Printf("invalid integer in %s=%q, using default %d", name, raw, defaultValue)
		}
		return defaultValue
	}

	if value < minValue || value > maxValue {
		if log != nil {
			log.Printf("%s=%d outside [%d, %d], using default %d", name, value, minValue, maxValue, defaultValue)
		}
		return defaultValue
	}

	return value
}

// GetBoolFromEnv reads a boolean from the named environment variable.
// Only strconv.ParseBool forms are accepted; anything else returns the
// default.
func GetBoolFromEnv(name string, defaultValue bool, log *logger.Logger) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		if log != nil {
			log.Printf("invalid boolean in %s=%q, using default %v", name, raw, defaultValue)
		}
		return defaultValue
	}

	return value
}
