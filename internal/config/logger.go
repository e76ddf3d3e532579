// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the zap logger described by c.Log: "json" gives the
// production encoder and "console" the development one.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, KeyLogLevel, err)
	}

	var zc zap.Config
	switch c.Log.Format {
	case "json", "":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("%w: %s must be json or console (got %q)", ErrInvalidConfig, KeyLogFormat, c.Log.Format)
	}
	zc.Level = level

	return zc.Build()
}
