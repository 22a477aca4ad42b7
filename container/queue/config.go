package queue

import "github.com/tezrry/pow2/pkg/logging"

type ConfigFunc func(c *Config)

type Config struct {
	// Logger receives a debug line whenever a requested capacity is rounded
	// up. The package default logger is used when nil.
	Logger logging.Logger
}

func WithLogger(logger logging.Logger) ConfigFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}
