package gopool

import (
	"time"

	"github.com/tezrry/pow2/pkg/logging"
)

type ConfigFunc func(c *Config)

type Config struct {
	// ExpiryDuration is how long an idle worker is kept before it is reclaimed.
	ExpiryDuration time.Duration

	// Nonblocking makes Schedule fail instead of waiting when the chosen shard
	// has no free worker.
	Nonblocking bool

	// PreAlloc allocates the worker queue of every shard up front.
	PreAlloc bool

	Logger logging.Logger
}

func WithConfig(config *Config) ConfigFunc {
	return func(c *Config) {
		*c = *config
	}
}

func WithExpiryDuration(d time.Duration) ConfigFunc {
	return func(c *Config) {
		c.ExpiryDuration = d
	}
}

func WithNonblocking(v bool) ConfigFunc {
	return func(c *Config) {
		c.Nonblocking = v
	}
}

func WithPreAlloc(v bool) ConfigFunc {
	return func(c *Config) {
		c.PreAlloc = v
	}
}

func WithLogger(logger logging.Logger) ConfigFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}
