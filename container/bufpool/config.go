package bufpool

import "github.com/tezrry/pow2/pkg/logging"

const (
	DefaultMinSize  = 64
	defaultMaxPages = 64
)

type ConfigFunc func(c *Config)

type Config struct {
	// MinSize is the smallest size class in bytes. Must be a power of two.
	MinSize int
	// MaxSize is the largest pooled size class in bytes. Must be a power of
	// two no smaller than MinSize. Larger requests are served unpooled.
	MaxSize int

	Logger logging.Logger
}

func WithMinSize(n int) ConfigFunc {
	return func(c *Config) {
		c.MinSize = n
	}
}

func WithMaxSize(n int) ConfigFunc {
	return func(c *Config) {
		c.MaxSize = n
	}
}

func WithLogger(logger logging.Logger) ConfigFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}
