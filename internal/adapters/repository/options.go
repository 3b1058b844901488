package repository

import "github.com/okian/scout/pkg/logger"

const defaultMaxPlayers = 500

type options struct {
	log        logger.Logger
	maxPlayers int
}

func newOptions(opts []Option) options {
	o := options{log: logger.Nop(), maxPlayers: defaultMaxPlayers}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures the stores and the watcher in this package.
type Option func(*options)

// WithLogger sets the logger used for degraded reads and watch events.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithMaxPlayers caps the roster size.
func WithMaxPlayers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPlayers = n
		}
	}
}
