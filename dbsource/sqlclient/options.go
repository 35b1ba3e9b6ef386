package sqlclient

import (
	"time"
)

const (
	defaultMaxConnections    = int32(8)
	defaultMinConnections    = int32(2)
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = time.Minute * 5
	defaultHealthCheckPeriod = time.Minute
	defaultConnectTimeout    = time.Second * 5
)

// Logger interface for connection and post-connect statement logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// config holds the effective settings for one Open call.
type config struct {
	logger            Logger
	maxConns          int32
	minConns          int32
	maxConnLifetime   time.Duration
	maxConnIdleTime   time.Duration
	healthCheckPeriod time.Duration
	connectTimeout    time.Duration
}

// Option defines a functional option for configuring an Open call.
type Option func(*config) error

func newConfig(options []Option) (*config, error) {
	cfg := &config{
		maxConns:          defaultMaxConnections,
		minConns:          defaultMinConnections,
		maxConnLifetime:   defaultMaxConnLifetime,
		maxConnIdleTime:   defaultMaxConnIdleTime,
		healthCheckPeriod: defaultHealthCheckPeriod,
		connectTimeout:    defaultConnectTimeout,
	}

	for _, option := range options {
		if err := option(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// WithLogger sets the logger for the Open call.
//
// Debug level: post-connect statements as they execute.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithConnectTimeout bounds the initial connection attempt, including
// the liveness ping. The default is five seconds.
func WithConnectTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout <= 0 {
			return ErrInvalidPoolSetting
		}

		c.connectTimeout = timeout

		return nil
	}
}

// WithMaxConns sets the pool's maximum connection count. Only
// OpenPGXPool manages a pool; the other constructors ignore it.
func WithMaxConns(n int32) Option {
	return func(c *config) error {
		if n < 1 {
			return ErrInvalidPoolSetting
		}

		c.maxConns = n

		return nil
	}
}

// WithMinConns sets the pool's minimum idle connection count. Only
// OpenPGXPool manages a pool; the other constructors ignore it.
func WithMinConns(n int32) Option {
	return func(c *config) error {
		if n < 0 {
			return ErrInvalidPoolSetting
		}

		c.minConns = n

		return nil
	}
}

// WithMaxConnLifetime sets how long a pooled connection may live. Only
// OpenPGXPool manages a pool; the other constructors ignore it.
func WithMaxConnLifetime(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return ErrInvalidPoolSetting
		}

		c.maxConnLifetime = d

		return nil
	}
}

// WithMaxConnIdleTime sets how long a pooled connection may sit idle.
// Only OpenPGXPool manages a pool; the other constructors ignore it.
func WithMaxConnIdleTime(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return ErrInvalidPoolSetting
		}

		c.maxConnIdleTime = d

		return nil
	}
}

// WithHealthCheckPeriod sets how often the pool checks idle
// connections. Only OpenPGXPool manages a pool; the other constructors
// ignore it.
func WithHealthCheckPeriod(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return ErrInvalidPoolSetting
		}

		c.healthCheckPeriod = d

		return nil
	}
}

// logDebug logs at debug level if a logger is configured.
func (c *config) logDebug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
