package tagscript

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	openDelim  rune
	closeDelim rune
	limits     Limits
	logger     *zap.Logger
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		openDelim:  DefaultOpenDelim,
		closeDelim: DefaultCloseDelim,
		limits:     DefaultLimits(),
		logger:     nil,
	}
}

// WithDelimiters sets custom declaration delimiters.
// Default: '{' and '}'. Both must be distinct single-byte characters
// that do not collide with the parameter, separator, or escape
// characters.
func WithDelimiters(open, close rune) Option {
	return func(c *engineConfig) {
		c.openDelim = open
		c.closeDelim = close
	}
}

// WithLimits sets the engine-wide interpretation limits.
// Default: DefaultLimits().
func WithLimits(limits Limits) Option {
	return func(c *engineConfig) {
		c.limits = limits
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging).
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// ProcessOption is a functional option for a single Process call.
type ProcessOption func(*processConfig)

// processConfig holds per-call overrides.
type processConfig struct {
	limits Limits
	seeds  map[string]Adapter
}

// WithSeeds installs per-call seed variables: adapters consulted before
// the engine's adapter registry for this call only. Keys are matched
// case-insensitively and whitespace-trimmed like every identifier.
func WithSeeds(seeds map[string]Adapter) ProcessOption {
	return func(c *processConfig) {
		c.seeds = seeds
	}
}

// WithProcessLimits overrides the engine limits for this call only.
func WithProcessLimits(limits Limits) ProcessOption {
	return func(c *processConfig) {
		c.limits = limits
	}
}
