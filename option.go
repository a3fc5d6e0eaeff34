package archecs

import "github.com/rs/zerolog"

// Option configures a World at construction.
type Option func(*World)

// WithConfig applies every field of cfg. An invalid cfg is ignored and
// reported through the World's logger. The log level is applied once every
// option has run, so it also holds for a logger given by WithLogger.
func WithConfig(cfg Config) Option {
	return func(w *World) {
		if err := cfg.Validate(); err != nil {
			w.logger.Warn().Err(err).Msg("ignoring invalid ecs config")
			return
		}
		w.cfg = cfg
		w.policy, _ = ParseAssertPolicy(cfg.AssertPolicy)
		w.levelFromConfig = true
	}
}

// WithLogger replaces the World's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithRegistry makes the World share r instead of owning a fresh registry.
// Worlds sharing a registry agree on component ids.
func WithRegistry(r *TypeRegistry) Option {
	return func(w *World) {
		w.registry = r
	}
}

// WithAssertPolicy sets how precondition violations are reported.
func WithAssertPolicy(p AssertPolicy) Option {
	return func(w *World) {
		w.policy = p
		w.cfg.AssertPolicy = p.String()
	}
}

// WithPageSize sets the sparse page length of new stores. Values that are not
// a power of two are rounded up.
func WithPageSize(n int) Option {
	return func(w *World) {
		if n > 0 {
			w.cfg.PageSize = n
		}
	}
}

// WithInitialCapacity reserves n entity slots up front. Negative values are
// ignored.
func WithInitialCapacity(n int) Option {
	return func(w *World) {
		if n >= 0 {
			w.cfg.InitialCapacity = n
		}
	}
}
