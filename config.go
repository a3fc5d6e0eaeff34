package archecs

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	DefaultAssertPolicy = "panic"
	DefaultLogLevel     = "info"
)

// Config holds the tunables of a World. LoadConfig fills it from ECS_*
// environment variables on top of DefaultConfig.
type Config struct {
	// InitialCapacity is the number of entity slots reserved up front.
	InitialCapacity int `config:"ECS_INITIAL_CAPACITY"`
	// PageSize is the sparse page length of every dense store. Power of two.
	PageSize int `config:"ECS_PAGE_SIZE"`
	// AssertPolicy is one of "panic", "log" or "off".
	AssertPolicy string `config:"ECS_ASSERT_POLICY"`
	// LogLevel is a zerolog level name.
	LogLevel string `config:"ECS_LOG_LEVEL"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		InitialCapacity: DefaultInitialCapacity,
		PageSize:        DefaultPageSize,
		AssertPolicy:    DefaultAssertPolicy,
		LogLevel:        DefaultLogLevel,
	}
}

// LoadConfig reads the environment over the defaults and validates the result.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load ecs config from env")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid field, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	if c.InitialCapacity < 0 {
		return eris.Wrapf(ErrInvalidConfig, "initial capacity must not be negative, got %d", c.InitialCapacity)
	}
	if c.PageSize <= 0 || c.PageSize&(c.PageSize-1) != 0 {
		return eris.Wrapf(ErrInvalidConfig, "page size must be a positive power of two, got %d", c.PageSize)
	}
	if _, err := ParseAssertPolicy(c.AssertPolicy); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(ErrInvalidConfig, "unknown log level %q", c.LogLevel)
	}
	return nil
}
