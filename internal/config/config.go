package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/bookexplorer/bookexplorer/internal/logging"
	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

// Config holds all application settings
type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	Catalog    Catalog
	Session    Session
}

// Catalog configures the remote book catalog client
type Catalog struct {
	BaseURL   string        `env:"CATALOG_BASE_URL" envDefault:"https://gutendex.com"`
	Timeout   time.Duration `env:"CATALOG_TIMEOUT" envDefault:"30s"`
	UserAgent string        `env:"CATALOG_USER_AGENT" envDefault:"BookExplorer/1.0"`
}

// Session configures per-browser session state
type Session struct {
	DiscardStale      bool          `env:"SESSION_DISCARD_STALE" envDefault:"false"`
	IdleTTL           time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	SweepInterval     time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"1m"`
	LanguageNamesFile string        `env:"LANGUAGE_NAMES_FILE"`
}

// Load reads an optional .env file, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Env, validation.Required),
		validation.Field(&c.LogLevel, validation.By(logLevel)),
		validation.Field(&c.ListenAddr, validation.Required),
		validation.Field(&c.Catalog),
		validation.Field(&c.Session),
	)
}

func (c Catalog) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(absoluteURL)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
	)
}

func (s Session) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.IdleTTL, validation.Required, validation.Min(time.Second)),
		validation.Field(&s.SweepInterval, validation.Required, validation.Min(time.Second)),
	)
}

func logLevel(value any) error {
	level, _ := value.(string)
	if level != "" && !logging.IsLevel(level) {
		return errors.New("must be one of debug, info, warn, warning, error")
	}
	return nil
}

func absoluteURL(value any) error {
	raw, _ := value.(string)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}
