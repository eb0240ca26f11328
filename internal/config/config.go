package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultEnvFiles are loaded, when present, before the environment is read.
// Variables already set in the process environment win.
var DefaultEnvFiles = []string{".env", ".env.local"}

// Config is the runtime configuration of the throughput binary.
type Config struct {
	DBPath         string        `env:"THROUGHPUT_DB"`
	LogLevel       string        `env:"THROUGHPUT_LOG_LEVEL" envDefault:"warn" validate:"oneof=debug info warn error"`
	LogFormat      string        `env:"THROUGHPUT_LOG_FORMAT" envDefault:"console" validate:"oneof=console json"`
	HTTPAddr       string        `env:"THROUGHPUT_HTTP_ADDR" envDefault:":8080" validate:"required"`
	MaxUploadBytes int64         `env:"THROUGHPUT_MAX_UPLOAD_BYTES" envDefault:"10485760" validate:"gt=0"`
	CORSOrigins    []string      `env:"THROUGHPUT_CORS_ORIGINS" envDefault:"*" envSeparator:"," validate:"min=1,dive,required"`
	MetricsEnabled bool          `env:"THROUGHPUT_METRICS_ENABLED" envDefault:"true"`
	WatchDebounce  time.Duration `env:"THROUGHPUT_WATCH_DEBOUNCE" envDefault:"500ms" validate:"gt=0"`
}

// LoadEnv loads the env files that exist and reports how many were read.
func LoadEnv(files []string) (int, error) {
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

// Load reads the env files, then the process environment.
func Load(files ...string) (*Config, error) {
	if _, err := LoadEnv(files); err != nil {
		return nil, fmt.Errorf("loading env files: %w", err)
	}
	return parse(env.Options{})
}

// FromMap builds a Config from vars alone, ignoring the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var c Config
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if c.DBPath == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		c.DBPath = path
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fe := verrs[0]
		return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
	}
	return err
}

// DefaultDBPath is ~/.throughput/throughput.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".throughput", "throughput.db"), nil
}
