package config

import (
	"fmt"
	"time"

	env "github.com/caarlos0/env/v11"
)

type Config struct {
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY" envDefault:"1h"`
	Port      int           `env:"PORT" envDefault:"8080"`
	LogLevel  string        `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv    string        `env:"APP_ENV" envDefault:"production"`

	// SessionTTL is the idle auto-logout window. Zero disables it.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"5m"`
	SeedFile   string        `env:"SEED_FILE"`

	InterestFloor float64 `env:"INTEREST_FLOOR" envDefault:"1"`
	LoanCoverage  float64 `env:"LOAN_COVERAGE" envDefault:"0.1"`

	HTTPMaxInflight int `env:"HTTP_MAX_INFLIGHT" envDefault:"64"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if cfg.SessionTTL < 0 {
		return nil, fmt.Errorf("config.Load: SESSION_TTL must not be negative")
	}
	if cfg.LoanCoverage <= 0 {
		return nil, fmt.Errorf("config.Load: LOAN_COVERAGE must be positive")
	}
	return &cfg, nil
}
