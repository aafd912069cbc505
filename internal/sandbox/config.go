package sandbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config drives the in-memory API. Every field has a usable default so the
// sandbox starts with no environment at all.
type Config struct {
	Addr         string        `env:"PAYOPS_SANDBOX_ADDR" envDefault:"127.0.0.1:5000"`
	JWTSecret    string        `env:"PAYOPS_SANDBOX_JWT_SECRET" envDefault:"payops-sandbox-secret"`
	TokenTTL     time.Duration `env:"PAYOPS_SANDBOX_TOKEN_TTL" envDefault:"168h"`
	Email        string        `env:"PAYOPS_SANDBOX_EMAIL" envDefault:"ops@example.com"`
	Password     string        `env:"PAYOPS_SANDBOX_PASSWORD" envDefault:"sandbox-password"`
	OTP          string        `env:"PAYOPS_SANDBOX_OTP" envDefault:"123456"`
	RowsPerPoll  int           `env:"PAYOPS_SANDBOX_ROWS_PER_POLL" envDefault:"2"`
	DeclineCards []string      `env:"PAYOPS_SANDBOX_DECLINE_CARDS" envSeparator:"," envDefault:"4000000000000002"`
	AtomicBulk   bool          `env:"PAYOPS_SANDBOX_ATOMIC_BULK" envDefault:"false"`
	Seed         bool          `env:"PAYOPS_SANDBOX_SEED" envDefault:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse sandbox env: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, fmt.Errorf("PAYOPS_SANDBOX_JWT_SECRET must not be empty")
	}
	if cfg.RowsPerPoll < 1 {
		cfg.RowsPerPoll = 1
	}
	return cfg, nil
}

// DefaultConfig returns the same values LoadConfig yields with an empty environment.
func DefaultConfig() Config {
	return Config{
		Addr:         "127.0.0.1:5000",
		JWTSecret:    "payops-sandbox-secret",
		TokenTTL:     7 * 24 * time.Hour,
		Email:        "ops@example.com",
		Password:     "sandbox-password",
		OTP:          "123456",
		RowsPerPoll:  2,
		DeclineCards: []string{"4000000000000002"},
	}
}
