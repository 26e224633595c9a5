package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServerAddress string `env:"SERVER_ADDRESS" envDefault:":8080"`
	PostgresConn  string `env:"POSTGRES_CONN,required"`

	// DeadlineTZ is the fixed civil timezone closing deadlines are resolved
	// in, end of day.
	DeadlineTZ string `env:"DEADLINE_TZ" envDefault:"America/Guayaquil"`

	AIBaseURL string        `env:"AI_BASE_URL"`
	AIModel   string        `env:"AI_MODEL" envDefault:"gpt-4o-mini"`
	AIAPIKey  string        `env:"AI_API_KEY"`
	AITimeout time.Duration `env:"AI_TIMEOUT" envDefault:"8s"`

	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"3s"`
}

// AIEnabled reports whether the AI scoring collaborator is configured.
// Without it every proposal is scored by the rubric.
func (c Config) AIEnabled() bool {
	return c.AIBaseURL != "" && c.AIAPIKey != ""
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
