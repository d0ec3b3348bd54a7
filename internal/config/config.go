package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds service configuration.
type Config struct {
	// DatabaseURL selects the postgres trade history; empty keeps history in memory.
	DatabaseURL string `env:"DATABASE_URL"`
	ServerAddr  string `env:"SERVER_ADDR" envDefault:"0.0.0.0:8080" validate:"required"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`

	Trade Trade
}

// Trade holds the trading rules.
type Trade struct {
	Locale            string        `env:"TRADE_LOCALE" envDefault:"en-US" validate:"required,bcp47_language_tag"`
	WithMoney         bool          `env:"TRADE_WITH_MONEY" envDefault:"true"`
	NoDebts           bool          `env:"TRADE_NO_DEBTS" envDefault:"true"`
	ThroughWorlds     bool          `env:"TRADE_THROUGH_WORLDS" envDefault:"false"`
	WithHiddenPlayers bool          `env:"TRADE_WITH_HIDDEN_PLAYERS" envDefault:"false"`
	MaxDistance       int           `env:"TRADE_MAX_DISTANCE" envDefault:"15" validate:"gte=0"`
	MoneySmall        int64         `env:"TRADE_MONEY_SMALL" envDefault:"1" validate:"gt=0"`
	MoneyMedium       int64         `env:"TRADE_MONEY_MEDIUM" envDefault:"10" validate:"gt=0"`
	MoneyLarge        int64         `env:"TRADE_MONEY_LARGE" envDefault:"100" validate:"gt=0"`
	RequestTimeout    time.Duration `env:"TRADE_REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	RequestCooldown   time.Duration `env:"TRADE_REQUEST_COOLDOWN" envDefault:"10s" validate:"gte=0"`
	PickupProtection  time.Duration `env:"TRADE_PICKUP_PROTECTION" envDefault:"30s" validate:"gte=0"`
	Blacklist         string        `env:"TRADE_BLACKLIST"`
	StartingBalance   int64         `env:"TRADE_STARTING_BALANCE" envDefault:"0" validate:"gte=0"`
	WorkerQueue       int           `env:"TRADE_WORKER_QUEUE" envDefault:"256" validate:"gt=0"`
}

var validate = validator.New()

// Load reads configuration from environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
