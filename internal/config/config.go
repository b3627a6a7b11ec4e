package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/GCrispino/ledger/internal/ledger"
)

type Config struct {
	Port                 string
	LogLevel             log.Lvl
	DatabaseDriver       string
	DatabaseURL          string
	RateLimit            string
	WithdrawalLimit      decimal.Decimal
	WithdrawalCountLimit int
}

// JournalEnabled reports whether transactions are mirrored to a database.
func (c *Config) JournalEnabled() bool {
	return c.DatabaseURL != ""
}

// LoadConfig reads configuration from the environment, after loading a .env
// file when one is present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "error")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RATE_LIMIT", "100-S")
	v.SetDefault("WITHDRAWAL_LIMIT", fmt.Sprint(ledger.DefaultWithdrawalLimit))
	v.SetDefault("WITHDRAWAL_COUNT_LIMIT", ledger.DefaultWithdrawalCountLimit)
	v.AutomaticEnv()

	level, err := parseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}

	driver := v.GetString("DATABASE_DRIVER")
	if driver != "postgres" && driver != "pgx" {
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
	}

	limit, err := decimal.NewFromString(v.GetString("WITHDRAWAL_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("invalid WITHDRAWAL_LIMIT: %w", err)
	}
	if !limit.IsPositive() {
		return nil, fmt.Errorf("WITHDRAWAL_LIMIT must be positive, got %s", limit)
	}

	countLimit, err := strconv.Atoi(v.GetString("WITHDRAWAL_COUNT_LIMIT"))
	if err != nil {
		return nil, fmt.Errorf("invalid WITHDRAWAL_COUNT_LIMIT: %w", err)
	}
	if countLimit < 0 {
		return nil, fmt.Errorf("WITHDRAWAL_COUNT_LIMIT must not be negative, got %d", countLimit)
	}

	return &Config{
		Port:                 v.GetString("PORT"),
		LogLevel:             level,
		DatabaseDriver:       driver,
		DatabaseURL:          v.GetString("DATABASE_URL"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		WithdrawalLimit:      limit,
		WithdrawalCountLimit: countLimit,
	}, nil
}

func parseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("unknown LOG_LEVEL %q", s)
}
