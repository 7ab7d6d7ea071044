package config

import (
	"fmt"
	"os"
	"savings_bank/internal/domain"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	SavingsInterestRate   decimal.Decimal
	SavingsMinimumBalance decimal.Decimal
	SigningKey            string
	MetricsAddr           string
	AuditWorkers          int
}

// Load reads configuration from the environment, with an optional
// .env file. Missing keys fall back to defaults; MetricsAddr empty
// disables the metrics server.
func Load() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		SavingsInterestRate:   decimal.NewFromFloat(0.02),
		SavingsMinimumBalance: domain.DefaultMinimumBalance,
		SigningKey:            "dev-receipt-key",
		MetricsAddr:           "",
		AuditWorkers:          3,
	}

	if v := os.Getenv("SAVINGS_INTEREST_RATE"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SAVINGS_INTEREST_RATE: %w", err)
		}
		cfg.SavingsInterestRate = rate
	}

	if v := os.Getenv("SAVINGS_MINIMUM_BALANCE"); v != "" {
		floor, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SAVINGS_MINIMUM_BALANCE: %w", err)
		}
		cfg.SavingsMinimumBalance = floor
	}

	if v := os.Getenv("RECEIPT_SIGNING_KEY"); v != "" {
		cfg.SigningKey = v
	}

	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}

	if v := os.Getenv("AUDIT_WORKERS"); v != "" {
		var workers int
		if _, err := fmt.Sscanf(v, "%d", &workers); err != nil || workers <= 0 {
			return nil, fmt.Errorf("invalid AUDIT_WORKERS: %q", v)
		}
		cfg.AuditWorkers = workers
	}

	return cfg, nil
}
