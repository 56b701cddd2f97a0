package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Kakeibo"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Ledger struct {
		// File is the CSV dataset holding all transactions.
		File string `envconfig:"LEDGER_FILE" default:"ledger.csv"`
		// Accounts is the closed (but extensible) set of account names
		// offered by input forms. Stored data may reference others.
		Accounts []string `envconfig:"LEDGER_ACCOUNTS" default:"Cash,Bank,WeChat,Alipay,Card,Other"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
