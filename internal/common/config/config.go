package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:""`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Engine struct {
		OwnerWallet   string        `env:"OWNER_WALLET,required"`
		CustodyWallet string        `env:"CUSTODY_WALLET" envDefault:"custody"`
		MinLeadTime   time.Duration `env:"MIN_LEAD_TIME" envDefault:"15m"`
		AdminWallets  []string      `env:"ADMIN_WALLETS" envSeparator:","`
	}

	Ethereum struct {
		RPCURL       string `env:"ETH_RPC_URL" envDefault:""`
		TokenAddress string `env:"TOKEN_ADDRESS" envDefault:""`
		PrivateKey   string `env:"ETH_PRIVATE_KEY" envDefault:""`
		ChainID      int64  `env:"ETH_CHAIN_ID" envDefault:"1"`
		BurnAddress  string `env:"BURN_ADDRESS" envDefault:"0x000000000000000000000000000000000000dEaD"`
	}
}

func Load() *Config {
	// A missing .env file is fine; in production the variables are set
	// directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
