// Package config loads service configuration from config.yaml, environment
// variables and an optional local .env file.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/quantfold/optionwheel/payoff"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Pricing  PricingConfig  `mapstructure:"pricing"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener configuration.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig holds the postgres connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// PricingConfig exposes the pricing conventions. The defaults encode the
// service's business assumptions: 2% risk-free rate, 100 shares per
// contract, a 365-day year and a one currency unit price grid step.
type PricingConfig struct {
	RiskFreeRate       float64 `mapstructure:"risk_free_rate"`
	ContractMultiplier float64 `mapstructure:"contract_multiplier"`
	DaysPerYear        float64 `mapstructure:"days_per_year"`
	PriceStep          float64 `mapstructure:"price_step"`
}

// LoggingConfig holds log output configuration.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// PayoffConfig converts the pricing section into the sweep engine's form.
func (p PricingConfig) PayoffConfig() payoff.Config {
	return payoff.Config{
		RiskFreeRate: p.RiskFreeRate,
		Multiplier:   p.ContractMultiplier,
		DaysPerYear:  p.DaysPerYear,
		Step:         p.PriceStep,
	}
}

// Load reads configuration from path. A missing config file is not an error;
// defaults and OPTIONWHEEL_* environment variables still apply.
func Load(path string) (*Config, error) {
	// .env is optional, for local development secrets
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	defaults := payoff.DefaultConfig()
	v.SetDefault("server.address", "0.0.0.0:8080")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "optionwheel")
	v.SetDefault("pricing.risk_free_rate", defaults.RiskFreeRate)
	v.SetDefault("pricing.contract_multiplier", defaults.Multiplier)
	v.SetDefault("pricing.days_per_year", defaults.DaysPerYear)
	v.SetDefault("pricing.price_step", defaults.Step)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", false)
	v.SetDefault("logging.file_path", "logs/optionwheel.log")

	v.SetEnvPrefix("OPTIONWHEEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
