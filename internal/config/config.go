// Package config loads lobd's configuration via viper: a config file
// (if present), overridden by LOB_-prefixed environment variables.
// Adapted from abdoElHodaky-tradSys/internal/config/config.go.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/lightsgoout/quantcup-lob/pkg/lob"
)

// Config is lobd's full runtime configuration.
type Config struct {
	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Capacities struct {
		MaxBooks      int    `mapstructure:"max_books"`
		MaxLevels     uint32 `mapstructure:"max_levels"`
		MaxOrders     uint32 `mapstructure:"max_orders"`
		MaxPriceIndex int    `mapstructure:"max_price_index"`
	} `mapstructure:"capacities"`

	Generator struct {
		EventCount   int     `mapstructure:"event_count"`
		CancelChance float64 `mapstructure:"cancel_chance"`
		Books        int     `mapstructure:"books"`
	} `mapstructure:"generator"`

	Replay struct {
		BatchSize  int `mapstructure:"batch_size"`
		RoundCount int `mapstructure:"round_count"`
	} `mapstructure:"replay"`

	Server struct {
		HTTPAddr    string `mapstructure:"http_addr"`
		MetricsAddr string `mapstructure:"metrics_addr"`
	} `mapstructure:"server"`

	LogLevel string `mapstructure:"log_level"`
}

// LobCapacities converts the loaded capacities into lob.Capacities.
func (c *Config) LobCapacities() lob.Capacities {
	return lob.Capacities{
		MaxBooks:      c.Capacities.MaxBooks,
		MaxLevels:     c.Capacities.MaxLevels,
		MaxOrders:     c.Capacities.MaxOrders,
		MaxPriceIndex: c.Capacities.MaxPriceIndex,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.dsn", "user=lobd dbname=lob sslmode=disable")

	v.SetDefault("capacities.max_books", lob.DefaultCapacities.MaxBooks)
	v.SetDefault("capacities.max_levels", lob.DefaultCapacities.MaxLevels)
	v.SetDefault("capacities.max_orders", lob.DefaultCapacities.MaxOrders)
	v.SetDefault("capacities.max_price_index", lob.DefaultCapacities.MaxPriceIndex)

	v.SetDefault("generator.event_count", 100000)
	v.SetDefault("generator.cancel_chance", 0.05)
	v.SetDefault("generator.books", 1)

	v.SetDefault("replay.batch_size", 10)
	v.SetDefault("replay.round_count", 10)

	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.metrics_addr", ":9090")

	v.SetDefault("log_level", "info")
}

// Load reads configPath (if non-empty) as a config file, layers in
// LOB_-prefixed environment variables, and unmarshals the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix("LOB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configPath, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return cfg, nil
}
