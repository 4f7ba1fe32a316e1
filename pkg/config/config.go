package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

// Config holds application-wide configuration.
type Config struct {
	ListenAddr string        `mapstructure:"listenAddr"`
	DB         DBConfig      `mapstructure:"db"`
	Tables     []TableConfig `mapstructure:"tables"`
	Metrics    MetricsConfig `mapstructure:"metrics"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

// TableConfig declares one table to create (if absent) and expose at
// startup. Columns is the DDL column list, e.g.
// "id INTEGER PRIMARY KEY, name TEXT".
type TableConfig struct {
	Name    string `mapstructure:"name"`
	Columns string `mapstructure:"columns"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		ListenAddr: ":8080",
		DB:         DBConfig{Path: "easydb.db"},
		Metrics:    MetricsConfig{Addr: ":9100"},
	}
}

// Load reads config from file or environment. Missing config files are
// fine; defaults and EASYDB_* env vars apply either way.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("easydb")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config"))
		}
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("EASYDB")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}
