package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Address string `mapstructure:"address"`
	Port    int    `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	LogMode bool   `mapstructure:"log_mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// AppConfig carries the business knobs.
type AppConfig struct {
	// EditWindowDays locks inventory edits after this many days since
	// creation. 0 falls back to the default of 30.
	EditWindowDays int `mapstructure:"edit_window_days"`
	// TaxRate is applied to selling_price to derive w_tax_price.
	TaxRate float64 `mapstructure:"tax_rate"`
	// AccountName is the account automatic transactions are booked to.
	AccountName string `mapstructure:"account_name"`
	PageSize    int    `mapstructure:"page_size"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	App      AppConfig      `mapstructure:"app"`
}

var (
	appConfig *Config
	once      sync.Once
)

// Load loads configuration from the given file path (e.g. "config.yaml").
// If path is empty, it defaults to "config.yaml" in the current working
// directory.
func Load(path string) (*Config, error) {
	var err error
	once.Do(func() {
		v := viper.New()

		if path == "" {
			v.SetConfigName("config")
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
		} else {
			v.SetConfigFile(path)
		}

		// environment overrides, e.g. GBD_SERVER_PORT=9000
		v.SetEnvPrefix("GBD")
		v.AutomaticEnv()

		v.SetDefault("server.address", "127.0.0.1")
		v.SetDefault("server.port", 8080)
		v.SetDefault("database.path", "data/business.db")
		v.SetDefault("log.level", "info")
		v.SetDefault("app.edit_window_days", 30)
		v.SetDefault("app.tax_rate", 0.083)
		v.SetDefault("app.account_name", "Business Checking")
		v.SetDefault("app.page_size", 50)

		if readErr := v.ReadInConfig(); readErr != nil {
			// defaults and env vars still apply without a config file
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(readErr, &notFound) {
				err = fmt.Errorf("read config: %w", readErr)
				return
			}
		}

		var c Config
		if err = v.Unmarshal(&c); err != nil {
			err = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		appConfig = &c
	})

	if err != nil {
		return nil, err
	}
	return appConfig, nil
}

// Get returns the loaded global configuration.
// Call Load() once at application startup.
func Get() *Config {
	return appConfig
}
