// Package config loads shop service settings from SHOP_* environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SHOP"

type Config struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`

	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsToken   string `mapstructure:"metrics_token"`

	StaffEmail    string `mapstructure:"staff_email"`
	StaffPassword string `mapstructure:"staff_password"`

	CascadeOnPurchase bool `mapstructure:"cascade_on_purchase"`
}

func Defaults() Config {
	return Config{
		Port:              "8080",
		LogLevel:          "info",
		TokenTTL:          15 * time.Minute,
		MetricsEnabled:    true,
		CascadeOnPurchase: true,
	}
}

// Load reads configuration. cfgFile may be empty, in which case only
// defaults and the environment apply.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	d := Defaults()
	v.SetDefault("port", d.Port)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("jwt_secret", d.JWTSecret)
	v.SetDefault("token_ttl", d.TokenTTL)
	v.SetDefault("metrics_enabled", d.MetricsEnabled)
	v.SetDefault("metrics_token", d.MetricsToken)
	v.SetDefault("staff_email", d.StaffEmail)
	v.SetDefault("staff_password", d.StaffPassword)
	v.SetDefault("cascade_on_purchase", d.CascadeOnPurchase)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

const minSecretLen = 32

// Validate checks the settings `serve` needs. The repl needs none of them.
func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if len(c.JWTSecret) < minSecretLen {
		errs = append(errs, fmt.Errorf("jwt_secret must be at least %d chars", minSecretLen))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token_ttl must be positive"))
	}
	if (c.StaffEmail == "") != (c.StaffPassword == "") {
		errs = append(errs, errors.New("staff_email and staff_password must be set together"))
	}
	return errors.Join(errs...)
}
