package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config controls the demo app. Every field can be overridden through
// COUNTER_* environment variables or a local .env file.
type Config struct {
	Name     string `mapstructure:"name"`
	LogLevel string `mapstructure:"log_level"`
	Pretty   bool   `mapstructure:"pretty"`
}

func loadConfig() (Config, error) {
	// A missing .env file is fine; the defaults below carry the demo.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("COUNTER")
	v.AutomaticEnv()
	v.SetDefault("name", "counter")
	v.SetDefault("log_level", "debug")
	v.SetDefault("pretty", true)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
