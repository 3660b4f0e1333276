package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration. Every key has a default so the
// server runs with no config file at all; a config.yaml next to the binary or
// HOLDEM_-prefixed environment variables override them.
type Config struct {
	Server struct {
		Port     string
		LogLevel string `mapstructure:"log_level"`
	}
	Game struct {
		SmallBlind   int `mapstructure:"small_blind"`
		BigBlind     int `mapstructure:"big_blind"`
		InitialChips int `mapstructure:"initial_chips"`
		MaxPlayers   int `mapstructure:"max_players"`
	}
	Session struct {
		ReconnectGrace time.Duration `mapstructure:"reconnect_grace"`
		RedisAddr      string        `mapstructure:"redis_addr"`
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("game.small_blind", 10)
	v.SetDefault("game.big_blind", 20)
	v.SetDefault("game.initial_chips", 1000)
	v.SetDefault("game.max_players", 9)
	v.SetDefault("session.reconnect_grace", 30*time.Second)
	v.SetDefault("session.redis_addr", "")
}

// Load reads config.yaml from the working directory if present and merges
// environment overrides on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("HOLDEM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
