package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/viper"
)

// Config is the runtime configuration shared by every command.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	Source          string        `mapstructure:"source"`
	LogLevel        string        `mapstructure:"log_level"`
	RateLimit       float64       `mapstructure:"rate_limit"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

const EnvPrefix = "WINEDASH"

// New returns a viper instance with defaults and WINEDASH_* env binding.
// A .env file in the working directory is loaded first when present.
func New() *viper.Viper {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("ignoring .env: %v", err)
	}

	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("source", "embedded")
	v.SetDefault("log_level", "info")
	v.SetDefault("rate_limit", 20.0)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and decodes v.
func Load(v *viper.Viper, file string) (Config, error) {
	var cfg Config
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}
	if cfg.RateLimit < 0 {
		return cfg, fmt.Errorf("rate_limit must not be negative, got %v", cfg.RateLimit)
	}
	return cfg, nil
}

func ParseLevel(s string) (log.Lvl, error) {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// Level is the parsed LogLevel; Load has already validated it.
func (c Config) Level() log.Lvl {
	lvl, _ := ParseLevel(c.LogLevel)
	return lvl
}
