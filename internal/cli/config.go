package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by vectrace.
const EnvPrefix = "VECTRACE"

// Policy selects the lifecycle of the elements driven by the fail command.
type Policy string

const (
	PolicyCopy     Policy = "copy"     // fallible move, relocated by copying
	PolicyNoFail   Policy = "nofail"   // infallible move, relocated by moving
	PolicyMoveOnly Policy = "moveonly" // not copyable, relocated by moving
)

// Config holds the settings shared by every vectrace command.
type Config struct {
	Count   int       `mapstructure:"count"`
	Reserve int       `mapstructure:"reserve"`
	FailAt  int       `mapstructure:"fail_at"`
	Policy  Policy    `mapstructure:"policy"`
	Log     LogConfig `mapstructure:"log"`
}

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var ErrInvalidConfig = errors.New("invalid config")

// ConfigError reports a config value that cannot be used.
type ConfigError struct {
	Key    string
	Value  any
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s=%v: %s", e.Key, e.Value, e.Reason)
}

func (e ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// flag names and the config keys they bind to
var flagKeys = map[string]string{
	"count":      "count",
	"reserve":    "reserve",
	"fail-at":    "fail_at",
	"policy":     "policy",
	"log-level":  "log.level",
	"log-format": "log.format",
}

func registerFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (yaml, json or toml)")
	fs.Int("count", 4, "number of elements to append")
	fs.Int("reserve", 0, "slots to reserve before appending")
	fs.Int("fail-at", 2, "fail the n-th element construction of the traced operation")
	fs.String("policy", string(PolicyCopy), "element lifecycle: copy, nofail or moveonly")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("log-format", "text", "log format: text or json")
}

// loadConfig merges defaults, an optional config file, VECTRACE_*
// environment variables and flags, in increasing order of precedence.
func loadConfig(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("count", 4)
	v.SetDefault("reserve", 0)
	v.SetDefault("fail_at", 2)
	v.SetDefault("policy", string(PolicyCopy))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return Config{}, err
		}
	}

	if path, _ := fs.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch {
	case c.Count < 0:
		return ConfigError{Key: "count", Value: c.Count, Reason: "must not be negative"}
	case c.Reserve < 0:
		return ConfigError{Key: "reserve", Value: c.Reserve, Reason: "must not be negative"}
	case c.FailAt < 0:
		return ConfigError{Key: "fail_at", Value: c.FailAt, Reason: "must not be negative"}
	}
	switch c.Policy {
	case PolicyCopy, PolicyNoFail, PolicyMoveOnly:
	default:
		return ConfigError{Key: "policy", Value: c.Policy, Reason: "want copy, nofail or moveonly"}
	}
	return nil
}
