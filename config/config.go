package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/go-playground/validator.v9"
)

// Config wraps viper with the scene defaults
type Config struct {
	config *viper.Viper
}

// Settings is the typed view of the configuration
type Settings struct {
	Scene struct {
		TickInterval   time.Duration `mapstructure:"tick_interval" validate:"gt=0"`
		TimeMultiplier float64       `mapstructure:"time_multiplier" validate:"gte=0"`
		MaxTicks       int           `mapstructure:"max_ticks" validate:"gte=0"`
	} `mapstructure:"scene"`
	Changefeed struct {
		Enabled bool   `mapstructure:"enabled"`
		URL     string `mapstructure:"url" validate:"required_with=Enabled"`
		Subject string `mapstructure:"subject" validate:"required"`
	} `mapstructure:"changefeed"`
	Metrics struct {
		Enabled bool   `mapstructure:"enabled"`
		Addr    string `mapstructure:"addr" validate:"required_with=Enabled"`
		Prefix  string `mapstructure:"prefix"`
	} `mapstructure:"metrics"`
	Logger struct {
		Level string `mapstructure:"level" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	} `mapstructure:"logger"`
}

// New creates a config with default values, cfgs are merged on top in order
func New(cfgs ...*viper.Viper) *Config {
	var cfg *viper.Viper
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	} else {
		cfg = viper.New()
	}

	cfg.SetEnvPrefix("scene")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	c := &Config{config: cfg}
	c.fillDefaultValues()
	return c
}

// NewFromFile reads the config file at path on top of the defaults
func NewFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return New(v), nil
}

func (c *Config) fillDefaultValues() {
	defaultsMap := map[string]interface{}{
		"scene.tick_interval":   "50ms",
		"scene.time_multiplier": 1.0,
		"scene.max_ticks":       0,

		"changefeed.enabled": false,
		"changefeed.url":     "nats://localhost:4222",
		"changefeed.subject": "scene.changes",

		"metrics.enabled": false,
		"metrics.addr":    ":9090",
		"metrics.prefix":  "scene",

		"logger.level":      "info",
		"logger.dir":        "",
		"logger.rotation":   false,
		"logger.stdout":     true,
		"logger.maxsize":    100,
		"logger.maxage":     7,
		"logger.maxbackups": 10,
		"logger.localtime":  true,
		"logger.compress":   false,
	}

	for param := range defaultsMap {
		if c.config.Get(param) == nil {
			c.config.SetDefault(param, defaultsMap[param])
		}
	}
}

// Viper returns the underlying viper, the logger is initialized from it
func (c *Config) Viper() *viper.Viper {
	return c.config
}

// Settings unmarshals and validates the typed view
func (c *Config) Settings() (*Settings, error) {
	s := &Settings{}
	if err := c.config.Unmarshal(s); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetDuration returns a duration from the inner config
func (c *Config) GetDuration(s string) time.Duration {
	return c.config.GetDuration(s)
}

// GetString returns a string from the inner config
func (c *Config) GetString(s string) string {
	return c.config.GetString(s)
}

// GetInt returns an int from the inner config
func (c *Config) GetInt(s string) int {
	return c.config.GetInt(s)
}

// GetBool returns an boolean from the inner config
func (c *Config) GetBool(s string) bool {
	return c.config.GetBool(s)
}

// GetFloat64 returns a float64 from the inner config
func (c *Config) GetFloat64(s string) float64 {
	return c.config.GetFloat64(s)
}

// Set sets a value, mostly for tests and command line overrides
func (c *Config) Set(key string, value interface{}) {
	c.config.Set(key, value)
}
