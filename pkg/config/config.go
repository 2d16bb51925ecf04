package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Placeholder credentials used when nothing is configured. Calls signed with
// these are rejected upstream; main logs a warning when they are in effect.
const (
	PlaceholderPublicKey  = "YOUR_PUBLIC_KEY"
	PlaceholderPrivateKey = "YOUR_PRIVATE_KEY"

	DefaultValidationURL = "https://vapi.databowl.com/api/v1/validation"
	DefaultLeadURL       = "https://api.databowl.com/v1/leads/{campaign_id}/{supplier_id}/submit"
)

// Config holds all application configuration values. It is loaded once at
// start-up and handed to constructors by value.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	DataBowl DataBowlConfig `mapstructure:"databowl"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port    string `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// DataBowlConfig is the external API configuration.
type DataBowlConfig struct {
	PublicKey     string        `mapstructure:"public_key"`
	PrivateKey    string        `mapstructure:"private_key"`
	ValidationURL string        `mapstructure:"validation_url"`
	LeadURL       string        `mapstructure:"lead_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	// EmailFallbackOnError accepts a well-formed address when the email
	// lookup fails. Undeliverable addresses get through while it is on.
	EmailFallbackOnError bool `mapstructure:"email_fallback_on_error"`
}

// UsesPlaceholderKeys reports whether either key is still the built-in placeholder.
func (d DataBowlConfig) UsesPlaceholderKeys() bool {
	return d.PublicKey == PlaceholderPublicKey || d.PrivateKey == PlaceholderPrivateKey
}

// RedisConfig configures the optional lead submission ledger. An empty
// Address disables it.
type RedisConfig struct {
	Address   string        `mapstructure:"address"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	DedupeTTL time.Duration `mapstructure:"dedupe_ttl"`
	// PendingTTL bounds how long an unfinished submission blocks retries
	// with the same key, e.g. after a crash mid-request.
	PendingTTL time.Duration `mapstructure:"pending_ttl"`
}

func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// LoadConfig reads configuration from an optional .env file, an optional
// config file and the environment, in increasing order of precedence.
// configPath may be empty, in which case config.yaml is looked up in the
// working directory and ./configs.
func LoadConfig(configPath string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "release")

	v.SetDefault("databowl.public_key", PlaceholderPublicKey)
	v.SetDefault("databowl.private_key", PlaceholderPrivateKey)
	v.SetDefault("databowl.validation_url", DefaultValidationURL)
	v.SetDefault("databowl.lead_url", DefaultLeadURL)
	v.SetDefault("databowl.timeout", 10*time.Second)
	v.SetDefault("databowl.email_fallback_on_error", true)

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dedupe_ttl", 24*time.Hour)
	v.SetDefault("redis.pending_ttl", time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindLegacyEnv maps the short variable names used by hosting platforms.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"server.port":     {"SERVER_PORT", "PORT"},
		"server.gin_mode": {"SERVER_GIN_MODE", "GIN_MODE"},
		"logging.level":   {"LOGGING_LEVEL", "LOG_LEVEL"},
		"logging.format":  {"LOGGING_FORMAT", "LOG_FORMAT"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("error binding %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks the values that would otherwise fail on first request.
func (c Config) Validate() error {
	if c.DataBowl.PublicKey == "" || c.DataBowl.PrivateKey == "" {
		return errors.New("databowl.public_key and databowl.private_key are required")
	}
	if err := checkURL("databowl.validation_url", c.DataBowl.ValidationURL); err != nil {
		return err
	}
	if err := checkURL("databowl.lead_url", c.DataBowl.LeadURL); err != nil {
		return err
	}
	if c.DataBowl.Timeout <= 0 {
		return errors.New("databowl.timeout must be positive")
	}
	if c.Redis.Enabled() && c.Redis.DedupeTTL <= 0 {
		return errors.New("redis.dedupe_ttl must be positive")
	}
	if c.Redis.Enabled() && c.Redis.PendingTTL <= 0 {
		return errors.New("redis.pending_ttl must be positive")
	}
	return nil
}

func checkURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host", name)
	}
	return nil
}
