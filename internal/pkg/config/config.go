package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	Provider        ProviderConfig        `mapstructure:"provider"`
	Recommendations RecommendationsConfig `mapstructure:"recommendations"`
	NATS            NATSConfig            `mapstructure:"nats"`
	Telemetry       TelemetryConfig       `mapstructure:"telemetry"`
	Log             LogConfig             `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	CORSOrigins  string `mapstructure:"cors_origins"`
}

// ProviderConfig configures the chat-completion provider.
type ProviderConfig struct {
	APIKey           string  `mapstructure:"api_key"`
	BaseURL          string  `mapstructure:"base_url"`
	Model            string  `mapstructure:"model"`
	MaxTokens        int     `mapstructure:"max_tokens"`
	Temperature      float64 `mapstructure:"temperature"`
	PresencePenalty  float64 `mapstructure:"presence_penalty"`
	FrequencyPenalty float64 `mapstructure:"frequency_penalty"`
	// Timeout in seconds for a single completion call; 0 disables it.
	Timeout int `mapstructure:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (p ProviderConfig) TimeoutDuration() time.Duration {
	return time.Duration(p.Timeout) * time.Second
}

type RecommendationsConfig struct {
	CacheMaxAge int `mapstructure:"cache_max_age"`
}

// NATSConfig is optional; an empty URL disables event publishing.
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.base_url", "")
	v.SetDefault("provider.model", "gpt-3.5-turbo")
	v.SetDefault("provider.max_tokens", 500)
	v.SetDefault("provider.temperature", 0.7)
	v.SetDefault("provider.presence_penalty", 0.3)
	v.SetDefault("provider.frequency_penalty", 0.3)
	v.SetDefault("provider.timeout", 30)
	v.SetDefault("recommendations.cache_max_age", 300)
	v.SetDefault("nats.url", "")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: LOCAINSIGHT_PROVIDER_MODEL → provider.model
	v.SetEnvPrefix("LOCAINSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain names used by existing deployments.
	_ = v.BindEnv("provider.api_key", "LOCAINSIGHT_PROVIDER_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("server.port", "LOCAINSIGHT_SERVER_PORT", "PORT")
	_ = v.BindEnv("log.level", "LOCAINSIGHT_LOG_LEVEL", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Provider.APIKey == "" {
		errs = append(errs, "provider.api_key is required (or set OPENAI_API_KEY)")
	}
	if c.Provider.Model == "" {
		errs = append(errs, "provider.model is required")
	}
	if c.Provider.MaxTokens <= 0 {
		errs = append(errs, fmt.Sprintf("provider.max_tokens must be positive, got %d", c.Provider.MaxTokens))
	}
	if c.Provider.Temperature < 0 || c.Provider.Temperature > 2 {
		errs = append(errs, fmt.Sprintf("provider.temperature must be 0-2, got %g", c.Provider.Temperature))
	}
	if c.Provider.PresencePenalty < -2 || c.Provider.PresencePenalty > 2 {
		errs = append(errs, "provider.presence_penalty must be between -2 and 2")
	}
	if c.Provider.FrequencyPenalty < -2 || c.Provider.FrequencyPenalty > 2 {
		errs = append(errs, "provider.frequency_penalty must be between -2 and 2")
	}
	if c.Provider.Timeout < 0 {
		errs = append(errs, "provider.timeout must not be negative")
	}
	if c.Recommendations.CacheMaxAge < 0 {
		errs = append(errs, "recommendations.cache_max_age must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
