// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Process configuration and loading.

package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/momentics/hioload-tcp/client"
	"github.com/momentics/hioload-tcp/server"
)

// Queue kinds accepted in WorkersConfig.QueueKind.
const (
	QueueBounded  = "bounded"
	QueueGrowable = "growable"
)

// EnvPrefix prefixes environment overrides, e.g. HIOLOAD_SERVER_PORT=9000.
const EnvPrefix = "HIOLOAD"

// Config is the complete configuration of a hioload-tcp process.
//
// Sources in order of precedence:
//  1. Environment variables (HIOLOAD_*)
//  2. Configuration file (YAML)
//  3. Default values
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Server  server.Config `mapstructure:"server"`
	Client  client.Config `mapstructure:"client"`
	Workers WorkersConfig `mapstructure:"workers"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level: DEBUG, INFO, WARN, ERROR (case-insensitive).
	Level string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	// Format: text or json.
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// WorkersConfig sizes the connection queue and the goroutines draining it.
type WorkersConfig struct {
	Count int `mapstructure:"count" validate:"min=1"`
	// QueueKind selects a bounded (backpressure) or growable queue.
	QueueKind string `mapstructure:"queue_kind" validate:"required,oneof=bounded growable"`
	// QueueCapacity is the bounded capacity, or the initial growable capacity.
	QueueCapacity int `mapstructure:"queue_capacity" validate:"min=1"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

// DefaultConfig returns a fully populated default configuration.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields. Booleans are left as loaded.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}

	sd := server.DefaultConfig()
	if cfg.Server.Backlog == 0 {
		cfg.Server.Backlog = sd.Backlog
	}
	if cfg.Server.PollInterval == 0 {
		cfg.Server.PollInterval = sd.PollInterval
	}

	cd := client.DefaultConfig()
	if cfg.Client.MaxAttempts == 0 {
		cfg.Client.MaxAttempts = cd.MaxAttempts
	}
	if cfg.Client.MinBackoff == 0 {
		cfg.Client.MinBackoff = cd.MinBackoff
	}
	if cfg.Client.MaxBackoff == 0 {
		cfg.Client.MaxBackoff = cd.MaxBackoff
	}
	if cfg.Client.Factor == 0 {
		cfg.Client.Factor = cd.Factor
	}

	if cfg.Workers.Count == 0 {
		cfg.Workers.Count = 4
	}
	if cfg.Workers.QueueKind == "" {
		cfg.Workers.QueueKind = QueueBounded
	}
	if cfg.Workers.QueueCapacity == 0 {
		cfg.Workers.QueueCapacity = 30
	}

	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = "127.0.0.1:9090"
	}
}

// Load reads configuration from configPath (optional) and the environment,
// applies defaults and validates the result.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setupViper(v, configPath)

	if err := readConfigFile(v, configPath); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func setupViper(v *viper.Viper, configPath string) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about.
	for _, key := range []string{
		"logging.level", "logging.format",
		"server.port", "server.backlog", "server.poll_interval", "server.reuse_addr",
		"client.max_attempts", "client.min_backoff", "client.max_backoff", "client.factor", "client.jitter",
		"workers.count", "workers.queue_kind", "workers.queue_capacity",
		"metrics.enabled", "metrics.addr",
	} {
		_ = v.BindEnv(key)
	}
	v.SetDefault("server.reuse_addr", true)
	v.SetDefault("client.jitter", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
		return
	}
	v.SetConfigName("hioload")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
}

func readConfigFile(v *viper.Viper, configPath string) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && configPath == "" {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}
