package config

import (
	"errors"
	"fmt"
)

const (
	SourceBlockfrost = "blockfrost"
	SourceDbsync     = "dbsync"
)

type Config struct {
	LogLevel    string            `mapstructure:"log-level"`
	EpochStart  int               `mapstructure:"epoch-start"`
	EpochEnd    int               `mapstructure:"epoch-end"`
	Output      OutputConfig      `mapstructure:"output"`
	Blockfrost  BlockFrostConfig  `mapstructure:"blockfrost"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Pushgateway PushgatewayConfig `mapstructure:"pushgateway"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

type BlockFrostConfig struct {
	ProjectID string `mapstructure:"project-id"`
	Endpoint  string `mapstructure:"endpoint"`
	Timeout   int    `mapstructure:"timeout"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max-open-conns"`
}

type PushgatewayConfig struct {
	URL string `mapstructure:"url"`
	Job string `mapstructure:"job"`
}

// Validate checks the settings required by the given source.
func (c *Config) Validate(source string) error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s. Log level must be one of debug, info, warn or error", c.LogLevel)
	}

	if c.Output.Dir == "" {
		return errors.New("output dir is required")
	}

	switch source {
	case SourceBlockfrost:
		if c.Blockfrost.ProjectID == "" || c.Blockfrost.Endpoint == "" {
			return errors.New("blockfrost project-id and endpoint are required")
		}
		if c.Blockfrost.Timeout < 0 {
			return errors.New("blockfrost timeout must not be negative")
		}
	case SourceDbsync:
		if c.Database.URL == "" {
			return errors.New("database url is required")
		}
		if c.Database.MaxOpenConns <= 0 {
			return errors.New("database max-open-conns must be greater than 0")
		}
	default:
		return fmt.Errorf("invalid source: %s. Source must be either %s or %s", source, SourceBlockfrost, SourceDbsync)
	}

	if c.Pushgateway.URL != "" && c.Pushgateway.Job == "" {
		return errors.New("pushgateway job is required when pushgateway url is set")
	}

	return nil
}
