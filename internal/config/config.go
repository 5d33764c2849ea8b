package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"stmtagent/internal/job"
)

// Config represents the agent configuration shared by worker and run modes
type Config struct {
	TempDir  string         `mapstructure:"temp_dir"`
	Temporal TemporalConfig `mapstructure:"temporal"`
	Log      LogConfig      `mapstructure:"log"`
	Jobs     []Job          `mapstructure:"jobs"`
}

// NewConfig loads configuration from file and environment variables.
// configPath: path to the config file (e.g., "config.yaml"). If empty, looks
// for "config.yaml" in the current directory.
func NewConfig(ctx context.Context, configPath string) (*Config, error) {
	config := new(Config)

	v := viper.New()

	v.SetDefault("temp_dir", os.TempDir())

	// Temporal connection defaults
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "statements")
	v.SetDefault("temporal.tls", false)

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "stdout")
	v.SetDefault("log.max_size", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", false)

	if configPath != "" {
		// An explicitly named config file must exist. Fail before any other
		// side effect so a typo'd path never half-runs a job.
		if _, err := os.Stat(configPath); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("Configuration file %s not found", configPath)
			}
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Println("No config file found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("STMTAGENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(config); err != nil {
		return nil, err
	}

	return config, nil
}

// FindJob materializes the typed config for the named job. The job's
// required fields are validated in a single pass before it is returned.
func (c *Config) FindJob(id string) (*job.Job, error) {
	for i := range c.Jobs {
		if c.Jobs[i].ID != id {
			continue
		}
		cfg, err := job.ConfigFromMap(job.Provider(c.Jobs[i].Provider), c.Jobs[i].Config)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", id, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("job %s: %w", id, err)
		}
		return &job.Job{
			ID:       c.Jobs[i].ID,
			Provider: job.Provider(c.Jobs[i].Provider),
			Config:   cfg,
		}, nil
	}
	return nil, fmt.Errorf("job not found: %s", id)
}
