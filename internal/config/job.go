package config

// Job represents a job entry as it appears in the config file. The raw
// config map is materialized into a typed provider config by FindJob.
type Job struct {
	ID       string                 `mapstructure:"id"`
	Provider string                 `mapstructure:"provider"`
	Config   map[string]interface{} `mapstructure:"config"`
}
