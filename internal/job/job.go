package job

import (
	"encoding/json"
	"fmt"
)

// configFactories maps providers to their config factory functions
var configFactories = map[Provider]func() Config{
	ProviderSFTPMirror:      func() Config { return new(MirrorConfig) },
	ProviderStatementImport: func() Config { return new(ImportConfig) },
}

// NewConfig creates a new empty config for the given provider
func NewConfig(provider Provider) (Config, error) {
	factory, ok := configFactories[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
	return factory(), nil
}

// ConfigFromMap loads a typed Config from a raw map using the provider's factory
func ConfigFromMap(provider Provider, m map[string]any) (Config, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	cfg, err := NewConfig(provider)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// LoadAs extracts and type-asserts the config from a Job
func LoadAs[T Config](j Job) (T, error) {
	var zero T
	if j.Config == nil {
		return zero, fmt.Errorf("config is nil")
	}
	result, ok := j.Config.(T)
	if !ok {
		return zero, fmt.Errorf("failed to cast config to %T (actual type: %T)", zero, j.Config)
	}
	return result, nil
}

type jobEnvelope struct {
	ID       string          `json:"id"`
	Provider Provider        `json:"provider"`
	Config   json.RawMessage `json:"config"`
}

// MarshalJSON keeps the provider tag next to the config payload so the
// concrete type survives the trip through Temporal's payload converter.
func (j Job) MarshalJSON() ([]byte, error) {
	var raw json.RawMessage
	if j.Config != nil {
		data, err := json.Marshal(j.Config)
		if err != nil {
			return nil, err
		}
		raw = data
	}
	return json.Marshal(jobEnvelope{ID: j.ID, Provider: j.Provider, Config: raw})
}

func (j *Job) UnmarshalJSON(data []byte) error {
	var env jobEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	j.ID = env.ID
	j.Provider = env.Provider
	j.Config = nil
	if len(env.Config) == 0 {
		return nil
	}

	cfg, err := NewConfig(env.Provider)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(env.Config, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	j.Config = cfg
	return nil
}
