package job

type Provider string

func (p Provider) String() string { return string(p) }

// Config is the interface that all provider-specific configs must implement
type Config interface {
	Validate() error
	Type() Provider
}

type Job struct {
	ID       string   `mapstructure:"id" json:"id"`
	Provider Provider `mapstructure:"provider" json:"provider"`
	Config   Config   `mapstructure:"config" json:"config"`
}
