package activities

import (
	"stmtagent/internal/config"
)

// Activities holds all activity implementations for the agent
type Activities struct {
	Config *config.Config
}

// NewActivities creates a new Activities instance with required dependencies
func NewActivities(config *config.Config) *Activities {
	return &Activities{
		Config: config,
	}
}
