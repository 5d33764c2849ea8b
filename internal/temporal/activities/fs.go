package activities

import (
	"context"
	"fmt"
	"os"

	"go.temporal.io/sdk/activity"
)

type FileCleanupActivityInput struct {
	FilePath string `json:"file_path"`
}

type FileCleanupActivityOutput struct{}

func (a *Activities) FileCleanupActivity(ctx context.Context, input FileCleanupActivityInput) (*FileCleanupActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("removing file", "path", input.FilePath)

	if err := os.Remove(input.FilePath); err != nil {
		return nil, fmt.Errorf("failed to remove file: %w", err)
	}

	return &FileCleanupActivityOutput{}, nil
}
