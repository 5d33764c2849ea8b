package activities

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.temporal.io/sdk/activity"

	"stmtagent/internal/job"
	"stmtagent/pkg/s3"
)

type ArchiveUploadS3ActivityInput struct {
	FilePath string             `json:"file_path"`
	Name     string             `json:"name"`
	Archive  *job.ArchiveConfig `json:"archive"`
}

type ArchiveUploadS3ActivityOutput struct {
	Key string `json:"key"`
}

// ArchiveUploadS3Activity pushes the statement bundle to the configured
// S3-compatible archive bucket.
func (a *Activities) ArchiveUploadS3Activity(ctx context.Context, input ArchiveUploadS3ActivityInput) (*ArchiveUploadS3ActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Debug("ArchiveUploadS3Activity called", "filePath", input.FilePath)

	client, err := s3.NewClient(ctx, input.Archive.Region, input.Archive.Endpoint,
		input.Archive.AccessKeyID, input.Archive.SecretAccessKey)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(input.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	key := path.Join(input.Archive.Prefix, input.Name)
	logger.Info("Uploading archive to S3", "bucket", input.Archive.Bucket, "key", key, "size", fileInfo.Size())

	_, err = client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(input.Archive.Bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(fileInfo.Size()),
		ContentType:   aws.String("application/zip"),
	})
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	logger.Info("Archive uploaded successfully to S3", "key", key)
	return &ArchiveUploadS3ActivityOutput{Key: key}, nil
}
