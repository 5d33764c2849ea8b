package activities

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"go.temporal.io/sdk/activity"
)

type ArchiveZipActivityInput struct {
	SourceDir string `json:"source_dir"`
	RunID     string `json:"run_id"`
}

type ArchiveZipActivityOutput struct {
	FilePath string `json:"file_path"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
	Name     string `json:"name"`
}

// ArchiveZipActivity bundles the mirrored statement directory into a zip
// under the agent temp dir. Dotfiles (the sync marker among them) stay out
// of the bundle.
func (a *Activities) ArchiveZipActivity(ctx context.Context, input ArchiveZipActivityInput) (*ArchiveZipActivityOutput, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("ArchiveZipActivity started", "sourceDir", input.SourceDir)

	name := fmt.Sprintf("statements-%s.zip", input.RunID)
	destPath := filepath.Join(a.Config.TempDir, name)

	zipFile, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create zip file %s: %w", destPath, err)
	}

	zipWriter := zip.NewWriter(zipFile)

	err = filepath.WalkDir(input.SourceDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		relPath, err := filepath.Rel(input.SourceDir, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path for %s: %w", path, err)
		}

		zipEntry, err := zipWriter.Create(filepath.ToSlash(relPath))
		if err != nil {
			return fmt.Errorf("failed to create zip entry for %s: %w", relPath, err)
		}

		fileToZip, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open file %s: %w", path, err)
		}
		defer fileToZip.Close()

		if _, err := io.Copy(zipEntry, fileToZip); err != nil {
			return fmt.Errorf("failed to copy file content for %s: %w", path, err)
		}
		return nil
	})
	if err != nil {
		zipFile.Close()
		return nil, fmt.Errorf("failed during zip creation for %s: %w", input.SourceDir, err)
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip writer: %w", err)
	}
	if err := zipFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close zip file handle: %w", err)
	}

	fileInfo, err := os.Stat(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", destPath, err)
	}

	file, err := os.Open(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip for checksum: %w", err)
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for %s: %w", destPath, err)
	}

	output := &ArchiveZipActivityOutput{
		FilePath: destPath,
		Size:     fileInfo.Size(),
		Checksum: hex.EncodeToString(hash.Sum(nil)),
		Name:     name,
	}

	logger.Info("ArchiveZipActivity completed", "path", destPath, "size", fileInfo.Size())
	return output, nil
}
