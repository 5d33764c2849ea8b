package mirror

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// Source lists and opens files on the remote side. It is an interface so
// the pull logic can be exercised against fixtures without an SFTP server.
type Source interface {
	List(dir string) ([]os.FileInfo, error)
	Fetch(path string) (io.ReadCloser, error)
}

// Transfer records one downloaded file.
type Transfer struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Report summarizes a pull.
type Report struct {
	Transferred []Transfer `json:"transferred"`
	Skipped     int        `json:"skipped"`
}

// NeedsTransfer decides whether a remote file must be downloaded. A file is
// pulled when no local copy exists, when the remote modification time is
// after the local one, or when the sizes differ. Remote statement drops are
// write-once, so a size mismatch means a truncated earlier download.
func NeedsTransfer(remoteSize int64, remoteMod int64, local os.FileInfo) bool {
	if local == nil {
		return true
	}
	if remoteMod > local.ModTime().Unix() {
		return true
	}
	return remoteSize != local.Size()
}

// Pull mirrors remoteDir into localDir, one way. Local files with no remote
// counterpart are left alone; nothing is ever uploaded. Downloads go to a
// temporary name and are renamed into place so a killed run never leaves a
// half-written statement under its final name.
func Pull(ctx context.Context, src Source, remoteDir, localDir string) (*Report, error) {
	if err := os.MkdirAll(localDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local directory %s: %w", localDir, err)
	}

	entries, err := src.List(remoteDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote directory %s: %w", remoteDir, err)
	}

	report := new(Report)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if entry.IsDir() || !entry.Mode().IsRegular() {
			continue
		}

		localPath := filepath.Join(localDir, entry.Name())
		local, err := os.Stat(localPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return report, fmt.Errorf("failed to stat %s: %w", localPath, err)
			}
			local = nil
		}

		if !NeedsTransfer(entry.Size(), entry.ModTime().Unix(), local) {
			report.Skipped++
			continue
		}

		size, err := fetchFile(src, path.Join(remoteDir, entry.Name()), localPath, entry)
		if err != nil {
			return report, err
		}
		report.Transferred = append(report.Transferred, Transfer{Name: entry.Name(), Size: size})
	}

	return report, nil
}

func fetchFile(src Source, remotePath, localPath string, entry os.FileInfo) (int64, error) {
	remote, err := src.Fetch(remotePath)
	if err != nil {
		return 0, fmt.Errorf("failed to open remote file %s: %w", remotePath, err)
	}
	defer remote.Close()

	tmp, err := os.CreateTemp(filepath.Dir(localPath), "."+filepath.Base(localPath)+".*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, remote)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("failed to download %s: %w", remotePath, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close temp file: %w", err)
	}

	// Carry the remote mtime over so the next run's newer-only comparison
	// sees this copy as current.
	if err := os.Chtimes(tmp.Name(), entry.ModTime(), entry.ModTime()); err != nil {
		return 0, fmt.Errorf("failed to set mtime on %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), localPath); err != nil {
		return 0, fmt.Errorf("failed to move %s into place: %w", localPath, err)
	}

	return size, nil
}
