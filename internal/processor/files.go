package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// moveToProcessing moves an input file into the processing folder so the
// watcher never picks it up twice.
func (p *implProcessor) moveToProcessing(ctx context.Context, path string) (string, error) {
	destPath := filepath.Join(p.cfg.Paths.Processing, filepath.Base(path))

	p.logger.Debug(ctx, "Moving to processing folder: %s -> %s", path, destPath)

	if err := os.Rename(path, destPath); err != nil {
		return "", err
	}
	return destPath, nil
}

// archiveSource moves a fully processed source file into the archive folder.
func (p *implProcessor) archiveSource(ctx context.Context, path string) error {
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))

	p.logger.Debug(ctx, "Archiving source: %s -> %s", path, destPath)

	if err := os.Rename(path, destPath); err != nil {
		return fmt.Errorf("archive source: %w", err)
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}

// readLinkFile extracts the video URL from a dropped .url file. Both
// plain one-line files and Windows internet shortcuts are accepted.
func readLinkFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "URL="); ok {
			line = strings.TrimSpace(v)
		}
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			return line, nil
		}
	}

	return "", fmt.Errorf("no URL found in %s", path)
}
