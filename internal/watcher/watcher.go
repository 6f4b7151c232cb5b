package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nmtri2104/studypipe/internal/logger"
)

// supportedExtensions lists everything the pipeline accepts: video and
// audio containers plus .url link files pointing at a video.
var supportedExtensions = []string{
	".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv",
	".mp3", ".wav", ".m4a", ".flac", ".ogg",
	".url",
}

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// Start begins monitoring the input directory for new media or link files.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(supportedExtensions, ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create == fsnotify.Create {
				if !w.isSupportedFile(event.Name) {
					w.logger.Debug(ctx, "Ignoring unsupported file: %s", event.Name)
					continue
				}

				w.logger.Info(ctx, "New input detected: %s", event.Name)

				// Small delay to ensure file is fully written
				time.Sleep(500 * time.Millisecond)

				// Acquire semaphore slot (blocks if max concurrent reached)
				select {
				case w.semaphore <- struct{}{}:
					w.wg.Add(1)
					go func(filePath string) {
						defer w.wg.Done()
						defer func() { <-w.semaphore }()

						if err := w.handler(ctx, filePath); err != nil {
							w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
						}
					}(event.Name)
				case <-ctx.Done():
					return ctx.Err()
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) isSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, supported := range supportedExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
