package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nmtri2104/studypipe/internal/config"
	"github.com/nmtri2104/studypipe/internal/watcher"
)

// NewWatchCmd runs the pipeline as a daemon over a drop folder.
func NewWatchCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the input folder and process every dropped file or link",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), deps)
		},
	}
}

func runWatch(ctx context.Context, deps *Dependencies) error {
	cfg, log := deps.Config, deps.Logger

	if err := ensureDirectories(cfg); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	w, err := watcher.New(cfg.Paths.Input, deps.Processor.ProcessPath, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Stop()

	log.Info(ctx, "========================================")
	log.Info(ctx, "studypipe is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "Mode: %s, language: %s", cfg.Study.Mode, cfg.Study.Language)
	log.Info(ctx, "Chunking: target %.0fs, tolerance ±%.0fs, min gap %.1fs, max %d chunks",
		cfg.Chunking.TargetSeconds, cfg.Chunking.ToleranceSeconds, cfg.Chunking.MinGapSeconds, cfg.Chunking.MaxChunks)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && err != context.Canceled {
		return err
	}

	log.Info(ctx, "studypipe stopped")
	return nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Processing,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Cache,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
