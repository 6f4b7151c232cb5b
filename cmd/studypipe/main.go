package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nmtri2104/studypipe/internal/cli"
	"github.com/nmtri2104/studypipe/internal/config"
	"github.com/nmtri2104/studypipe/internal/logger"
	"github.com/nmtri2104/studypipe/internal/media"
	"github.com/nmtri2104/studypipe/internal/processor"
	"github.com/nmtri2104/studypipe/internal/summarizer"
	"github.com/nmtri2104/studypipe/internal/transcriber"
	"github.com/nmtri2104/studypipe/pkg/executor"
)

func main() {
	configPath := os.Getenv("STUDYPIPE_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	exec := executor.New()
	tools := media.New(cfg, exec, log)
	trans := transcriber.New(cfg, exec, log)

	sum, err := summarizer.New(cfg.Gemini.APIKeys, cfg.Gemini.Model, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create summarizer: %v\n", err)
		os.Exit(1)
	}

	proc := processor.New(cfg, log, tools, trans, sum)

	deps := &cli.Dependencies{
		Config:    cfg,
		Logger:    log,
		Processor: proc,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := cli.NewRootCmd(deps).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
