package transcriber

import (
	"github.com/nmtri2104/studypipe/internal/config"
	"github.com/nmtri2104/studypipe/internal/logger"
	"github.com/nmtri2104/studypipe/pkg/executor"
)

type implTranscriber struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Transcriber backed by the whisper.cpp binary from config.
// Transcripts are cached under paths.cache keyed by audio content hash.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Transcriber {
	return &implTranscriber{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
