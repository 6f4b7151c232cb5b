package processor

import (
	"github.com/nmtri2104/studypipe/internal/config"
	"github.com/nmtri2104/studypipe/internal/flashcards"
	"github.com/nmtri2104/studypipe/internal/logger"
	"github.com/nmtri2104/studypipe/internal/media"
	"github.com/nmtri2104/studypipe/internal/summarizer"
	"github.com/nmtri2104/studypipe/internal/transcriber"
	"github.com/nmtri2104/studypipe/internal/transcript"
)

type implProcessor struct {
	cfg         *config.Config
	logger      logger.Logger
	tools       *media.Tools
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	chunker     *transcript.Chunker
	aggregator  *flashcards.Aggregator
}

// New creates a Processor wired to the external collaborators.
func New(cfg *config.Config, log logger.Logger, tools *media.Tools, tr transcriber.Transcriber, sum summarizer.Summarizer) Processor {
	chunker := transcript.NewChunker(transcript.Options{
		TargetDuration: cfg.Chunking.TargetSeconds,
		Tolerance:      cfg.Chunking.ToleranceSeconds,
		MinGap:         cfg.Chunking.MinGapSeconds,
		MaxChunks:      cfg.Chunking.MaxChunks,
	}, log)

	return &implProcessor{
		cfg:         cfg,
		logger:      log,
		tools:       tools,
		transcriber: tr,
		summarizer:  sum,
		chunker:     chunker,
		aggregator:  flashcards.NewAggregator(log, cfg.Performance.MaxLLMConcurrent),
	}
}
