package summarizer

import (
	"fmt"
	"sync"

	"github.com/nmtri2104/studypipe/internal/logger"
)

type implSummarizer struct {
	apiKeys []string
	logger  logger.Logger
	model   string

	mu         sync.Mutex
	currentKey int
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, log logger.Logger) (Summarizer, error) {
	if len(apiKeys) == 0 {
		return nil, fmt.Errorf("at least one Gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &implSummarizer{
		apiKeys: apiKeys,
		logger:  log,
		model:   model,
	}, nil
}
