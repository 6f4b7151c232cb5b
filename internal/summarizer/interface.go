package summarizer

import (
	"context"

	"github.com/nmtri2104/studypipe/internal/flashcards"
)

// Summarizer turns transcript text into study material via the LLM.
type Summarizer interface {
	GenerateFlashcards(ctx context.Context, transcriptText, lang string) (*flashcards.ChunkSet, error)
	Summarize(ctx context.Context, transcriptText, lang string) (string, error)
}
