package transcriber

import (
	"context"

	"github.com/nmtri2104/studypipe/internal/transcript"
)

// Result is a parsed transcript: ordered segments plus the total spoken
// duration in seconds.
type Result struct {
	Segments      []transcript.Segment
	TotalDuration float64
}

// Transcriber converts an audio file into timestamped segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}
