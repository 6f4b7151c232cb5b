package processor

import "context"

// Processor runs the full pipeline for one input.
type Processor interface {
	// ProcessPath handles a dropped file: .url files are read as video
	// links, everything else is treated as local media.
	ProcessPath(ctx context.Context, path string) error
	ProcessFile(ctx context.Context, mediaPath string) error
	ProcessURL(ctx context.Context, url string) error
}
