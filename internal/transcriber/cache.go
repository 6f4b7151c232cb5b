package transcriber

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"lukechampine.com/blake3"
)

// cachePathFor returns the cache file for the audio's content hash, so an
// identical upload never pays for a second transcription.
func (t *implTranscriber) cachePathFor(audioPath string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio for hashing: %w", err)
	}
	defer f.Close()

	h := blake3.New(32, nil)
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash audio file: %w", err)
	}

	return filepath.Join(t.cfg.Paths.Cache, hex.EncodeToString(h.Sum(nil))+".srt"), nil
}

func (t *implTranscriber) storeCache(ctx context.Context, cachePath string, data []byte) {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		t.logger.Warn(ctx, "Failed to create cache dir: %v", err)
		return
	}
	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		t.logger.Warn(ctx, "Failed to write transcript cache: %v", err)
		return
	}
	t.logger.Debug(ctx, "Transcript cached: %s", cachePath)
}
