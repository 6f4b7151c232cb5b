package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nmtri2104/studypipe/internal/config"
	"github.com/nmtri2104/studypipe/internal/logger"
	"github.com/nmtri2104/studypipe/pkg/executor"
)

// Tools wraps the external media binaries (yt-dlp, ffmpeg). It is created
// once from config and passed around explicitly; the binary locations are
// owned by the caller, never cached at package level.
type Tools struct {
	ytdlp    string
	ffmpeg   string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Tools handle using the binary paths from config.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) *Tools {
	return &Tools{
		ytdlp:    cfg.Tools.YtDlpPath,
		ffmpeg:   cfg.Tools.FFmpegPath,
		executor: exec,
		logger:   log,
	}
}

// DownloadAudio fetches the audio track of a video URL as WAV at destPath.
func (t *Tools) DownloadAudio(ctx context.Context, url, destPath string) (string, error) {
	t.logger.Info(ctx, "Downloading audio: %s", url)

	// yt-dlp replaces the template extension itself after extraction.
	outputTemplate := strings.TrimSuffix(destPath, filepath.Ext(destPath)) + ".%(ext)s"

	args := []string{
		"-x",
		"--audio-format", "wav",
		"--no-playlist",
		"-o", outputTemplate,
		url,
	}

	if _, err := t.executor.Execute(ctx, t.ytdlp, args...); err != nil {
		return "", fmt.Errorf("yt-dlp download audio: %w", err)
	}

	t.logger.Info(ctx, "Audio downloaded: %s", destPath)
	return destPath, nil
}

// ExtractAudio converts a local media file to 16kHz mono WAV, the format
// whisper.cpp works best with.
func (t *Tools) ExtractAudio(ctx context.Context, mediaPath string) (string, error) {
	audioPath := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + "_temp.wav"

	t.logger.Info(ctx, "Extracting audio: %s", mediaPath)

	// -vn: audio only
	// -ar 16000 -ac 1: 16kHz mono, optimal for whisper
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpeg, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	t.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
