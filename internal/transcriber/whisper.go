package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Transcribe converts audio to timestamped segments via whisper.cpp.
// A cached transcript for identical audio content is reused.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	cachePath, err := t.cachePathFor(audioPath)
	if err != nil {
		t.logger.Warn(ctx, "Transcript cache unavailable: %v", err)
	} else if data, err := os.ReadFile(cachePath); err == nil {
		t.logger.Info(ctx, "Transcript cache hit: %s", cachePath)
		return buildResult(string(data))
	}

	srtPath, err := t.runWhisper(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	defer os.Remove(srtPath)

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	if cachePath != "" {
		t.storeCache(ctx, cachePath, data)
	}

	return buildResult(string(data))
}

// runWhisper invokes the whisper.cpp binary and returns the SRT path.
func (t *implTranscriber) runWhisper(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Starting transcription with %d threads: %s", t.cfg.Whisper.Threads, audioPath)

	// -osrt: SRT output keeps the per-segment timing the chunker needs
	// -l: forced language prevents hallucination
	// -ml/-mc 0: no segment length or context limit, better for long audio
	// -bo 5: best-of 5 decoding for accuracy
	args := []string{
		"-m", t.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", t.cfg.Whisper.Language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
		"--prompt", t.cfg.Whisper.Prompt,
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.Whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	t.logger.Info(ctx, "Transcription completed: %s", srtPath)
	return srtPath, nil
}

func buildResult(srtContent string) (*Result, error) {
	segments, err := ParseSRT(srtContent)
	if err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	res := &Result{Segments: segments}
	if len(segments) > 0 {
		res.TotalDuration = segments[len(segments)-1].End()
	}
	return res, nil
}
