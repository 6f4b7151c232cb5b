package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nmtri2104/studypipe/internal/flashcards"
	"github.com/nmtri2104/studypipe/internal/output"
	"github.com/nmtri2104/studypipe/internal/transcript"
)

// ProcessPath dispatches a dropped file by extension.
func (p *implProcessor) ProcessPath(ctx context.Context, path string) error {
	if strings.ToLower(filepath.Ext(path)) == ".url" {
		url, err := readLinkFile(path)
		if err != nil {
			return fmt.Errorf("read link file: %w", err)
		}
		if err := p.ProcessURL(ctx, url); err != nil {
			return err
		}
		return p.archiveSource(ctx, path)
	}
	return p.ProcessFile(ctx, path)
}

// ProcessFile runs the pipeline over a local media file.
func (p *implProcessor) ProcessFile(ctx context.Context, mediaPath string) error {
	startTime := time.Now()
	originalFilename := filepath.Base(mediaPath)

	p.logger.Info(ctx, "Processing file: %s", mediaPath)

	workPath, err := p.moveToProcessing(ctx, mediaPath)
	if err != nil {
		return fmt.Errorf("move to processing: %w", err)
	}

	audioPath, err := p.tools.ExtractAudio(ctx, workPath)
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}
	defer p.cleanupTempFile(ctx, audioPath)

	name := strings.TrimSuffix(originalFilename, filepath.Ext(originalFilename))
	if err := p.run(ctx, name, audioPath, originalFilename); err != nil {
		return err
	}

	if err := p.archiveSource(ctx, workPath); err != nil {
		p.logger.Warn(ctx, "Failed to archive source: %v", err)
	}

	p.logger.Info(ctx, "Processing completed in %s: %s", time.Since(startTime), originalFilename)
	return nil
}

// ProcessURL runs the pipeline over a video URL.
func (p *implProcessor) ProcessURL(ctx context.Context, url string) error {
	startTime := time.Now()
	jobID := uuid.NewString()[:8]

	p.logger.Info(ctx, "[%s] Processing URL: %s", jobID, url)

	audioPath := filepath.Join(p.cfg.Paths.Temp, "yt-"+jobID+".wav")
	if _, err := p.tools.DownloadAudio(ctx, url, audioPath); err != nil {
		return fmt.Errorf("download audio: %w", err)
	}
	defer p.cleanupTempFile(ctx, audioPath)

	if err := p.run(ctx, "yt-"+jobID, audioPath, url); err != nil {
		return err
	}

	p.logger.Info(ctx, "[%s] Processing completed in %s", jobID, time.Since(startTime))
	return nil
}

// run transcribes the audio, chunks the transcript and produces the study
// artifacts configured by study.mode.
func (p *implProcessor) run(ctx context.Context, name, audioPath, source string) error {
	res, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}
	if len(res.Segments) == 0 {
		return fmt.Errorf("transcript is empty: %s", source)
	}

	chunks := p.chunker.Split(ctx, res.Segments, res.TotalDuration)
	p.logger.Info(ctx, "Transcript: %d segments over %.0fs split into %d chunks",
		len(res.Segments), res.TotalDuration, len(chunks))

	lang := p.cfg.Study.Language
	mode := p.cfg.Study.Mode

	if mode == "flashcards" || mode == "both" {
		if err := p.buildFlashcards(ctx, name, chunks, lang, source); err != nil {
			return fmt.Errorf("build flashcards: %w", err)
		}
	}
	if mode == "summary" || mode == "both" {
		if err := p.buildSummary(ctx, name, chunks, lang); err != nil {
			return fmt.Errorf("build summary: %w", err)
		}
	}

	return nil
}

func (p *implProcessor) buildFlashcards(ctx context.Context, name string, chunks []transcript.Chunk, lang, source string) error {
	set, err := p.aggregator.Aggregate(ctx, chunks, lang, source, p.generateChunkSet)
	if err != nil {
		return err
	}

	mdPath := filepath.Join(p.cfg.Paths.Output, name+".flashcards.md")
	if err := output.WriteStudySetMarkdown(set, mdPath); err != nil {
		return err
	}

	docxPath := filepath.Join(p.cfg.Paths.Output, name+".flashcards.docx")
	if err := output.StudySetDocx(set, docxPath); err != nil {
		return fmt.Errorf("write study set docx: %w", err)
	}

	p.logger.Info(ctx, "Flashcards written: %s (%d cards from %d/%d chunks)",
		mdPath, len(set.Cards), set.Meta.SuccessfulChunks, set.Meta.TotalChunks)
	return nil
}

func (p *implProcessor) generateChunkSet(ctx context.Context, chunk transcript.Chunk, lang string) (*flashcards.ChunkSet, error) {
	return p.summarizer.GenerateFlashcards(ctx, chunk.Text, lang)
}

func (p *implProcessor) buildSummary(ctx context.Context, name string, chunks []transcript.Chunk, lang string) error {
	summary, err := p.summarizeChunks(ctx, chunks, lang)
	if err != nil {
		return err
	}

	mdPath := filepath.Join(p.cfg.Paths.Output, name+".summary.md")
	if err := output.WriteSummaryMarkdown(name, summary, mdPath); err != nil {
		return err
	}

	docxPath := filepath.Join(p.cfg.Paths.Output, name+".summary.docx")
	if err := output.MarkdownDocx(name, summary, docxPath); err != nil {
		return fmt.Errorf("write summary docx: %w", err)
	}

	p.logger.Info(ctx, "Summary written: %s", mdPath)
	return nil
}

// summarizeChunks summarizes each chunk in turn and joins the parts.
// Individual failures are logged and skipped; only losing every part is
// an error.
func (p *implProcessor) summarizeChunks(ctx context.Context, chunks []transcript.Chunk, lang string) (string, error) {
	if len(chunks) == 1 {
		return p.summarizer.Summarize(ctx, chunks[0].Text, lang)
	}

	var parts []string
	failCount := 0

	for i, chunk := range chunks {
		p.logger.Info(ctx, "[%d/%d] Summarizing chunk (%.0fs - %.0fs)", i+1, len(chunks), chunk.StartTime, chunk.EndTime)

		part, err := p.summarizer.Summarize(ctx, chunk.Text, lang)
		if err != nil {
			p.logger.Error(ctx, "Failed to summarize chunk %d: %v", i, err)
			failCount++
			continue
		}
		parts = append(parts, fmt.Sprintf("## Part %d\n\n%s", i+1, strings.TrimSpace(part)))
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("all %d chunks failed to summarize", len(chunks))
	}
	if failCount > 0 {
		p.logger.Warn(ctx, "Summary is partial: %d/%d chunks succeeded", len(parts), len(chunks))
	}

	return strings.Join(parts, "\n\n"), nil
}
