package summarizer

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nmtri2104/studypipe/internal/flashcards"
)

const flashcardPrompt = `You are an expert author of study flashcards. Read the transcript excerpt below and produce a flashcard set covering its key facts and ideas.

Return ONLY a JSON object, no prose and no markdown, with exactly this shape:
{
  "topic": "short title of the excerpt",
  "difficulty": "easy" | "medium" | "hard",
  "cards": [
    {"id": "c1", "question": "...", "answer": "...", "tags": ["optional", "keywords"]}
  ]
}

Rules:
- 5 to 15 cards, each testing one fact or concept from the excerpt
- card ids must be unique within the set
- write all questions and answers in %s
- do not invent facts that are not in the transcript

Transcript:
---
%s
---`

const summaryPrompt = `You are an expert at analyzing educational video content. Based on the transcript below, write a DETAILED summary in %s.

Requirements:
- Start with a one-sentence title describing the topic
- List ALL main steps and ideas in order of appearance
- Explain each step, including important notes, tips and warnings
- Keep technical terms in their original language in parentheses
- Use markdown format: headings, bullet points, bold for key terms
- End with an "Important notes" section when something deserves emphasis

Transcript:
---
%s
---`

// GenerateFlashcards asks Gemini for a flashcard set over the given text.
// The response must match the JSON contract exactly; anything else is
// rejected with ErrBadResponse rather than repaired.
func (s *implSummarizer) GenerateFlashcards(ctx context.Context, transcriptText, lang string) (*flashcards.ChunkSet, error) {
	prompt := fmt.Sprintf(flashcardPrompt, languageName(lang), transcriptText)

	raw, err := s.callGemini(ctx, prompt)
	if err != nil {
		return nil, err
	}

	set, err := parseChunkSet(raw)
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Summarize asks Gemini for a markdown summary of the given text.
func (s *implSummarizer) Summarize(ctx context.Context, transcriptText, lang string) (string, error) {
	prompt := fmt.Sprintf(summaryPrompt, languageName(lang), transcriptText)

	raw, err := s.callGemini(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// callGemini sends the prompt to Gemini and returns the response text.
// Rotates API keys on 429 / quota errors.
func (s *implSummarizer) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(s.apiKeys)
	var lastErr error

	for range attempts {
		keyIdx, key := s.activeKey()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				s.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIdx+1)
				s.rotateKey()
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (s *implSummarizer) activeKey() (int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey, s.apiKeys[s.currentKey]
}

func (s *implSummarizer) rotateKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

// languageName maps a language tag to the name used in prompts.
func languageName(lang string) string {
	switch strings.ToLower(lang) {
	case "vi":
		return "Vietnamese"
	case "en", "":
		return "English"
	default:
		return fmt.Sprintf("the language with code %q", lang)
	}
}
