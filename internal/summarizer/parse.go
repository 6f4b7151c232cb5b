package summarizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nmtri2104/studypipe/internal/flashcards"
)

// ErrBadResponse marks an LLM response that does not match the flashcard
// JSON contract. Such responses are rejected, never guessed at.
var ErrBadResponse = errors.New("response does not match flashcard schema")

type chunkSetJSON struct {
	Topic      string     `json:"topic"`
	Difficulty string     `json:"difficulty"`
	Cards      []cardJSON `json:"cards"`
}

type cardJSON struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags"`
}

// parseChunkSet validates a raw model response against the fixed flashcard
// contract. Markdown code fences around the JSON are tolerated since
// models add them despite instructions; everything else must match.
func parseChunkSet(raw string) (*flashcards.ChunkSet, error) {
	cleaned := stripCodeFence(raw)

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.DisallowUnknownFields()

	var parsed chunkSetJSON
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after JSON object", ErrBadResponse)
	}

	if strings.TrimSpace(parsed.Topic) == "" {
		return nil, fmt.Errorf("%w: missing topic", ErrBadResponse)
	}
	difficulty := flashcards.Difficulty(strings.ToLower(parsed.Difficulty))
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrBadResponse, parsed.Difficulty)
	}
	if len(parsed.Cards) == 0 {
		return nil, fmt.Errorf("%w: no cards", ErrBadResponse)
	}

	set := &flashcards.ChunkSet{
		Topic:      strings.TrimSpace(parsed.Topic),
		Difficulty: difficulty,
	}

	seen := make(map[string]bool)
	for i, c := range parsed.Cards {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("%w: card %d has no id", ErrBadResponse, i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: duplicate card id %q", ErrBadResponse, c.ID)
		}
		seen[c.ID] = true
		if strings.TrimSpace(c.Question) == "" || strings.TrimSpace(c.Answer) == "" {
			return nil, fmt.Errorf("%w: card %q has an empty question or answer", ErrBadResponse, c.ID)
		}

		set.Cards = append(set.Cards, flashcards.Card{
			ID:       strings.TrimSpace(c.ID),
			Question: strings.TrimSpace(c.Question),
			Answer:   strings.TrimSpace(c.Answer),
			Tags:     c.Tags,
		})
	}

	return set, nil
}

// stripCodeFence removes a surrounding ```json ... ``` block if present.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}
