package flashcards

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nmtri2104/studypipe/internal/logger"
	"github.com/nmtri2104/studypipe/internal/transcript"
)

func testAggregator(maxConcurrent int) *Aggregator {
	return NewAggregator(logger.New("error"), maxConcurrent)
}

func makeChunks(n int) []transcript.Chunk {
	chunks := make([]transcript.Chunk, 0, n)
	for i := 0; i < n; i++ {
		chunks = append(chunks, transcript.Chunk{
			Index: i,
			Text:  fmt.Sprintf("chunk %d text", i),
		})
	}
	return chunks
}

func setFor(chunk transcript.Chunk, difficulty Difficulty, cards int) *ChunkSet {
	set := &ChunkSet{
		Topic:      fmt.Sprintf("Topic %d", chunk.Index),
		Difficulty: difficulty,
	}
	for c := 0; c < cards; c++ {
		set.Cards = append(set.Cards, Card{
			ID:       fmt.Sprintf("c%d", c+1),
			Question: fmt.Sprintf("Q%d of chunk %d?", c+1, chunk.Index),
			Answer:   "A",
		})
	}
	return set
}

func TestAggregateNoChunks(t *testing.T) {
	a := testAggregator(0)

	_, err := a.Aggregate(context.Background(), nil, "en", "test", func(ctx context.Context, ch transcript.Chunk, lang string) (*ChunkSet, error) {
		t.Fatal("generate must not be called")
		return nil, nil
	})
	if !errors.Is(err, ErrNoChunks) {
		t.Errorf("Aggregate() error = %v, want ErrNoChunks", err)
	}
}

func TestAggregateTotalFailure(t *testing.T) {
	a := testAggregator(0)

	set, err := a.Aggregate(context.Background(), makeChunks(3), "en", "test", func(ctx context.Context, ch transcript.Chunk, lang string) (*ChunkSet, error) {
		return nil, fmt.Errorf("quota exceeded")
	})
	if !errors.Is(err, ErrAllChunksFailed) {
		t.Errorf("Aggregate() error = %v, want ErrAllChunksFailed", err)
	}
	if set != nil {
		t.Errorf("Aggregate() returned a partial artifact on total failure: %+v", set)
	}
}

func TestAggregatePartialSuccess(t *testing.T) {
	a := testAggregator(0)
	chunks := makeChunks(3)

	set, err := a.Aggregate(context.Background(), chunks, "en", "video.mp4", func(ctx context.Context, ch transcript.Chunk, lang string) (*ChunkSet, error) {
		if ch.Index == 1 {
			return nil, fmt.Errorf("malformed response")
		}
		return setFor(ch, DifficultyMedium, 2), nil
	})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	if set.Meta.TotalChunks != 3 {
		t.Errorf("TotalChunks = %d, want 3", set.Meta.TotalChunks)
	}
	if set.Meta.SuccessfulChunks != 2 {
		t.Errorf("SuccessfulChunks = %d, want 2", set.Meta.SuccessfulChunks)
	}
	if set.Meta.Source != "video.mp4" {
		t.Errorf("Source = %q, want %q", set.Meta.Source, "video.mp4")
	}
	if set.Language != "en" {
		t.Errorf("Language = %q, want %q", set.Language, "en")
	}

	// IDs are renumbered by successful-chunk position, not original index.
	wantIDs := []string{"1-c1", "1-c2", "2-c1", "2-c2"}
	if len(set.Cards) != len(wantIDs) {
		t.Fatalf("got %d cards, want %d", len(set.Cards), len(wantIDs))
	}
	for i, want := range wantIDs {
		if set.Cards[i].ID != want {
			t.Errorf("card %d ID = %q, want %q", i, set.Cards[i].ID, want)
		}
	}
}

func TestAggregateIDUniqueness(t *testing.T) {
	a := testAggregator(0)
	chunks := makeChunks(6)

	set, err := a.Aggregate(context.Background(), chunks, "en", "test", func(ctx context.Context, ch transcript.Chunk, lang string) (*ChunkSet, error) {
		return setFor(ch, DifficultyEasy, 5), nil
	})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, card := range set.Cards {
		if seen[card.ID] {
			t.Errorf("duplicate card ID %q", card.ID)
		}
		seen[card.ID] = true
	}
	if len(set.Cards) != 30 {
		t.Errorf("got %d cards, want 30", len(set.Cards))
	}
}

func TestAggregateTopic(t *testing.T) {
	tests := []struct {
		name   string
		chunks int
		lang   string
		want   string
	}{
		{"single chunk verbatim", 1, "en", "Topic 0"},
		{"two chunks english", 2, "en", "Topic 0 (and 1 more topic)"},
		{"four chunks english", 4, "en", "Topic 0 (and 3 more topics)"},
		{"three chunks vietnamese", 3, "vi", "Topic 0 (và 2 chủ đề khác)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAggregator(0)
			set, err := a.Aggregate(context.Background(), makeChunks(tt.chunks), tt.lang, "test", func(ctx context.Context, ch transcript.Chunk, lang string) (*ChunkSet, error) {
				return setFor(ch, DifficultyMedium, 1), nil
			})
			if err != nil {
				t.Fatalf("Aggregate() error = %v", err)
			}
			if set.Topic != tt.want {
				t.Errorf("Topic = %q, want %q", set.Topic, tt.want)
			}
		})
	}
}

func TestMergeDifficulty(t *testing.T) {
	tests := []struct {
		name string
		in   []Difficulty
		want Difficulty
	}{
		{"clear mode", []Difficulty{DifficultyHard, DifficultyEasy, DifficultyHard}, DifficultyHard},
		{"tie goes to first seen", []Difficulty{DifficultyEasy, DifficultyHard}, DifficultyEasy},
		{"no data defaults to medium", []Difficulty{"", "unknown"}, DifficultyMedium},
		{"invalid tiers ignored", []Difficulty{"impossible", DifficultyHard}, DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sets []*ChunkSet
			for _, d := range tt.in {
				sets = append(sets, &ChunkSet{Difficulty: d})
			}
			if got := mergeDifficulty(sets); got != tt.want {
				t.Errorf("mergeDifficulty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregateAwaitsAllChunks(t *testing.T) {
	a := testAggregator(0)
	chunks := makeChunks(4)

	var calls atomic.Int32
	_, err := a.Aggregate(context.Background(), chunks, "en", "test", func(ctx context.Context, ch transcript.Chunk, lang string) (*ChunkSet, error) {
		if ch.Index == 0 {
			// Fast failure must not short-circuit the slower branches.
			return nil, fmt.Errorf("immediate failure")
		}
		time.Sleep(20 * time.Millisecond)
		calls.Add(1)
		return setFor(ch, DifficultyMedium, 1), nil
	})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("slow branches completed = %d, want 3", calls.Load())
	}
}

func TestAggregateBoundedConcurrency(t *testing.T) {
	a := testAggregator(1)
	chunks := makeChunks(5)

	var inFlight, maxInFlight atomic.Int32
	_, err := a.Aggregate(context.Background(), chunks, "en", "test", func(ctx context.Context, ch transcript.Chunk, lang string) (*ChunkSet, error) {
		n := inFlight.Add(1)
		if m := maxInFlight.Load(); n > m {
			maxInFlight.Store(n)
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return setFor(ch, DifficultyMedium, 1), nil
	})
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if maxInFlight.Load() > 1 {
		t.Errorf("max in-flight calls = %d, want at most 1", maxInFlight.Load())
	}
}
