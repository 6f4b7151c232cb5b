package flashcards

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nmtri2104/studypipe/internal/logger"
	"github.com/nmtri2104/studypipe/internal/transcript"
)

var (
	// ErrNoChunks is returned when aggregation is invoked without chunks.
	ErrNoChunks = errors.New("no chunks to aggregate")
	// ErrAllChunksFailed is returned when every per-chunk call failed.
	ErrAllChunksFailed = errors.New("every chunk failed")
)

// GenerateFunc produces the flashcard set for one chunk. It is called once
// per chunk, concurrently, and must be safe for concurrent use.
type GenerateFunc func(ctx context.Context, chunk transcript.Chunk, lang string) (*ChunkSet, error)

// Aggregator fans a generation function out over all chunks and merges the
// successful results into a single StudySet. Failures are isolated per
// chunk; aggregation itself fails only when no chunk succeeds.
type Aggregator struct {
	logger        logger.Logger
	maxConcurrent int
}

// NewAggregator creates an Aggregator. maxConcurrent bounds the number of
// in-flight generation calls; zero or negative means unbounded.
func NewAggregator(log logger.Logger, maxConcurrent int) *Aggregator {
	return &Aggregator{logger: log, maxConcurrent: maxConcurrent}
}

// Aggregate generates a flashcard set per chunk and merges the results.
// Every chunk is awaited (settled, not raced): a fast failure in one chunk
// never cancels the others.
func (a *Aggregator) Aggregate(ctx context.Context, chunks []transcript.Chunk, lang, source string, generate GenerateFunc) (*StudySet, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}

	results := make([]*ChunkSet, len(chunks))
	errs := make([]error, len(chunks))

	var sem *semaphore
	if a.maxConcurrent > 0 {
		sem = newSemaphore(a.maxConcurrent)
	}

	var wg sync.WaitGroup
	for i := range chunks {
		wg.Add(1)
		go func(i int, chunk transcript.Chunk) {
			defer wg.Done()

			if sem != nil {
				if err := sem.acquire(ctx); err != nil {
					errs[i] = err
					return
				}
				defer sem.release()
			}

			set, err := generate(ctx, chunk, lang)
			if err != nil {
				errs[i] = err
				return
			}
			if set == nil {
				errs[i] = fmt.Errorf("empty result")
				return
			}
			results[i] = set
		}(i, chunks[i])
	}
	wg.Wait()

	var ok []*ChunkSet
	var failed []error
	for i := range chunks {
		if errs[i] != nil {
			a.logger.Warn(ctx, "chunk %d failed: %v", i, errs[i])
			failed = append(failed, fmt.Errorf("chunk %d: %w", i, errs[i]))
			continue
		}
		ok = append(ok, results[i])
	}

	if len(ok) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrAllChunksFailed, errors.Join(failed...))
	}
	if len(failed) > 0 {
		a.logger.Warn(ctx, "aggregating partial result: %d/%d chunks succeeded", len(ok), len(chunks))
	}

	return a.merge(ok, lang, source, len(chunks)), nil
}

// merge combines successful chunk sets, re-keying card IDs by the 1-based
// position of their chunk among the successes so IDs stay globally unique.
func (a *Aggregator) merge(sets []*ChunkSet, lang, source string, total int) *StudySet {
	out := &StudySet{
		Topic:      mergeTopic(sets, lang),
		Difficulty: mergeDifficulty(sets),
		Language:   lang,
		Meta: Meta{
			TotalChunks:      total,
			SuccessfulChunks: len(sets),
			Source:           source,
		},
	}

	for pos, set := range sets {
		for _, card := range set.Cards {
			card.ID = fmt.Sprintf("%d-%s", pos+1, card.ID)
			out.Cards = append(out.Cards, card)
		}
	}

	return out
}

func mergeTopic(sets []*ChunkSet, lang string) string {
	if len(sets) == 1 {
		return sets[0].Topic
	}
	return sets[0].Topic + " " + topicSuffix(lang, len(sets)-1)
}

// mergeDifficulty picks the most frequent tier across the chunk sets.
// Ties go to the tier seen first; medium is the default when no chunk
// reported a valid tier.
func mergeDifficulty(sets []*ChunkSet) Difficulty {
	counts := make(map[Difficulty]int)
	var order []Difficulty

	for _, set := range sets {
		if !set.Difficulty.Valid() {
			continue
		}
		if counts[set.Difficulty] == 0 {
			order = append(order, set.Difficulty)
		}
		counts[set.Difficulty]++
	}

	best := DifficultyMedium
	bestCount := 0
	for _, d := range order {
		if counts[d] > bestCount {
			best, bestCount = d, counts[d]
		}
	}

	return best
}
