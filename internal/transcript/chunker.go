package transcript

import (
	"context"
	"math"

	"github.com/nmtri2104/studypipe/internal/logger"
)

// Options controls how transcripts are partitioned.
type Options struct {
	TargetDuration float64 // nominal chunk length in seconds
	Tolerance      float64 // window around the target end in which a break is searched
	MinGap         float64 // silence gap preferred as a natural break point
	MaxChunks      int     // safety bound on the number of chunks
}

// DefaultOptions returns the chunking policy used in production:
// 20 minute chunks, a ±2 minute search window, 3s silence preference
// and at most 20 chunks per transcript.
func DefaultOptions() Options {
	return Options{
		TargetDuration: 1200,
		Tolerance:      120,
		MinGap:         3,
		MaxChunks:      20,
	}
}

// Chunker splits an ordered segment sequence into bounded-duration chunks,
// breaking at silence gaps between segments where possible.
type Chunker struct {
	opts   Options
	logger logger.Logger
}

// NewChunker creates a Chunker with the given policy.
func NewChunker(opts Options, log logger.Logger) *Chunker {
	return &Chunker{opts: opts, logger: log}
}

// Split partitions segments into chunks. Every segment ends up in exactly
// one chunk, in the original order. An empty input yields no chunks.
func (c *Chunker) Split(ctx context.Context, segments []Segment, totalDuration float64) []Chunk {
	if len(segments) == 0 {
		return nil
	}

	// Short transcripts are never worth splitting.
	if totalDuration <= c.opts.TargetDuration+c.opts.Tolerance || len(segments) == 1 {
		return []Chunk{newChunk(0, segments)}
	}

	trueEnd := segments[len(segments)-1].End()

	var chunks []Chunk
	start := 0
	for start < len(segments) {
		targetEnd := segments[start].Start + c.opts.TargetDuration

		// Safety valve: when the bound is reached and the remainder would
		// still be subdivided, dump everything left into one final chunk.
		if c.opts.MaxChunks > 0 && len(chunks) == c.opts.MaxChunks-1 && targetEnd < trueEnd-c.opts.Tolerance {
			c.logger.Warn(ctx, "chunk limit %d reached, merging remaining %d segments into the final chunk",
				c.opts.MaxChunks, len(segments)-start)
			chunks = append(chunks, newChunk(len(chunks), segments[start:]))
			break
		}

		// The target lands within tolerance of the transcript end: the
		// current chunk absorbs everything that is left.
		if targetEnd >= trueEnd-c.opts.Tolerance {
			chunks = append(chunks, newChunk(len(chunks), segments[start:]))
			break
		}

		breakIdx := c.findBreak(segments, start, targetEnd)
		chunks = append(chunks, newChunk(len(chunks), segments[start:breakIdx+1]))
		start = breakIdx + 1
	}

	return chunks
}

// findBreak picks the segment index the current chunk should end on.
// Candidates are segments whose end time falls inside the tolerance window
// around targetEnd. Preference order: any gap >= MinGap beats a smaller
// one regardless of distance, then the larger gap, then the smaller
// distance to the target.
func (c *Chunker) findBreak(segments []Segment, start int, targetEnd float64) int {
	lower := targetEnd - c.opts.Tolerance
	upper := targetEnd + c.opts.Tolerance

	bestIdx := -1
	var bestGap, bestDist float64

	for i := start; i < len(segments); i++ {
		end := segments[i].End()
		if end > upper {
			break
		}
		if end < lower {
			continue
		}

		gap := 0.0
		if i+1 < len(segments) {
			gap = segments[i+1].Start - end
			if gap < 0 {
				gap = 0
			}
		}
		dist := math.Abs(end - targetEnd)

		if bestIdx == -1 || c.betterBreak(gap, dist, bestGap, bestDist) {
			bestIdx, bestGap, bestDist = i, gap, dist
		}
	}

	if bestIdx >= 0 {
		return bestIdx
	}
	return c.fallbackBreak(segments, start, targetEnd)
}

func (c *Chunker) betterBreak(gap, dist, bestGap, bestDist float64) bool {
	if (gap >= c.opts.MinGap) != (bestGap >= c.opts.MinGap) {
		return gap >= c.opts.MinGap
	}
	if gap != bestGap {
		return gap > bestGap
	}
	return dist < bestDist
}

// fallbackBreak handles the case where no segment ends inside the window:
// take the segment whose end time is closest to the target, scanning no
// further than twice the tolerance past it. Of two equidistant segments
// the earlier one wins, since only a strictly smaller distance replaces
// the current best. The segment at start is always a candidate so that a
// single huge segment still forms a valid chunk on its own.
func (c *Chunker) fallbackBreak(segments []Segment, start int, targetEnd float64) int {
	limit := targetEnd + 2*c.opts.Tolerance

	bestIdx := start
	bestDist := math.Abs(segments[start].End() - targetEnd)

	for i := start + 1; i < len(segments); i++ {
		end := segments[i].End()
		if end > limit {
			break
		}
		if dist := math.Abs(end - targetEnd); dist < bestDist {
			bestIdx, bestDist = i, dist
		}
	}

	return bestIdx
}
