package transcript

import "strings"

// Segment is one span of transcribed speech. Times are in seconds.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// End returns the absolute end time of the segment.
func (s Segment) End() float64 {
	return s.Start + s.Duration
}

// Chunk is a contiguous group of segments. Chunks never split a segment,
// never overlap and together cover the whole input sequence.
type Chunk struct {
	Index     int
	Segments  []Segment
	StartTime float64
	EndTime   float64
	Text      string
}

func newChunk(index int, segments []Segment) Chunk {
	texts := make([]string, 0, len(segments))
	for _, s := range segments {
		texts = append(texts, s.Text)
	}

	return Chunk{
		Index:     index,
		Segments:  segments,
		StartTime: segments[0].Start,
		EndTime:   segments[len(segments)-1].End(),
		Text:      strings.Join(texts, " "),
	}
}
