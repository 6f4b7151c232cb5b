package flashcards

import "fmt"

// Difficulty is the tier assigned to a flashcard set.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Card is a single question/answer pair.
type Card struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags,omitempty"`
}

// ChunkSet is the flashcard set produced for one transcript chunk.
type ChunkSet struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Cards      []Card     `json:"cards"`
}

// Meta records how much of the transcript made it into a study set.
type Meta struct {
	TotalChunks      int    `json:"totalChunks"`
	SuccessfulChunks int    `json:"successfulChunks"`
	Source           string `json:"source"`
}

// StudySet is the merged artifact built from all successful chunk sets.
type StudySet struct {
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Language   string     `json:"language"`
	Cards      []Card     `json:"cards"`
	Meta       Meta       `json:"meta"`
}

// topicSuffix names how many additional topics were folded into the first
// chunk's topic, in the language of the study set.
func topicSuffix(lang string, more int) string {
	switch lang {
	case "vi":
		return fmt.Sprintf("(và %d chủ đề khác)", more)
	default:
		if more == 1 {
			return "(and 1 more topic)"
		}
		return fmt.Sprintf("(and %d more topics)", more)
	}
}
