package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nmtri2104/studypipe/internal/flashcards"
)

// StudySetMarkdown renders a merged study set as a markdown document.
func StudySetMarkdown(set *flashcards.StudySet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", set.Topic)
	fmt.Fprintf(&b, "_Difficulty: %s · Language: %s · Sections: %d/%d · Source: %s_\n\n",
		set.Difficulty, set.Language, set.Meta.SuccessfulChunks, set.Meta.TotalChunks, set.Meta.Source)

	for i, card := range set.Cards {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, card.Question)
		fmt.Fprintf(&b, "**Answer:** %s\n\n", card.Answer)
		if len(card.Tags) > 0 {
			fmt.Fprintf(&b, "_Tags: %s_\n\n", strings.Join(card.Tags, ", "))
		}
	}

	return b.String()
}

// WriteStudySetMarkdown writes the study set as markdown at path.
func WriteStudySetMarkdown(set *flashcards.StudySet, path string) error {
	if err := os.WriteFile(path, []byte(StudySetMarkdown(set)), 0644); err != nil {
		return fmt.Errorf("write study set markdown: %w", err)
	}
	return nil
}

// WriteSummaryMarkdown writes a titled, timestamped summary at path.
func WriteSummaryMarkdown(title, summary, path string) error {
	md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		title,
		time.Now().Format("2006-01-02 15:04"),
		strings.TrimSpace(summary),
	)

	if err := os.WriteFile(path, []byte(md), 0644); err != nil {
		return fmt.Errorf("write summary markdown: %w", err)
	}
	return nil
}
