package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmtri2104/studypipe/internal/config"
	"github.com/nmtri2104/studypipe/internal/logger"
	"github.com/nmtri2104/studypipe/internal/processor"
	"github.com/nmtri2104/studypipe/internal/version"
)

type Dependencies struct {
	Config    *config.Config
	Logger    logger.Logger
	Processor processor.Processor
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	var mode, lang string

	rootCmd := &cobra.Command{
		Use:   "studypipe",
		Short: "Turn videos into summaries and study flashcards",
		Long:  "A pipeline that transcribes YouTube videos or local recordings and turns the transcript into an AI-generated summary or a set of study flashcards.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch mode {
			case "", "flashcards", "summary", "both":
			default:
				return fmt.Errorf("invalid --mode %q: must be flashcards, summary or both", mode)
			}
			if mode != "" {
				deps.Config.Study.Mode = mode
			}
			if lang != "" {
				deps.Config.Study.Language = lang
			}
			return nil
		},
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "output mode: flashcards, summary or both (default from config)")
	rootCmd.PersistentFlags().StringVar(&lang, "lang", "", "language of the generated study material (default from config)")

	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewURLCmd(deps))
	rootCmd.AddCommand(NewFileCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
