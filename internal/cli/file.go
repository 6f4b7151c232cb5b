package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewFileCmd processes a single local media file and exits.
func NewFileCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "file <media-file>",
		Short: "Transcribe and process a local audio or video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err != nil {
				return fmt.Errorf("media file: %w", err)
			}

			if err := ensureDirectories(deps.Config); err != nil {
				return fmt.Errorf("create directories: %w", err)
			}

			return deps.Processor.ProcessFile(cmd.Context(), args[0])
		},
	}
}
