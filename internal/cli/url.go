package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewURLCmd processes a single video URL and exits.
func NewURLCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "url <video-url>",
		Short: "Download, transcribe and process a single video URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := strings.TrimSpace(args[0])
			if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
				return fmt.Errorf("not a valid URL: %s", url)
			}

			if err := ensureDirectories(deps.Config); err != nil {
				return fmt.Errorf("create directories: %w", err)
			}

			return deps.Processor.ProcessURL(cmd.Context(), url)
		},
	}
}
