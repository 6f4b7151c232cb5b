package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

// NewDoctorCmd checks that every external collaborator is reachable.
func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required binaries and models are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			failures := 0

			checkBinary := func(name, path string) {
				if _, err := exec.LookPath(path); err != nil {
					fmt.Printf("  [FAIL] %s: %v\n", name, err)
					failures++
					return
				}
				fmt.Printf("  [ OK ] %s: %s\n", name, path)
			}

			fmt.Println("Checking external tools:")
			checkBinary("whisper", cfg.Whisper.BinaryPath)
			checkBinary("yt-dlp", cfg.Tools.YtDlpPath)
			checkBinary("ffmpeg", cfg.Tools.FFmpegPath)

			fmt.Println("Checking files:")
			if _, err := os.Stat(cfg.Whisper.ModelPath); err != nil {
				fmt.Printf("  [FAIL] whisper model: %v\n", err)
				failures++
			} else {
				fmt.Printf("  [ OK ] whisper model: %s\n", cfg.Whisper.ModelPath)
			}

			fmt.Println("Checking configuration:")
			fmt.Printf("  [ OK ] %d Gemini API key(s) configured\n", len(cfg.Gemini.APIKeys))
			fmt.Printf("  [ OK ] mode %q, language %q\n", cfg.Study.Mode, cfg.Study.Language)

			if failures > 0 {
				return fmt.Errorf("%d check(s) failed", failures)
			}
			fmt.Println("All checks passed.")
			return nil
		},
	}
}
