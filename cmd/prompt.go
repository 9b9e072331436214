package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
)

// promptFlags carries the prompt-flow flags. The same set hangs off
// the root command and the explicit prompt subcommand.
type promptFlags struct {
	goals        string
	returnFormat string
	warnings     string
	contextText  string
	model        string
	clipboard    bool
	quiet        bool
	pipe         bool
	noThinking   bool
	recursion    uint8
	iterations   uint8
}

func addPromptFlags(cmd *cobra.Command, f *promptFlags) {
	cmd.Flags().StringVarP(&f.goals, "goals", "g", "", "what you want the model to do")
	cmd.Flags().StringVarP(&f.returnFormat, "format", "f", "", "how the response should be shaped")
	cmd.Flags().StringVarP(&f.warnings, "warnings", "w", "", "things the model must avoid")
	cmd.Flags().StringVar(&f.contextText, "context", "", "extra context text (usually supplied by piping)")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "override the configured model")
	cmd.Flags().BoolVarP(&f.clipboard, "clipboard", "c", false, "copy the final response to the clipboard")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "suppress banners and status lines")
	cmd.Flags().BoolVarP(&f.pipe, "pipe", "p", false, "read piped stdin as goals (or as context when --goals is set)")
	cmd.Flags().BoolVarP(&f.noThinking, "no-thinking", "t", false, "hide <think> reasoning from the live stream")
	cmd.Flags().Uint8VarP(&f.recursion, "recursion", "r", 0, "re-invoke the response through N recursion waves")
	cmd.Flags().Uint8VarP(&f.iterations, "iterations", "i", 0, "run N feedback rounds in one process")
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Send a structured prompt (same as running ola with no subcommand)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrompt(promptCmdFlags)
	},
}

var promptCmdFlags promptFlags

func init() {
	addPromptFlags(promptCmd, &promptCmdFlags)
	rootCmd.AddCommand(promptCmd)
}

// respawnArgs re-serializes the flags for the next recursion wave.
// Goals and context resolved from stdin must already be folded back
// into the flags. The pipe flag is dropped: stdin was consumed by
// this wave.
func respawnArgs(f promptFlags) []string {
	args := []string{"prompt",
		"--goals", f.goals,
		"--format", f.returnFormat,
		"--warnings", f.warnings,
		"--recursion", strconv.Itoa(int(f.recursion)),
	}
	if f.contextText != "" {
		args = append(args, "--context", f.contextText)
	}
	if f.model != "" {
		args = append(args, "--model", f.model)
	}
	if f.iterations > 0 {
		args = append(args, "--iterations", strconv.Itoa(int(f.iterations)))
	}
	if f.clipboard {
		args = append(args, "--clipboard")
	}
	if f.quiet {
		args = append(args, "--quiet")
	}
	if f.noThinking {
		args = append(args, "--no-thinking")
	}
	return args
}
