// Package cmd wires the CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is stamped at build time.
var Version = "0.2.0"

var rootFlags promptFlags

var rootCmd = &cobra.Command{
	Use:   "ola",
	Short: "Send prompts to LLM providers from the terminal",
	Long: `ola sends user-authored prompts to an LLM provider (OpenAI,
Anthropic, Ollama, Gemini), streams the response back, and can
orchestrate multi-round runs: recursive waves across processes and
iterative feedback loops.

Running ola with no subcommand starts the prompt flow.`,
	Version: Version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrompt(rootFlags)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	addPromptFlags(rootCmd, &rootFlags)
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
