package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ola/clip"
	"github.com/randalmurphal/ola/console"
	"github.com/randalmurphal/ola/orchestrate"
	"github.com/randalmurphal/ola/prompt"
	"github.com/randalmurphal/ola/sessionlog"
	"github.com/randalmurphal/ola/settings"
)

var nonThinkFlags struct {
	prompt         string
	clipboard      bool
	quiet          bool
	pipe           bool
	filterThinking bool
	model          string
}

// nonThinkCmd sends a raw prompt without the structured sections. The
// live stream is unfiltered; --filter-thinking strips <think> blocks
// from the returned text used for the clipboard and the log.
var nonThinkCmd = &cobra.Command{
	Use:   "non-think",
	Short: "Send a raw prompt without goals/format/warnings structure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNonThink()
	},
}

func init() {
	nonThinkCmd.Flags().StringVarP(&nonThinkFlags.prompt, "prompt", "p", "", "the raw prompt text")
	nonThinkCmd.Flags().StringVarP(&nonThinkFlags.model, "model", "m", "", "override the configured model")
	nonThinkCmd.Flags().BoolVarP(&nonThinkFlags.clipboard, "clipboard", "c", false, "copy the response to the clipboard")
	nonThinkCmd.Flags().BoolVarP(&nonThinkFlags.quiet, "quiet", "q", false, "suppress banners and status lines")
	nonThinkCmd.Flags().BoolVarP(&nonThinkFlags.pipe, "pipe", "i", false, "read piped stdin as the prompt (or as context when --prompt is set)")
	nonThinkCmd.Flags().BoolVarP(&nonThinkFlags.filterThinking, "filter-thinking", "f", false, "strip <think> blocks from the final text")
	rootCmd.AddCommand(nonThinkCmd)
}

func runNonThink() error {
	f := nonThinkFlags

	sets, err := settings.Load()
	if err != nil {
		console.Warnf("settings unavailable, using defaults: %v", err)
		sets = settings.Default()
	}
	f.quiet = f.quiet || sets.Defaults.Quiet

	if !f.quiet {
		console.Banner("🦙 ola")
	}

	var piped string
	if f.pipe && console.StdinIsPipe() {
		piped, err = console.ReadPiped()
		if err != nil {
			return err
		}
	}

	text := f.prompt
	switch {
	case text == "" && piped != "":
		text = piped
	case text != "" && piped != "":
		text = text + "\n\nContext: " + piped
	case text == "":
		text = console.ReadLine("Prompt", "")
	}
	if text == "" {
		return fmt.Errorf("a prompt is required")
	}

	if hints, err := prompt.LoadHints(); err == nil && hints != "" {
		text += "\nHINTS: " + hints
	}

	client, model, err := buildClient(promptFlags{model: f.model}, sets, stdoutEcho())
	if err != nil {
		return err
	}
	if !f.quiet {
		console.Infof("Using %s / %s", client.Provider(), model)
	}

	sess := &orchestrate.Session{
		Client:     client,
		Model:      model,
		Stream:     true,
		PostFilter: f.filterThinking,
	}
	output, err := sess.Run(context.Background(), text)
	fmt.Println()
	if err != nil {
		return err
	}

	if sets.Behavior.EnableLogging {
		if path, perr := sets.LogPath(); perr == nil {
			e := sessionlog.NewEntry(model, len(output))
			e.Prompt = text
			if logErr := sessionlog.Append(path, e); logErr != nil {
				console.Warnf("session log: %v", logErr)
			}
		}
	}

	if f.clipboard {
		if err := clip.Copy(output); err != nil {
			console.Warnf("clipboard: %v", err)
		} else if !f.quiet {
			console.Successf("copied to clipboard")
		}
	}
	return nil
}
