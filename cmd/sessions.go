package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/ola/console"
	"github.com/randalmurphal/ola/sessionlog"
	"github.com/randalmurphal/ola/settings"
)

var sessionCount int

// sessionCmd lists recent session log entries.
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show recent sessions from the log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := logPath()
		if err != nil {
			return err
		}
		entries, err := sessionlog.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				console.Infof("no sessions logged yet")
				return nil
			}
			return err
		}
		start := len(entries) - sessionCount
		if start < 0 {
			start = 0
		}
		for _, e := range entries[start:] {
			printEntry(e)
		}
		return nil
	},
}

var sessionsFollow bool

// sessionsCmd summarizes the log, or follows it live.
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Summarize the session log (or follow it with --follow)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := logPath()
		if err != nil {
			return err
		}
		if sessionsFollow {
			return followSessions(path)
		}
		return summarizeSessions(path)
	},
}

func init() {
	sessionCmd.Flags().IntVarP(&sessionCount, "count", "n", 10, "number of recent sessions to show")
	sessionsCmd.Flags().BoolVarP(&sessionsFollow, "follow", "f", false, "stream new entries as they are logged")
	rootCmd.AddCommand(sessionCmd, sessionsCmd)
}

func logPath() (string, error) {
	sets, err := settings.Load()
	if err != nil {
		return "", err
	}
	return sets.LogPath()
}

func printEntry(e sessionlog.Entry) {
	wave := ""
	if e.Wave != nil {
		wave = fmt.Sprintf(" wave=%d", *e.Wave)
	}
	subject := e.Goals
	if subject == "" {
		subject = e.Prompt
	}
	if len(subject) > 60 {
		subject = subject[:60] + "…"
	}
	fmt.Printf("%s  %s  %d bytes%s  %s\n", e.Timestamp, e.Model, e.OutputLength, wave, subject)
}

func summarizeSessions(path string) error {
	s, err := sessionlog.Summarize(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			console.Infof("no sessions logged yet")
			return nil
		}
		return err
	}
	fmt.Printf("Sessions:     %d\n", s.Sessions)
	fmt.Printf("Total output: %d bytes\n", s.TotalOutput)
	fmt.Printf("Recursive:    %d\n", s.RecursiveRuns)
	if s.FirstTimestamp != "" {
		fmt.Printf("First:        %s\n", s.FirstTimestamp)
		fmt.Printf("Last:         %s\n", s.LastTimestamp)
	}
	if len(s.Models) > 0 {
		fmt.Println("Models:")
		names := make([]string, 0, len(s.Models))
		for name := range s.Models {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-30s %d\n", name, s.Models[name])
		}
	}
	return nil
}

func followSessions(path string) error {
	r, err := sessionlog.NewReader(path)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console.Infof("following %s (ctrl-c to stop)", path)
	for e := range r.Tail(ctx) {
		printEntry(e)
	}
	return nil
}
