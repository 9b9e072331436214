package cmd

import (
	"strings"
	"testing"
)

func TestRespawnArgs(t *testing.T) {
	f := promptFlags{
		goals:        "explain X",
		returnFormat: "text",
		warnings:     "none",
		recursion:    3,
		clipboard:    true,
		noThinking:   true,
		pipe:         true, // must not survive into the child
	}

	args := respawnArgs(f)
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"--goals explain X",
		"--format text",
		"--warnings none",
		"--recursion 3",
		"--clipboard",
		"--no-thinking",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("respawn args missing %q: %v", want, args)
		}
	}
	if strings.Contains(joined, "--pipe") {
		t.Errorf("pipe flag must not be re-serialized: %v", args)
	}
	if args[0] != "prompt" {
		t.Errorf("child must run the prompt subcommand, got %q", args[0])
	}
}

func TestRespawnArgs_KeepsResolvedInput(t *testing.T) {
	// Goals read from a pipe must survive into the child wave.
	f := promptFlags{recursion: 2}
	resolveInput(&f, "summarize the log")
	joined := strings.Join(respawnArgs(f), " ")
	if !strings.Contains(joined, "--goals summarize the log") {
		t.Errorf("piped goals lost: %q", joined)
	}

	// With explicit goals the pipe becomes context, also re-serialized.
	f = promptFlags{goals: "review this change", recursion: 2}
	resolveInput(&f, "diff body")
	joined = strings.Join(respawnArgs(f), " ")
	if !strings.Contains(joined, "--goals review this change") {
		t.Errorf("explicit goals lost: %q", joined)
	}
	if !strings.Contains(joined, "--context diff body") {
		t.Errorf("piped context lost: %q", joined)
	}

	// Nothing piped, nothing resolved: context flag stays absent.
	f = promptFlags{goals: "g", recursion: 2}
	resolveInput(&f, "")
	if strings.Contains(strings.Join(respawnArgs(f), " "), "--context") {
		t.Errorf("unexpected context flag: %v", respawnArgs(f))
	}
}

func TestRespawnArgs_OptionalFlags(t *testing.T) {
	args := respawnArgs(promptFlags{goals: "g", returnFormat: "f", recursion: 2})
	joined := strings.Join(args, " ")
	for _, absent := range []string{"--model", "--iterations", "--clipboard", "--quiet", "--no-thinking"} {
		if strings.Contains(joined, absent) {
			t.Errorf("unexpected %q in %v", absent, args)
		}
	}
}
