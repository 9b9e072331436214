package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/randalmurphal/ola/clip"
	"github.com/randalmurphal/ola/config"
	"github.com/randalmurphal/ola/console"
	"github.com/randalmurphal/ola/orchestrate"
	"github.com/randalmurphal/ola/project"
	"github.com/randalmurphal/ola/prompt"
	"github.com/randalmurphal/ola/provider"
	_ "github.com/randalmurphal/ola/providers"
	"github.com/randalmurphal/ola/sessionlog"
	"github.com/randalmurphal/ola/settings"
	"github.com/randalmurphal/ola/think"
)

// runPrompt is the main prompt flow, shared by the root command and
// the prompt subcommand.
func runPrompt(f promptFlags) error {
	sets, err := settings.Load()
	if err != nil {
		console.Warnf("settings unavailable, using defaults: %v", err)
		sets = settings.Default()
	}

	// Settings fill in flags the user left at their zero value.
	f.quiet = f.quiet || sets.Defaults.Quiet
	f.noThinking = f.noThinking || sets.Defaults.NoThinking
	f.clipboard = f.clipboard || sets.Defaults.Clipboard

	rc := orchestrate.FromEnv(f.recursion)

	if !f.quiet {
		if rc.Recursive() && rc.Wave > 0 {
			console.WaveBanner(rc.Wave, rc.Max)
		} else {
			console.Banner("🦙 ola")
		}
	}

	var piped string
	if f.pipe && console.StdinIsPipe() {
		piped, err = console.ReadPiped()
		if err != nil {
			return err
		}
	}

	// Piped and interactive input resolve into the flags so respawned
	// waves inherit what this wave was asked to do.
	resolveInput(&f, piped)

	if f.goals == "" {
		f.goals = console.ReadLine("🏆 Goals", "")
		if f.goals == "" {
			return fmt.Errorf("goals are required")
		}
		f.returnFormat = console.ReadLine("📝 Return Format", sets.Defaults.ReturnFormat)
		f.warnings = console.ReadLine("⚠️ Warnings", "")
	}
	if f.returnFormat == "" {
		f.returnFormat = sets.Defaults.ReturnFormat
	}

	in := prompt.Input{
		Goals:        f.goals,
		ReturnFormat: f.returnFormat,
		Warnings:     f.warnings,
		Context:      f.contextText,
	}
	attachActiveProject(&in, f.quiet)
	if hints, err := prompt.LoadHints(); err == nil && hints != "" {
		in.Hints = hints
	}

	assembler := prompt.NewAssembler(prompt.Prefixes{
		Goals:        sets.PromptTemplate.GoalsPrefix,
		ReturnFormat: sets.PromptTemplate.ReturnFormatPrefix,
		Warnings:     sets.PromptTemplate.WarningsPrefix,
	})
	promptText := assembler.Assemble(in)

	var filter *think.Filter
	var echo io.Writer = os.Stdout
	if f.noThinking {
		var ind think.Indicator
		if !f.quiet {
			ind = console.NewSpinner(os.Stderr,
				sets.Behavior.ThinkingAnimation.Emojis,
				sets.Behavior.ThinkingAnimation.Text)
		}
		filter = think.NewFilter(os.Stdout, ind)
		echo = filter
	}

	client, model, err := buildClient(f, sets, echo)
	if err != nil {
		return err
	}

	if !f.quiet {
		console.Infof("Using %s / %s", client.Provider(), model)
		if !client.Capabilities().Streaming {
			console.Infof("(provider does not stream; response arrives when complete)")
		}
	}

	sess := &orchestrate.Session{Client: client, Model: model, Stream: true}
	ctx := context.Background()

	var output string
	if f.iterations > 0 {
		_, output, err = sess.RunIterations(ctx, promptText, int(f.iterations), feedbackPrompter(f.quiet))
	} else {
		output, err = sess.Run(ctx, promptText)
	}
	if filter != nil {
		if flushErr := filter.Flush(); flushErr != nil && err == nil {
			err = flushErr
		}
	}
	fmt.Println()
	if err != nil {
		return err
	}

	logSession(sets, rc, f.goals, f.returnFormat, f.warnings, model, len(output))

	// Clipboard copies exactly once: only the final wave copies.
	if f.clipboard && !rc.ShouldSpawn() {
		if err := clip.Copy(output); err != nil {
			console.Warnf("clipboard: %v", err)
		} else if !f.quiet {
			console.Successf("copied to clipboard")
		}
	}

	if rc.ShouldSpawn() {
		if err := rc.Respawn(respawnArgs(f)); err != nil {
			console.Errorf("%v", err)
		}
	}
	return nil
}

// stdoutEcho is the plain echo sink for unfiltered streams.
func stdoutEcho() io.Writer {
	return os.Stdout
}

// resolveInput folds piped stdin into the flags: the text becomes the
// goals, or extra context when goals were given explicitly.
func resolveInput(f *promptFlags, piped string) {
	switch {
	case f.goals == "" && piped != "":
		f.goals = piped
	case f.goals != "" && piped != "":
		f.contextText = piped
	}
}

// buildClient resolves the active credentials and constructs the
// provider client with the given echo sink. Model precedence: flag,
// then credential, then settings default.
func buildClient(f promptFlags, sets settings.Settings, echo io.Writer) (provider.Client, string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, "", err
	}
	cred, err := cfg.Active()
	if err != nil {
		return nil, "", err
	}

	model := f.model
	if model == "" {
		model = cred.Model
	}
	if model == "" {
		model = sets.DefaultModel
	}

	client, err := provider.New(cred.Provider, provider.Config{
		APIKey:  cred.APIKey,
		BaseURL: cred.BaseURL,
		Model:   model,
		Echo:    echo,
	})
	if err != nil {
		return nil, "", err
	}
	return client, model, nil
}

// attachActiveProject folds the active project's material into the
// prompt input. No active project is the common case and is silent.
func attachActiveProject(in *prompt.Input, quiet bool) {
	mgr, err := project.NewManager()
	if err != nil {
		return
	}
	p, err := mgr.Active()
	if err != nil {
		return
	}
	if !quiet {
		console.Infof("Project: %s", p.Name)
	}
	in.ProjectGoals = p.Goals
	in.ProjectContexts = p.Contexts
	for _, file := range p.Files {
		content, err := mgr.ReadFileAsText(p, file.Name)
		if err != nil {
			console.Warnf("project file %s: %v", file.Name, err)
			continue
		}
		in.Files = append(in.Files, prompt.File{Name: file.Name, Content: content})
	}
}

// feedbackPrompter builds the between-rounds prompt for iterative
// runs. Quiet runs auto-continue with generic feedback.
func feedbackPrompter(quiet bool) orchestrate.FeedbackFunc {
	if quiet {
		return nil
	}
	return func(round int, response string) (string, bool) {
		fmt.Fprintln(os.Stderr)
		choice := console.Select(fmt.Sprintf("Round %d done. Next?", round),
			[]string{"Auto-continue", "Give feedback", "Finish"}, 0)
		switch choice {
		case 1:
			return console.ReadLine("FEEDBACK", ""), false
		case 2:
			return "", true
		default:
			return "", false
		}
	}
}

// logSession appends to the session log; failures warn, never abort.
func logSession(sets settings.Settings, rc orchestrate.RecursionContext, goals, format, warnings, model string, outputLen int) {
	if !sets.Behavior.EnableLogging {
		return
	}
	path, err := sets.LogPath()
	if err != nil {
		return
	}
	e := sessionlog.NewEntry(model, outputLen)
	e.Goals = goals
	e.ReturnFormat = format
	e.Warnings = warnings
	if rc.Recursive() {
		e = e.WithWave(rc.Wave)
	}
	if err := sessionlog.Append(path, e); err != nil {
		console.Warnf("session log: %v", err)
	}
}
