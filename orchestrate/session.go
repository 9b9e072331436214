package orchestrate

import (
	"context"

	"github.com/randalmurphal/ola/provider"
	"github.com/randalmurphal/ola/think"
)

// Session runs prompts against one provider client. The client's echo
// sink (with or without a live thinking filter) is configured by the
// caller at client construction; the session only decides what gets
// sent and what comes back.
type Session struct {
	Client provider.Client
	Model  string
	Stream bool

	// PostFilter strips complete <think> blocks from the returned
	// text. The live echo is unaffected.
	PostFilter bool
}

// Run sends one prompt and returns the response text.
func (s *Session) Run(ctx context.Context, promptText string) (string, error) {
	resp, err := s.Client.Send(ctx, provider.Request{
		Prompt: promptText,
		Model:  s.Model,
		Stream: s.Stream,
	})
	if err != nil {
		return "", err
	}
	text := resp.Content
	if s.PostFilter {
		text = think.RemoveBlocks(text)
	}
	return text, nil
}

// FeedbackFunc solicits feedback after a round. Returning done stops
// the loop early; an empty feedback string falls back to AutoFeedback.
// A nil FeedbackFunc always auto-continues.
type FeedbackFunc func(round int, response string) (feedback string, done bool)

// RunIterations runs up to maxRounds rounds, feeding each round's
// history back into the next prompt. Returns the history and the
// final round's response text.
func (s *Session) RunIterations(ctx context.Context, base string, maxRounds int, feedback FeedbackFunc) (*History, string, error) {
	hist := &History{}
	current := base
	var last string

	for round := 1; round <= maxRounds; round++ {
		text, err := s.Run(ctx, current)
		if err != nil {
			return hist, "", err
		}
		hist.AddResponse(round, text)
		last = text

		if round == maxRounds {
			break
		}

		fb, done := "", false
		if feedback != nil {
			fb, done = feedback(round, text)
		}
		if done {
			break
		}
		if fb == "" {
			fb = AutoFeedback
		}
		hist.AddFeedback(round, fb)
		current = IterativePrompt(base, hist)
	}
	return hist, last, nil
}
