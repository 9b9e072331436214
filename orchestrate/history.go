package orchestrate

import (
	"fmt"
	"strings"
)

// EntryKind distinguishes the two history entry types.
type EntryKind int

const (
	// KindResponse is a model response for one round.
	KindResponse EntryKind = iota
	// KindFeedback is user or automatic feedback on the preceding
	// response.
	KindFeedback
)

// AutoFeedback is appended when the user supplies no feedback of
// their own between rounds.
const AutoFeedback = "Please improve on the previous response."

// HistoryEntry is one append-only conversation record.
type HistoryEntry struct {
	Round int
	Kind  EntryKind
	Text  string
}

// History accumulates the rounds of an iterative feedback run. It is
// in-process only and append-only; nothing is ever rewritten.
type History struct {
	entries []HistoryEntry
}

// AddResponse records the model's response for a round.
func (h *History) AddResponse(round int, text string) {
	h.entries = append(h.entries, HistoryEntry{Round: round, Kind: KindResponse, Text: text})
}

// AddFeedback records feedback following a round's response.
func (h *History) AddFeedback(round int, text string) {
	h.entries = append(h.entries, HistoryEntry{Round: round, Kind: KindFeedback, Text: text})
}

// Entries returns a copy of the history in order.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Responses counts response entries.
func (h *History) Responses() int {
	n := 0
	for _, e := range h.entries {
		if e.Kind == KindResponse {
			n++
		}
	}
	return n
}

// Feedbacks counts feedback entries.
func (h *History) Feedbacks() int {
	n := 0
	for _, e := range h.entries {
		if e.Kind == KindFeedback {
			n++
		}
	}
	return n
}

// Render serializes the history for embedding in the next round's
// prompt. Feedback lines carry the FEEDBACK: marker so the model can
// tell instruction from material.
func (h *History) Render() string {
	var b strings.Builder
	for _, e := range h.entries {
		switch e.Kind {
		case KindResponse:
			fmt.Fprintf(&b, "Previous response (round %d):\n%s\n", e.Round, e.Text)
		case KindFeedback:
			fmt.Fprintf(&b, "FEEDBACK: %s\n", e.Text)
		}
	}
	return b.String()
}

// IterativePrompt combines the base prompt with the history so far
// for the next round.
func IterativePrompt(base string, h *History) string {
	return base + "\n\n--- Previous rounds ---\n" + h.Render() + "\nProvide an improved response."
}
