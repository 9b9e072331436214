// Package sessionlog records one JSON line per completed prompt
// session and reads the resulting log back for summaries and live
// following.
package sessionlog

import "time"

// Entry is one session record. Wave is only present for recursive
// runs.
type Entry struct {
	Timestamp    string `json:"timestamp"`
	Goals        string `json:"goals,omitempty"`
	ReturnFormat string `json:"return_format,omitempty"`
	Warnings     string `json:"warnings,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
	Model        string `json:"model"`
	OutputLength int    `json:"output_length"`
	Wave         *uint8 `json:"recursion_wave,omitempty"`
}

// NewEntry stamps an entry with the current time in RFC 3339.
func NewEntry(model string, outputLength int) Entry {
	return Entry{
		Timestamp:    time.Now().Format(time.RFC3339),
		Model:        model,
		OutputLength: outputLength,
	}
}

// WithWave marks the entry as belonging to a recursion wave.
func (e Entry) WithWave(wave uint8) Entry {
	e.Wave = &wave
	return e
}
