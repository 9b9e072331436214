package console

import (
	"fmt"
	"io"
)

// clearLine returns the cursor and erases the current line.
const clearLine = "\r\x1b[K"

// Spinner renders a thinking indicator on a single stderr line,
// redrawing in place. It satisfies the filter's indicator contract:
// Tick per suppressed fragment, Clear when suppression ends.
type Spinner struct {
	w      io.Writer
	frames []string
	text   string
	n      int
	active bool
}

// NewSpinner builds a spinner from the settings animation: frames are
// cycled, text trails the frame. Empty frames fall back to a single
// glyph.
func NewSpinner(w io.Writer, frames []string, text string) *Spinner {
	if len(frames) == 0 {
		frames = []string{"*"}
	}
	return &Spinner{w: w, frames: frames, text: text}
}

// Tick redraws the indicator with the next frame.
func (s *Spinner) Tick() {
	frame := s.frames[s.n%len(s.frames)]
	s.n++
	s.active = true
	fmt.Fprintf(s.w, "%s%s %s", clearLine, frame, s.text)
}

// Clear erases the indicator line if one is showing.
func (s *Spinner) Clear() {
	if !s.active {
		return
	}
	fmt.Fprint(s.w, clearLine)
	s.active = false
}
