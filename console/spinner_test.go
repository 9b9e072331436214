package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestSpinner_TickAndClear(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, []string{"a", "b"}, "thinking...")

	s.Tick()
	s.Tick()
	s.Tick()
	s.Clear()

	out := buf.String()
	if !strings.Contains(out, "a thinking...") {
		t.Errorf("expected first frame in output, got %q", out)
	}
	if !strings.Contains(out, "b thinking...") {
		t.Errorf("expected second frame in output, got %q", out)
	}
	// Frames cycle back around.
	if strings.Count(out, "a thinking...") != 2 {
		t.Errorf("expected frame cycling, got %q", out)
	}
	if !strings.HasSuffix(out, clearLine) {
		t.Errorf("expected Clear to erase the line, got %q", out)
	}
}

func TestSpinner_ClearWithoutTickIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, nil, "t")
	s.Clear()
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSpinner_EmptyFramesFallBack(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, nil, "t")
	s.Tick()
	if !strings.Contains(buf.String(), "* t") {
		t.Errorf("expected fallback glyph, got %q", buf.String())
	}
}
