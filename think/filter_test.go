package think

import (
	"bytes"
	"errors"
	"testing"
)

// countingIndicator records indicator callbacks.
type countingIndicator struct {
	ticks  int
	clears int
}

func (c *countingIndicator) Tick()  { c.ticks++ }
func (c *countingIndicator) Clear() { c.clears++ }

// writeAll feeds fragments through a fresh filter and returns the
// visible output.
func writeAll(t *testing.T, fragments []string) string {
	t.Helper()
	var out bytes.Buffer
	f := NewFilter(&out, nil)
	for _, frag := range fragments {
		n, err := f.Write([]byte(frag))
		if err != nil {
			t.Fatalf("Write(%q): %v", frag, err)
		}
		if n != len(frag) {
			t.Fatalf("Write(%q) consumed %d bytes, want %d", frag, n, len(frag))
		}
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return out.String()
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{
			name:      "no tags",
			fragments: []string{"hello ", "world"},
			want:      "hello world",
		},
		{
			name:      "block in one fragment",
			fragments: []string{"a<think>hidden</think>b"},
			want:      "ab",
		},
		{
			name:      "block across fragments",
			fragments: []string{"a<think>hid", "den</think>b"},
			want:      "ab",
		},
		{
			name:      "open tag split across fragments",
			fragments: []string{"a<thi", "nk>hidden</think>b"},
			want:      "ab",
		},
		{
			name:      "close tag split across fragments",
			fragments: []string{"a<think>hidden</thi", "nk>b"},
			want:      "ab",
		},
		{
			name:      "tag split byte by byte",
			fragments: []string{"a", "<", "t", "h", "i", "n", "k", ">", "x", "<", "/", "t", "h", "i", "n", "k", ">", "b"},
			want:      "ab",
		},
		{
			name:      "multiple blocks",
			fragments: []string{"a<think>x</think>b<think>y</think>c"},
			want:      "abc",
		},
		{
			name:      "unterminated block suppresses remainder",
			fragments: []string{"a<think>never ", "closed"},
			want:      "a",
		},
		{
			name:      "dangling partial prefix is plain text",
			fragments: []string{"a<th"},
			want:      "a<th",
		},
		{
			name:      "angle bracket without tag",
			fragments: []string{"1 < 2 and 3 > 2"},
			want:      "1 < 2 and 3 > 2",
		},
		{
			name:      "only a block",
			fragments: []string{"<think>all hidden</think>"},
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := writeAll(t, tt.fragments); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilterIndicator(t *testing.T) {
	var out bytes.Buffer
	ind := &countingIndicator{}
	f := NewFilter(&out, ind)

	for _, frag := range []string{"a<think>one ", "two ", "three</think>b"} {
		if _, err := f.Write([]byte(frag)); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	if ind.ticks < 3 {
		t.Errorf("expected at least 3 ticks while suppressed, got %d", ind.ticks)
	}
	if ind.clears == 0 {
		t.Error("expected the indicator to be cleared")
	}
	if out.String() != "ab" {
		t.Errorf("output = %q, want %q", out.String(), "ab")
	}
}

// failWriter rejects every write.
type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("stream closed")
}

func TestFlushReportsWriterError(t *testing.T) {
	f := NewFilter(failWriter{}, nil)
	// "<th" is held back as a possible tag prefix; Flush must emit it
	// and surface the write failure.
	if _, err := f.Write([]byte("<th")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := f.Flush(); err == nil {
		t.Error("expected Flush to report the writer error")
	}
}

func TestFilterState(t *testing.T) {
	f := NewFilter(&bytes.Buffer{}, nil)
	if f.State() != Normal {
		t.Fatalf("initial state = %v, want Normal", f.State())
	}
	f.Write([]byte("a<think>b"))
	if f.State() != InThinking {
		t.Fatalf("state after open tag = %v, want InThinking", f.State())
	}
	f.Write([]byte("</think>c"))
	if f.State() != Normal {
		t.Fatalf("state after close tag = %v, want Normal", f.State())
	}
}

func TestRemoveBlocks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "single block",
			in:   "a<think>hidden</think>b",
			want: "ab",
		},
		{
			name: "multiline block",
			in:   "a<think>line1\nline2</think>b",
			want: "ab",
		},
		{
			name: "multiple blocks non-greedy",
			in:   "a<think>x</think>b<think>y</think>c",
			want: "abc",
		},
		{
			name: "unmatched open tag unchanged",
			in:   "a<think>never closed",
			want: "a<think>never closed",
		},
		{
			name: "no tags",
			in:   "plain text",
			want: "plain text",
		},
		{
			name: "empty block",
			in:   "a<think></think>b",
			want: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveBlocks(tt.in)
			if got != tt.want {
				t.Errorf("RemoveBlocks(%q) = %q, want %q", tt.in, got, tt.want)
			}
			// Idempotent: a second pass changes nothing.
			if again := RemoveBlocks(got); again != got {
				t.Errorf("second pass changed output: %q -> %q", got, again)
			}
		})
	}
}
