package sessionlog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reader reads a session JSONL log.
type Reader struct {
	path string
	file *os.File
}

// NewReader opens the log at path.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session log: %w", err)
	}
	return &Reader{path: path, file: file}, nil
}

// Path returns the file path being read.
func (r *Reader) Path() string {
	return r.path
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// ReadAll reads every entry in the log. Malformed lines are skipped.
func (r *Reader) ReadAll() ([]Entry, error) {
	if _, err := r.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start: %w", err)
	}

	var entries []Entry
	scanner := bufio.NewScanner(r.file)
	buf := make([]byte, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			// Skip malformed lines
			continue
		}
		entries = append(entries, e)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan session log: %w", err)
	}
	return entries, nil
}

// Tail follows the log and sends entries appended after the call to
// the returned channel. The channel is closed when the context is
// cancelled. Uses fsnotify with a polling fallback.
func (r *Reader) Tail(ctx context.Context) <-chan Entry {
	ch := make(chan Entry, 100)

	go func() {
		defer close(ch)

		// Seek to end to only show new content
		offset, err := r.file.Seek(0, io.SeekEnd)
		if err != nil {
			return
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			r.tailPolling(ctx, ch, offset)
			return
		}
		defer watcher.Close()

		// Watch the directory (more reliable than watching the file)
		if err := watcher.Add(filepath.Dir(r.path)); err != nil {
			r.tailPolling(ctx, ch, offset)
			return
		}

		r.tailWithWatcher(ctx, ch, watcher, offset)
	}()

	return ch
}

func (r *Reader) tailWithWatcher(ctx context.Context, ch chan<- Entry, watcher *fsnotify.Watcher, offset int64) {
	baseName := filepath.Base(r.path)
	reader := bufio.NewReader(r.file)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			offset = r.handleGrowth(reader, ch, offset)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Usually recoverable, keep watching
		}
	}
}

func (r *Reader) tailPolling(ctx context.Context, ch chan<- Entry, offset int64) {
	reader := bufio.NewReader(r.file)
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			offset = r.handleGrowth(reader, ch, offset)
		}
	}
}

// handleGrowth resets on truncation and drains new entries.
func (r *Reader) handleGrowth(reader *bufio.Reader, ch chan<- Entry, offset int64) int64 {
	info, err := r.file.Stat()
	if err != nil {
		return offset
	}
	if info.Size() < offset {
		r.file.Seek(0, io.SeekStart)
		offset = 0
		reader.Reset(r.file)
	}

	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			offset += int64(len(line))
			trimmed := strings.TrimSuffix(string(line), "\n")
			if trimmed != "" {
				var e Entry
				if jsonErr := json.Unmarshal([]byte(trimmed), &e); jsonErr == nil {
					select {
					case ch <- e:
					default:
						// Channel full, skip
					}
				}
			}
		}
		if err != nil {
			return offset
		}
	}
}

// ReadFile reads all entries from a log path.
// Convenience function that opens, reads, and closes the file.
func ReadFile(path string) ([]Entry, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.ReadAll()
}

// Summary contains aggregate statistics from a session log.
type Summary struct {
	Sessions       int
	TotalOutput    int
	Models         map[string]int // model name -> session count
	RecursiveRuns  int
	FirstTimestamp string
	LastTimestamp  string
}

// Summarize reads a log and returns aggregate statistics.
func Summarize(path string) (*Summary, error) {
	entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Models: make(map[string]int)}
	for _, e := range entries {
		summary.Sessions++
		summary.TotalOutput += e.OutputLength
		if e.Model != "" {
			summary.Models[e.Model]++
		}
		if e.Wave != nil {
			summary.RecursiveRuns++
		}
		if summary.FirstTimestamp == "" {
			summary.FirstTimestamp = e.Timestamp
		}
		summary.LastTimestamp = e.Timestamp
	}
	return summary, nil
}
