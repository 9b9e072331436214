package sessionlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Append writes one entry to the log, creating the file and its
// directory on first use. Callers treat failures as warnings; a broken
// log never aborts a session.
func Append(path string, e Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding session entry: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing session entry: %w", err)
	}
	return nil
}
