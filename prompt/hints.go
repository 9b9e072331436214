package prompt

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	localHintsFile = ".olaHints"
	homeHintsDir   = ".ola-hints"
	homeHintsFile  = "olaHints"
)

// LoadHints reads persistent prompt hints. The working directory's
// .olaHints wins; otherwise ~/.ola-hints/olaHints is tried. A missing
// file is not an error and yields no hints.
func LoadHints() (string, error) {
	if data, err := os.ReadFile(localHintsFile); err == nil {
		return strings.TrimSpace(string(data)), nil
	} else if !os.IsNotExist(err) {
		return "", err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}
	data, err := os.ReadFile(filepath.Join(home, homeHintsDir, homeHintsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
