// Package clip copies text to the system clipboard. Clipboard failure
// is never fatal to a session; callers downgrade errors to warnings.
package clip

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Copy places text on the system clipboard.
func Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
