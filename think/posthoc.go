package think

import "regexp"

// blockPattern matches one complete thinking block, non-greedy so
// adjacent blocks are removed independently. (?s) lets the block span
// newlines.
var blockPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)

// RemoveBlocks strips every complete <think>...</think> span from text
// in a single pass. An opening tag with no matching close is left
// untouched. Filtering already-filtered text returns it unchanged.
func RemoveBlocks(text string) string {
	return blockPattern.ReplaceAllString(text, "")
}
