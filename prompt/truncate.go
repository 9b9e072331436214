package prompt

import "unicode/utf8"

// DefaultFileLimit is the byte ceiling applied to each attached file.
const DefaultFileLimit = 10000

// truncateBytes cuts s to at most limit bytes without splitting a
// UTF-8 sequence, walking back to the nearest rune boundary. The
// second return reports whether anything was cut.
func truncateBytes(s string, limit int) (string, bool) {
	if len(s) <= limit {
		return s, false
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut], true
}
