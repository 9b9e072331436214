// Package wire implements the streaming and one-shot wire formats shared
// by the provider packages.
//
// Two line-oriented streaming formats exist in the wild: SSE-style
// streams where each event line is prefixed with "data: " and terminated
// by a "[DONE]" sentinel (OpenAI, Anthropic), and NDJSON streams carrying
// one bare JSON object per line (Ollama). Both are decoded here with the
// same tolerance rule: a line that fails to parse is skipped with a
// diagnostic, never fatal. Non-streaming responses use DecodeJSON, where
// a parse failure is fatal for the call.
package wire

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
)

const (
	ssePrefix   = "data: "
	sseDone     = "[DONE]"
	maxLineSize = 10 * 1024 * 1024 // 10MB max line
	initBufSize = 64 * 1024        // 64KB initial buffer
)

// ExtractFunc pulls the text fragment out of one decoded line's JSON
// payload. Returning an error marks the line malformed; the decoder
// skips it and continues.
type ExtractFunc func(line []byte) (string, error)

// DecodeSSE consumes a "data: "-prefixed event stream. Each payload is
// handed to extract; the resulting fragment is written to echo (when
// non-nil) and then appended to the accumulator, strictly in arrival
// order. Blank lines, non-data lines, and the "[DONE]" sentinel are
// ignored. Malformed payloads are skipped with a diagnostic.
func DecodeSSE(r io.Reader, extract ExtractFunc, echo io.Writer) (string, error) {
	return decodeLines(r, echo, func(line string) ([]byte, bool) {
		payload, ok := strings.CutPrefix(line, ssePrefix)
		if !ok || payload == sseDone {
			return nil, false
		}
		return []byte(payload), true
	}, extract)
}

// DecodeNDJSON consumes a stream of newline-delimited JSON objects.
// Semantics match DecodeSSE minus the prefix and sentinel handling.
func DecodeNDJSON(r io.Reader, extract ExtractFunc, echo io.Writer) (string, error) {
	return decodeLines(r, echo, func(line string) ([]byte, bool) {
		return []byte(line), true
	}, extract)
}

func decodeLines(r io.Reader, echo io.Writer, frame func(string) ([]byte, bool), extract ExtractFunc) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, initBufSize), maxLineSize)

	var acc strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		payload, ok := frame(line)
		if !ok {
			continue
		}
		fragment, err := extract(payload)
		if err != nil {
			slog.Warn("skipping malformed stream line", "error", err)
			continue
		}
		if fragment == "" {
			continue
		}
		if echo != nil {
			if _, err := io.WriteString(echo, fragment); err != nil {
				return acc.String(), err
			}
		}
		acc.WriteString(fragment)
	}
	return acc.String(), scanner.Err()
}
