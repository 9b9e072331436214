package wire

import (
	"encoding/json"
	"fmt"
	"io"
)

// maxErrorBody caps how much of an error response body is kept for
// error messages.
const maxErrorBody = 8 * 1024

// DecodeJSON decodes a one-shot (non-streaming) response body into v.
// Unlike the streaming decoders, a parse failure here is fatal for the
// call: there is no later chunk to recover with.
func DecodeJSON(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// ErrorBody reads a bounded excerpt of a non-2xx response body for
// inclusion in error messages.
func ErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return string(body)
}
