package wire

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func extractDelta(line []byte) (string, error) {
	var chunk struct {
		Choices []struct {
			Delta struct {
				Content string `json:"content"`
			} `json:"delta"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(line, &chunk); err != nil {
		return "", err
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}

func extractResponse(line []byte) (string, error) {
	var chunk struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(line, &chunk); err != nil {
		return "", err
	}
	return chunk.Response, nil
}

func TestDecodeSSE(t *testing.T) {
	stream := strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"H"}}]}`,
		``,
		`data: {"choices":[{"delta":{"content":"i"}}]}`,
		`data: [DONE]`,
		``,
	}, "\n")

	var echo bytes.Buffer
	got, err := DecodeSSE(strings.NewReader(stream), extractDelta, &echo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hi" {
		t.Errorf("accumulated = %q, want %q", got, "Hi")
	}
	if echo.String() != "Hi" {
		t.Errorf("echoed = %q, want %q", echo.String(), "Hi")
	}
}

func TestDecodeSSE_SkipsMalformedLines(t *testing.T) {
	stream := strings.Join([]string{
		`data: {"choices":[{"delta":{"content":"A"}}]}`,
		`data: {not json`,
		`event: noise`,
		`data: {"choices":[{"delta":{"content":"B"}}]}`,
		`data: [DONE]`,
	}, "\n")

	got, err := DecodeSSE(strings.NewReader(stream), extractDelta, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AB" {
		t.Errorf("accumulated = %q, want %q", got, "AB")
	}
}

func TestDecodeSSE_MalformedLineIsLogged(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	defer slog.SetDefault(prev)

	stream := "data: {not json\n" +
		`data: {"choices":[{"delta":{"content":"ok"}}]}` + "\n" +
		"data: [DONE]\n"
	got, err := DecodeSSE(strings.NewReader(stream), extractDelta, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("accumulated = %q, want %q", got, "ok")
	}
	// The skip must be visible at the default handler's level.
	if !strings.Contains(logs.String(), "skipping malformed stream line") {
		t.Errorf("expected a diagnostic for the skipped line, got %q", logs.String())
	}
}

func TestDecodeSSE_EmptyDeltas(t *testing.T) {
	// Role-only first chunk and empty finish chunk carry no content.
	stream := strings.Join([]string{
		`data: {"choices":[{"delta":{}}]}`,
		`data: {"choices":[{"delta":{"content":"ok"}}]}`,
		`data: {"choices":[]}`,
		`data: [DONE]`,
	}, "\n")

	got, err := DecodeSSE(strings.NewReader(stream), extractDelta, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("accumulated = %q, want %q", got, "ok")
	}
}

func TestDecodeNDJSON(t *testing.T) {
	stream := `{"response":"A","done":false}` + "\n" +
		`{"response":"B","done":true}` + "\n"

	var echo bytes.Buffer
	got, err := DecodeNDJSON(strings.NewReader(stream), extractResponse, &echo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AB" {
		t.Errorf("accumulated = %q, want %q", got, "AB")
	}
	if echo.String() != "AB" {
		t.Errorf("echoed = %q, want %q", echo.String(), "AB")
	}
}

func TestDecodeNDJSON_SkipsMalformedLines(t *testing.T) {
	stream := `{"response":"A"}` + "\n" +
		`garbage` + "\n" +
		`{"response":"B"}` + "\n"

	got, err := DecodeNDJSON(strings.NewReader(stream), extractResponse, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "AB" {
		t.Errorf("accumulated = %q, want %q", got, "AB")
	}
}

// orderWriter records each write so arrival order is observable.
type orderWriter struct {
	writes []string
}

func (w *orderWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func TestDecodeNDJSON_EchoPrecedesAccumulation(t *testing.T) {
	stream := `{"response":"one "}` + "\n" +
		`{"response":"two "}` + "\n" +
		`{"response":"three"}` + "\n"

	echo := &orderWriter{}
	got, err := DecodeNDJSON(strings.NewReader(stream), extractResponse, echo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"one ", "two ", "three"}
	if len(echo.writes) != len(want) {
		t.Fatalf("expected %d echo writes, got %d", len(want), len(echo.writes))
	}
	for i := range want {
		if echo.writes[i] != want[i] {
			t.Errorf("write %d = %q, want %q", i, echo.writes[i], want[i])
		}
	}
	if got != "one two three" {
		t.Errorf("accumulated = %q, want %q", got, "one two three")
	}
}

func TestDecodeJSON_ParseFailureIsFatal(t *testing.T) {
	var out struct {
		Response string `json:"response"`
	}
	if err := DecodeJSON(strings.NewReader(`{"response": "ok"}`), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Response != "ok" {
		t.Errorf("Response = %q, want %q", out.Response, "ok")
	}

	if err := DecodeJSON(strings.NewReader(`{broken`), &out); err == nil {
		t.Error("expected error for malformed top-level JSON")
	}
}

func TestErrorBody_Bounded(t *testing.T) {
	big := strings.Repeat("x", maxErrorBody+100)
	got := ErrorBody(strings.NewReader(big))
	if len(got) != maxErrorBody {
		t.Errorf("expected body capped at %d bytes, got %d", maxErrorBody, len(got))
	}
}
