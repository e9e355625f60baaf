package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"fence without closing", "```json\n{\"a\":1}", `{"a":1}`},
		{"plain text untouched", "not json", "not json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFences(tt.input); got != tt.want {
				t.Errorf("stripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAnalysis(t *testing.T) {
	raw := "```json\n" + `{
		"score": 82,
		"level": "Intermediate",
		"medal": "Silver",
		"summary": "Solid project.",
		"strengths": ["a", "b", "c"],
		"improvements": ["d", "e", "f"],
		"roadmap": ["g", "h", "i"]
	}` + "\n```"

	result, err := parseAnalysis(raw)
	if err != nil {
		t.Fatalf("parseAnalysis: %v", err)
	}
	if result.Score != 82 || result.Level != "Intermediate" || result.Medal != "Silver" {
		t.Errorf("unexpected result: %+v", result)
	}
	if len(result.Roadmap) != 3 {
		t.Errorf("Roadmap len = %d, want 3", len(result.Roadmap))
	}
}

func TestParseAnalysisInvalidJSON(t *testing.T) {
	_, err := parseAnalysis("not json")

	var formatErr *ResponseFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("want *ResponseFormatError, got %v", err)
	}
	if formatErr.Raw != "not json" {
		t.Errorf("Raw = %q, want the original text preserved", formatErr.Raw)
	}
}

// Missing fields are not an error at this layer: the payload only has to be
// well-formed JSON, defaults come in at render time.
func TestParseAnalysisPartialPayload(t *testing.T) {
	result, err := parseAnalysis(`{"score": 10}`)
	if err != nil {
		t.Fatalf("parseAnalysis: %v", err)
	}
	if result.Score != 10 || result.Level != "" || result.Summary != "" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		payload := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{
					"role":    "assistant",
					"content": "```json\n{\"score\":90,\"medal\":\"Gold\"}\n```",
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-key", "test-model")
	result, err := client.Analyze(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Score != 90 || result.Medal != "Gold" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestAnalyzeProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "bad-key", "test-model")
	if _, err := client.Analyze(context.Background(), "prompt"); err == nil {
		t.Fatal("want error from provider failure")
	}
}
