package phrasebridge_openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/v3/option"

	"phrase-bridge/pkg/types"
)

func TestClient_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/responses") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if body["model"] != "test-model" {
			t.Errorf("expected test-model, got %v", body["model"])
		}
		if input, _ := body["input"].(string); !strings.Contains(input, "SOURCE_TEXT:\nHello") {
			t.Errorf("unexpected input %v", body["input"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "resp_1",
			"object": "response",
			"created_at": 1700000000,
			"model": "test-model",
			"status": "completed",
			"output": [{
				"type": "message",
				"id": "msg_1",
				"role": "assistant",
				"status": "completed",
				"content": [{"type": "output_text", "text": " Hola\n", "annotations": []}]
			}]
		}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(types.OpenAIConfig{APIKey: "test-key"}, "test-model",
		option.WithBaseURL(server.URL+"/"),
		option.WithMaxRetries(0),
	)

	got, err := client.Translate(context.Background(), "Hello", "en", "es")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Hola" {
		t.Errorf("expected Hola, got %q", got)
	}
}

func TestClient_Translate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"invalid api key","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(types.OpenAIConfig{APIKey: "bad-key"}, "",
		option.WithBaseURL(server.URL+"/"),
		option.WithMaxRetries(0),
	)

	if _, err := client.Translate(context.Background(), "Hello", "en", "es"); err == nil {
		t.Error("expected error for unauthorized response")
	}
}

func TestNewOpenAIClient_DefaultModel(t *testing.T) {
	client := NewOpenAIClient(types.OpenAIConfig{APIKey: "test-key"}, "")
	if client.model != defaultModel {
		t.Errorf("expected %s, got %s", defaultModel, client.model)
	}
}
