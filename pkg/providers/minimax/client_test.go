package minimax

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"polaris-hq/polaris/pkg/providers"
)

func newTestClient(baseURL string) *Client {
	return newClient(clientConfig{
		provider: "minimax",
		baseURL:  baseURL,
		apiKey:   "sk-test",
		model:    providers.Model{ID: "MiniMax-M2", Provider: "minimax"},
		headers:  map[string]string{"x-extra": "1"},
	})
}

func TestClient_Complete(t *testing.T) {
	var gotBody wireRequest
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotHeaders = r.Header.Clone()

		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &gotBody); err != nil {
			t.Fatalf("failed to decode request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"content": [
				{"type": "text", "text": "Hello"},
				{"type": "thinking", "text": "ignored"},
				{"type": "text", "text": ", world"}
			],
			"stop_reason": "end_turn",
			"usage": {
				"input_tokens": 1000,
				"output_tokens": 12,
				"cache_creation_input_tokens": 200,
				"cache_read_input_tokens": 300
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	resp, err := client.Complete(context.Background(), &providers.CompletionRequest{
		System: "be brief",
		Messages: []providers.Message{
			{Role: providers.RoleUser, Content: "stable prefix", Cache: true},
			{Role: providers.RoleUser, Content: "hi"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Request shape.
	if gotBody.Model != "MiniMax-M2" {
		t.Errorf("expected model MiniMax-M2, got %q", gotBody.Model)
	}
	if gotBody.MaxTokens != defaultMaxTokens {
		t.Errorf("expected default max_tokens %d, got %d", defaultMaxTokens, gotBody.MaxTokens)
	}
	if gotBody.System != "be brief" {
		t.Errorf("expected system prompt, got %q", gotBody.System)
	}
	if len(gotBody.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(gotBody.Messages))
	}
	first := gotBody.Messages[0].Content[0]
	if first.CacheControl == nil || first.CacheControl.Type != providers.CacheControlEphemeral {
		t.Error("expected an ephemeral cache_control on the cached message")
	}
	if gotBody.Messages[1].Content[0].CacheControl != nil {
		t.Error("expected no cache_control on the uncached message")
	}

	// Headers.
	if got := gotHeaders.Get("x-api-key"); got != "sk-test" {
		t.Errorf("expected x-api-key sk-test, got %q", got)
	}
	if got := gotHeaders.Get("anthropic-version"); got != anthropicVersion {
		t.Errorf("expected anthropic-version %q, got %q", anthropicVersion, got)
	}
	if got := gotHeaders.Get("x-extra"); got != "1" {
		t.Errorf("expected profile header forwarded, got %q", got)
	}

	// Response transformation: only text blocks are concatenated.
	if resp.Content != "Hello, world" {
		t.Errorf("expected concatenated text, got %q", resp.Content)
	}
	if resp.StopReason != "end_turn" {
		t.Errorf("expected stop_reason end_turn, got %q", resp.StopReason)
	}
	if resp.Usage.InputTokens != 1000 || resp.Usage.OutputTokens != 12 {
		t.Errorf("unexpected usage: %+v", resp.Usage)
	}
	if resp.Metadata == nil {
		t.Fatal("expected call metadata")
	}
	if resp.Metadata.CacheWriteTokens != 200 {
		t.Errorf("expected 200 cache-write tokens, got %d", resp.Metadata.CacheWriteTokens)
	}
	if resp.Metadata.CacheReadTokens == nil || *resp.Metadata.CacheReadTokens != 300 {
		t.Errorf("expected 300 cache-read tokens, got %v", resp.Metadata.CacheReadTokens)
	}
}

func TestClient_Complete_NoCacheCounters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"content": [{"type": "text", "text": "ok"}],
			"usage": {"input_tokens": 10, "output_tokens": 2}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	resp, err := client.Complete(context.Background(), &providers.CompletionRequest{
		Messages:  []providers.Message{{Role: providers.RoleUser, Content: "hi"}},
		MaxTokens: 64,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A provider that reports no cache-read counter leaves it nil, which
	// downstream accounting distinguishes from an explicit zero.
	if resp.Metadata.CacheReadTokens != nil {
		t.Errorf("expected nil cache-read counter, got %v", *resp.Metadata.CacheReadTokens)
	}
	if resp.Metadata.CacheWriteTokens != 0 {
		t.Errorf("expected zero cache-write tokens, got %d", resp.Metadata.CacheWriteTokens)
	}
}

func TestClient_Complete_AuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	defer client.Close()

	_, err := client.Complete(context.Background(), &providers.CompletionRequest{
		Messages: []providers.Message{{Role: providers.RoleUser, Content: "hi"}},
	})

	var authErr *providers.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *providers.AuthError, got %T: %v", err, err)
	}
	if authErr.Provider != "minimax" {
		t.Errorf("expected provider minimax, got %q", authErr.Provider)
	}
}
