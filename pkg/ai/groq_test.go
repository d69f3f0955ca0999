package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sehatsaathi/voicecare/pkg/config"
)

func newTestClient(url string) *GroqClient {
	return NewGroqClient(&config.GroqConfig{
		APIKey:  "test-key",
		BaseURL: url,
		Model:   "test-model",
	})
}

func TestCompleteReturnsAssistantContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header %q", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model %q", req.Model)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	got, err := client.Complete(context.Background(), "system", "user", 0.1)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != `{"ok":true}` {
		t.Errorf("unexpected content %q", got)
	}
}

func TestCompleteRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"recovered"}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	got, err := client.Complete(context.Background(), "system", "user", 0.1)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if got != "recovered" {
		t.Errorf("unexpected content %q", got)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestCompleteDoesNotRetryClientErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Complete(context.Background(), "system", "user", 0.1); err == nil {
		t.Fatal("expected error for 401 response")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.Complete(context.Background(), "system", "user", 0.1); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
