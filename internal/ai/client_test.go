package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mixmixailov/BRO247/internal/domain"
	"github.com/mixmixailov/BRO247/internal/store"
)

func TestBuildPrompt(t *testing.T) {
	if got := BuildPrompt(nil); !strings.Contains(got, "бро") {
		t.Fatalf("nil profile should default to RU street, got %q", got)
	}

	p := &store.Profile{Language: domain.LocaleEN, Style: "coach", Gender: "female"}
	got := BuildPrompt(p)
	if !strings.Contains(got, "coach") {
		t.Fatalf("want coach prompt, got %q", got)
	}
	if !strings.Contains(got, "female") {
		t.Fatalf("want gender line, got %q", got)
	}
}

func TestReply_HistoryWindow(t *testing.T) {
	var lastReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&lastReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "ok"}},
			},
		})
	}))
	defer srv.Close()

	c := New("test-key", "gpt-test", zap.NewNop())
	c.baseURL = srv.URL

	for i := 0; i < 20; i++ {
		if _, err := c.Reply(context.Background(), 1, nil, "ping"); err != nil {
			t.Fatalf("Reply %d: %v", i, err)
		}
	}

	// system prompt + at most historyWindow turns
	if len(lastReq.Messages) > historyWindow+1 {
		t.Fatalf("history window not applied: %d messages", len(lastReq.Messages))
	}
	if lastReq.Messages[0].Role != "system" {
		t.Fatalf("first message must be the system prompt, got %q", lastReq.Messages[0].Role)
	}
}

func TestReply_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := New("test-key", "gpt-test", zap.NewNop())
	c.baseURL = srv.URL

	if _, err := c.Reply(context.Background(), 1, nil, "ping"); err == nil {
		t.Fatal("want error on non-200 response")
	}
}
