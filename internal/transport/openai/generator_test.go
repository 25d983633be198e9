package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/tanakakogyo/shopkb/internal/domain"
	"github.com/tanakakogyo/shopkb/internal/usecase/chat"
)

func newFakeAPI(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewGenerator(&Config{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Model:    "llama3.1:8b",
		Provider: "ollama",
		Logger:   zap.NewNop(),
	})
}

func TestGenerate_Success(t *testing.T) {
	var gotBody map[string]any
	gen := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "了解しました"}}],
			"usage": {"prompt_tokens": 10, "completion_tokens": 5}
		}`))
	})

	reply, err := gen.Generate(context.Background(), []chat.Message{
		{Role: chat.RoleSystem, Content: "あなたはアシスタントです"},
		{Role: chat.RoleUser, Content: "こんにちは"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "了解しました" {
		t.Errorf("unexpected reply %q", reply)
	}
	if gotBody["model"] != "llama3.1:8b" {
		t.Errorf("unexpected model %v", gotBody["model"])
	}
	if msgs, ok := gotBody["messages"].([]any); !ok || len(msgs) != 2 {
		t.Errorf("expected 2 messages in request, got %v", gotBody["messages"])
	}
}

func TestGenerate_APIError(t *testing.T) {
	gen := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "model overloaded", "type": "server_error"}}`))
	})

	_, err := gen.Generate(context.Background(), []chat.Message{
		{Role: chat.RoleUser, Content: "test"},
	})
	if !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Errorf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestGenerate_EmptyChoices(t *testing.T) {
	gen := newFakeAPI(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := gen.Generate(context.Background(), []chat.Message{
		{Role: chat.RoleUser, Content: "test"},
	})
	if !errors.Is(err, domain.ErrGeneratorUnavailable) {
		t.Errorf("expected ErrGeneratorUnavailable, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	gen := newFakeAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	if err := gen.HealthCheck(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHealthCheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	gen := NewGenerator(&Config{
		APIKey:   "test-key",
		BaseURL:  srv.URL,
		Model:    "llama3.1:8b",
		Provider: "ollama",
		Logger:   zap.NewNop(),
	})

	if err := gen.HealthCheck(context.Background()); err == nil {
		t.Error("expected error for unreachable API")
	}
}

func TestName(t *testing.T) {
	gen := NewGenerator(&Config{Provider: "groq", Logger: zap.NewNop()})
	if gen.Name() != "groq" {
		t.Errorf("unexpected name %q", gen.Name())
	}
}
