package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"GardenBot/internal/config"
)

func TestChatGPTComplete(t *testing.T) {
	t.Parallel()

	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			t.Errorf("unexpected auth header: %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  - Полив утром\n- Мульча  "}}]}`))
	}))
	defer server.Close()

	client := NewChatGPTClient(config.ChatGPTConfig{
		Endpoint: server.URL,
		Model:    "gpt-test",
		APIKey:   "secret",
	}, server.Client())

	reply, err := client.Complete(context.Background(), "Статья о томатах")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if reply != "- Полив утром\n- Мульча" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if got.Model != "gpt-test" || len(got.Messages) != 2 {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.Messages[0].Role != "system" || got.Messages[0].Content == "" {
		t.Fatalf("expected default system prompt, got %+v", got.Messages[0])
	}
	if got.Messages[1].Content != "Статья о томатах" {
		t.Fatalf("unexpected user message: %q", got.Messages[1].Content)
	}
}

func TestChatGPTCompleteErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "http error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`, want: "401"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, want: "no choices"},
		{name: "api error", status: http.StatusOK, body: `{"error":{"message":"quota"}}`, want: "quota"},
	}

	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_, _ = w.Write([]byte(tc.body))
		}))

		client := NewChatGPTClient(config.ChatGPTConfig{Endpoint: server.URL, Model: "m", APIKey: "k"}, server.Client())
		_, err := client.Complete(context.Background(), "x")
		server.Close()

		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestChatGPTMisconfigured(t *testing.T) {
	t.Parallel()

	client := NewChatGPTClient(config.ChatGPTConfig{Endpoint: "http://localhost"}, nil)
	if _, err := client.Complete(context.Background(), "x"); err == nil {
		t.Fatalf("expected misconfiguration error")
	}
}
