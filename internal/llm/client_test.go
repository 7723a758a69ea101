package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func testRequest() *ChatRequest {
	return &ChatRequest{
		Model: "gpt-4",
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: "You are a helpful assistant."},
			{Role: RoleUser, Content: "Say hello."},
		},
	}
}

func successBody(content string) []byte {
	resp := providerChatResponse{
		ID:      "chatcmpl-123",
		Object:  "chat.completion",
		Created: 1700000000,
		Model:   "gpt-4",
		Choices: []providerChatChoice{
			{Index: 0, Message: ChatMessage{Role: RoleAssistant, Content: content}, FinishReason: "stop"},
		},
		Usage: providerUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	b, _ := json.Marshal(resp)
	return b
}

func TestChatCompletion_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s, want /v1/chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer test-key")
		}
		var req providerChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Model != "gpt-4" {
			t.Errorf("model = %q, want gpt-4", req.Model)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(successBody("Hello!"))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	resp, err := c.ChatCompletion(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if got := resp.Choices[0].Message.Content; got != "Hello!" {
		t.Errorf("content = %q, want %q", got, "Hello!")
	}
	if resp.Usage.TotalTokens != 15 {
		t.Errorf("total tokens = %d, want 15", resp.Usage.TotalTokens)
	}
}

func TestChatCompletion_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"rate_limit_error"}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		MaxRetries:  1,
		BaseBackoff: time.Millisecond,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.ChatCompletion(context.Background(), testRequest())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsRateLimited(err) {
		t.Errorf("IsRateLimited = false, want true; err = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2 (initial + 1 retry)", got)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %v is not *APIError", err)
	}
	if apiErr.Message != "Rate limit reached" {
		t.Errorf("message = %q, want provider message", apiErr.Message)
	}
}

func TestChatCompletion_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":{"message":"upstream hiccup","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(successBody("Recovered."))
	}))
	defer srv.Close()

	c, err := NewClient(Config{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	resp, err := c.ChatCompletion(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("ChatCompletion: %v", err)
	}
	if got := resp.Choices[0].Message.Content; got != "Recovered." {
		t.Errorf("content = %q, want %q", got, "Recovered.")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestChatCompletion_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","object":"chat.completion","model":"gpt-4","choices":[]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "test-key"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.ChatCompletion(context.Background(), testRequest())
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("err = %v, want ErrNoContent", err)
	}
}

func TestChatCompletion_InvalidRequest(t *testing.T) {
	c, err := NewClient(Config{BaseURL: "http://localhost:0", APIKey: "test-key"}, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := c.ChatCompletion(context.Background(), nil); err == nil {
		t.Error("nil request: expected error")
	}

	req := testRequest()
	req.Model = ""
	if _, err := c.ChatCompletion(context.Background(), req); err == nil {
		t.Error("missing model: expected error")
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(Config{APIKey: "k"}, nil); err == nil {
		t.Error("missing BaseURL: expected error")
	}
	if _, err := NewClient(Config{BaseURL: "http://x"}, nil); err == nil {
		t.Error("missing APIKey: expected error")
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{BaseURL: "https://api.openai.com/v1/", APIKey: "k"}
	got := cfg.WithDefaults()

	if got.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", got.BaseURL)
	}
	if got.UpstreamTimeout != 30*time.Second {
		t.Errorf("UpstreamTimeout = %v, want 30s", got.UpstreamTimeout)
	}
	if got.MaxRetries != 2 {
		t.Errorf("MaxRetries = %d, want 2", got.MaxRetries)
	}
}

func TestShouldRetryStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503} {
		if !shouldRetryStatus(code) {
			t.Errorf("shouldRetryStatus(%d) = false, want true", code)
		}
	}
	for _, code := range []int{200, 201, 400, 401, 404} {
		if shouldRetryStatus(code) {
			t.Errorf("shouldRetryStatus(%d) = true, want false", code)
		}
	}
}

func TestParseRetryAfter(t *testing.T) {
	h := http.Header{}
	if got := parseRetryAfter(h); got != 0 {
		t.Errorf("absent header: got %v, want 0", got)
	}

	h.Set("Retry-After", "3")
	if got := parseRetryAfter(h); got != 3*time.Second {
		t.Errorf("seconds form: got %v, want 3s", got)
	}

	h.Set("Retry-After", "900")
	if got := parseRetryAfter(h); got != maxRetryAfter {
		t.Errorf("capped: got %v, want %v", got, maxRetryAfter)
	}

	h.Set("Retry-After", "not-a-time")
	if got := parseRetryAfter(h); got != 0 {
		t.Errorf("garbage: got %v, want 0", got)
	}
}
