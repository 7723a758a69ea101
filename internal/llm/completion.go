package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	// maxRequestSize caps the serialized request body sent upstream.
	maxRequestSize = 2 * 1024 * 1024 // 2MB

	// maxMessageSize caps any single message's content.
	maxMessageSize = 512 * 1024 // 512KB
)

// ChatCompletion sends a chat completion request to the upstream provider
// and returns the assistant's reply.
func (c *client) ChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req == nil {
		return nil, errors.New("llmclient: request cannot be nil")
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("llmclient: invalid request: %w", err)
	}
	for i := range req.Messages {
		if len(req.Messages[i].Content) > maxMessageSize {
			return nil, fmt.Errorf("llmclient: message %d exceeds max size of %d bytes", i, maxMessageSize)
		}
	}

	provReq := providerChatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxTokens,
	}
	body, err := json.Marshal(provReq)
	if err != nil {
		return nil, fmt.Errorf("llmclient: marshal request: %w", err)
	}
	if len(body) > maxRequestSize {
		return nil, fmt.Errorf("llmclient: request exceeds max size of %d bytes", maxRequestSize)
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.UpstreamTimeout)
	defer cancel()

	url := c.cfg.BaseURL + "/v1/chat/completions"

	// Build and send one attempt. A fresh request per attempt keeps the
	// body reader valid across retries.
	doOnce := func() (*http.Response, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("llmclient: throttle wait: %w", err)
			}
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("llmclient: build request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		return c.httpClient.Do(httpReq)
	}

	start := time.Now()
	resp, err := c.doWithRetry(ctx, doOnce)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxRequestSize))
	if err != nil {
		return nil, fmt.Errorf("llmclient: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var provErr providerErrorResponse
		if json.Unmarshal(respBody, &provErr) == nil && provErr.Error.Message != "" {
			apiErr.ErrType = provErr.Error.Type
			apiErr.Message = provErr.Error.Message
		} else {
			apiErr.Message = truncate(string(respBody), 512)
		}
		c.logger.Warn("upstream request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("model", req.Model),
			zap.Duration("latency", time.Since(start)),
			zap.String("error", truncate(apiErr.Message, 256)),
		)
		return nil, apiErr
	}

	var provResp providerChatResponse
	if err := json.Unmarshal(respBody, &provResp); err != nil {
		return nil, fmt.Errorf("llmclient: decode response: %w", err)
	}
	if len(provResp.Choices) == 0 || provResp.Choices[0].Message.Content == "" {
		return nil, ErrNoContent
	}

	out := &ChatResponse{
		ID:    provResp.ID,
		Model: provResp.Model,
		Usage: &Usage{
			PromptTokens:     provResp.Usage.PromptTokens,
			CompletionTokens: provResp.Usage.CompletionTokens,
			TotalTokens:      provResp.Usage.TotalTokens,
		},
	}
	if provResp.Created > 0 {
		out.Created = time.Unix(provResp.Created, 0).UTC()
	}
	for _, ch := range provResp.Choices {
		out.Choices = append(out.Choices, ChatChoice{
			Index:        ch.Index,
			Message:      ch.Message,
			FinishReason: ch.FinishReason,
		})
	}

	c.logger.Debug("chat completion ok",
		zap.String("model", provResp.Model),
		zap.Duration("latency", time.Since(start)),
		zap.Int("prompt_tokens", provResp.Usage.PromptTokens),
		zap.Int("completion_tokens", provResp.Usage.CompletionTokens),
		zap.String("content", truncate(provResp.Choices[0].Message.Content, 200)),
	)

	return out, nil
}

// truncate shortens s for logging.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
