package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const (
	// maxBackoff caps any single wait between attempts.
	maxBackoff = 60 * time.Second

	// maxRetryAfter caps how long we honor an upstream Retry-After header.
	maxRetryAfter = 5 * time.Minute

	// maxExponent caps backoff growth to avoid overflow.
	maxExponent = 10
)

// doWithRetry runs do until it yields a usable response or attempts run out.
// Transient network errors and retryable statuses (408/429/5xx) are retried
// with jittered exponential backoff; the final response is returned as-is so
// the caller can map its status.
func (c *client) doWithRetry(ctx context.Context, do func() (*http.Response, error)) (*http.Response, error) {
	var lastErr error
	var retryAfter time.Duration

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			wait := computeBackoff(attempt, c.cfg.BaseBackoff, retryAfter)
			c.logger.Debug("retrying upstream request",
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
			)
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("llmclient: %w", ctx.Err())
			case <-time.After(wait):
			}
			retryAfter = 0
		}

		resp, err := do()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("llmclient: %w", ctx.Err())
			}
			if !isTransientNetError(err) {
				return nil, fmt.Errorf("llmclient: request failed: %w", err)
			}
			lastErr = err
			continue
		}

		if shouldRetryStatus(resp.StatusCode) && attempt < c.cfg.MaxRetries {
			retryAfter = parseRetryAfter(resp.Header)
			io.Copy(io.Discard, io.LimitReader(resp.Body, maxRequestSize))
			resp.Body.Close()
			lastErr = &APIError{StatusCode: resp.StatusCode, Message: "retryable upstream status"}
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("llmclient: max retries (%d) exceeded: %w", c.cfg.MaxRetries, lastErr)
}

// isTransientNetError reports whether err looks like a temporary
// network-level failure worth retrying.
func isTransientNetError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return false
}

// shouldRetryStatus reports whether an upstream status code is retryable.
func shouldRetryStatus(code int) bool {
	if code == http.StatusRequestTimeout || code == http.StatusTooManyRequests {
		return true
	}
	return code >= 500 && code <= 599
}

// parseRetryAfter reads the Retry-After header as either seconds or an
// HTTP date. Returns 0 when absent or unparseable.
func parseRetryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		d := time.Duration(secs) * time.Second
		if d > maxRetryAfter {
			return maxRetryAfter
		}
		return d
	}
	if t, err := http.ParseTime(v); err == nil {
		d := time.Until(t)
		if d < 0 {
			return 0
		}
		if d > maxRetryAfter {
			return maxRetryAfter
		}
		return d
	}
	return 0
}

// computeBackoff returns the wait before the given attempt. An upstream
// Retry-After hint wins; otherwise exponential backoff with full jitter.
func computeBackoff(attempt int, base time.Duration, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return retryAfter
	}
	exp := attempt
	if exp > maxExponent {
		exp = maxExponent
	}
	ceiling := base * time.Duration(1<<uint(exp))
	if ceiling > maxBackoff {
		ceiling = maxBackoff
	}
	return time.Duration(rand.Int63n(int64(ceiling) + 1))
}
