package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"vitalaid/vitalaid/config"
	"vitalaid/vitalaid/types"
	"vitalaid/vitalaid/utils/logging"
)

// GenerateRequest is the Gemini generateContent request body.
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// Client is the outbound text-generation dependency. Generate returns the raw
// envelope body on success; failures carry a types.Failure kind.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

type GeminiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client

	maxAttempts int
	backoffBase time.Duration
}

func NewGeminiClient(cfg config.Config) *GeminiClient {
	timeoutSeconds := cfg.GeminiTimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = 15
	}
	return &GeminiClient{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.GeminiBaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.GeminiAPIKey),
		model:   strings.TrimSpace(cfg.GeminiModel),
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		maxAttempts: 3,
		backoffBase: time.Second,
	}
}

// Generate runs one generateContent exchange with bounded retries. Transport
// errors, non-2xx statuses, unparseable envelopes and provider error
// envelopes all count as retryable; after maxAttempts the call surfaces as
// UPSTREAM_UNAVAILABLE. A cancelled or expired context stops retrying
// immediately and surfaces as TIMEOUT.
func (c *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	defer logging.LogDuration(ctx, "gemini_generate")()

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	backoff := c.backoffBase
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", types.WrapFailure(types.Timeout, "advisory call cancelled while backing off", ctx.Err())
			}
			backoff *= 2
		}

		raw, err := c.attempt(ctx, endpoint, body)
		if err == nil {
			return raw, nil
		}
		if ctx.Err() != nil {
			return "", types.WrapFailure(types.Timeout, "advisory call cancelled", ctx.Err())
		}
		lastErr = err
		logging.ErrorLogger.Error("gemini attempt failed",
			zap.Int("attempt", attempt), zap.Error(err))
	}

	return "", types.WrapFailure(types.UpstreamUnavailable, "gemini unavailable after retries", lastErr)
}

func (c *GeminiClient) attempt(ctx context.Context, endpoint string, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	// The key rides in the query string, Gemini style. It must never be logged.
	q := httpReq.URL.Query()
	q.Set("key", c.apiKey)
	httpReq.URL.RawQuery = q.Encode()
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// A *url.Error echoes the full URL, key included. Strip the query
		// before the error can reach a log line.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return "", fmt.Errorf("gemini transport error: %s %s: %w", uerr.Op, httpReq.URL.Path, uerr.Err)
		}
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, truncateForLog(string(raw), 300))
	}

	var envelope struct {
		Error *json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", fmt.Errorf("gemini envelope is not JSON: %w", err)
	}
	if envelope.Error != nil {
		return "", fmt.Errorf("gemini error envelope: %s", truncateForLog(string(*envelope.Error), 300))
	}
	return string(raw), nil
}

func truncateForLog(value string, limit int) string {
	trimmed := strings.TrimSpace(value)
	if limit <= 0 || len(trimmed) <= limit {
		return trimmed
	}
	return trimmed[:limit] + "...(truncated)"
}
