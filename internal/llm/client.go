// Package llm provides the HTTP client for the hosted model API, plus
// helpers for pulling structured JSON out of raw model text.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

const anthropicVersion = "2023-06-01"

// GenerateRequest holds the parameters for a model generation call.
type GenerateRequest struct {
	SystemPrompt string
	UserPrompt   string
}

// Usage reports token consumption for a single call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	CachedTokens int
}

// GenerateResponse holds the result of a model generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	Usage     Usage
	LatencyMs int64
}

// Client provides access to a language model for text generation.
type Client interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// messagesClient implements Client against the Anthropic messages API.
type messagesClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client that talks to the configured messages
// endpoint. Transient failures (connection errors, 429, 529, 5xx) are
// retried with exponential backoff and jitter up to cfg.MaxRetries.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &messagesClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

type messagesRequest struct {
	Model     string           `json:"model"`
	MaxTokens int              `json:"max_tokens"`
	System    string           `json:"system,omitempty"`
	Messages  []messageContent `json:"messages"`
}

type messageContent struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens          int `json:"input_tokens"`
		OutputTokens         int `json:"output_tokens"`
		CacheReadInputTokens int `json:"cache_read_input_tokens"`
	} `json:"usage"`
}

func (c *messagesClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body := messagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		System:    req.SystemPrompt,
		Messages: []messageContent{
			{Role: "user", Content: req.UserPrompt},
		},
	}

	backoff := retry.WithJitter(250*time.Millisecond,
		retry.WithMaxRetries(uint64(c.cfg.MaxRetries),
			retry.NewExponential(500*time.Millisecond)))

	var resp *messagesResponse
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := c.doRequest(ctx, body)
		if err != nil {
			if isRetryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		resp = r
		return nil
	})

	latency := time.Since(start).Milliseconds()
	if err != nil {
		if ctx.Err() != nil && !errors.Is(err, ErrRateLimited) && !errors.Is(err, ErrOverloaded) {
			err = ErrTimeout
		}
		c.observer.OnCallComplete(CallEvent{
			Model:     c.cfg.Model,
			LatencyMs: latency,
			ErrorCode: errorCode(err),
		})
		return nil, err
	}

	text := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	usage := Usage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		CachedTokens: resp.Usage.CacheReadInputTokens,
	}

	c.observer.OnCallComplete(CallEvent{
		Model:     c.cfg.Model,
		LatencyMs: latency,
		Success:   true,
		Usage:     usage,
	})

	return &GenerateResponse{
		Text:      text,
		Model:     resp.Model,
		Usage:     usage,
		LatencyMs: latency,
	}, nil
}

func (c *messagesClient) doRequest(ctx context.Context, body messagesRequest) (*messagesResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.Endpoint, "/") + "/v1/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", c.cfg.APIKey)
	httpReq.Header.Set("Anthropic-Version", anthropicVersion)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if err := statusError(httpResp.StatusCode, respBody); err != nil {
		return nil, err
	}

	var resp messagesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	return &resp, nil
}

func statusError(code int, body []byte) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrAuthentication
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code == 529:
		return ErrOverloaded
	default:
		return fmt.Errorf("model api returned status %d: %s", code, truncate(string(body), 200))
	}
}

func isRetryable(err error) bool {
	switch {
	case errors.Is(err, ErrRateLimited), errors.Is(err, ErrOverloaded), errors.Is(err, ErrUnavailable):
		return true
	case errors.Is(err, ErrAuthentication), errors.Is(err, ErrInvalidOutput), errors.Is(err, ErrTimeout):
		return false
	}
	// Unclassified HTTP errors: retry server-side failures only.
	return strings.Contains(err.Error(), "status 5")
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrOverloaded):
		return "OVERLOADED"
	case errors.Is(err, ErrRateLimited):
		return "RATE_LIMITED"
	case errors.Is(err, ErrAuthentication):
		return "AUTHENTICATION"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	default:
		return "UNKNOWN"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
