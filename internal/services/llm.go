package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/satish-r-singh/pathfinder-api/internal/config"
	"github.com/sirupsen/logrus"
)

// LLMClient wraps an OpenAI-compatible chat-completions endpoint. All
// generators in this package go through GenerateJSON.
type LLMClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
	log        *logrus.Entry
}

// LLM is the process-wide generation boundary, set by InitLLM.
var LLM *LLMClient

func InitLLM(cfg *config.Config) error {
	if cfg.OpenAIAPIKey == "" {
		return fmt.Errorf("missing OPENAI_API_KEY")
	}
	LLM = &LLMClient{
		baseURL:    strings.TrimSuffix(cfg.OpenAIBaseURL, "/"),
		apiKey:     cfg.OpenAIAPIKey,
		model:      cfg.OpenAIModel,
		httpClient: &http.Client{Timeout: cfg.GenerationTimeout},
		maxRetries: 3,
		log:        logrus.WithField("service", "llm"),
	}
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type llmHTTPError struct {
	StatusCode int
	Body       string
}

func (e *llmHTTPError) Error() string {
	return fmt.Sprintf("llm http %d: %s", e.StatusCode, e.Body)
}

func isRetryable(err error) bool {
	var httpErr *llmHTTPError
	if errors.As(err, &httpErr) {
		code := httpErr.StatusCode
		return code == 408 || code == 429 || (code >= 500 && code <= 599)
	}
	return false
}

// jitter spreads retries by +/- 20%.
func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	delta := 0.2 * base.Seconds()
	v := base.Seconds() - delta + rand.Float64()*2*delta
	return time.Duration(v * float64(time.Second))
}

func (c *LLMClient) doOnce(ctx context.Context, req chatRequest) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return nil, nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return nil, nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &llmHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

// complete runs the chat call with capped exponential backoff on
// retryable statuses, honoring Retry-After when present.
func (c *LLMClient) complete(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
	}

	backoff := time.Second
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, req)
		if err == nil {
			var parsed chatResponse
			if uErr := json.Unmarshal(raw, &parsed); uErr != nil || len(parsed.Choices) == 0 {
				return "", fmt.Errorf("%w: unexpected completion response", ErrGenerationFailed)
			}
			return parsed.Choices[0].Message.Content, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == c.maxRetries {
			break
		}

		sleep := backoff
		if resp != nil {
			if ra := strings.TrimSpace(resp.Header.Get("Retry-After")); ra != "" {
				if secs, parseErr := strconv.Atoi(ra); parseErr == nil && secs > 0 {
					sleep = time.Duration(secs) * time.Second
				}
			}
		}
		if sleep > 10*time.Second {
			sleep = 10 * time.Second
		}
		sleep = jitter(sleep)

		c.log.WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"sleep":   sleep.String(),
			"error":   err.Error(),
		}).Warn("llm request retrying")

		time.Sleep(sleep)
		backoff *= 2
	}

	if errors.Is(lastErr, context.DeadlineExceeded) {
		return "", ErrGenerationTimeout
	}
	var netTimeout interface{ Timeout() bool }
	if errors.As(lastErr, &netTimeout) && netTimeout.Timeout() {
		return "", ErrGenerationTimeout
	}
	return "", fmt.Errorf("%w: %v", ErrGenerationFailed, lastErr)
}

// GenerateJSON runs a completion and returns the model output as raw
// JSON. Code-fenced output is unwrapped first; content that still is
// not valid JSON yields ErrParseFailure alongside the raw text wrapped
// in the text-fallback shape, so callers can degrade to rendering the
// plain text where the artifact kind allows it.
func (c *LLMClient) GenerateJSON(ctx context.Context, system, user string) (json.RawMessage, error) {
	content, err := c.complete(ctx, system, user)
	if err != nil {
		return nil, err
	}

	cleaned := StripCodeFences(content)
	if json.Valid([]byte(cleaned)) {
		return json.RawMessage(cleaned), nil
	}

	c.log.WithField("content_len", len(content)).Warn("llm returned non-JSON content")
	return TextFallback(content), ErrParseFailure
}

// StripCodeFences removes a single leading/trailing markdown code
// fence. Models routinely wrap JSON in ```json blocks.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line ("json", "JSON", ...)
		first := strings.TrimSpace(s[:idx])
		if first == "" || len(first) <= 8 && !strings.ContainsAny(first, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// TextFallback wraps non-JSON model output in the display shape
// {"type":"text","content":...}.
func TextFallback(content string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{
		"type":    "text",
		"content": content,
	})
	return raw
}
