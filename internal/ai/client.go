package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Provider is one OpenAI-compatible chat-completions endpoint.
type Provider struct {
	APIURL string
	APIKey string
	Model  string
}

func (p Provider) Configured() bool {
	return p.APIKey != ""
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// APIError is a non-2xx response from an AI provider. The status code is kept
// so callers can distinguish rate limiting from other upstream failures.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("AI API error: status %d: %s", e.StatusCode, e.Message)
}

// Client calls AI providers over plain HTTP. One instance is shared across
// requests; it holds no per-request state.
type Client struct {
	httpClient *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{httpClient: &http.Client{Timeout: timeout}}
}

// Complete sends a single-shot chat completion and returns the raw text of
// the first choice.
func (c *Client) Complete(p Provider, messages []ChatMessage, temperature float64) (string, error) {
	if !p.Configured() {
		return "", errors.New("AI provider not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model:       p.Model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, p.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &APIError{StatusCode: resp.StatusCode, Message: truncate(string(respBody), 512)}
	}

	var completion chatResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no response from AI")
	}

	return completion.Choices[0].Message.Content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
