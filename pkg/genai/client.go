// Package genai is the client for the generative-text collaborator used by
// the chat surface. The service is optional: every failure path degrades to
// a static fallback string so the rest of the tool keeps working without it.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the default completion API endpoint.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultModel is the default completion model.
	DefaultModel = "collaborator-small"

	// DefaultTimeout is the timeout for completion requests.
	DefaultTimeout = 60 * time.Second

	// apiPathComplete is the completion endpoint path.
	apiPathComplete = "/v1/complete"

	// Fallback is the static reply used whenever the service is
	// unreachable, rate limited or returns garbage.
	Fallback = "I could not reach the model collaborator. Please try again in a moment."
)

// Client talks to the completion API.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithAPIKey sets the bearer token sent with each request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithModel sets the completion model.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithRateLimit caps outgoing requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a completion client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		client:  &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromEnv builds a client from GENAI_BASE_URL, GENAI_API_KEY and
// GENAI_MODEL, reading a .env file first when one exists. Unset variables
// keep their defaults.
func NewClientFromEnv(opts ...Option) *Client {
	_ = godotenv.Load() // missing .env is fine

	var envOpts []Option
	if v := os.Getenv("GENAI_BASE_URL"); v != "" {
		envOpts = append(envOpts, WithBaseURL(v))
	}
	if v := os.Getenv("GENAI_API_KEY"); v != "" {
		envOpts = append(envOpts, WithAPIKey(v))
	}
	if v := os.Getenv("GENAI_MODEL"); v != "" {
		envOpts = append(envOpts, WithModel(v))
	}
	return NewClient(append(envOpts, opts...)...)
}

type completeRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type completeResponse struct {
	Text string `json:"text"`
}

// Complete sends a prompt and returns the completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(completeRequest{Model: c.model, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPathComplete, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("collaborator returned status %d: %s", resp.StatusCode, msg)
	}

	var out completeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}

// CompleteStructured sends a prompt expected to yield JSON and decodes the
// reply into v. Models often wrap JSON in a markdown code fence; the fence
// is stripped before decoding.
func (c *Client) CompleteStructured(ctx context.Context, prompt string, v any) error {
	text, err := c.Complete(ctx, prompt)
	if err != nil {
		return err
	}

	if strings.HasPrefix(text, "```") {
		text = extractFromCodeBlock(text)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("parsing collaborator response as JSON: %w", err)
	}
	return nil
}

// extractFromCodeBlock extracts content from a markdown code block.
func extractFromCodeBlock(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}

	start := 1 // drop the opening fence line
	end := len(lines)
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		end = len(lines) - 1
	}
	return strings.Join(lines[start:end], "\n")
}
