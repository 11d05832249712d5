// Package gemini provides the tag extraction client backed by the Gemini
// generateContent API.
package gemini

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/minsu-kang/steamrec/domain/tag"
	"github.com/minsu-kang/steamrec/ports"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"

	// Extraction is on the request path, so the call must not hang a
	// request: 5 seconds, then the caller falls back or fails upstream.
	defaultTimeout = 5 * time.Second
)

const promptTemplate = `다음 문장이 묘사하는 게임에 어울리는 Steam 태그를 한국어로 최대 4개 고르고,
JSON 문자열 배열 하나만 출력해줘. 예: ["로그라이크","2D"]

문장: %s`

// Client implements ports.TagExtractor.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	breaker    *gobreaker.CircuitBreaker[string]
	logger     zerolog.Logger
}

// Config configures the Gemini client.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewClient creates a new extraction client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	log := logger.With().Str("component", "gemini").Logger()
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "gemini-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      model,
		breaker:    breaker,
		logger:     log,
	}
}

// ExtractTags asks the model for up to four tags describing the input.
// Transport failures return an error; a response the parser cannot make
// sense of returns an empty list, never an error.
func (c *Client) ExtractTags(ctx context.Context, freeText string) ([]string, error) {
	text, err := c.breaker.Execute(func() (string, error) {
		return c.generate(ctx, fmt.Sprintf(promptTemplate, freeText))
	})
	if err != nil {
		return nil, err
	}

	tags := tag.ParseExtracted(text)
	if len(tags) == 0 {
		c.logger.Warn().Str("text", text).Msg("no tag array found in model response")
	}
	return tags, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		// Parse-level emptiness, not a transport failure.
		return "", nil
	}
	return payload.Candidates[0].Content.Parts[0].Text, nil
}

// Ensure interface compliance.
var _ ports.TagExtractor = (*Client)(nil)
