// Package steam provides a client for the Steam Web API player endpoints.
package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/minsu-kang/steamrec/ports"
)

const defaultBaseURL = "https://api.steampowered.com"

// Client implements ports.PlayerLibrary against the Steam Web API.
// Calls run through a circuit breaker so a degraded Steam API fails fast
// instead of holding request goroutines on timeouts.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	breaker    *gobreaker.CircuitBreaker[[]int64]
	logger     zerolog.Logger
}

// Config configures the Steam client.
type Config struct {
	BaseURL string        // Defaults to the public Steam Web API
	APIKey  string        // Required
	Timeout time.Duration // Per-request timeout; defaults to 10s
}

// NewClient creates a new Steam Web API client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	log := logger.With().Str("component", "steam").Logger()
	breaker := gobreaker.NewCircuitBreaker[[]int64](gobreaker.Settings{
		Name:    "steam-api",
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
		breaker:    breaker,
		logger:     log,
	}
}

// OwnedAppIDs returns the app ids of every game the profile owns, free
// games included.
func (c *Client) OwnedAppIDs(ctx context.Context, profileID string) ([]int64, error) {
	params := url.Values{
		"key":                       {c.apiKey},
		"steamid":                   {profileID},
		"include_appinfo":           {"false"},
		"include_played_free_games": {"true"},
	}
	return c.fetchAppIDs(ctx, "/IPlayerService/GetOwnedGames/v1/", params)
}

// RecentlyPlayedAppIDs returns the app ids played in the last two weeks.
func (c *Client) RecentlyPlayedAppIDs(ctx context.Context, profileID string) ([]int64, error) {
	params := url.Values{
		"key":     {c.apiKey},
		"steamid": {profileID},
		"format":  {"json"},
	}
	return c.fetchAppIDs(ctx, "/IPlayerService/GetRecentlyPlayedGames/v1/", params)
}

func (c *Client) fetchAppIDs(ctx context.Context, path string, params url.Values) ([]int64, error) {
	return c.breaker.Execute(func() ([]int64, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("execute request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("steam api status %d: %s", resp.StatusCode, body)
		}

		var payload struct {
			Response struct {
				Games []struct {
					AppID int64 `json:"appid"`
				} `json:"games"`
			} `json:"response"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		appIDs := make([]int64, 0, len(payload.Response.Games))
		for _, g := range payload.Response.Games {
			appIDs = append(appIDs, g.AppID)
		}
		return appIDs, nil
	})
}

// Ensure interface compliance.
var _ ports.PlayerLibrary = (*Client)(nil)
