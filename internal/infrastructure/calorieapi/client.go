package calorieapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/calories/backend/internal/domain"
	"github.com/calories/backend/internal/logging"
	"github.com/calories/backend/internal/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public calorie lookup endpoint
const DefaultBaseURL = "https://calculat.ru/wp-content/themes/EmptyCanvas/db123.php"

// maxBodyBytes bounds how much of a response body is read
const maxBodyBytes = 1 << 20

// Config holds client settings. Zero values fall back to defaults.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
}

// Client handles communication with the calorie lookup service.
// A failed request is never retried; the error goes back to the caller.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	logger      zerolog.Logger
}

var _ domain.CalorieClient = (*Client)(nil)

// NewClient creates a new calorie service client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:     cfg.BaseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		logger:      logging.NewLogger("calorieapi"),
	}
}

// Lookup sends one form-encoded lookup for query and returns the first match
func (c *Client) Lookup(ctx context.Context, query string) (*domain.CalorieMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: lookup query must not be blank", domain.ErrBadInput)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		metrics.LookupRequests.WithLabelValues("failed").Inc()
		return nil, &domain.ExternalLookupError{Query: query, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	start := time.Now()
	body, err := c.post(ctx, query)
	metrics.LookupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LookupRequests.WithLabelValues("failed").Inc()
		return nil, err
	}

	match, err := parseLookupResponse(query, body)
	if err != nil {
		metrics.LookupRequests.WithLabelValues(outcomeOf(err)).Inc()
		c.logger.Warn().Err(err).Str("query", query).Str("body", truncate(string(body), 200)).Msg("unusable calorie service response")
		return nil, err
	}

	metrics.LookupRequests.WithLabelValues("ok").Inc()
	c.logger.Debug().Str("query", query).Str("name", match.Name).Int("cal", match.CaloriesPer100g).Msg("calorie lookup resolved")
	return match, nil
}

// post executes the lookup request and returns the raw body of a 2xx response
func (c *Client) post(ctx context.Context, query string) ([]byte, error) {
	form := url.Values{}
	form.Set("term", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &domain.ExternalLookupError{Query: query, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "calories-backend/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("query", query).Msg("calorie service request failed")
		return nil, &domain.ExternalLookupError{Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.ExternalLookupError{Query: query, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().
			Str("query", query).
			Int("status", resp.StatusCode).
			Str("body", truncate(string(body), 200)).
			Msg("calorie service returned error status")
		return nil, &domain.ExternalLookupError{Query: query, StatusCode: resp.StatusCode}
	}

	return body, nil
}

func outcomeOf(err error) string {
	switch {
	case isKind(err, domain.ErrLookupNotFound):
		return "not_found"
	case isKind(err, domain.ErrMalformedResponse):
		return "malformed"
	default:
		return "failed"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
