package cricbuzz

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/adityaverma/cricsync/internal/platform/logging"
	"github.com/adityaverma/cricsync/internal/platform/resilience"
	"github.com/adityaverma/cricsync/internal/usecase"
)

const (
	defaultBaseURL  = "https://cricbuzz-cricket.p.rapidapi.com"
	defaultHost     = "cricbuzz-cricket.p.rapidapi.com"
	maxResponseSize = 6 << 20
	bodyPreviewSize = 256
)

var errCricbuzzTransient = crerr.New("cricbuzz transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Host           string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches live-match and top-stat payloads from the Cricbuzz RapidAPI
// surface. All calls share one circuit breaker and deduplicate identical
// in-flight requests.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	host           string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = defaultHost
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		host:           host,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchLiveMatches retrieves the current live-match feed across all match
// types and flattens it into one entry per match.
func (c *Client) FetchLiveMatches(ctx context.Context) ([]usecase.LiveMatchEntry, error) {
	var feed LiveMatchesResponse
	if err := c.doJSON(ctx, "/matches/v1/live", nil, &feed); err != nil {
		return nil, fmt.Errorf("fetch live matches: %w", err)
	}
	return flattenLiveFeed(feed), nil
}

// FetchStatsCatalog retrieves the categories and stat types available on the
// leaderboard endpoint.
func (c *Client) FetchStatsCatalog(ctx context.Context) ([]usecase.StatCategory, error) {
	var catalog TopStatsCatalog
	if err := c.doJSON(ctx, "/stats/v1/topstats", nil, &catalog); err != nil {
		return nil, fmt.Errorf("fetch top stats catalog: %w", err)
	}
	return mapStatsCatalog(catalog), nil
}

// FetchLeaderboard retrieves one leaderboard page for a stat type and format.
func (c *Client) FetchLeaderboard(ctx context.Context, statsType, formatType string) ([]usecase.LeaderboardRow, error) {
	statsType = strings.TrimSpace(statsType)
	formatType = strings.TrimSpace(formatType)
	if statsType == "" || formatType == "" {
		return nil, fmt.Errorf("stats type and format type are required")
	}

	query := map[string]string{
		"statsType":  statsType,
		"formatType": formatType,
	}
	var page TopStatsPage
	if err := c.doJSON(ctx, "/stats/v1/topstats/0", query, &page); err != nil {
		return nil, fmt.Errorf("fetch top stats statsType=%s formatType=%s: %w", statsType, formatType, err)
	}
	return mapLeaderboardPage(page), nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cricbuzz circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: score provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errCricbuzzTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode provider payload: %v", usecase.ErrInvalidPayload, err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-rapidapi-host", c.host)
		req.Header.Set("x-rapidapi-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errCricbuzzTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errCricbuzzTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errCricbuzzTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "cricbuzz request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return status >= 500
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" || apiKey == "" {
		return value
	}
	return strings.ReplaceAll(value, apiKey, "REDACTED")
}

// abbreviateBody keeps error messages bounded when the provider returns an
// HTML error page or a large payload with a failing status.
func abbreviateBody(raw []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	preview := raw
	truncated := false
	if len(preview) > bodyPreviewSize {
		preview = preview[:bodyPreviewSize]
		truncated = true
	}
	_, _ = buf.Write(preview)
	if truncated {
		_, _ = buf.WriteString("...")
	}
	return strings.TrimSpace(buf.String())
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
