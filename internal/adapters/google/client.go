package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultRoutesBaseURL = "https://routes.googleapis.com"
	DefaultPlacesBaseURL = "https://places.googleapis.com"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

type Options struct {
	APIKey        string
	RoutesBaseURL string
	PlacesBaseURL string
	Timeout       time.Duration
	// Requests per second across all Google APIs; <= 0 disables limiting.
	RateLimit float64
	Burst     int

	Logger   *zap.Logger
	Requests *prometheus.CounterVec // labels: api, status
	Timer    *obs.Timer
}

// Client talks to the Google Routes and Places APIs.
//
// It performs no retries: a rejected request is returned to the caller,
// which decides whether to shed work and try again.
// The client is safe for concurrent use.
type Client struct {
	session       *http.Client
	apiKey        string
	routesBaseURL string
	placesBaseURL string
	limiter       *rate.Limiter
	logger        *zap.Logger
	requests      *prometheus.CounterVec
	timer         *obs.Timer
}

func NewClient(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("google api key is empty")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	timer := opts.Timer
	if timer == nil {
		timer = obs.NewTimer(logger, nil)
	}

	return &Client{
		session:       &http.Client{Timeout: timeout},
		apiKey:        apiKey,
		routesBaseURL: strings.TrimRight(orDefault(opts.RoutesBaseURL, DefaultRoutesBaseURL), "/"),
		placesBaseURL: strings.TrimRight(orDefault(opts.PlacesBaseURL, DefaultPlacesBaseURL), "/"),
		limiter:       limiter,
		logger:        logger,
		requests:      opts.Requests,
		timer:         timer,
	}, nil
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func (c *Client) newRequest(
	ctx context.Context,
	url string,
	fieldMask string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	return req, nil
}

// postJSON sends payload and decodes a 2xx response into out.
// Non-2xx responses come back as *httpStatusError carrying the raw body.
func (c *Client) postJSON(
	ctx context.Context,
	api string,
	url string,
	fieldMask string,
	payload any,
	out any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", api, err)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for %s rate limit: %w", api, err)
	}

	req, err := c.newRequest(ctx, url, fieldMask, bytes.NewReader(body))
	if err != nil {
		return err
	}

	resp, err := c.session.Do(req)
	if err != nil {
		c.count(api, "network_error")
		if ctx.Err() != nil {
			return fmt.Errorf("execute %s request: %w", api, err)
		}
		return fmt.Errorf("execute %s request: %w: %w", api, domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	c.count(api, strconv.Itoa(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		msg := strings.TrimSpace(string(b))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}

		c.logger.Warn("google api rejected request",
			zap.String("api", api),
			zap.Int("status", resp.StatusCode),
			zap.String("req_id", obs.RequestID(ctx)),
		)
		return &httpStatusError{Code: resp.StatusCode, Body: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", api, err)
	}

	return nil
}

func (c *Client) count(api, status string) {
	if c.requests != nil {
		c.requests.WithLabelValues(api, status).Inc()
	}
}
