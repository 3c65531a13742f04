package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/skyswap-booking-client/internal/app/dto"
)

const (
	flightsPath       = "/flights/"
	pricingPathFormat = "/pricing/%d"
	reservePath       = "/booking/reserve"

	rateLimitKey = "limit:booking-backend"

	// error bodies are only read for their detail message
	maxErrorBodyBytes = 4 << 10
)

// RateLimiter is satisfied by *redis_rate.Limiter.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// Config for the booking backend client. Zero Timeout and MaxRetries mean
// no timeout and a single attempt. Limiter is optional.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS int
	Limiter      RateLimiter
	HTTPClient   *http.Client
}

// Client talks to the booking backend's REST API.
type Client struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RateLimitRPS int
	Limiter      RateLimiter
	HTTPClient   *http.Client
}

func NewClient(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		BaseURL:      strings.TrimRight(config.BaseURL, "/"),
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RateLimitRPS: config.RateLimitRPS,
		Limiter:      config.Limiter,
		HTTPClient:   httpClient,
	}
}

// ListFlights calls GET /flights/.
func (c *Client) ListFlights(ctx context.Context) ([]dto.Flight, error) {
	var flights []dto.Flight
	if err := c.do(ctx, http.MethodGet, flightsPath, nil, &flights, true); err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}

	return flights, nil
}

// GetPricing calls GET /pricing/{flightID} and returns the current price.
// A zero price means the backend had none to offer.
func (c *Client) GetPricing(ctx context.Context, flightID int) (float64, error) {
	var pricing dto.PricingResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf(pricingPathFormat, flightID), nil, &pricing, true); err != nil {
		return 0, fmt.Errorf("get pricing for flight %d: %w", flightID, err)
	}

	return pricing.Price, nil
}

// Reserve calls POST /booking/reserve. It is never retried: a failed
// answer may still have created the booking.
func (c *Client) Reserve(ctx context.Context, req dto.ReservationRequest) (dto.BookingRecord, error) {
	var record dto.BookingRecord
	if err := c.do(ctx, http.MethodPost, reservePath, req, &record, false); err != nil {
		return dto.BookingRecord{}, fmt.Errorf("reserve flight %d: %w", req.FlightID, err)
	}

	return record, nil
}

// do sends the request, retrying up to MaxRetries times when retry is set.
func (c *Client) do(ctx context.Context, method, path string, body any, out any, retry bool) error {
	maxRetries := c.MaxRetries
	if !retry {
		maxRetries = 0
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.allow(ctx); err != nil {
			return err
		}

		retryable, err := c.send(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}

		lastErr = err
		if !retryable {
			return err
		}

		slog.WarnContext(ctx, "booking backend call failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))

		if attempt < maxRetries {
			// Exponential backoff: 200ms * 2^attempt
			backoff := time.Duration(200*(1<<attempt)) * time.Millisecond
			slog.InfoContext(ctx, "retrying with exponential backoff", "backoff", backoff, "next_attempt", attempt+2)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("context cancelled or timeout: %w", ctx.Err())
			}
		}
	}

	if maxRetries > 0 {
		return ErrRetryExceeded.WithCause(lastErr)
	}

	return lastErr
}

func (c *Client) allow(ctx context.Context) error {
	if c.Limiter == nil || c.RateLimitRPS <= 0 {
		return nil
	}

	res, err := c.Limiter.Allow(ctx, rateLimitKey, redis_rate.PerSecond(c.RateLimitRPS))
	if err != nil {
		return fmt.Errorf("failed to rate limit: %w", err)
	}

	if res.Allowed == 0 {
		return ErrBackendRateLimitExceeded
	}

	return nil
}

// send performs one attempt. retryable reports whether a later attempt
// might succeed: transport failures and 5xx answers.
func (c *Client) send(ctx context.Context, method, path string, payload []byte, out any) (retryable bool, err error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, ErrBackendUnavailable.WithCause(err)
		}
		return true, ErrBackendUnavailable.WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		cause := fmt.Errorf("status %d: %s", resp.StatusCode, errorDetail(resp.Body))
		return resp.StatusCode >= 500, ErrUnexpectedStatus.WithCause(cause)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, ErrInvalidResponse.WithCause(err)
	}

	return false, nil
}

// errorDetail extracts the backend's {"detail": ...} message, falling back
// to the raw body.
func errorDetail(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBodyBytes))

	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Detail != nil {
		return fmt.Sprint(body.Detail)
	}

	return strings.TrimSpace(string(raw))
}
