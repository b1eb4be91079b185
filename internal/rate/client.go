// Package rate calls the external moving rate service that turns a distance
// and a volume into a price.
package rate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"moving_quote_backend/platform/config"
	"moving_quote_backend/platform/logger"
)

const (
	ratePath        = "/api/rate"
	maxErrorBodyLen = 512
)

// ErrMalformedQuote is returned when the service answers 2xx with a body
// that is not a usable quote.
var ErrMalformedQuote = errors.New("malformed quote")

// Params are the pricing inputs. Optional extras default to 0.
type Params struct {
	DistanceInKm    float64
	LivingAreaInM2  float64
	ExtraAreaInM2   *float64
	NumbersOfPianos *float64
}

// Quote is the service's answer.
type Quote struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Client prices a move.
type Client interface {
	GetRate(ctx context.Context, params Params) (Quote, error)
}

// ClientFunc adapts a function to Client.
type ClientFunc func(ctx context.Context, params Params) (Quote, error)

func (f ClientFunc) GetRate(ctx context.Context, params Params) (Quote, error) {
	return f(ctx, params)
}

// StatusError is a non-2xx answer from the rate service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("rate service returned %d", e.StatusCode)
	}
	return fmt.Sprintf("rate service returned %d: %s", e.StatusCode, e.Body)
}

// HTTPClient talks to the rate service over HTTP.
type HTTPClient struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
	log     *logger.Logger
}

// NewHTTPClient builds a client from configuration.
func NewHTTPClient(cfg config.RateAPIConfig, log *logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.GetRateAPIBaseURL(), "/"),
		timeout: cfg.GetRateAPITimeout(),
		client:  &http.Client{},
		log:     log,
	}
}

// GetRate performs GET {base}/api/rate. The call is bounded by the
// configured timeout on top of any deadline already on ctx.
func (c *HTTPClient) GetRate(ctx context.Context, params Params) (Quote, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	reqURL := c.baseURL + ratePath + "?" + EncodeParams(params).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("rate request failed", "error", err)
		return Quote{}, fmt.Errorf("rate request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		c.log.Error("rate upstream error", "status", resp.StatusCode)
		return Quote{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var quote Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		c.log.Error("failed to decode rate payload", "error", err)
		return Quote{}, fmt.Errorf("%w: %v", ErrMalformedQuote, err)
	}
	if strings.TrimSpace(quote.Currency) == "" {
		return Quote{}, fmt.Errorf("%w: missing currency", ErrMalformedQuote)
	}

	return quote, nil
}

// EncodeParams renders params as the service's query string.
func EncodeParams(p Params) url.Values {
	v := url.Values{}
	v.Set("distanceInKm", formatNumber(p.DistanceInKm))
	v.Set("livingAreaInM2", formatNumber(p.LivingAreaInM2))
	v.Set("extraAreaInM2", formatNumber(orZero(p.ExtraAreaInM2)))
	v.Set("numbersOfPianos", formatNumber(orZero(p.NumbersOfPianos)))
	return v
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
