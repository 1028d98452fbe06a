// Package upstream is the HTTP client for the tax authority API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"firsgate/internal/config"
	"firsgate/internal/domain"
	"firsgate/internal/logger"
)

// API routes relative to the configured base URL.
const (
	PathSubmit      = "/api/v1/invoice/sign"
	PathValidateIRN = "/invoice/validate-irn"
	PathStatus      = "/invoice/status"
)

const (
	defaultBaseBackoff  = time.Second
	connectivityTimeout = 5 * time.Second
	disabledMessage     = "FIRS API integration is disabled"
)

// Client calls the tax authority API. Transport failures are retried with
// exponential backoff; HTTP error statuses are not.
type Client struct {
	cfg         config.FIRSConfig
	http        *http.Client
	baseBackoff time.Duration
	log         zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBaseBackoff sets the first retry delay. Later delays double.
func WithBaseBackoff(d time.Duration) Option {
	return func(c *Client) { c.baseBackoff = d }
}

// NewClient creates a Client for cfg.
func NewClient(cfg config.FIRSConfig, opts ...Option) *Client {
	c := &Client{
		cfg:         cfg,
		http:        &http.Client{Timeout: cfg.Timeout},
		baseBackoff: defaultBaseBackoff,
		log:         logger.WithComponent("upstream"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether upstream integration is switched on.
func (c *Client) Enabled() bool {
	return c.cfg.Enabled
}

func disabled() *domain.UpstreamResult {
	return &domain.UpstreamResult{Status: domain.UpstreamStatusDisabled, Message: disabledMessage}
}

// Submit forwards an invoice for signing by the tax authority.
func (c *Client) Submit(ctx context.Context, inv domain.Invoice) (*domain.UpstreamResult, error) {
	if !c.cfg.Enabled {
		return disabled(), nil
	}
	return c.send(ctx, http.MethodPost, c.cfg.URL+PathSubmit, inv)
}

// ValidateIRN asks the tax authority to validate an IRN for a business.
func (c *Client) ValidateIRN(ctx context.Context, irn, businessID string, inv domain.Invoice) (*domain.UpstreamResult, error) {
	if !c.cfg.Enabled {
		return disabled(), nil
	}
	payload := map[string]any{
		"irn":          irn,
		"business_id":  businessID,
		"invoice_data": inv,
	}
	return c.send(ctx, http.MethodPost, c.cfg.URL+PathValidateIRN, payload)
}

// Status fetches the tax authority's view of an IRN.
func (c *Client) Status(ctx context.Context, irn string) (*domain.UpstreamResult, error) {
	if !c.cfg.Enabled {
		return disabled(), nil
	}
	return c.send(ctx, http.MethodGet, c.cfg.URL+PathStatus+"/"+url.PathEscape(irn), nil)
}

// TestConnectivity reports whether the API base URL answers a HEAD request
// within five seconds. It never returns an error.
func (c *Client) TestConnectivity(ctx context.Context) bool {
	if !c.cfg.Enabled {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, connectivityTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.cfg.URL, http.NoBody)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Msg("connectivity probe failed")
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode > 0
}

func (c *Client) send(ctx context.Context, method, endpoint string, payload any) (*domain.UpstreamResult, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("upstream.send: encoding payload: %w", err)
		}
	}

	maxRetries := c.cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	backoff := retry.WithMaxRetries(uint64(maxRetries), retry.NewExponential(c.baseBackoff))

	attempts := 0
	var status int
	var respBody []byte
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		var err error
		status, respBody, err = c.do(ctx, method, endpoint, body)
		if err != nil {
			c.log.Warn().Err(err).Str("method", method).Str("url", endpoint).Int("attempt", attempts).Msg("upstream request failed")
			if ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, &TransportError{Method: method, URL: endpoint, Attempts: attempts, Err: err}
	}

	if status >= http.StatusBadRequest {
		return nil, newAPIError(status, respBody)
	}
	return &domain.UpstreamResult{
		Status:   domain.UpstreamStatusSuccess,
		HTTPCode: status,
		Data:     rawJSON(respBody),
	}, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte) (int, []byte, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("x-api-secret", c.cfg.APISecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, data, nil
}
