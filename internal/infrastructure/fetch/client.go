package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/GriffinCanCode/appshell/internal/infrastructure/resilience"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"
)

var (
	ErrStatus      = errors.New("unexpected HTTP status")
	ErrUnsupported = errors.New("unsupported URL scheme")
	ErrTooLarge    = errors.New("payload exceeds size limit")
)

// Options configures the client
type Options struct {
	Timeout   time.Duration
	Retries   int
	RPS       float64 // zero means unlimited
	MaxBytes  int64
	UserAgent string
}

// DefaultOptions returns options suited to font downloads
func DefaultOptions() Options {
	return Options{
		Timeout:   15 * time.Second,
		Retries:   2,
		MaxBytes:  16 << 20,
		UserAgent: "AppShell-Fonts/1.0",
	}
}

// Client wraps resty with rate limiting and per-origin circuit breakers
type Client struct {
	resty    *resty.Client
	limiter  *rate.Limiter
	breakers *resilience.Group
	maxBytes int64
	mu       sync.RWMutex
}

// NewClient creates a client with the given options
func NewClient(opts Options) *Client {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultOptions().MaxBytes
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultOptions().UserAgent
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.Retries
	retryClient.RetryWaitMin = 200 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.Logger = nil

	restyClient := resty.NewWithClient(retryClient.StandardClient()).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "font/woff2, font/woff, font/ttf, font/otf, */*;q=0.5")
	if opts.Timeout > 0 {
		restyClient.SetTimeout(opts.Timeout)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RPS > 0 {
		burst := int(opts.RPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}

	breakers := resilience.NewGroup(resilience.Settings{
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Client{
		resty:    restyClient,
		limiter:  limiter,
		breakers: breakers,
		maxBytes: opts.MaxBytes,
	}
}

// SetRateLimit changes the request rate (requests per second, <= 0 is unlimited)
func (c *Client) SetRateLimit(rps float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if rps <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 0)
		return
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Fetch downloads the body at rawURL
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, u.Scheme)
	}

	c.mu.RLock()
	limiter := c.limiter
	c.mu.RUnlock()

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	var body []byte
	err = c.breakers.For(u.Host).Do(func() error {
		resp, err := c.resty.R().SetContext(ctx).SetDoNotParseResponse(true).Get(rawURL)
		if err != nil {
			return err
		}
		raw := resp.RawBody()
		if raw == nil {
			return fmt.Errorf("%w: empty response", ErrStatus)
		}
		defer raw.Close()

		if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
			return fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode())
		}
		// one byte past the limit is enough to tell it was exceeded
		data, err := io.ReadAll(io.LimitReader(raw, c.maxBytes+1))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		if int64(len(data)) > c.maxBytes {
			return fmt.Errorf("%w: more than %d bytes", ErrTooLarge, c.maxBytes)
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return body, nil
}

// BreakerStates returns the breaker state of every origin seen so far
func (c *Client) BreakerStates() map[string]resilience.State {
	return c.breakers.States()
}
