package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"atelier/internal/platform/privacy"
	"atelier/pkg/platform/circuit"
	"atelier/pkg/platform/sentinel"
)

// DefaultIPAPIURL is the public ipapi.co endpoint.
const DefaultIPAPIURL = "https://ipapi.co"

// ErrCircuitOpen is returned without a network call while the breaker refuses lookups.
var ErrCircuitOpen = fmt.Errorf("ip lookup circuit open: %w", sentinel.ErrUnavailable)

// IPLocation is the subset of an ipapi.co response the tracker keeps.
type IPLocation struct {
	Country   string   `json:"country_name"`
	Region    string   `json:"region"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// ipapiResponse adds the error envelope ipapi.co uses for reserved or
// rate-limited lookups, which arrive with a 200 status.
type ipapiResponse struct {
	IPLocation
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// IPAPIClient issues a single GET per lookup against an ipapi.co-compatible
// service. It never retries.
type IPAPIClient struct {
	client  *resty.Client
	tracer  trace.Tracer
	breaker *circuit.Breaker
}

type clientConfig struct {
	timeout    time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
	breaker    *circuit.Breaker
}

// ClientOption configures the IPAPIClient.
type ClientOption func(*clientConfig)

// WithTimeout bounds each lookup. Zero leaves the request unbounded apart
// from the caller's context.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTracer injects an OpenTelemetry tracer.
func WithTracer(t trace.Tracer) ClientOption {
	return func(c *clientConfig) {
		c.tracer = t
	}
}

// WithBreaker guards lookups with a circuit breaker.
func WithBreaker(b *circuit.Breaker) ClientOption {
	return func(c *clientConfig) {
		c.breaker = b
	}
}

// NewIPAPIClient builds a client rooted at baseURL (DefaultIPAPIURL when empty).
func NewIPAPIClient(baseURL string, opts ...ClientOption) *IPAPIClient {
	if baseURL == "" {
		baseURL = DefaultIPAPIURL
	}
	cfg := clientConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	rc := resty.New()
	if cfg.httpClient != nil {
		rc = resty.NewWithClient(cfg.httpClient)
	}
	rc.SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if cfg.timeout > 0 {
		rc.SetTimeout(cfg.timeout)
	}

	tracer := cfg.tracer
	if tracer == nil {
		tracer = otel.Tracer("atelier/geo")
	}
	return &IPAPIClient{
		client:  rc,
		tracer:  tracer,
		breaker: cfg.breaker,
	}
}

// Lookup resolves ip to an approximate location. Addresses that are not
// publicly routable are not sent; the service then locates the caller itself.
func (c *IPAPIClient) Lookup(ctx context.Context, ip string) (*IPLocation, error) {
	ctx, span := c.tracer.Start(ctx, "geo.ip_lookup", trace.WithAttributes(
		attribute.String("client.ip_prefix", privacy.AnonymizeIP(ip)),
	))
	loc, err := c.lookup(ctx, ip)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
	return loc, err
}

func (c *IPAPIClient) lookup(ctx context.Context, ip string) (*IPLocation, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return nil, ErrCircuitOpen
	}

	path := "/json/"
	if privacy.IsPublicIP(ip) {
		path = "/" + ip + "/json/"
	}

	resp, err := c.client.R().SetContext(ctx).Get(path)
	if err != nil {
		c.recordFailure()
		return nil, fmt.Errorf("ip lookup request: %w: %w", sentinel.ErrUnavailable, err)
	}
	if !resp.IsSuccess() {
		c.recordFailure()
		return nil, fmt.Errorf("ip lookup status %d: %w", resp.StatusCode(), sentinel.ErrUnavailable)
	}

	var body ipapiResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		// The service answered; a bad body is not an availability problem.
		c.recordSuccess()
		return nil, fmt.Errorf("decode ip lookup response: %w: %w", sentinel.ErrMalformed, err)
	}
	c.recordSuccess()
	if body.Error {
		return nil, fmt.Errorf("ip lookup refused: %s: %w", body.Reason, sentinel.ErrUnavailable)
	}
	loc := body.IPLocation
	return &loc, nil
}

func (c *IPAPIClient) recordFailure() {
	if c.breaker != nil {
		c.breaker.RecordFailure()
	}
}

func (c *IPAPIClient) recordSuccess() {
	if c.breaker != nil {
		c.breaker.RecordSuccess()
	}
}

// IsCircuitOpen reports whether err came from a refused lookup.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, ErrCircuitOpen)
}
