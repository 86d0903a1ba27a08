package box

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/soundcork/soundcork/internal/infrastructure/logging"
)

// Protocol endpoints exposed by every speaker on its control port.
const (
	pathAddGroup    = "/addGroup"    // POST + XML
	pathUpdateGroup = "/updateGroup" // POST + XML
	pathRemoveGroup = "/removeGroup" // GET
)

// SuccessMarker is the marker string a speaker includes in a successful
// add-group response body.
const SuccessMarker = "GROUP_OK"

// Config contains box client settings.
type Config struct {
	// Port is the fixed control port all speakers listen on.
	Port int
	// Timeout is the per-call timeout.
	Timeout time.Duration
}

// Client speaks the speakers' own group-control protocol over HTTP.
//
// Transport-level failures (timeouts, connection refusal) are folded into
// the returned Result rather than propagated, so callers can aggregate
// heterogeneous remote outcomes uniformly.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	httpClient *http.Client
	port       int
	timeout    time.Duration
	logger     *logging.Logger
}

// Result is the outcome of a single box call.
//
// When Err is non-nil the call never produced an HTTP response and Status
// and Body are zero values.
type Result struct {
	Status int
	Body   string
	Err    error
}

// OK reports whether the call completed with HTTP 200.
func (r Result) OK() bool {
	return r.Err == nil && r.Status == http.StatusOK
}

// HasSuccessMarker reports whether the response body carries the protocol's
// success marker.
func (r Result) HasSuccessMarker() bool {
	return strings.Contains(r.Body, SuccessMarker)
}

// New creates a box client.
//
// Parameters:
//   - cfg: Port and per-call timeout settings
//   - logger: Structured logger
//
// Returns:
//   - *Client: Client ready for use
func New(cfg Config, logger *logging.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		port:       cfg.Port,
		timeout:    cfg.Timeout,
		logger:     logger.With("component", "box"),
	}
}

// AddGroup posts a group document to the speaker's addGroup endpoint.
func (c *Client) AddGroup(ctx context.Context, ip, xmlBody string) Result {
	return c.post(ctx, ip, pathAddGroup, xmlBody)
}

// UpdateGroup posts a group document to the speaker's updateGroup endpoint.
func (c *Client) UpdateGroup(ctx context.Context, ip, xmlBody string) Result {
	return c.post(ctx, ip, pathUpdateGroup, xmlBody)
}

// RemoveGroup calls the speaker's removeGroup endpoint. The protocol takes
// no request body here.
func (c *Client) RemoveGroup(ctx context.Context, ip string) Result {
	return c.get(ctx, ip, pathRemoveGroup)
}

// post issues a POST with an XML payload and a per-call timeout.
func (c *Client) post(ctx context.Context, ip, path, xmlBody string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(ip, path), strings.NewReader(xmlBody))
	if err != nil {
		return Result{Err: fmt.Errorf("building box request for %s: %w", ip, err)}
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/xml")

	return c.do(req, ip, path)
}

// get issues a bodyless GET with a per-call timeout.
func (c *Client) get(ctx context.Context, ip, path string) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(ip, path), nil)
	if err != nil {
		return Result{Err: fmt.Errorf("building box request for %s: %w", ip, err)}
	}
	req.Header.Set("Accept", "*/*")

	return c.do(req, ip, path)
}

// do executes the request and folds any transport failure into the Result.
func (c *Client) do(req *http.Request, ip, path string) Result {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("box call failed",
			"ip", ip,
			"path", path,
			"error", err,
		)
		return Result{Err: fmt.Errorf("%w: %s%s: %v", ErrBoxUnreachable, ip, path, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Status: resp.StatusCode, Err: fmt.Errorf("reading box response from %s%s: %w", ip, path, err)}
	}

	return Result{Status: resp.StatusCode, Body: string(body)}
}

// url builds the full control URL for a speaker endpoint.
func (c *Client) url(ip, path string) string {
	return fmt.Sprintf("http://%s:%d%s", ip, c.port, path)
}
