// Package client implements the remote query client for the hosted
// webtrigger endpoint. Every SQL statement travels as a single HTTP POST
// with a JSON body and comes back as a structured QueryResult. Transport
// failures, timeouts, and non-2xx responses are all folded into the
// result's Error field; nothing on the query path escapes as a Go error.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/chatch/forge-fsql/internal/logging"
)

// DefaultTimeout bounds a single query round-trip when no override is configured.
const DefaultTimeout = 30 * time.Second

// maxErrorBody limits how much of an error response body is read into a message.
const maxErrorBody = 4 * 1024

// Client executes SQL statements against a webtrigger endpoint.
type Client struct {
	// endpoint is the full webtrigger URL, including its token path segment
	endpoint string
	// timeout bounds each Execute call
	timeout time.Duration
	// httpc is the underlying HTTP client
	httpc *http.Client
}

// New creates a client for the given webtrigger URL.
// A non-positive timeout falls back to DefaultTimeout.
func New(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: strings.TrimSpace(endpoint),
		timeout:  timeout,
		// The per-request context carries the deadline; the http.Client
		// itself stays unbounded so callers control cancellation.
		httpc: &http.Client{},
	}
}

// queryRequest is the webtrigger wire format for a statement.
type queryRequest struct {
	Query string `json:"query"`
}

// Execute sends one SQL statement to the endpoint and returns its result.
// A missing trailing semicolon is appended before sending. The call is
// bounded by the configured timeout; on expiry the result carries a
// timeout error instead of hanging.
func (c *Client) Execute(ctx context.Context, sqlText string) *QueryResult {
	start := time.Now()

	stmt := strings.TrimSpace(sqlText)
	if !strings.HasSuffix(stmt, ";") {
		stmt += ";"
	}

	body, err := json.Marshal(queryRequest{Query: stmt})
	if err != nil {
		return errorResult(start, fmt.Sprintf("encode request: %v", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errorResult(start, logging.Mask(fmt.Sprintf("build request: %v", err)))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return errorResult(start, fmt.Sprintf("query timed out after %s", c.timeout))
		}
		// Mask the endpoint token before the error reaches the terminal.
		return errorResult(start, logging.Mask(fmt.Sprintf("request failed: %v", err)))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorBody(resp.Body)
		if msg == "" {
			msg = resp.Status
		}
		return errorResult(start, msg)
	}

	res := &QueryResult{}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(res); err != nil {
		return errorResult(start, fmt.Sprintf("decode response: %v", err))
	}
	res.Elapsed = time.Since(start)
	return res
}

// TestConnection probes the endpoint with a trivial statement and reports
// whether it answered successfully. All failures are swallowed into false.
func (c *Client) TestConnection(ctx context.Context) bool {
	res := c.Execute(ctx, "SELECT 1")
	return res.Error == ""
}

// errorResult wraps a displayable message into a failed QueryResult.
func errorResult(start time.Time, msg string) *QueryResult {
	return &QueryResult{Error: msg, Elapsed: time.Since(start)}
}

// isTimeout reports whether the transport error was a deadline expiry.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// readErrorBody extracts a trimmed error message from a non-2xx response body.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
