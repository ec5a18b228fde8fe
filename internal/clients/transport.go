package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"catalog-sync-service/internal/metrics"
)

// Transport performs JSON requests against one remote service and maps
// failures to the error taxonomy. It makes exactly one attempt per call;
// retry policy belongs to the caller.
type Transport struct {
	Service     string
	HTTPClient  *http.Client
	RateLimiter *rate.Limiter
	Headers     http.Header
}

// NewTransport creates a transport with the given timeout. A zero rps
// disables client side rate limiting.
func NewTransport(service string, timeout time.Duration, rps int) *Transport {
	t := &Transport{
		Service:    service,
		HTTPClient: &http.Client{Timeout: timeout},
		Headers:    make(http.Header),
	}
	if rps > 0 {
		t.RateLimiter = rate.NewLimiter(rate.Limit(rps), rps)
	}
	return t
}

// DoJSON sends body (if any) as JSON and decodes a 2xx response into out
func (t *Transport) DoJSON(ctx context.Context, method, url string, body, out interface{}) error {
	if t.RateLimiter != nil {
		if err := t.RateLimiter.Wait(ctx); err != nil {
			return newUnavailableError(t.Service, err)
		}
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", t.Service, err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", t.Service, err)
	}
	for key, values := range t.Headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		metrics.RemoteRequestDuration.WithLabelValues(t.Service, "error").Observe(time.Since(start).Seconds())
		return newUnavailableError(t.Service, err)
	}
	defer resp.Body.Close()
	metrics.RemoteRequestDuration.WithLabelValues(t.Service, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return newUnavailableError(t.Service, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorForStatus(t.Service, resp, respBody)
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%s: failed to parse response: %w", t.Service, err)
	}
	return nil
}
