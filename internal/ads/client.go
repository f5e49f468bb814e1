package ads

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"adsrelay-golang/server/internal/config"
	"adsrelay-golang/server/internal/credential"
	"adsrelay-golang/server/internal/logger"
	"adsrelay-golang/server/internal/metrics"
	jsonpkg "adsrelay-golang/server/internal/pkg/json"
)

// Client relays calls to the Google Ads REST API. It holds no per-request
// state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client

	baseURL string
	version string

	developerToken   string
	managerAccountID string
}

// Request is one upstream call. Credentials, when set, are applied after
// Header and own Authorization.
type Request struct {
	Operation   string
	Method      string
	URL         string
	Header      http.Header
	Credentials *credential.Bundle
	Body        []byte
}

func NewClient(cfg *config.Config) *Client {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if cfg.TimeoutMs <= 0 {
		timeout = 0
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: timeout,
		TLSHandshakeTimeout:   10 * time.Second,
	}

	if cfg.Proxy != "" {
		if proxyURL, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return NewClientWithHTTPClient(cfg, &http.Client{
		Transport: otelhttp.NewTransport(transport),
		Timeout:   timeout,
	})
}

// NewClientWithHTTPClient uses hc as-is for upstream calls.
func NewClientWithHTTPClient(cfg *config.Config, hc *http.Client) *Client {
	return &Client{
		httpClient:       hc,
		baseURL:          strings.TrimRight(cfg.AdsBaseURL, "/"),
		version:          strings.Trim(cfg.AdsAPIVersion, "/"),
		developerToken:   cfg.DeveloperToken,
		managerAccountID: cfg.ManagerAccountID,
	}
}

// URL returns the absolute upstream URL of resource.
func (c *Client) URL(resource string) string {
	return c.baseURL + "/" + c.version + "/" + resource
}

// Do runs q with creds. Empty developer-token and login-customer-id fall
// back to the values the client was configured with.
func (c *Client) Do(ctx context.Context, q QuerySpec, creds credential.Bundle) (*Result, error) {
	body, err := q.Body()
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", q.Operation, err)
	}

	creds = creds.WithDefaults(c.developerToken, c.managerAccountID)
	header := http.Header{}
	if body != nil {
		header.Set("Content-Type", "application/json")
	}

	return c.Relay(ctx, Request{
		Operation:   q.Operation,
		Method:      q.Method(),
		URL:         c.URL(q.Resource),
		Header:      header,
		Credentials: &creds,
		Body:        body,
	})
}

// Relay issues req and classifies the response. The returned error is set
// only when no upstream response was obtained.
func (c *Client) Relay(ctx context.Context, req Request) (*Result, error) {
	op := req.Operation
	if op == "" {
		op = "unknown"
	}

	if err := checkURL(req.URL); err != nil {
		return nil, err
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	if req.Header != nil {
		httpReq.Header = req.Header.Clone()
	}
	if req.Credentials != nil {
		req.Credentials.Apply(httpReq)
	}
	httpReq.Header.Set("Accept-Encoding", "gzip")

	logger.UpstreamRequest(req.Method, req.URL, httpReq.Header, req.Body)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues(op, metrics.OutcomeTransportError).Inc()
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := readBody(resp)
	elapsed := time.Since(start)
	metrics.UpstreamDuration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		metrics.RelayRequestsTotal.WithLabelValues(op, metrics.OutcomeTransportError).Inc()
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	logger.UpstreamResponse(resp.StatusCode, elapsed, raw)

	res := classify(resp.StatusCode, raw)
	switch res.Kind {
	case KindDecodeError:
		logger.Warn("%s: upstream %d returned non-JSON body: %s", op, resp.StatusCode, logger.Truncate(res.Raw(), 512))
		metrics.RelayRequestsTotal.WithLabelValues(op, metrics.OutcomeDecodeError).Inc()
	case KindUpstreamError:
		logger.Warn("%s: upstream %d: %s", op, resp.StatusCode, logger.Truncate(res.Raw(), 512))
		metrics.RelayRequestsTotal.WithLabelValues(op, metrics.OutcomeUpstreamError).Inc()
	default:
		metrics.RelayRequestsTotal.WithLabelValues(op, metrics.OutcomeOK).Inc()
	}
	return res, nil
}

func classify(status int, raw []byte) *Result {
	if !jsonpkg.Valid(raw) {
		return &Result{Kind: KindDecodeError, Status: status, Body: raw}
	}
	if status < 200 || status > 299 {
		return &Result{Kind: KindUpstreamError, Status: status, Body: raw}
	}
	return &Result{Kind: KindOK, Status: status, Body: raw}
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return io.ReadAll(reader)
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid upstream URL: %w", err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("upstream URL must be absolute https, got %q", raw)
	}
	return nil
}
