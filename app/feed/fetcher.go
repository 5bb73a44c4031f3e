package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/nzhazard/hazardwatch/app/observability"
)

// Proxy is one relay in the fallback chain. Each proxy has its own way of
// embedding the target URL: some expect it percent-encoded in a query
// parameter, others want it appended raw.
type Proxy struct {
	Name      string
	Endpoint  string
	RawAppend bool
}

// DefaultProxies is the ordered fallback chain for cross-origin
// restricted feeds.
var DefaultProxies = []Proxy{
	{Name: "allorigins", Endpoint: "https://api.allorigins.win/raw?url="},
	{Name: "corsproxy", Endpoint: "https://corsproxy.io/?"},
	{Name: "codetabs", Endpoint: "https://api.codetabs.com/v1/proxy/?quest=", RawAppend: true},
	{Name: "thingproxy", Endpoint: "https://thingproxy.freeboard.io/fetch/", RawAppend: true},
}

// Fetcher retrieves feed documents, falling back through the proxy chain
// for sources the browser-era deployment could not reach directly.
// Outbound requests are rate limited to stay a good citizen with the
// public relays.
type Fetcher struct {
	client    *http.Client
	proxies   []Proxy
	timeout   time.Duration
	userAgent string
	limiter   *rate.Limiter
}

func NewFetcher(client *http.Client, proxies []Proxy, timeout time.Duration, userAgent string) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &Fetcher{
		client:    client,
		proxies:   proxies,
		timeout:   timeout,
		userAgent: userAgent,
		limiter:   rate.NewLimiter(rate.Limit(5), 5),
	}
}

func (f *Fetcher) buildProxyURL(proxy Proxy, target string) string {
	if proxy.RawAppend {
		return proxy.Endpoint + target
	}
	return proxy.Endpoint + url.QueryEscape(target)
}

// FetchThroughProxies resolves a target URL through the fallback chain.
// A proxy's response is accepted only when the status is success and the
// body carries a plausible feed marker. Exhausting the chain is not an
// error; callers treat ok=false as "no data available".
func (f *Fetcher) FetchThroughProxies(ctx context.Context, target string) (string, bool) {
	for _, proxy := range f.proxies {
		body, err := f.attempt(ctx, proxy, target)
		switch {
		case err == nil && hasFeedMarker(body):
			observability.ProxyAttempts.WithLabelValues(proxy.Name, "success").Inc()
			slog.Info("Feed fetched through proxy", "proxy", proxy.Name, "url", target)
			return body, true
		case err == nil:
			observability.ProxyAttempts.WithLabelValues(proxy.Name, "rejected").Inc()
			slog.Debug("Proxy returned implausible body, trying next", "proxy", proxy.Name, "url", target)
		case errors.Is(err, context.DeadlineExceeded):
			observability.ProxyAttempts.WithLabelValues(proxy.Name, "timeout").Inc()
			slog.Debug("Proxy timed out, trying next", "proxy", proxy.Name, "url", target)
		default:
			observability.ProxyAttempts.WithLabelValues(proxy.Name, "error").Inc()
			slog.Debug("Proxy failed, trying next", "proxy", proxy.Name, "url", target, "error", err)
		}

		if ctx.Err() != nil {
			return "", false
		}
	}

	slog.Warn("All proxies failed", "url", target)
	return "", false
}

func (f *Fetcher) attempt(ctx context.Context, proxy Proxy, target string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, f.buildProxyURL(proxy, target), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if attemptCtx.Err() != nil {
			return "", attemptCtx.Err()
		}
		return "", fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// FetchDirect retrieves a URL without the proxy chain, for sources whose
// API permits direct access.
func (f *Fetcher) FetchDirect(ctx context.Context, target string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

func hasFeedMarker(body string) bool {
	return strings.Contains(body, "<item>") || strings.Contains(body, "<entry") ||
		SniffFormat(body) == FormatCAPAlert
}
