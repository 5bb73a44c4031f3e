package api

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	"github.com/nzhazard/hazardwatch/app/observability"
)

// Upstream hosts the relay will forward to. A request host matches when
// it equals an entry or is a subdomain of one.
var allowedHosts = []string{
	"api.open-meteo.com",
	"api.geonet.org.nz",
	"alerts.metservice.com",
	"api.metservice.com",
	"rnz.co.nz",
	"scoop.co.nz",
	"stuff.co.nz",
}

// Cache windows per upstream, mirrored into the Cache-Control header so
// a CDN in front can hold responses for the same period.
const (
	cacheWindowOpenMeteo = 600 * time.Second
	cacheWindowGeoNet    = 120 * time.Second
	cacheWindowAlerts    = 300 * time.Second
	cacheWindowNews      = 600 * time.Second
	cacheWindowDefault   = 300 * time.Second
)

func cacheWindow(host string) time.Duration {
	switch {
	case strings.Contains(host, "open-meteo.com"):
		return cacheWindowOpenMeteo
	case strings.Contains(host, "geonet.org.nz"):
		return cacheWindowGeoNet
	case strings.Contains(host, "alerts.metservice.com"):
		return cacheWindowAlerts
	case strings.Contains(host, "rnz.co.nz"), strings.Contains(host, "scoop.co.nz"), strings.Contains(host, "stuff.co.nz"):
		return cacheWindowNews
	default:
		return cacheWindowDefault
	}
}

func hostAllowed(host string) bool {
	host = strings.ToLower(host)
	for _, allowed := range allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

type cachedResponse struct {
	body        []byte
	contentType string
	expiresAt   time.Time
}

// Relay forwards whitelisted upstream requests for the dashboard,
// keeping a short-lived in-process response cache per URL.
type Relay struct {
	httpClient *http.Client
	clock      clockwork.Clock
	mu         sync.Mutex
	cache      map[string]cachedResponse
}

func NewRelay(httpClient *http.Client, clock clockwork.Clock) *Relay {
	return &Relay{
		httpClient: httpClient,
		clock:      clock,
		cache:      make(map[string]cachedResponse),
	}
}

func (r *Relay) lookup(key string, now time.Time) (cachedResponse, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cached, ok := r.cache[key]
	if !ok || now.After(cached.expiresAt) {
		delete(r.cache, key)
		return cachedResponse{}, false
	}
	return cached, true
}

func (r *Relay) store(key string, resp cachedResponse, now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Drop expired entries opportunistically so the map stays bounded by
	// the small set of distinct dashboard URLs.
	for k, v := range r.cache {
		if now.After(v.expiresAt) {
			delete(r.cache, k)
		}
	}
	r.cache[key] = resp
}

func (h *Handler) ProxyRelay(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		observability.RelayRequests.WithLabelValues("missing_url").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter required"})
		return
	}

	target, err := url.Parse(rawURL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		observability.RelayRequests.WithLabelValues("invalid_url").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
		return
	}

	if !hostAllowed(target.Hostname()) {
		observability.RelayRequests.WithLabelValues("forbidden").Inc()
		c.JSON(http.StatusForbidden, gin.H{"error": "host not allowed"})
		return
	}

	now := h.clock.Now()
	window := cacheWindow(target.Hostname())
	cacheControl := fmt.Sprintf("public, s-maxage=%d", int(window.Seconds()))

	if cached, ok := h.relay.lookup(rawURL, now); ok {
		observability.RelayRequests.WithLabelValues("cached").Inc()
		c.Header("Cache-Control", cacheControl)
		c.Header("X-Relay-Cache", "hit")
		c.Data(http.StatusOK, cached.contentType, cached.body)
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, target.String(), nil)
	if err != nil {
		observability.RelayRequests.WithLabelValues("invalid_url").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
		return
	}

	resp, err := h.relay.httpClient.Do(req)
	if err != nil {
		observability.RelayRequests.WithLabelValues("upstream_error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream request failed"})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		observability.RelayRequests.WithLabelValues("upstream_error").Inc()
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream read failed"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if resp.StatusCode == http.StatusOK {
		h.relay.store(rawURL, cachedResponse{
			body:        body,
			contentType: contentType,
			expiresAt:   now.Add(window),
		}, now)
	}

	observability.RelayRequests.WithLabelValues("forwarded").Inc()
	c.Header("Cache-Control", cacheControl)
	c.Header("X-Relay-Cache", "miss")
	c.Data(resp.StatusCode, contentType, body)
}
