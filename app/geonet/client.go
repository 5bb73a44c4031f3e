package geonet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://api.geonet.org.nz"

// Client talks to the GeoNet API directly; it permits cross-origin
// access so the proxy chain is not involved. Unlike the news feeds, a
// hard failure here is surfaced to the caller so the display layer can
// render an error state with a link to GeoNet.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

func NewClient(baseURL string, httpClient *http.Client, userAgent string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, userAgent: userAgent}
}

// Quakes returns recent earthquakes at or above the given felt intensity.
func (c *Client) Quakes(ctx context.Context, mmi int) ([]QuakeFeature, error) {
	var response QuakeResponse
	if err := c.get(ctx, fmt.Sprintf("%s/quake?MMI=%d", c.baseURL, mmi), &response); err != nil {
		return nil, err
	}
	return response.Features, nil
}

// VolcanicAlerts returns the current volcanic alert level for each
// monitored volcano.
func (c *Client) VolcanicAlerts(ctx context.Context) ([]VolcanoFeature, error) {
	var response VolcanoResponse
	if err := c.get(ctx, c.baseURL+"/volcano/val", &response); err != nil {
		return nil, err
	}
	return response.Features, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
