package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const fetchableFeed = `<?xml version="1.0"?><rss version="2.0"><channel><item><title>x</title></item></channel></rss>`

func TestFetchThroughProxies_FallsBackOnFailure(t *testing.T) {
	var calls []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/failing":
			w.WriteHeader(http.StatusBadGateway)
		case "/nonfeed":
			w.Write([]byte("<html><body>blocked</body></html>"))
		case "/working":
			w.Write([]byte(fetchableFeed))
		}
	}))
	defer ts.Close()

	proxies := []Proxy{
		{Name: "failing", Endpoint: ts.URL + "/failing?url="},
		{Name: "nonfeed", Endpoint: ts.URL + "/nonfeed?url="},
		{Name: "working", Endpoint: ts.URL + "/working?url="},
	}

	fetcher := NewFetcher(ts.Client(), proxies, 2*time.Second, "test-agent")

	body, ok := fetcher.FetchThroughProxies(context.Background(), "https://example.com/feed.xml")
	if !ok {
		t.Fatal("Expected fetch to succeed via the third proxy")
	}
	if body != fetchableFeed {
		t.Errorf("Unexpected body: %q", body)
	}
	if len(calls) != 3 {
		t.Errorf("Expected 3 proxy attempts, got %d: %v", len(calls), calls)
	}
}

func TestFetchThroughProxies_TimeoutMovesToNext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow" {
			time.Sleep(500 * time.Millisecond)
		}
		w.Write([]byte(fetchableFeed))
	}))
	defer ts.Close()

	proxies := []Proxy{
		{Name: "slow", Endpoint: ts.URL + "/slow?url="},
		{Name: "fast", Endpoint: ts.URL + "/fast?url="},
	}

	fetcher := NewFetcher(ts.Client(), proxies, 100*time.Millisecond, "test-agent")

	body, ok := fetcher.FetchThroughProxies(context.Background(), "https://example.com/feed.xml")
	if !ok {
		t.Fatal("Expected fetch to succeed via the fast proxy")
	}
	if body != fetchableFeed {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetchThroughProxies_AllFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	proxies := []Proxy{
		{Name: "one", Endpoint: ts.URL + "/?url="},
		{Name: "two", Endpoint: ts.URL + "/?url="},
	}

	fetcher := NewFetcher(ts.Client(), proxies, 2*time.Second, "test-agent")

	if _, ok := fetcher.FetchThroughProxies(context.Background(), "https://example.com/feed.xml"); ok {
		t.Error("Expected ok=false when every proxy fails")
	}
}

func TestFetchThroughProxies_AcceptsCAPAlert(t *testing.T) {
	capDoc := `<?xml version="1.0"?><alert xmlns="urn:oasis:names:tc:emergency:cap:1.2"><identifier>x</identifier></alert>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(capDoc))
	}))
	defer ts.Close()

	proxies := []Proxy{{Name: "only", Endpoint: ts.URL + "/?url="}}
	fetcher := NewFetcher(ts.Client(), proxies, 2*time.Second, "test-agent")

	body, ok := fetcher.FetchThroughProxies(context.Background(), "https://example.com/cap")
	if !ok {
		t.Fatal("A bare CAP alert document should count as a plausible feed")
	}
	if !strings.Contains(body, "<alert") {
		t.Errorf("Unexpected body: %q", body)
	}
}

func TestFetcher_BuildProxyURL(t *testing.T) {
	fetcher := NewFetcher(nil, nil, time.Second, "test-agent")
	target := "https://example.com/feed?a=1&b=2"

	encoded := fetcher.buildProxyURL(Proxy{Endpoint: "https://proxy.test/raw?url="}, target)
	if strings.Contains(encoded, "a=1&b=2") {
		t.Errorf("Query-parameter proxies must percent-encode the target: %q", encoded)
	}

	raw := fetcher.buildProxyURL(Proxy{Endpoint: "https://proxy.test/fetch/", RawAppend: true}, target)
	if raw != "https://proxy.test/fetch/"+target {
		t.Errorf("Raw-append proxies must append the target unchanged: %q", raw)
	}
}

func TestFetchDirect(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			t.Errorf("Expected custom user agent, got %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(`{"feed":[]}`))
	}))
	defer ts.Close()

	fetcher := NewFetcher(ts.Client(), nil, 2*time.Second, "test-agent")

	data, err := fetcher.FetchDirect(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `{"feed":[]}` {
		t.Errorf("Unexpected body: %q", data)
	}
}

func TestFetchDirect_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	fetcher := NewFetcher(ts.Client(), nil, 2*time.Second, "test-agent")

	if _, err := fetcher.FetchDirect(context.Background(), ts.URL); err == nil {
		t.Error("Expected an error for a non-200 response")
	}
}
