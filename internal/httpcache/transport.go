// Package httpcache is a caching http.RoundTripper with network-first and
// cache-first policies per host.
package httpcache

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Strategy selects how a host is served
type Strategy int

const (
	// NetworkFirst tries the network and falls back to a cached copy on failure
	NetworkFirst Strategy = iota
	// CacheFirst serves a cached copy when present and only then hits the network
	CacheFirst
)

// Rule configures caching for one host
type Rule struct {
	Host     string
	Strategy Strategy
	Entries  int
	TTL      time.Duration

	// NetworkTimeout bounds the network attempt for NetworkFirst. Zero means
	// the request context alone applies.
	NetworkTimeout time.Duration
}

// stripParams are removed from cache keys so credentials never key entries
var stripParams = []string{"api_key"}

type hostCache struct {
	rule  Rule
	store *expirable.LRU[string, []byte]
}

// Transport caches successful GET responses per host according to its rule.
// Hosts without a rule pass straight through.
type Transport struct {
	next   http.RoundTripper
	hosts  map[string]*hostCache
	logger *slog.Logger
}

// NewTransport wraps next (http.DefaultTransport when nil) with the given rules
func NewTransport(next http.RoundTripper, logger *slog.Logger, rules ...Rule) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &Transport{
		next:   next,
		hosts:  make(map[string]*hostCache, len(rules)),
		logger: logger,
	}
	for _, r := range rules {
		if r.Entries <= 0 {
			r.Entries = 100
		}
		t.hosts[strings.ToLower(r.Host)] = &hostCache{
			rule:  r,
			store: expirable.NewLRU[string, []byte](r.Entries, nil, r.TTL),
		}
	}
	return t
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	hc, ok := t.hosts[strings.ToLower(req.URL.Hostname())]
	if !ok || req.Method != http.MethodGet {
		return t.next.RoundTrip(req)
	}

	key := cacheKey(req.URL)

	switch hc.rule.Strategy {
	case CacheFirst:
		if resp, ok := hc.lookup(key, req); ok {
			t.logger.Debug("cache hit", "host", hc.rule.Host)
			return resp, nil
		}
		return t.fetch(hc, key, req)

	default:
		resp, err := t.fetchWithTimeout(hc, key, req)
		if err == nil {
			return resp, nil
		}
		if cached, ok := hc.lookup(key, req); ok {
			t.logger.Warn("network failed, serving cached response", "host", hc.rule.Host, "error", err)
			return cached, nil
		}
		return nil, err
	}
}

// entries returns the number of cached responses for host
func (t *Transport) entries(host string) int {
	if hc, ok := t.hosts[strings.ToLower(host)]; ok {
		return hc.store.Len()
	}
	return 0
}

// purge drops every cached response
func (t *Transport) purge() {
	for _, hc := range t.hosts {
		hc.store.Purge()
	}
}

func (t *Transport) fetchWithTimeout(hc *hostCache, key string, req *http.Request) (*http.Response, error) {
	if hc.rule.NetworkTimeout <= 0 {
		return t.fetch(hc, key, req)
	}
	ctx, cancel := context.WithTimeout(req.Context(), hc.rule.NetworkTimeout)
	defer cancel()
	return t.fetch(hc, key, req.WithContext(ctx))
}

// fetch performs the request and stores a 200 response. The body is fully
// buffered so the response stays readable after the timeout context ends.
func (t *Transport) fetch(hc *hostCache, key string, req *http.Request) (*http.Response, error) {
	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		resp.Body = io.NopCloser(bytes.NewReader(body))
		return resp, nil
	}

	dump, err := httputil.DumpResponse(resp, true)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}
	hc.store.Add(key, dump)

	return decode(dump, req)
}

func (hc *hostCache) lookup(key string, req *http.Request) (*http.Response, bool) {
	dump, ok := hc.store.Get(key)
	if !ok {
		return nil, false
	}
	resp, err := decode(dump, req)
	if err != nil {
		hc.store.Remove(key)
		return nil, false
	}
	return resp, true
}

func decode(dump []byte, req *http.Request) (*http.Response, error) {
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(dump)), req)
}

// cacheKey is the request URL without credential parameters
func cacheKey(u *url.URL) string {
	clone := *u
	q := clone.Query()
	for _, p := range stripParams {
		q.Del(p)
	}
	clone.RawQuery = q.Encode()
	return clone.String()
}
