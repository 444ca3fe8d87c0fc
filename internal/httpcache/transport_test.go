package httpcache

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

// flakyTransport fails every request once fail is set
type flakyTransport struct {
	next  http.RoundTripper
	fail  atomic.Bool
	calls atomic.Int32
}

func (f *flakyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	f.calls.Add(1)
	if f.fail.Load() {
		return nil, errors.New("network down")
	}
	return f.next.RoundTrip(req)
}

func get(t *testing.T, c *http.Client, u string) (string, error) {
	t.Helper()
	resp, err := c.Get(u)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b), nil
}

func hostOf(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	return u.Hostname()
}

func TestTransport(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte("body-" + string(rune('0'+n))))
	}))
	defer srv.Close()
	host := hostOf(t, srv.URL)

	t.Run("network first serves cache when the network fails", func(t *testing.T) {
		hits.Store(0)
		flaky := &flakyTransport{next: http.DefaultTransport}
		tr := NewTransport(flaky, nil, Rule{Host: host, Strategy: NetworkFirst, Entries: 10, TTL: time.Hour, NetworkTimeout: time.Second})
		c := &http.Client{Transport: tr}

		first, err := get(t, c, srv.URL+"/movie/popular?page=1&api_key=secret")
		if err != nil {
			t.Fatalf("first: %v", err)
		}
		second, err := get(t, c, srv.URL+"/movie/popular?page=1&api_key=secret")
		if err != nil {
			t.Fatalf("second: %v", err)
		}
		if first == second {
			t.Fatal("network first should refetch while online")
		}

		flaky.fail.Store(true)
		offline, err := get(t, c, srv.URL+"/movie/popular?page=1&api_key=other")
		if err != nil {
			t.Fatalf("offline: %v", err)
		}
		if offline != second {
			t.Errorf("offline body = %q, want cached %q", offline, second)
		}

		if _, err := get(t, c, srv.URL+"/movie/popular?page=2&api_key=secret"); err == nil {
			t.Error("expected an error for an uncached url while offline")
		}
	})

	t.Run("cache first skips the network on a hit", func(t *testing.T) {
		hits.Store(0)
		tr := NewTransport(nil, nil, Rule{Host: host, Strategy: CacheFirst, Entries: 10, TTL: time.Hour})
		c := &http.Client{Transport: tr}

		a, _ := get(t, c, srv.URL+"/t/p/w500/a.jpg")
		b, _ := get(t, c, srv.URL+"/t/p/w500/a.jpg")
		if a != b || hits.Load() != 1 {
			t.Errorf("expected one upstream hit, got %d (%q vs %q)", hits.Load(), a, b)
		}
		if tr.entries(host) != 1 {
			t.Errorf("entries = %d", tr.entries(host))
		}
		tr.purge()
		if tr.entries(host) != 0 {
			t.Errorf("entries after purge = %d", tr.entries(host))
		}
	})

	t.Run("non-200 responses are not cached", func(t *testing.T) {
		tr := NewTransport(nil, nil, Rule{Host: host, Strategy: CacheFirst, Entries: 10, TTL: time.Hour})
		c := &http.Client{Transport: tr}

		resp, err := c.Get(srv.URL + "/missing")
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("status = %d", resp.StatusCode)
		}
		if tr.entries(host) != 0 {
			t.Errorf("entries = %d", tr.entries(host))
		}
	})

	t.Run("unknown hosts pass through", func(t *testing.T) {
		hits.Store(0)
		tr := NewTransport(nil, nil, Rule{Host: "example.invalid"})
		c := &http.Client{Transport: tr}
		get(t, c, srv.URL+"/x")
		get(t, c, srv.URL+"/x")
		if hits.Load() != 2 {
			t.Errorf("hits = %d", hits.Load())
		}
	})
}

func TestCacheKeyStripsCredentials(t *testing.T) {
	u, _ := url.Parse("https://api.themoviedb.org/3/movie/popular?api_key=abc&page=2")
	if got := cacheKey(u); got != "https://api.themoviedb.org/3/movie/popular?page=2" {
		t.Errorf("cacheKey = %q", got)
	}
}
