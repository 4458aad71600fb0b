package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/a11ystatement/internal/model"
)

func TestRobotsChecker_CanFetch(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			w.WriteHeader(http.StatusOK)
			return
		}
		hits.Add(1)
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /privat/\nCrawl-delay: 2\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker("a11ystatement/0.1 (+https://example.se)", server.Client())
	ctx := context.Background()

	allowed, delay, err := checker.CanFetch(ctx, server.URL+"/tillganglighet")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !allowed {
		t.Error("Expected /tillganglighet to be allowed")
	}
	if delay != 2*time.Second {
		t.Errorf("Expected crawl delay 2s, got %v", delay)
	}

	allowed, _, _ = checker.CanFetch(ctx, server.URL+"/privat/sida")
	if allowed {
		t.Error("Expected /privat/sida to be disallowed")
	}

	if hits.Load() != 1 {
		t.Errorf("Expected robots.txt to be fetched once, got %d", hits.Load())
	}

	checker.Clear()
	_, _, _ = checker.CanFetch(ctx, server.URL+"/")
	if hits.Load() != 2 {
		t.Errorf("Expected refetch after Clear, got %d fetches", hits.Load())
	}
}

func TestRobotsChecker_MissingRobotsAllows(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("test-agent", server.Client())
	allowed, _, err := checker.CanFetch(context.Background(), server.URL+"/any")
	if err != nil || !allowed {
		t.Errorf("Expected allow on 404 robots.txt, got allowed=%v err=%v", allowed, err)
	}
}

func TestRobotsChecker_InvalidURL(t *testing.T) {
	checker := NewRobotsChecker("test-agent", nil)
	if _, _, err := checker.CanFetch(context.Background(), "/relative"); err == nil {
		t.Error("Expected error for url without host")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	tests := map[string]string{
		"a11ystatement/0.1 (+https://example.se)": "a11ystatement",
		"Mozilla/5.0 (X11)":                       "Mozilla",
		"plain":                                   "plain",
		"":                                        "",
	}
	for in, want := range tests {
		if got := NormalizeUserAgent(in); got != want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewProxyFunc(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:8080", "http://secure-proxy:8443", "intern.se, .lokal")

	tests := []struct {
		target string
		want   string
	}{
		{"http://example.se/", "http://proxy:8080"},
		{"https://example.se/", "http://secure-proxy:8443"},
		{"https://intern.se/", ""},
		{"https://www.intern.se/", ""},
		{"http://server.lokal/", ""},
	}

	for _, tt := range tests {
		u, _ := url.Parse(tt.target)
		got, err := proxy(&http.Request{URL: u})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.target, err)
		}
		gotStr := ""
		if got != nil {
			gotStr = got.String()
		}
		if gotStr != tt.want {
			t.Errorf("%s: expected proxy %q, got %q", tt.target, tt.want, gotStr)
		}
	}
}

func TestNewHTTPClient_Redirects(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	client := NewHTTPClient(model.HTTPConfig{Timeout: 5 * time.Second})
	resp, err := client.Get(server.URL + "/")
	if err == nil {
		_ = resp.Body.Close()
		t.Fatal("Expected redirect loop to be stopped")
	}
}
