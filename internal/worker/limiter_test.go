package worker

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/a11ystatement/internal/model"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(0, -1)
	if l2.defaultBurst != 1 {
		t.Errorf("expected burst 1 for negative input, got %d", l2.defaultBurst)
	}
	if l2.defaultRate != 1 {
		t.Errorf("expected rate 1 for zero input, got %v", l2.defaultRate)
	}
}

func TestLimiter_FromConfig(t *testing.T) {
	limiter := NewLimiterFromConfig(model.RateLimitingConfig{RequestsPerSecond: 4, BurstSize: 2})
	if limiter.defaultRate != 4 || limiter.defaultBurst != 2 {
		t.Errorf("Expected 4/2, got %v/%d", limiter.defaultRate, limiter.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://kommun.se/om"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "https://region.se"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "not a url"); err == nil {
		t.Error("expected error for url without host")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())

	if err := limiter.Wait(ctx, "https://kommun.se"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}
	cancel()
	if err := limiter.Wait(ctx, "https://kommun.se"); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestLimiter_PerHost(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if !limiter.Allow("https://kommun.se/a") {
		t.Error("expected first visit to be allowed")
	}
	if limiter.Allow("https://KOMMUN.se/b") {
		t.Error("expected second visit to the same host to be throttled")
	}
	if !limiter.Allow("https://region.se/") {
		t.Error("expected other host to have its own budget")
	}
}

func TestLimiter_ApplyCrawlDelay(t *testing.T) {
	limiter := NewLimiter(10, 5)

	if err := limiter.ApplyCrawlDelay("https://kommun.se", 2*time.Second); err != nil {
		t.Fatalf("ApplyCrawlDelay failed: %v", err)
	}
	if got := limiter.Rate("https://kommun.se/x"); got != rate.Every(2*time.Second) {
		t.Errorf("Expected %v, got %v", rate.Every(2*time.Second), got)
	}

	// A looser delay does not relax the limit
	if err := limiter.ApplyCrawlDelay("https://kommun.se", 100*time.Millisecond); err != nil {
		t.Fatalf("ApplyCrawlDelay failed: %v", err)
	}
	if got := limiter.Rate("https://kommun.se"); got != rate.Every(2*time.Second) {
		t.Errorf("Expected limit to stay at %v, got %v", rate.Every(2*time.Second), got)
	}

	if err := limiter.ApplyCrawlDelay("https://region.se", 0); err != nil {
		t.Errorf("zero delay should be ignored, got %v", err)
	}
	if got := limiter.Rate("https://region.se"); got != 10 {
		t.Errorf("Expected default rate 10, got %v", got)
	}
}

func TestHostKey(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		wantErr  bool
	}{
		{"https://www.Kommun.se/path", "www.kommun.se", false},
		{"http://127.0.0.1:8080/x", "127.0.0.1:8080", false},
		{"/relative", "", true},
	}

	for _, tt := range tests {
		got, err := hostKey(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("hostKey(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("hostKey(%q) = %q, expected %q", tt.url, got, tt.expected)
		}
	}
}
