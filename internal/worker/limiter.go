package worker

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// Limiter spaces out page visits per host. Sites are crawled politely even
// when several groups share a host.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a new rate limiter
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// NewLimiterFromConfig creates a limiter from the rate_limiting section
func NewLimiterFromConfig(cfg model.RateLimitingConfig) *Limiter {
	return NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize)
}

// Wait blocks until the host of rawURL may be visited
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostKey(rawURL)
	if err != nil {
		return err
	}
	return l.getLimiter(host).Wait(ctx)
}

// Allow reports whether a visit is allowed right now, consuming a token if so
func (l *Limiter) Allow(rawURL string) bool {
	host, err := hostKey(rawURL)
	if err != nil {
		return false
	}
	return l.getLimiter(host).Allow()
}

func (l *Limiter) getLimiter(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[host]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[host] = limiter
	return limiter
}

// ApplyCrawlDelay slows a host down to one visit per delay when that is
// stricter than its current rate. Non-positive delays are ignored.
func (l *Limiter) ApplyCrawlDelay(rawURL string, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	host, err := hostKey(rawURL)
	if err != nil {
		return err
	}

	limiter := l.getLimiter(host)
	every := rate.Every(delay)
	if every < limiter.Limit() {
		limiter.SetLimit(every)
		limiter.SetBurst(1)
	}
	return nil
}

// Rate returns the current limit for the host of rawURL
func (l *Limiter) Rate(rawURL string) rate.Limit {
	host, err := hostKey(rawURL)
	if err != nil {
		return 0
	}
	return l.getLimiter(host).Limit()
}

// hostKey returns the lower-cased host (with port) of a URL
func hostKey(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("no host in %q", rawURL)
	}
	return strings.ToLower(parsed.Host), nil
}
