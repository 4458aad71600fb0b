package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/ppiankov/a11ystatement/internal/cache"
	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/ppiankov/a11ystatement/internal/model"
	"github.com/ppiankov/a11ystatement/internal/util"
)

// fetchSleepFunc is replaced in tests to skip backoff delays
var fetchSleepFunc = time.Sleep

const fetchBackoffBase = 500 * time.Millisecond

// Fetcher retrieves pages over HTTP
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	maxRetries int
	cache      cache.Cache
	log        logger.Logger
}

// NewFetcher creates a Fetcher from the http config. A nil cache disables
// caching; cached pages use the cache's own TTLs.
func NewFetcher(cfg model.HTTPConfig, c cache.Cache, log logger.Logger) *Fetcher {
	if c == nil {
		c = cache.Nop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = 1
	}
	return &Fetcher{
		httpClient: util.NewHTTPClient(cfg),
		userAgent:  cfg.UserAgent,
		maxBytes:   cfg.MaxBodyBytes,
		maxRetries: retries,
		cache:      c,
		log:        log,
	}
}

// FetchResult contains the fetched page and metadata
type FetchResult struct {
	URL         string `json:"url"`
	FinalURL    string `json:"final_url"`
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
	FromCache   bool   `json:"-"`
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, http.StatusText(e.Code))
}

// transportError marks failures of the round trip itself
type transportError struct {
	err error
}

func (e *transportError) Error() string { return "fetch: " + e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

// Fetch retrieves a page once. Bodies are decoded to UTF-8 using the
// response charset and capped at the configured size.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.CacheKey(rawURL)
	if data, ok := f.cache.Get(key); ok {
		var cached FetchResult
		if err := json.Unmarshal(data, &cached); err == nil {
			cached.FromCache = true
			return &cached, nil
		}
		_ = f.cache.Delete(key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "sv-SE,sv;q=0.9,en;q=0.5")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &transportError{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	decoded, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBytes), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	result := &FetchResult{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        string(body),
	}

	if data, err := json.Marshal(result); err == nil {
		if err := f.cache.Set(key, data, 0); err != nil {
			f.log.Warn("Cache write failed", logger.String("url", rawURL), logger.Error(err))
		}
	}

	return result, nil
}

// FetchWithRetry retries transient failures (5xx, 429, connection errors)
// with exponential backoff
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	var lastErr error
	for attempt := 0; attempt < f.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(float64(fetchBackoffBase) * math.Pow(2, float64(attempt-1)))
			f.log.Debug("Retrying fetch",
				logger.String("url", rawURL),
				logger.Int("attempt", attempt+1),
				logger.Duration("delay", delay))
			fetchSleepFunc(delay)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		result, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isRetryableFetchError(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500 || statusErr.Code == http.StatusTooManyRequests
	}

	var tErr *transportError
	return errors.As(err, &tErr)
}
