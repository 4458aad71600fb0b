package pipeline

import (
	"context"
	"mime"

	"github.com/ppiankov/a11ystatement/internal/capture"
)

// Source produces the recorded exchanges of one page visit
type Source interface {
	Capture(ctx context.Context, pageURL string) (*capture.Archive, error)
}

// LiveSource fetches pages over HTTP and records each response as a
// one-entry archive
type LiveSource struct {
	fetcher *Fetcher
}

// NewLiveSource creates a live source backed by fetcher
func NewLiveSource(fetcher *Fetcher) *LiveSource {
	return &LiveSource{fetcher: fetcher}
}

// Capture fetches pageURL with retries
func (s *LiveSource) Capture(ctx context.Context, pageURL string) (*capture.Archive, error) {
	result, err := s.fetcher.FetchWithRetry(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	return capture.Record(result.FinalURL, result.StatusCode, mediaType(result.ContentType), result.Body), nil
}

// mediaType drops content-type parameters; the body is already UTF-8.
func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return contentType
	}
	return mt
}

var (
	_ Source = (*LiveSource)(nil)
	_ Source = (*capture.Index)(nil)
)
