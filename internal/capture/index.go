package capture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Index serves previously recorded HAR files by page URL. Each file is keyed
// by the request URL of its first HTML exchange; decoded archives are kept in
// memory for a while so revisits do not hit the disk.
type Index struct {
	mu    sync.RWMutex
	files map[string]string
	cache *gocache.Cache
}

// NewIndex creates an empty index with the given decoded-archive TTL.
func NewIndex(ttl time.Duration) *Index {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Index{
		files: make(map[string]string),
		cache: gocache.New(ttl, 2*ttl),
	}
}

// LoadDir indexes every *.har file in dir. It returns the indexed page URLs in
// sorted order.
func (x *Index) LoadDir(dir string) ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.har"))
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}

	var urls []string
	for _, path := range paths {
		pageURL, err := x.Add(path)
		if err != nil {
			return nil, err
		}
		if pageURL != "" {
			urls = append(urls, pageURL)
		}
	}
	sort.Strings(urls)
	return urls, nil
}

// Add indexes a single HAR file and returns the page URL it was keyed under.
// Files without any HTML exchange are accepted but not indexed.
func (x *Index) Add(path string) (string, error) {
	archive, err := readFile(path)
	if err != nil {
		return "", err
	}

	pageURL := FirstHTMLURL(archive)
	if pageURL == "" {
		return "", nil
	}

	x.mu.Lock()
	x.files[normalizeKey(pageURL)] = path
	x.mu.Unlock()
	x.cache.SetDefault(path, archive)

	return pageURL, nil
}

// Len returns the number of indexed pages.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.files)
}

// Capture returns the recorded archive for pageURL.
func (x *Index) Capture(ctx context.Context, pageURL string) (*Archive, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x.mu.RLock()
	path, ok := x.files[normalizeKey(pageURL)]
	x.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no capture recorded for %s", pageURL)
	}

	if cached, found := x.cache.Get(path); found {
		return cached.(*Archive), nil
	}

	archive, err := readFile(path)
	if err != nil {
		return nil, err
	}
	x.cache.SetDefault(path, archive)
	return archive, nil
}

func readFile(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read capture: %w", err)
	}
	archive, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return archive, nil
}

// normalizeKey makes "https://x.se/om" and "https://x.se/om/" the same page.
func normalizeKey(pageURL string) string {
	return strings.TrimSuffix(strings.TrimSpace(pageURL), "/")
}
