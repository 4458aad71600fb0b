package worker

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// Runner crawls one site and returns its group summary
type Runner interface {
	Run(ctx context.Context, startURL, group string) (*model.GroupSummary, error)
}

// Site is a crawl request: a start URL and the group its pages belong to
type Site struct {
	URL   string
	Group string
}

// SiteJob crawls one site
type SiteJob struct {
	Index  int
	Site   Site
	Runner Runner
}

// SiteResult holds the outcome of a site crawl
type SiteResult struct {
	Index    int
	Site     Site
	Summary  *model.GroupSummary
	Error    error
	Duration time.Duration
}

// GetError implements Result interface
func (r *SiteResult) GetError() error {
	return r.Error
}

// Lane keeps evaluations of the same group on one worker
func (j *SiteJob) Lane() string {
	return j.Site.Group
}

// Execute implements Job interface
func (j *SiteJob) Execute(ctx context.Context) Result {
	start := time.Now()
	summary, err := j.Runner.Run(ctx, j.Site.URL, j.Site.Group)
	return &SiteResult{
		Index:    j.Index,
		Site:     j.Site,
		Summary:  summary,
		Error:    err,
		Duration: time.Since(start),
	}
}

// BatchProcessor crawls many sites concurrently
type BatchProcessor struct {
	runner      Runner
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(runner Runner, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
	}
}

// ProcessSites crawls all sites and returns results in input order
func (bp *BatchProcessor) ProcessSites(ctx context.Context, sites []Site) []*SiteResult {
	pool := NewPool(ctx, bp.concurrency)
	pool.Start()

	for i, site := range sites {
		pool.Submit(&SiteJob{
			Index:  i,
			Site:   site,
			Runner: bp.runner,
		})
	}

	results := pool.Wait()

	siteResults := make([]*SiteResult, 0, len(results))
	for _, r := range results {
		if sr, ok := r.(*SiteResult); ok {
			siteResults = append(siteResults, sr)
		}
	}
	sort.Slice(siteResults, func(i, j int) bool {
		return siteResults[i].Index < siteResults[j].Index
	})

	return siteResults
}

// ProcessFile reads sites from a file and crawls them
func (bp *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*SiteResult, error) {
	sites, err := ReadSitesFromFile(path)
	if err != nil {
		return nil, err
	}
	return bp.ProcessSites(ctx, sites), nil
}

// ReadSitesFromFile reads one site per line. A line holds a start URL and an
// optional group id; the group defaults to the URL's host. Empty lines and
// lines starting with # are skipped.
func ReadSitesFromFile(path string) ([]Site, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sites []Site
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		site := Site{URL: fields[0]}
		if len(fields) > 1 {
			site.Group = fields[1]
		} else {
			group, err := GroupID(site.URL)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			site.Group = group
		}
		sites = append(sites, site)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	return sites, nil
}

// GroupID derives a group id from a start URL
func GroupID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return "", fmt.Errorf("invalid url %q: missing host", rawURL)
	}
	return strings.TrimPrefix(host, "www."), nil
}
