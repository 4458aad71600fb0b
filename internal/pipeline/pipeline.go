package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ppiankov/a11ystatement/internal/crawl"
	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/ppiankov/a11ystatement/internal/model"
)

// ErrDisallowed is returned when robots.txt forbids the start URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// RobotsPolicy decides whether a URL may be visited
type RobotsPolicy interface {
	CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error)
}

// RateLimiter spaces out visits to the same host
type RateLimiter interface {
	Wait(ctx context.Context, rawURL string) error
	ApplyCrawlDelay(rawURL string, delay time.Duration) error
}

// PageHandler receives every page result as soon as it is analyzed
type PageHandler func(result *model.PageResult)

// Pipeline drives one crawl group: visit the start page, then follow the
// frontier until it runs dry, the statement is found or the visit budget
// is spent.
type Pipeline struct {
	store   *crawl.Store
	source  Source
	robots  RobotsPolicy
	limiter RateLimiter
	onPage  PageHandler
	log     logger.Logger
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithRobots makes the pipeline consult robots.txt before each visit
func WithRobots(r RobotsPolicy) Option {
	return func(p *Pipeline) { p.robots = r }
}

// WithLimiter throttles visits per host
func WithLimiter(l RateLimiter) Option {
	return func(p *Pipeline) { p.limiter = l }
}

// WithPageHandler registers a callback for page results
func WithPageHandler(h PageHandler) Option {
	return func(p *Pipeline) { p.onPage = h }
}

// WithLogger sets the pipeline logger
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPipeline creates a pipeline over a store and a capture source
func NewPipeline(store *crawl.Store, source Source, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:  store,
		source: source,
		log:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run crawls one group starting at startURL and returns its summary. A
// failure on the start page aborts the run; failures on later pages are
// logged and skipped.
func (p *Pipeline) Run(ctx context.Context, startURL, group string) (*model.GroupSummary, error) {
	if !p.store.TrySetStartURL(startURL, group) {
		return nil, fmt.Errorf("group %s already started", group)
	}

	log := p.log.With(logger.String("group", group))
	start := time.Now()
	log.Info("Crawl started", logger.String("start_url", startURL))

	allowed, err := p.allowed(ctx, startURL)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("%s: %w", startURL, ErrDisallowed)
	}
	if err := p.visit(ctx, startURL, group); err != nil {
		return nil, fmt.Errorf("start page: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, ok := p.store.NextInterestingURL(group)
		if !ok {
			break
		}

		allowed, err := p.allowed(ctx, next)
		if err != nil {
			return nil, err
		}
		if !allowed {
			log.Debug("Skipping url disallowed by robots.txt", logger.String("url", next))
			continue
		}

		if err := p.visit(ctx, next, group); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn("Page visit failed", logger.String("url", next), logger.Error(err))
		}
	}

	p.store.Finish(group)
	summary, _ := p.store.Group(group)

	log.Info("Crawl finished",
		logger.Int("visited", len(summary.Visited)),
		logger.Bool("statement_found", summary.StatementFound),
		logger.Duration("elapsed", time.Since(start)))

	return summary, nil
}

// allowed checks robots.txt and applies its crawl delay. Robots lookups that
// fail are treated as allowed, matching the checker itself.
func (p *Pipeline) allowed(ctx context.Context, rawURL string) (bool, error) {
	if p.robots == nil {
		return true, nil
	}

	ok, delay, err := p.robots.CanFetch(ctx, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		p.log.Debug("Robots check failed", logger.String("url", rawURL), logger.Error(err))
		return true, nil
	}
	if delay > 0 && p.limiter != nil {
		if err := p.limiter.ApplyCrawlDelay(rawURL, delay); err != nil {
			p.log.Debug("Crawl delay not applied", logger.String("url", rawURL), logger.Error(err))
		}
	}
	return ok, nil
}

func (p *Pipeline) visit(ctx context.Context, pageURL, group string) error {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx, pageURL); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	archive, err := p.source.Capture(ctx, pageURL)
	if err != nil {
		return fmt.Errorf("capture %s: %w", pageURL, err)
	}

	result, err := p.store.Analyze(pageURL, group, archive)
	if err != nil {
		return err
	}

	p.log.Debug("Page evaluated",
		logger.String("group", group),
		logger.String("url", pageURL),
		logger.Bool("is_statement", result.Knowledge.IsStatement),
		logger.Int("issues", len(result.Knowledge.Issues)))

	if p.onPage != nil {
		p.onPage(result)
	}
	return nil
}
