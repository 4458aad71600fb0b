package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ppiankov/a11ystatement/internal/cache"
	"github.com/ppiankov/a11ystatement/internal/crawl"
	"github.com/ppiankov/a11ystatement/internal/extract"
	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/ppiankov/a11ystatement/internal/model"
	"github.com/ppiankov/a11ystatement/internal/pipeline"
	"github.com/ppiankov/a11ystatement/internal/util"
	"github.com/ppiankov/a11ystatement/internal/worker"
)

// run bundles what every crawling command needs
type run struct {
	id       string
	cfg      *model.Config
	log      logger.Logger
	store    *crawl.Store
	renderer *pipeline.Renderer
}

func newRun() (*run, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	renderer, err := pipeline.NewRenderer(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	log = log.With(logger.String("run_id", id))

	store := crawl.NewStore(
		crawl.WithMaxVisits(cfg.Crawl.MaxVisits),
		crawl.WithDatePolicy(extract.ParseDatePolicy(cfg.Crawl.DatePolicy)),
		crawl.WithKeepText(cfg.Crawl.KeepText),
		crawl.WithLogger(log),
	)

	return &run{id: id, cfg: cfg, log: log, store: store, renderer: renderer}, nil
}

// livePipeline wires the fetcher, cache, robots checker and per-host limiter
func (r *run) livePipeline() *pipeline.Pipeline {
	fetcher := pipeline.NewFetcher(r.cfg.HTTP, cache.New(r.cfg.Cache), r.log)

	opts := []pipeline.Option{
		pipeline.WithLogger(r.log),
		pipeline.WithLimiter(worker.NewLimiterFromConfig(r.cfg.RateLimiting)),
		pipeline.WithPageHandler(r.pageHandler()),
	}
	if r.cfg.Crawl.RespectRobots {
		robots := util.NewRobotsChecker(r.cfg.HTTP.UserAgent, util.NewHTTPClient(r.cfg.HTTP))
		opts = append(opts, pipeline.WithRobots(robots))
	}

	return pipeline.NewPipeline(r.store, pipeline.NewLiveSource(fetcher), opts...)
}

func (r *run) pageHandler() pipeline.PageHandler {
	return func(result *model.PageResult) {
		if !r.cfg.Output.Verbose {
			return
		}
		marker := " "
		if result.Knowledge.IsStatement {
			marker = "✓"
		}
		fmt.Fprintf(os.Stderr, "%s %s (%d issues)\n", marker, result.URL, len(result.Knowledge.Issues))
	}
}

// report writes one file per group plus the run summary and prints an
// overview of each group
func (r *run) report() error {
	summary := r.store.Summary()
	summary.RunID = r.id

	for _, id := range r.store.Groups() {
		g := summary.Groups[id]
		if g == nil {
			continue
		}
		path, err := r.renderer.WriteGroup(r.cfg.Output.Dir, g)
		if err != nil {
			return err
		}
		pipeline.RenderOverview(os.Stderr, g)
		r.log.Debug("Report written", logger.String("group", id), logger.String("path", path))
	}

	summaryPath := filepath.Join(r.cfg.Output.Dir, "summary"+r.renderer.Ext())
	if err := r.renderer.WriteFile(summaryPath, summary); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "\n✓ Wrote reports to %s\n", r.cfg.Output.Dir)
	return nil
}

func (r *run) close() {
	_ = r.log.Sync()
}

// groupFor returns the explicit group or derives one from the URL
func groupFor(explicit, startURL string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return worker.GroupID(startURL)
}
