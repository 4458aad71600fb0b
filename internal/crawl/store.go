package crawl

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ppiankov/a11ystatement/internal/capture"
	"github.com/ppiankov/a11ystatement/internal/extract"
	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/ppiankov/a11ystatement/internal/model"
)

// DefaultMaxVisits is the per-group visit budget.
const DefaultMaxVisits = 15

// Store owns the state of every crawl group. Groups are independent; calls
// for the same group must be serialized by the caller.
type Store struct {
	mu     sync.Mutex
	groups map[string]*Group
	order  []string

	maxVisits int
	policy    extract.DatePolicy
	keepText  bool
	now       func() time.Time
	log       logger.Logger

	analyzer *Analyzer
}

// Option configures a Store
type Option func(*Store)

// WithMaxVisits sets the per-group visit budget
func WithMaxVisits(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxVisits = n
		}
	}
}

// WithDatePolicy sets which date candidate decides staleness
func WithDatePolicy(p extract.DatePolicy) Option {
	return func(s *Store) { s.policy = p }
}

// WithKeepText keeps normalized body text on knowledge records
func WithKeepText(keep bool) Option {
	return func(s *Store) { s.keepText = keep }
}

// WithClock replaces time.Now for date aging
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// NewStore creates an empty store
func NewStore(opts ...Option) *Store {
	s := &Store{
		groups:    make(map[string]*Group),
		maxVisits: DefaultMaxVisits,
		policy:    extract.DatePolicyHighest,
		now:       time.Now,
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.analyzer = NewAnalyzer(s.policy, s.keepText, s.now, s.log)
	return s
}

// MaxVisits returns the per-group visit budget
func (s *Store) MaxVisits() int {
	return s.maxVisits
}

func (s *Store) group(id string) *Group {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.groups[id]
	if !ok {
		g = newGroup(id)
		s.groups[id] = g
		s.order = append(s.order, id)
	}
	return g
}

func (s *Store) lookup(id string) (*Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[id]
	return g, ok
}

// TrySetStartURL records the first URL seen for a group. Later calls are
// no-ops. It reports whether url became the start URL.
func (s *Store) TrySetStartURL(url, group string) bool {
	g := s.group(group)
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.startURL != "" {
		return false
	}
	g.startURL = url
	g.visit(url)
	return true
}

// Analyze evaluates one captured page visit and folds it into its group.
func (s *Store) Analyze(pageURL, group string, archive *capture.Archive) (*model.PageResult, error) {
	simplified, err := capture.Simplify(archive, pageURL)
	if err != nil {
		return nil, fmt.Errorf("simplify capture for %s: %w", pageURL, err)
	}

	record, err := s.analyzer.Evaluate(pageURL, group, simplified)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", pageURL, err)
	}

	result := &model.PageResult{
		URL:       pageURL,
		Capture:   simplified,
		Knowledge: record,
	}

	g := s.group(group)
	g.mu.Lock()
	found := g.fold(result)
	g.mu.Unlock()

	s.log.Debug("Page analyzed",
		logger.String("group", group),
		logger.String("url", pageURL),
		logger.Int("html_exchanges", len(simplified.HTMLs)),
		logger.Int("issues", len(record.Issues)),
		logger.Int("links", len(record.Links)))
	if found {
		s.log.Info("Accessibility statement found",
			logger.String("group", group),
			logger.String("url", pageURL))
	}

	return result, nil
}

// NextInterestingURL returns the next URL to visit for a group, or false when
// the crawl should stop. A URL is never returned twice for the same group.
func (s *Store) NextInterestingURL(group string) (string, bool) {
	g, ok := s.lookup(group)
	if !ok {
		return "", false
	}

	g.mu.Lock()
	url, capped := g.next(s.maxVisits)
	g.mu.Unlock()

	if capped {
		s.log.Info("Visit budget exhausted",
			logger.String("group", group),
			logger.Int("max_visits", s.maxVisits))
	}
	if url == "" {
		return "", false
	}

	s.log.Debug("Next interesting url",
		logger.String("group", group),
		logger.String("url", url))
	return url, true
}

// Finish runs the end-of-run check for a group: a group that never found its
// statement gets the critical not-found issue, unless it already has one.
func (s *Store) Finish(group string) {
	g, ok := s.lookup(group)
	if !ok {
		return
	}

	g.mu.Lock()
	added := g.reportMissing(fmt.Sprintf("No accessibility statement found after visiting %d pages", len(g.visited)))
	g.mu.Unlock()

	if added {
		s.log.Info("No accessibility statement found", logger.String("group", group))
	}
}

// Group returns a snapshot of one group
func (s *Store) Group(id string) (*model.GroupSummary, bool) {
	g, ok := s.lookup(id)
	if !ok {
		return nil, false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.summary(), true
}

// Groups returns the group ids in creation order
func (s *Store) Groups() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Summary finishes every group and returns their accumulated state
func (s *Store) Summary() model.Summary {
	ids := s.Groups()
	sort.Strings(ids)

	summary := model.Summary{
		GeneratedAt: s.now().UTC(),
		Groups:      make(map[string]*model.GroupSummary, len(ids)),
	}
	for _, id := range ids {
		s.Finish(id)
		if g, ok := s.Group(id); ok {
			summary.Groups[id] = g
		}
	}
	return summary
}
