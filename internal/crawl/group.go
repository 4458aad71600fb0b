package crawl

import (
	"fmt"
	"sync"

	"github.com/ppiankov/a11ystatement/internal/model"
	"github.com/ppiankov/a11ystatement/internal/score"
)

// Group is the crawl state of one site under test. All mutation goes
// through the owning Store.
type Group struct {
	mu sync.Mutex

	id             string
	startURL       string
	visited        map[string]bool
	visitOrder     []string
	candidates     *score.Candidates // nil until the first page is analyzed
	statementFound bool
	statementURL   string
	records        []*model.KnowledgeRecord
	captures       []model.SimplifiedCapture
	terminalIssued bool
}

func newGroup(id string) *Group {
	return &Group{
		id:      id,
		visited: make(map[string]bool),
	}
}

// visit marks url as visited and drops it from the candidates. It reports
// false when url was already visited.
func (g *Group) visit(url string) bool {
	if g.visited[url] {
		return false
	}
	g.visited[url] = true
	g.visitOrder = append(g.visitOrder, url)
	if g.candidates != nil {
		g.candidates.Remove(url)
	}
	return true
}

func (g *Group) isVisited(url string) bool {
	return g.visited[url]
}

// fold adds one page evaluation to the group.
func (g *Group) fold(result *model.PageResult) (statementNow bool) {
	g.visit(result.URL)
	g.captures = append(g.captures, result.Capture)
	g.records = append(g.records, result.Knowledge)

	if g.candidates == nil {
		g.candidates = score.NewCandidates()
	}
	g.candidates.Merge(result.Knowledge.Links, g.isVisited)

	if result.Knowledge.IsStatement && !g.statementFound {
		g.statementFound = true
		g.statementURL = result.URL
		return true
	}
	return false
}

// next hands out the best unvisited candidate, marking it visited. capped
// is true when the visit budget stopped the crawl.
func (g *Group) next(maxVisits int) (url string, capped bool) {
	if g.candidates == nil || g.statementFound {
		return "", false
	}

	if len(g.visited) >= maxVisits {
		g.reportMissing(fmt.Sprintf("No accessibility statement found within %d visited pages", len(g.visited)))
		return "", true
	}

	for _, link := range g.candidates.Sorted() {
		if g.visited[link.URL] {
			continue
		}
		g.visit(link.URL)
		return link.URL, false
	}
	return "", false
}

// reportMissing appends the terminal not-found issue to the first record,
// at most once per group. It reports whether the issue was added.
func (g *Group) reportMissing(text string) bool {
	if g.terminalIssued || g.statementFound || len(g.records) == 0 {
		return false
	}
	first := g.records[0]
	first.AddIssues(model.NewIssue(first.URL, model.RuleNoA11yStatement, model.SeverityCritical, text))
	g.terminalIssued = true
	return true
}

func (g *Group) summary() *model.GroupSummary {
	var pending []model.ScoredLink
	if g.candidates != nil {
		pending = g.candidates.Sorted()
	}
	return &model.GroupSummary{
		Group:          g.id,
		StartURL:       g.startURL,
		Visited:        append([]string(nil), g.visitOrder...),
		StatementFound: g.statementFound,
		StatementURL:   g.statementURL,
		Pending:        pending,
		Knowledge:      append([]*model.KnowledgeRecord(nil), g.records...),
		Captures:       append([]model.SimplifiedCapture(nil), g.captures...),
	}
}
