package model

import "time"

// GroupSummary is the accumulated state of one crawl group.
type GroupSummary struct {
	Group          string              `json:"group" yaml:"group"`
	StartURL       string              `json:"start_url" yaml:"start_url"`
	Visited        []string            `json:"visited" yaml:"visited"`
	StatementFound bool                `json:"a11y_statement_found" yaml:"a11y_statement_found"`
	StatementURL   string              `json:"a11y_statement_url,omitempty" yaml:"a11y_statement_url,omitempty"`
	Pending        []ScoredLink        `json:"interesting_links" yaml:"interesting_links"`
	Knowledge      []*KnowledgeRecord  `json:"knowledge_data" yaml:"knowledge_data"`
	Captures       []SimplifiedCapture `json:"analyzed_data" yaml:"analyzed_data"`
}

// Issues returns every issue in the group, in record order.
func (g *GroupSummary) Issues() []Issue {
	var issues []Issue
	for _, k := range g.Knowledge {
		issues = append(issues, k.Issues...)
	}
	return issues
}

// WorstSeverity returns the highest severity among the group's issues, or ""
// when there are none.
func (g *GroupSummary) WorstSeverity() Severity {
	var worst Severity
	for _, issue := range g.Issues() {
		if issue.Severity.Rank() > worst.Rank() {
			worst = issue.Severity
		}
	}
	return worst
}

// Summary is the end-of-run view over every group.
type Summary struct {
	RunID       string                   `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	GeneratedAt time.Time                `json:"generated_at" yaml:"generated_at"`
	Groups      map[string]*GroupSummary `json:"groups" yaml:"groups"`
}
