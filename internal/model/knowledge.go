package model

// KnowledgeRecord is everything learned from one page evaluation.
// Optional facts are nil when the corresponding detector found nothing.
type KnowledgeRecord struct {
	URL           string       `json:"url" yaml:"url"`
	Group         string       `json:"group" yaml:"group"`
	Issues        []Issue      `json:"issues" yaml:"issues"`
	ResolvedRules []string     `json:"resolved_rules" yaml:"resolved_rules"` // Reserved, always empty
	Links         []ScoredLink `json:"interesting_links" yaml:"interesting_links"`

	Compliance   *Finding          `json:"compatible,omitempty" yaml:"compatible,omitempty"`
	Notification *NotificationLink `json:"notification_function,omitempty" yaml:"notification_function,omitempty"`
	Burden       *Finding          `json:"unreasonably_burdensome_accommodation,omitempty" yaml:"unreasonably_burdensome_accommodation,omitempty"`
	Evaluation   *Finding          `json:"evaluation_method,omitempty" yaml:"evaluation_method,omitempty"`
	Dates        []DateCandidate   `json:"dates,omitempty" yaml:"dates,omitempty"`

	IsStatement bool   `json:"is_a11y_statement" yaml:"is_a11y_statement"`
	Heading     string `json:"h1,omitempty" yaml:"h1,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
}

// NewKnowledgeRecord returns an empty record for a page in a group.
func NewKnowledgeRecord(url, group string) *KnowledgeRecord {
	return &KnowledgeRecord{
		URL:           url,
		Group:         group,
		Issues:        []Issue{},
		ResolvedRules: []string{},
		Links:         []ScoredLink{},
	}
}

// AddIssues appends issues to the record.
func (k *KnowledgeRecord) AddIssues(issues ...Issue) {
	k.Issues = append(k.Issues, issues...)
}

// Finding is a matched phrase and the sentence it was found in.
type Finding struct {
	Word     string `json:"word" yaml:"word"`
	Sentence string `json:"sentence" yaml:"sentence"`
}

// NotificationLink is the anchor pointing at the regulator's reporting page.
type NotificationLink struct {
	Text string `json:"text" yaml:"text"`
	URL  string `json:"url" yaml:"url"`
}

// ScoredLink is a same-origin link with its relevance precision (0-1).
type ScoredLink struct {
	URL       string  `json:"url" yaml:"url"`
	Precision float64 `json:"precision" yaml:"precision"`
}

// Anchor is a link as seen in the DOM.
type Anchor struct {
	Href string
	Text string
}

// Date is a calendar date without time of day.
type Date struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
	Day   int `json:"day" yaml:"day"`
}

// DateCandidate is one extracted "last updated" date. Candidates compare
// equal when every field is equal.
type DateCandidate struct {
	Word     string  `json:"word" yaml:"word"`         // Trigger keyword as written on the page
	Sentence string  `json:"sentence" yaml:"sentence"` // Sentence containing the date
	Type     string  `json:"type" yaml:"type"`         // Lower-cased trigger stem (e.g., "uppdater")
	Date     Date    `json:"date" yaml:"date"`
	Weight   float64 `json:"weight" yaml:"weight"` // Confidence 0-1
}
