package model

// Issue is a single reportable finding about a page. Issues are append-only:
// once emitted they are never edited or removed.
type Issue struct {
	URL      string                 `json:"url" yaml:"url"`
	Rule     string                 `json:"rule" yaml:"rule"`          // Rule identifier (e.g., "no-compatible-word")
	Category string                 `json:"category" yaml:"category"`  // Always "a11y" today
	Severity Severity               `json:"severity" yaml:"severity"`  // info, warning, error, critical
	Text     string                 `json:"text" yaml:"text"`          // Human-readable description
	Data     map[string]interface{} `json:"data,omitempty" yaml:"data,omitempty"`
}

// Severity indicates how serious an issue is
type Severity string

const (
	SeverityInfo     Severity = "info"     // Confirmatory, e.g. canonical link present
	SeverityWarning  Severity = "warning"  // Suboptimal but not disqualifying
	SeverityError    Severity = "error"    // Required element missing, wrong or stale
	SeverityCritical Severity = "critical" // No accessibility statement found at all
)

// Rank orders severities so callers can pick the worst one.
func (s Severity) Rank() int {
	switch s {
	case SeverityInfo:
		return 1
	case SeverityWarning:
		return 2
	case SeverityError:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// CategoryA11y is the category used for every rule in this module.
const CategoryA11y = "a11y"

// Rule identifiers
const (
	RuleNoCompatibleWord          = "no-compatible-word"
	RuleCompatibleWordNot         = "compatible-word-not"
	RuleCompatibleWordPartly      = "compatible-word-partly"
	RuleCanonicalNotificationLink = "has-canonical-notification-function-link"
	RuleOldNotificationLink       = "has-old-notification-function-link"
	RuleNoNotificationLink        = "no-notification-function-link"
	RuleBurdensomeAccommodation   = "has-unreasonably-burdensome-accommodation"
	RuleNoEvaluationMethod        = "no-evaluation-method"
	RuleNoUpdatedDate             = "no-updated-date"
	RuleNoA11yStatement           = "no-a11y-statement"
)

// RuleUpdatedDateOlderThan returns the staleness rule id for the given number
// of whole years (1..5).
func RuleUpdatedDateOlderThan(years int) string {
	switch years {
	case 1:
		return "updated-date-older-than-1years"
	case 2:
		return "updated-date-older-than-2years"
	case 3:
		return "updated-date-older-than-3years"
	case 4:
		return "updated-date-older-than-4years"
	default:
		return "updated-date-older-than-5years"
	}
}

// NewIssue builds an a11y issue.
func NewIssue(url, rule string, severity Severity, text string) Issue {
	return Issue{
		URL:      url,
		Rule:     rule,
		Category: CategoryA11y,
		Severity: severity,
		Text:     text,
	}
}
