package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/a11ystatement/internal/model"
)

var complianceRe = regexp.MustCompile(`(?i)(helt|delvis|inte) förenlig`)

// DetectCompliance looks for the statement's compliance wording ("helt",
// "delvis" or "inte förenlig"). Only the first occurrence counts.
func DetectCompliance(pageURL, text string) (*model.Finding, []model.Issue) {
	m := complianceRe.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, []model.Issue{
			model.NewIssue(pageURL, model.RuleNoCompatibleWord, model.SeverityError,
				"No compliance wording (helt/delvis/inte förenlig) found"),
		}
	}

	word := text[m[0]:m[1]]
	finding := &model.Finding{
		Word:     word,
		Sentence: SentenceAt(text, m[0], m[1]),
	}

	var issues []model.Issue
	switch strings.ToLower(text[m[2]:m[3]]) {
	case "inte":
		issues = append(issues, model.NewIssue(pageURL, model.RuleCompatibleWordNot, model.SeverityError,
			"Website declares itself not compliant"))
	case "delvis":
		issues = append(issues, model.NewIssue(pageURL, model.RuleCompatibleWordPartly, model.SeverityError,
			"Website declares itself partially compliant"))
	}

	return finding, issues
}
