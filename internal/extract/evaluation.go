package extract

import (
	"regexp"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// Known ways Swedish statements describe how the site was audited.
var evaluationRe = regexp.MustCompile(`(?i)(` +
	`självskattning|självutvärdering|egenkontroll|egen granskning|egna tester|` +
	`intern(?:a)? (?:granskning|testning|tester)|internt test|` +
	`extern(?:a)? (?:granskning|testning|tester)|oberoende granskning|tredje part|` +
	`\bfunka\b|\baxe\b|siteimprove|\bwave\b|lighthouse|pa11y|webperf|` +
	`konsult|checklist(?:a|or)|intervju|användartest|` +
	`automatiserade? (?:verktyg|tester|testning)|automatiska verktyg|maskinell|manuell granskning` +
	`)`)

// DetectEvaluationMethod looks for the method used to evaluate the site.
func DetectEvaluationMethod(pageURL, text string) (*model.Finding, []model.Issue) {
	loc := evaluationRe.FindStringIndex(text)
	if loc == nil {
		return nil, []model.Issue{
			model.NewIssue(pageURL, model.RuleNoEvaluationMethod, model.SeverityError,
				"No evaluation method described"),
		}
	}

	return &model.Finding{
		Word:     text[loc[0]:loc[1]],
		Sentence: SentenceAt(text, loc[0], loc[1]),
	}, nil
}
