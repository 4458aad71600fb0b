package extract

import (
	"regexp"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// Either a citation of 12 § of the accessibility act or the phrase itself.
var burdenRe = regexp.MustCompile(`(?i)(12\s?§[^.]{0,20}?lagen|oskäligt betungande anpassning)`)

// DetectBurdensomeAccommodation reports when a site claims the statutory
// exemption for unreasonably burdensome accommodation.
func DetectBurdensomeAccommodation(pageURL, text string) (*model.Finding, []model.Issue) {
	loc := burdenRe.FindStringIndex(text)
	if loc == nil {
		return nil, nil
	}

	finding := &model.Finding{
		Word:     text[loc[0]:loc[1]],
		Sentence: SentenceAt(text, loc[0], loc[1]),
	}
	issue := model.NewIssue(pageURL, model.RuleBurdensomeAccommodation, model.SeverityError,
		"Statement claims unreasonably burdensome accommodation (12 § DOS-lagen)")
	issue.Data = map[string]interface{}{
		"word":     finding.Word,
		"sentence": finding.Sentence,
	}

	return finding, []model.Issue{issue}
}
