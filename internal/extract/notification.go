package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// Reporting pages of the supervisory authority (DIGG).
const (
	NotificationShortURL     = "https://www.digg.se/tdosanmalan"
	NotificationCanonicalURL = "https://www.digg.se/analys-och-uppfoljning/lagen-om-tillganglighet-till-digital-offentlig-service-dos-lagen/anmal-bristande-tillganglighet"
)

var oldNotificationRe = regexp.MustCompile(`(?i)^https?://[^/]*digg\.se/.*anmal-bristande-tillganglighet`)

// DetectNotificationLink looks for a link to the authority's form for
// reporting inaccessible content. Every recognized anchor updates the result;
// the canonical long URL and legacy URLs each add their own issue.
func DetectNotificationLink(pageURL string, anchors []model.Anchor) (*model.NotificationLink, []model.Issue) {
	var link *model.NotificationLink
	var issues []model.Issue

	for _, a := range anchors {
		href := strings.TrimSpace(a.Href)
		text := CollapseText(a.Text)

		switch {
		case href == NotificationShortURL:
			link = &model.NotificationLink{Text: text, URL: href}
		case href == NotificationCanonicalURL:
			link = &model.NotificationLink{Text: text, URL: href}
			issue := model.NewIssue(pageURL, model.RuleCanonicalNotificationLink, model.SeverityInfo,
				"Links to the canonical notification function")
			issue.Data = map[string]interface{}{"text": text, "url": href}
			issues = append(issues, issue)
		case oldNotificationRe.MatchString(href):
			link = &model.NotificationLink{Text: text, URL: href}
			issue := model.NewIssue(pageURL, model.RuleOldNotificationLink, model.SeverityWarning,
				"Links to an outdated address of the notification function")
			issue.Data = map[string]interface{}{"text": text, "url": href}
			issues = append(issues, issue)
		}
	}

	if link == nil || link.URL == "" {
		issues = append(issues, model.NewIssue(pageURL, model.RuleNoNotificationLink, model.SeverityError,
			"No link to the notification function"))
		return nil, issues
	}

	return link, issues
}
