package extract

import (
	"regexp"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// Tolerates entity-encoded or mis-decoded å/ä/ö, like the anchor text patterns.
var statementTitleRe = regexp.MustCompile(`(?i)tillg(.{1,6}|ä)nglighetsredog(.{1,6}|ö)relse`)

// Classification is the outcome of deciding whether a page is the
// accessibility statement.
type Classification struct {
	IsStatement bool
	Heading     string
	Title       string
}

// ClassifyStatement decides whether a page is the accessibility statement. A
// page is only eligible when it carries compliance wording, a notification
// link or an exemption claim; it then needs a heading or title naming it a
// "tillgänglighetsredogörelse". Heading and title are returned either way.
func ClassifyStatement(record *model.KnowledgeRecord, doc Document) Classification {
	c := Classification{
		Heading: StripSoftHyphen(doc.Heading()),
		Title:   StripSoftHyphen(doc.Title()),
	}

	eligible := record.Compliance != nil ||
		(record.Notification != nil && record.Notification.URL != "") ||
		record.Burden != nil
	if !eligible {
		return c
	}

	if c.Heading != "" && statementTitleRe.MatchString(c.Heading) {
		c.IsStatement = true
	} else if c.Title != "" && statementTitleRe.MatchString(c.Title) {
		c.IsStatement = true
	}

	return c
}
