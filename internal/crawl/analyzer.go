package crawl

import (
	"time"

	"github.com/ppiankov/a11ystatement/internal/extract"
	"github.com/ppiankov/a11ystatement/internal/logger"
	"github.com/ppiankov/a11ystatement/internal/model"
	"github.com/ppiankov/a11ystatement/internal/score"
)

// Analyzer turns the HTML exchanges of one page visit into a knowledge record
type Analyzer struct {
	scorer   *score.LinkScorer
	policy   extract.DatePolicy
	keepText bool
	now      func() time.Time
	log      logger.Logger
}

// NewAnalyzer creates an analyzer that ages dates against now()
func NewAnalyzer(policy extract.DatePolicy, keepText bool, now func() time.Time, log logger.Logger) *Analyzer {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Analyzer{
		scorer:   score.NewLinkScorer(),
		policy:   policy,
		keepText: keepText,
		now:      now,
		log:      log,
	}
}

// Evaluate runs every detector on each HTML exchange. Links are merged across
// exchanges; facts come from the first exchange classified as the statement,
// or the first parsable exchange when none is.
func (a *Analyzer) Evaluate(pageURL, group string, simplified model.SimplifiedCapture) (*model.KnowledgeRecord, error) {
	if _, err := score.Origin(pageURL); err != nil {
		return nil, err
	}

	links := score.NewCandidates()
	var chosen *model.KnowledgeRecord

	for _, exchange := range simplified.HTMLs {
		if exchange.Content == "" {
			continue
		}

		page, err := extract.ParsePage(exchange.Content)
		if err != nil {
			a.log.Warn("Skipping unparsable html exchange",
				logger.String("url", exchange.URL),
				logger.Int("index", exchange.Index),
				logger.Error(err))
			continue
		}

		scored, err := a.scorer.Score(pageURL, page.Anchors())
		if err != nil {
			return nil, err
		}
		for _, l := range scored {
			links.Set(l.URL, l.Precision)
		}

		record := a.inspect(pageURL, group, page)
		if chosen == nil || (record.IsStatement && !chosen.IsStatement) {
			chosen = record
		}
	}

	if chosen == nil {
		chosen = model.NewKnowledgeRecord(pageURL, group)
	}
	chosen.Links = links.Sorted()

	return chosen, nil
}

// inspect runs the detectors and the classifier on one document. Date and
// evaluation findings only count on the statement itself.
func (a *Analyzer) inspect(pageURL, group string, doc extract.Document) *model.KnowledgeRecord {
	record := model.NewKnowledgeRecord(pageURL, group)
	text := doc.Text()

	var issues []model.Issue
	record.Compliance, issues = extract.DetectCompliance(pageURL, text)
	record.AddIssues(issues...)
	record.Notification, issues = extract.DetectNotificationLink(pageURL, doc.Anchors())
	record.AddIssues(issues...)
	record.Burden, issues = extract.DetectBurdensomeAccommodation(pageURL, text)
	record.AddIssues(issues...)

	dates, dateIssues := extract.DetectUpdateDate(pageURL, text, a.now(), a.policy)
	evaluation, evaluationIssues := extract.DetectEvaluationMethod(pageURL, text)

	c := extract.ClassifyStatement(record, doc)
	record.IsStatement = c.IsStatement
	record.Heading = c.Heading
	record.Title = c.Title

	if c.IsStatement {
		record.Dates = dates
		record.AddIssues(dateIssues...)
		record.Evaluation = evaluation
		record.AddIssues(evaluationIssues...)
	}

	if a.keepText {
		record.Text = text
	}

	return record
}
