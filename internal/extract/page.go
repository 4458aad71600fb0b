package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ppiankov/a11ystatement/internal/model"
)

// Document is the DOM capability the detectors need. Text detectors work on
// plain strings; only link and heading lookups go through the DOM.
type Document interface {
	// Heading returns the text of the first h1, or "".
	Heading() string
	// Title returns the document title, or "".
	Title() string
	// Anchors returns every <a href> in the body, in document order.
	Anchors() []model.Anchor
	// Text returns the normalized body text.
	Text() string
}

// Page is a goquery-backed Document.
type Page struct {
	doc  *goquery.Document
	text string
}

// ParsePage parses an HTML document and normalizes its body text once.
func ParsePage(htmlContent string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	p := &Page{doc: doc}
	p.text = NormalizeText(p.Body())
	return p, nil
}

// Body returns the body element
func (p *Page) Body() *goquery.Selection {
	return p.doc.Find("body").First()
}

// Heading returns the first h1 text
func (p *Page) Heading() string {
	return p.doc.Find("h1").First().Text()
}

// Title returns the <title> text
func (p *Page) Title() string {
	return p.doc.Find("title").First().Text()
}

// Anchors returns all anchors with an href attribute from the body
func (p *Page) Anchors() []model.Anchor {
	var anchors []model.Anchor
	p.doc.Find("body a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		anchors = append(anchors, model.Anchor{
			Href: href,
			Text: s.Text(),
		})
	})
	return anchors
}

// Text returns the normalized body text
func (p *Page) Text() string {
	return p.text
}
