package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// chromeSelector lists the navigational and interactive elements dropped
// before text matching.
const chromeSelector = "script, nav, form, input, button, a"

const softHyphen = "\u00ad"

var (
	lineBreakRe = regexp.MustCompile(`[\r\n\t]`)
	spaceRunRe  = regexp.MustCompile(` {2,}`)
)

// NormalizeText returns the canonical plain text of a body selection. The
// selection itself is left untouched.
func NormalizeText(body *goquery.Selection) string {
	if body == nil || body.Length() == 0 {
		return ""
	}

	clone := body.Clone()
	clone.Find(chromeSelector).Remove()

	return CollapseText(clone.Text())
}

// CollapseText applies the whitespace and soft-hyphen rules to raw text.
func CollapseText(text string) string {
	text = lineBreakRe.ReplaceAllString(text, " ")
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = StripSoftHyphen(text)
	return strings.TrimSpace(text)
}

// StripSoftHyphen removes U+00AD from s and trims it.
func StripSoftHyphen(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, softHyphen, ""))
}
