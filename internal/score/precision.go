package score

import "regexp"

// The å/ä/ö groups tolerate entity-encoded or badly decoded characters.
const (
	aWord = `tillg(.{1,6}|ä|&auml;|&#228;)nglighet`
	oWord = `redog(.{1,6}|ö|&ouml;|&#246;)relse`
)

// interestingTextRe is the coarse filter an anchor text must pass before it
// is scored at all.
var interestingTextRe = regexp.MustCompile(`(?im)(om [a-z]+|` + aWord + `(s` + oWord + `)?)`)

type precisionTier struct {
	re        *regexp.Regexp
	precision float64
}

// Checked in order, first match wins.
var precisionTiers = []precisionTier{
	{regexp.MustCompile(`(?i)^[ \t\r\n]*` + aWord + `s` + oWord + `$`), 0.55},
	{regexp.MustCompile(`(?i)^[ \t\r\n]*` + aWord + `s` + oWord), 0.5},
	{regexp.MustCompile(`(?i)^[ \t\r\n]*` + aWord + `$`), 0.4},
	{regexp.MustCompile(`(?i)^[ \t\r\n]*` + aWord), 0.35},
	{regexp.MustCompile(`(?i)` + aWord), 0.3},
	{regexp.MustCompile(`(?i)om webbplats`), 0.29},
	{regexp.MustCompile(`(?i)^[ \t\r\n]*om [a-z]+$`), 0.25},
	{regexp.MustCompile(`(?i)^[ \t\r\n]*om [a-z]+`), 0.2},
}

// DefaultPrecision is returned for text that matches no tier. Links at this
// level are never kept.
const DefaultPrecision = 0.1

// TextPrecision rates how likely an anchor text leads to the accessibility
// statement, from 0.1 (unlikely) to 0.55 (exact title).
func TextPrecision(text string) float64 {
	for _, tier := range precisionTiers {
		if tier.re.MatchString(text) {
			return tier.precision
		}
	}
	return DefaultPrecision
}

// IsInterestingText reports whether text passes the coarse filter.
func IsInterestingText(text string) bool {
	return interestingTextRe.MatchString(text)
}
