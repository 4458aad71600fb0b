package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// DatePolicy selects which extracted date decides the statement's age.
type DatePolicy string

const (
	// DatePolicyHighest uses the most trusted candidate (highest weight).
	DatePolicyHighest DatePolicy = "highest"
	// DatePolicyLowest uses the least trusted candidate, which is what the
	// first plugin releases did.
	DatePolicyLowest DatePolicy = "lowest"
)

// ParseDatePolicy maps a config value to a policy, defaulting to highest.
func ParseDatePolicy(s string) DatePolicy {
	if strings.EqualFold(strings.TrimSpace(s), string(DatePolicyLowest)) {
		return DatePolicyLowest
	}
	return DatePolicyHighest
}

const (
	keywordPart   = `(?P<kw>bedömning|redogörelse|gransk|uppdater)[a-zåäö]*`
	monthNames    = `januari|februari|mars|april|maj|juni|juli|augusti|september|oktober|november|december|jan|feb|mar|apr|jun|jul|aug|sept|sep|okt|nov|dec`
	monthDatePart = `(?:(?P<day>\d{1,2})\s+)?(?P<month>` + monthNames + `)\.?\s+(?P<year>\d{4})`
	isoDatePart   = `(?P<year>\d{4})-(?P<month>\d{1,2})-(?P<day>\d{1,2})`
	adjacentPart  = `(?::\s*|\s+)`
	connectorPart = `:?\s+(?:(?:gjordes|genomfördes|upprättades|publicerades|reviderades|senast|den|per|på|i|datum|från)\s+)+`
)

// The eight variants cover keyword before/after the date, month-name or ISO
// dates, and keyword directly next to the date or joined by connector words.
var dateRes = func() []*regexp.Regexp {
	var res []*regexp.Regexp
	for _, date := range []string{monthDatePart, isoDatePart} {
		for _, join := range []string{adjacentPart, connectorPart} {
			res = append(res,
				regexp.MustCompile(`(?i)`+keywordPart+join+date),
				regexp.MustCompile(`(?i)`+date+join+keywordPart),
			)
		}
	}
	return res
}()

// Lookup by four- then three-letter prefix.
var monthPrefixes = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "maj": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "sept": 9, "okt": 10, "nov": 11, "dec": 12,
}

// keywordWeights is in priority order: the first stem found wins.
var keywordWeights = []struct {
	stem   string
	weight float64
}{
	{"bedömning", 1.0},
	{"redogörelse", 0.9},
	{"gransk", 0.7},
	{"uppdater", 0.5},
}

const (
	baseDateWeight  = 0.3
	noDayDateWeight = 0.1
	daysPerYear     = 365
	maxAgeBucket    = 5
)

// ExtractDates returns every dated "updated/reviewed" mention in text,
// deduplicated and sorted by weight, highest first.
func ExtractDates(text string) []model.DateCandidate {
	var candidates []model.DateCandidate
	for _, re := range dateRes {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if c, ok := buildCandidate(re, text, m); ok {
				candidates = append(candidates, c)
			}
		}
	}
	candidates = DedupeDates(candidates)
	SortDates(candidates)
	return candidates
}

func buildCandidate(re *regexp.Regexp, text string, m []int) (model.DateCandidate, bool) {
	group := func(name string) (string, int, int) {
		i := re.SubexpIndex(name)
		if i < 0 || m[2*i] < 0 {
			return "", -1, -1
		}
		return text[m[2*i]:m[2*i+1]], m[2*i], m[2*i+1]
	}

	kw, kwStart, kwEnd := group("kw")
	yearText, _, _ := group("year")
	monthText, _, _ := group("month")
	dayText, _, _ := group("day")

	year, err := strconv.Atoi(yearText)
	if err != nil {
		return model.DateCandidate{}, false
	}
	month := parseMonth(monthText)
	if month == 0 {
		return model.DateCandidate{}, false
	}

	day := 1
	weight := baseDateWeight
	if dayText == "" {
		weight = noDayDateWeight
	} else {
		if day, err = strconv.Atoi(dayText); err != nil {
			return model.DateCandidate{}, false
		}
		kwLower := strings.ToLower(kw)
		for _, k := range keywordWeights {
			if strings.Contains(kwLower, k.stem) {
				weight = k.weight
				break
			}
		}
	}

	// reject dates like 31 februari that time.Date would roll over
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return model.DateCandidate{}, false
	}

	return model.DateCandidate{
		Word:     WordAt(text, kwStart, kwEnd),
		Sentence: SentenceAt(text, m[0], m[1]),
		Type:     strings.ToLower(kw),
		Date:     model.Date{Year: year, Month: month, Day: day},
		Weight:   weight,
	}, true
}

// parseMonth accepts a month name, abbreviation or number and returns 1-12,
// or 0 when it is none of those.
func parseMonth(s string) int {
	s = strings.ToLower(strings.TrimSuffix(s, "."))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	if len([]rune(s)) >= 4 {
		if n, ok := monthPrefixes[string([]rune(s)[:4])]; ok {
			return n
		}
	}
	if len([]rune(s)) >= 3 {
		if n, ok := monthPrefixes[string([]rune(s)[:3])]; ok {
			return n
		}
	}
	return 0
}

// DedupeDates drops candidates equal in every field, keeping first occurrences.
func DedupeDates(candidates []model.DateCandidate) []model.DateCandidate {
	seen := make(map[model.DateCandidate]bool)
	unique := make([]model.DateCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	return unique
}

// SortDates orders candidates by weight, highest first. Ties keep their order.
func SortDates(candidates []model.DateCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Weight > candidates[j].Weight
	})
}

// SelectDate picks the candidate used for the staleness check from a sorted list.
func SelectDate(candidates []model.DateCandidate, policy DatePolicy) (model.DateCandidate, bool) {
	if len(candidates) == 0 {
		return model.DateCandidate{}, false
	}
	if policy == DatePolicyLowest {
		return candidates[len(candidates)-1], true
	}
	return candidates[0], true
}

// AgeInYears counts whole 365-day years between d and now.
func AgeInYears(d model.Date, now time.Time) int {
	then := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	days := int(now.UTC().Sub(then).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days / daysPerYear
}

// AgeIssue classifies how stale the statement is. Less than a year old is fine.
func AgeIssue(pageURL string, c model.DateCandidate, now time.Time) *model.Issue {
	years := AgeInYears(c.Date, now)
	if years < 1 {
		return nil
	}

	severity := model.SeverityError
	if years == 1 {
		severity = model.SeverityWarning
	}
	bucket := min(years, maxAgeBucket)

	issue := model.NewIssue(pageURL, model.RuleUpdatedDateOlderThan(bucket), severity,
		fmt.Sprintf("Statement was last updated %04d-%02d-%02d, more than %d year(s) ago",
			c.Date.Year, c.Date.Month, c.Date.Day, bucket))
	issue.Data = map[string]interface{}{
		"word":     c.Word,
		"sentence": c.Sentence,
		"weight":   c.Weight,
		"years":    years,
	}
	return &issue
}

// DetectUpdateDate extracts date candidates and checks the selected one for age.
func DetectUpdateDate(pageURL, text string, now time.Time, policy DatePolicy) ([]model.DateCandidate, []model.Issue) {
	candidates := ExtractDates(text)

	selected, ok := SelectDate(candidates, policy)
	if !ok {
		return candidates, []model.Issue{
			model.NewIssue(pageURL, model.RuleNoUpdatedDate, model.SeverityError,
				"No date for when the statement was updated or reviewed"),
		}
	}

	if issue := AgeIssue(pageURL, selected, now); issue != nil {
		return candidates, []model.Issue{*issue}
	}
	return candidates, nil
}
