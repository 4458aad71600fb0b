package score

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// skippedPrefixes are hrefs that never lead to another page on the site.
var skippedPrefixes = []string{"#", "mailto:", "tel:", "javascript:", "data:"}

// LinkScorer picks the same-origin links worth visiting next
type LinkScorer struct{}

// NewLinkScorer creates a new link scorer
func NewLinkScorer() *LinkScorer {
	return &LinkScorer{}
}

// Origin returns scheme://host for a page URL.
func Origin(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page url %q: %w", pageURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid page url %q: missing scheme or host", pageURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// Score filters and rates the anchors of a page. Only links with precision
// above DefaultPrecision are returned, highest first; equal precisions keep
// document order. A later anchor to the same href overwrites the earlier
// precision.
func (s *LinkScorer) Score(pageURL string, anchors []model.Anchor) ([]model.ScoredLink, error) {
	origin, err := Origin(pageURL)
	if err != nil {
		return nil, err
	}

	candidates := NewCandidates()
	for _, a := range anchors {
		href, ok := resolveHref(origin, a.Href)
		if !ok {
			continue
		}

		text := strings.TrimSpace(a.Text)
		if !IsInterestingText(text) {
			continue
		}

		if precision := TextPrecision(text); precision > DefaultPrecision {
			candidates.Set(href, precision)
		}
	}

	return candidates.Sorted(), nil
}

// resolveHref applies the exclusion filters in order and makes root-relative
// hrefs absolute. It reports false for hrefs that must be skipped.
func resolveHref(origin, href string) (string, bool) {
	if href == "" {
		return "", false
	}
	if strings.HasSuffix(href, ".pdf") {
		return "", false
	}
	if strings.HasPrefix(href, "//") {
		return "", false
	}
	if strings.HasPrefix(href, "/") {
		href = origin + href
	}
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(href, prefix) {
			return "", false
		}
	}
	if !sameOrigin(origin, href) {
		return "", false
	}
	return href, true
}

// sameOrigin reports whether href starts with origin and the origin ends
// there, so "https://x.se.other.com" and "https://x.se:8443" do not match
// "https://x.se".
func sameOrigin(origin, href string) bool {
	if !strings.HasPrefix(href, origin) {
		return false
	}
	rest := href[len(origin):]
	return rest == "" || rest[0] == '/' || rest[0] == '?' || rest[0] == '#'
}

// Candidates is an insertion-ordered href -> precision map. Setting an
// existing href overwrites its precision but keeps its position.
type Candidates struct {
	order []string
	index map[string]float64
}

// NewCandidates returns an empty candidate map
func NewCandidates() *Candidates {
	return &Candidates{index: make(map[string]float64)}
}

// Set records a precision for href.
func (c *Candidates) Set(href string, precision float64) {
	if _, ok := c.index[href]; !ok {
		c.order = append(c.order, href)
	}
	c.index[href] = precision
}

// Merge adds links, skipping hrefs for which skip returns true, and re-sorts
// the map by precision.
func (c *Candidates) Merge(links []model.ScoredLink, skip func(href string) bool) {
	for _, l := range links {
		if skip != nil && skip(l.URL) {
			continue
		}
		c.Set(l.URL, l.Precision)
	}
	c.sort()
}

// Remove deletes href. Unknown hrefs are ignored.
func (c *Candidates) Remove(href string) {
	if _, ok := c.index[href]; !ok {
		return
	}
	delete(c.index, href)
	for i, h := range c.order {
		if h == href {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of candidates
func (c *Candidates) Len() int {
	return len(c.order)
}

// First returns the best candidate, or false when empty. Call after Merge.
func (c *Candidates) First() (model.ScoredLink, bool) {
	if len(c.order) == 0 {
		return model.ScoredLink{}, false
	}
	href := c.order[0]
	return model.ScoredLink{URL: href, Precision: c.index[href]}, true
}

// Sorted returns the candidates by precision, highest first.
func (c *Candidates) Sorted() []model.ScoredLink {
	c.sort()
	links := make([]model.ScoredLink, 0, len(c.order))
	for _, href := range c.order {
		links = append(links, model.ScoredLink{URL: href, Precision: c.index[href]})
	}
	return links
}

func (c *Candidates) sort() {
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.index[c.order[i]] > c.index[c.order[j]]
	})
}
