package capture

import (
	"strings"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// Simplify reduces an archive to its HTML responses, in recorded order.
// Exchanges without a body, MIME type, positive size or status are skipped.
// An archive without an entries list is a caller error.
func Simplify(a *Archive, pageURL string) (model.SimplifiedCapture, error) {
	if a == nil || a.Entries == nil {
		return model.SimplifiedCapture{}, ErrNoEntries
	}

	simplified := model.SimplifiedCapture{
		URL:   pageURL,
		HTMLs: []model.HTMLExchange{},
	}

	index := 1
	for _, entry := range a.Entries {
		content := entry.Response.Content
		if content.Text == "" || content.MimeType == "" || content.Size <= 0 || entry.Response.Status == 0 {
			continue
		}

		if strings.Contains(content.MimeType, "html") {
			simplified.HTMLs = append(simplified.HTMLs, model.HTMLExchange{
				URL:     entry.Request.URL,
				Content: content.Text,
				Index:   index,
			})
		}
		index++
	}

	return simplified, nil
}

// FirstHTMLURL returns the request URL of the first HTML exchange, if any.
func FirstHTMLURL(a *Archive) string {
	s, err := Simplify(a, "")
	if err != nil || len(s.HTMLs) == 0 {
		return ""
	}
	return s.HTMLs[0].URL
}
