// Package capture decodes recorded browser sessions (HAR) and reduces them to
// the HTML responses the analyzer needs.
package capture

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNoEntries is returned when a capture has no entries list at all.
var ErrNoEntries = errors.New("capture has no entries")

// Archive is the subset of a HAR log that the analyzer reads.
type Archive struct {
	Entries []Entry `json:"entries"`
}

// Entry is one recorded request/response exchange
type Entry struct {
	Request  Request  `json:"request"`
	Response Response `json:"response"`
}

// Request holds the requested URL
type Request struct {
	Method string `json:"method,omitempty"`
	URL    string `json:"url"`
}

// Response holds the status and body of an exchange
type Response struct {
	Status  int     `json:"status"`
	Content Content `json:"content"`
}

// Content is the response body as recorded
type Content struct {
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text,omitempty"`
}

// envelope accepts both {"log": {...}} and a bare log object.
type envelope struct {
	Log     *rawLog          `json:"log"`
	Entries *json.RawMessage `json:"entries"`
}

type rawLog struct {
	Entries *json.RawMessage `json:"entries"`
}

// Parse decodes a HAR document, unwrapping the optional "log" envelope.
func Parse(data []byte) (*Archive, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}

	raw := env.Entries
	if env.Log != nil {
		raw = env.Log.Entries
	}
	if raw == nil || string(*raw) == "null" {
		return nil, ErrNoEntries
	}

	var entries []Entry
	if err := json.Unmarshal(*raw, &entries); err != nil {
		return nil, fmt.Errorf("decode capture entries: %w", err)
	}

	return &Archive{Entries: entries}, nil
}

// Marshal encodes the archive inside a "log" envelope, the way HAR files are
// written to disk.
func (a *Archive) Marshal() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"log": map[string]interface{}{
			"version": "1.2",
			"entries": a.Entries,
		},
	})
}

// Record builds a single-entry archive for a response fetched outside a
// browser session.
func Record(url string, status int, mimeType, body string) *Archive {
	return &Archive{
		Entries: []Entry{{
			Request: Request{Method: "GET", URL: url},
			Response: Response{
				Status: status,
				Content: Content{
					Size:     int64(len(body)),
					MimeType: mimeType,
					Text:     body,
				},
			},
		}},
	}
}
