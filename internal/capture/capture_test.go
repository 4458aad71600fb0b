package capture

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHAR = `{
  "log": {
    "version": "1.2",
    "entries": [
      {"request": {"url": "https://example.se/"},
       "response": {"status": 200, "content": {"size": 120, "mimeType": "text/html; charset=utf-8", "text": "<html><body>Start</body></html>"}}},
      {"request": {"url": "https://example.se/app.js"},
       "response": {"status": 200, "content": {"size": 40, "mimeType": "application/javascript", "text": "var a = 1;"}}},
      {"request": {"url": "https://example.se/empty"},
       "response": {"status": 204, "content": {"size": 0, "mimeType": "text/html", "text": ""}}},
      {"request": {"url": "https://example.se/frame"},
       "response": {"status": 200, "content": {"size": 80, "mimeType": "application/xhtml+xml", "text": "<html><body>Frame</body></html>"}}}
    ]
  }
}`

func TestParse_UnwrapsLogEnvelope(t *testing.T) {
	archive, err := Parse([]byte(sampleHAR))
	require.NoError(t, err)
	assert.Len(t, archive.Entries, 4)
	assert.Equal(t, "https://example.se/", archive.Entries[0].Request.URL)
}

func TestParse_BareLog(t *testing.T) {
	archive, err := Parse([]byte(`{"entries": []}`))
	require.NoError(t, err)
	assert.NotNil(t, archive.Entries)
	assert.Empty(t, archive.Entries)
}

func TestParse_MissingEntries(t *testing.T) {
	_, err := Parse([]byte(`{"log": {"version": "1.2"}}`))
	assert.ErrorIs(t, err, ErrNoEntries)

	_, err = Parse([]byte(`{"entries": null}`))
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not json`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoEntries)
}

func TestSimplify_KeepsOnlyHTMLInOrder(t *testing.T) {
	archive, err := Parse([]byte(sampleHAR))
	require.NoError(t, err)

	s, err := Simplify(archive, "https://example.se/")
	require.NoError(t, err)

	assert.Equal(t, "https://example.se/", s.URL)
	require.Len(t, s.HTMLs, 2)
	assert.Equal(t, "https://example.se/", s.HTMLs[0].URL)
	assert.Equal(t, 1, s.HTMLs[0].Index)
	// the script still occupies ordinal 2; the empty exchange is skipped entirely
	assert.Equal(t, "https://example.se/frame", s.HTMLs[1].URL)
	assert.Equal(t, 3, s.HTMLs[1].Index)
}

func TestSimplify_SkipsIncompleteExchanges(t *testing.T) {
	archive := &Archive{Entries: []Entry{
		{Request: Request{URL: "a"}, Response: Response{Status: 0, Content: Content{Size: 10, MimeType: "text/html", Text: "x"}}},
		{Request: Request{URL: "b"}, Response: Response{Status: 200, Content: Content{Size: 10, MimeType: "", Text: "x"}}},
		{Request: Request{URL: "c"}, Response: Response{Status: 200, Content: Content{Size: -1, MimeType: "text/html", Text: "x"}}},
		{Request: Request{URL: "d"}, Response: Response{Status: 200, Content: Content{Size: 10, MimeType: "text/html", Text: ""}}},
	}}

	s, err := Simplify(archive, "u")
	require.NoError(t, err)
	assert.Empty(t, s.HTMLs)
}

func TestSimplify_NilArchive(t *testing.T) {
	_, err := Simplify(nil, "u")
	assert.ErrorIs(t, err, ErrNoEntries)

	_, err = Simplify(&Archive{}, "u")
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestArchive_MarshalRoundTrip(t *testing.T) {
	archive, err := Parse([]byte(sampleHAR))
	require.NoError(t, err)

	data, err := archive.Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, archive.Entries, again.Entries)
}

func TestIndex_LoadDirAndCapture(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "start.har"), []byte(sampleHAR), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nohtml.har"), []byte(`{"log":{"entries":[]}}`), 0o644))

	idx := NewIndex(time.Minute)
	urls, err := idx.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.se/"}, urls)
	assert.Equal(t, 1, idx.Len())

	archive, err := idx.Capture(context.Background(), "https://example.se")
	require.NoError(t, err)
	assert.Len(t, archive.Entries, 4)

	_, err = idx.Capture(context.Background(), "https://example.se/missing")
	assert.Error(t, err)
}

func TestIndex_LoadDirRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.har"), []byte(`{"log":{}}`), 0o644))

	_, err := NewIndex(time.Minute).LoadDir(dir)
	assert.ErrorIs(t, err, ErrNoEntries)
}
