package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/a11ystatement/internal/model"
)

// Renderer writes reports in the configured format
type Renderer struct {
	format string
}

// NewRenderer creates a renderer for "json" or "yaml"
func NewRenderer(format string) (*Renderer, error) {
	switch format {
	case "json", "yaml":
		return &Renderer{format: format}, nil
	case "":
		return &Renderer{format: "json"}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// Ext returns the file extension for the format
func (r *Renderer) Ext() string {
	if r.format == "yaml" {
		return ".yaml"
	}
	return ".json"
}

// Render encodes v to w
func (r *Renderer) Render(w io.Writer, v interface{}) error {
	if r.format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteFile renders v to path, creating parent directories
func (r *Renderer) WriteFile(path string, v interface{}) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, v); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// WriteGroup writes one group summary to dir and returns the file path
func (r *Renderer) WriteGroup(dir string, g *model.GroupSummary) (string, error) {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(g.Group, "_"), "._-")
	if name == "" {
		name = "group"
	}
	path := filepath.Join(dir, name+r.Ext())
	return path, r.WriteFile(path, g)
}

// RenderOverview prints a short human-readable summary of a group
func RenderOverview(w io.Writer, g *model.GroupSummary) {
	fmt.Fprintf(w, "%s (%s)\n", g.Group, g.StartURL)
	if g.StatementFound {
		fmt.Fprintf(w, "  ✓ Statement: %s\n", g.StatementURL)
	} else {
		fmt.Fprintln(w, "  ✗ Statement: not found")
	}
	fmt.Fprintf(w, "  Visited:   %d pages\n", len(g.Visited))

	counts := map[model.Severity]int{}
	for _, issue := range g.Issues() {
		counts[issue.Severity]++
	}
	fmt.Fprintf(w, "  Issues:    %d critical, %d error, %d warning, %d info\n",
		counts[model.SeverityCritical],
		counts[model.SeverityError],
		counts[model.SeverityWarning],
		counts[model.SeverityInfo])

	for _, issue := range g.Issues() {
		if issue.Severity.Rank() >= model.SeverityError.Rank() {
			fmt.Fprintf(w, "    [%s] %s: %s\n", issue.Severity, issue.Rule, issue.Text)
		}
	}
}
