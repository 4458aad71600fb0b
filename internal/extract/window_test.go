package extract

import (
	"strings"
	"testing"
)

func TestSentenceAround(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		match string
		want  string
	}{
		{
			name:  "middle sentence",
			text:  "Första meningen. Sajten är delvis förenlig med lagen. Sista.",
			match: "delvis förenlig",
			want:  "Sajten är delvis förenlig med lagen.",
		},
		{
			name:  "case insensitive",
			text:  "Webbplatsen är HELT FÖRENLIG med lagen.",
			match: "helt förenlig",
			want:  "Webbplatsen är HELT FÖRENLIG med lagen.",
		},
		{
			name:  "no terminating period",
			text:  "Sajten är delvis förenlig",
			match: "delvis förenlig",
			want:  "delvis förenlig",
		},
		{
			name:  "not found",
			text:  "Ingenting här.",
			match: "förenlig",
			want:  "förenlig",
		},
		{
			name:  "skips lower case lead",
			text:  "Rubrik. och sedan Detta är helt förenlig.",
			match: "helt förenlig",
			want:  "Detta är helt förenlig.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SentenceAround(tt.text, tt.match); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSentenceAround_LongSentence(t *testing.T) {
	text := "A" + strings.Repeat("x", 150) + " delvis förenlig " + strings.Repeat("y", 150) + "."

	got := SentenceAround(text, "delvis förenlig")

	if !strings.HasPrefix(got, "...") {
		t.Errorf("Expected leading ellipsis, got %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Expected trailing ellipsis, got %q", got)
	}
	if !strings.Contains(got, "delvis förenlig") {
		t.Errorf("Expected match inside window, got %q", got)
	}
	if n := len([]rune(got)); n > 2*sentenceRadius+len([]rune("delvis förenlig"))+2*len(ellipsis) {
		t.Errorf("Window too long: %d runes", n)
	}
}

func TestSentenceAround_LongSentenceNearStart(t *testing.T) {
	text := "Vi är delvis förenlig " + strings.Repeat("y", 250) + "."

	got := SentenceAround(text, "delvis förenlig")

	if strings.HasPrefix(got, "...") {
		t.Errorf("Expected no leading ellipsis when the sentence start is kept, got %q", got[:20])
	}
	if !strings.HasPrefix(got, "Vi är") {
		t.Errorf("Expected sentence start, got %q", got[:20])
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("Expected trailing ellipsis")
	}
}

func TestWordAround(t *testing.T) {
	tests := []struct {
		text  string
		match string
		want  string
	}{
		{"Redogörelsen uppdaterades 2020", "uppdater", "uppdaterades"},
		{"Bedömningen gjordes", "bedömning", "Bedömningen"},
		{"inget", "saknas", "saknas"},
		{strings.Repeat("x", 20) + "ab" + strings.Repeat("y", 20), "ab", strings.Repeat("x", 10) + "ab" + strings.Repeat("y", 10)},
	}

	for _, tt := range tests {
		if got := WordAround(tt.text, tt.match); got != tt.want {
			t.Errorf("WordAround(%q, %q) = %q, want %q", tt.text, tt.match, got, tt.want)
		}
	}
}

func TestWordAt_MultiByte(t *testing.T) {
	text := "Åtgärden granskades i år"
	start := strings.Index(text, "gransk")

	if got := WordAt(text, start, start+len("gransk")); got != "granskades" {
		t.Errorf("Expected 'granskades', got %q", got)
	}
}
