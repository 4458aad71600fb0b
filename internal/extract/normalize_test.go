package extract

import (
	"strings"
	"testing"
)

const samplePage = `<html>
<head><title>Tillgänglighetsredogörelse | Exempel kommun</title></head>
<body>
<nav>Meny Start Nyheter</nav>
<h1>Tillgäng` + "\u00ad" + `lighetsredogörelse</h1>
<p>Rad ett
	Rad    två</p>
<script>var tracking = true;</script>
<p>Läs mer på <a href="/om">Om oss</a> eller sök.</p>
<form><input value="fråga"><button>Sök</button></form>
</body>
</html>`

func TestNormalizeText_StripsChrome(t *testing.T) {
	page, err := ParsePage(samplePage)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	text := page.Text()

	for _, unwanted := range []string{"Meny", "tracking", "Om oss", "Sök", "\u00ad", "\n", "\t", "  "} {
		if strings.Contains(text, unwanted) {
			t.Errorf("Expected %q to be removed, got %q", unwanted, text)
		}
	}

	for _, wanted := range []string{"Tillgänglighetsredogörelse", "Rad ett Rad två", "Läs mer på"} {
		if !strings.Contains(text, wanted) {
			t.Errorf("Expected text to contain %q, got %q", wanted, text)
		}
	}

	if text != strings.TrimSpace(text) {
		t.Errorf("Expected trimmed text, got %q", text)
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	page, err := ParsePage(samplePage)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	once := page.Text()
	if twice := CollapseText(once); twice != once {
		t.Errorf("Expected normalization to be idempotent:\n%q\n%q", once, twice)
	}
}

func TestNormalizeText_LeavesDocumentIntact(t *testing.T) {
	page, err := ParsePage(samplePage)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	anchors := page.Anchors()
	if len(anchors) != 1 {
		t.Fatalf("Expected anchors to survive normalization, got %d", len(anchors))
	}
	if anchors[0].Href != "/om" || anchors[0].Text != "Om oss" {
		t.Errorf("Unexpected anchor %+v", anchors[0])
	}
}

func TestNormalizeText_EmptyBody(t *testing.T) {
	page, err := ParsePage("")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page.Text() != "" {
		t.Errorf("Expected empty text, got %q", page.Text())
	}
	if page.Heading() != "" || page.Title() != "" {
		t.Error("Expected empty heading and title")
	}
}

func TestCollapseText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  a\nb\tc  ", "a b c"},
		{"a\r\nb", "a b"},
		{"för\u00adenlig", "förenlig"},
		{"a     b", "a b"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CollapseText(tt.in); got != tt.want {
			t.Errorf("CollapseText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
