package extract

import (
	"testing"

	"github.com/ppiankov/a11ystatement/internal/model"
)

func TestDetectCompliance(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantWord string
		wantRule string
	}{
		{
			name:     "fully compliant",
			text:     "Denna webbplats är helt förenlig med lagkraven.",
			wantWord: "helt förenlig",
		},
		{
			name:     "partly compliant",
			text:     "Webbplatsen är Delvis förenlig med lagen.",
			wantWord: "Delvis förenlig",
			wantRule: model.RuleCompatibleWordPartly,
		},
		{
			name:     "not compliant",
			text:     "Webbplatsen är inte förenlig.",
			wantWord: "inte förenlig",
			wantRule: model.RuleCompatibleWordNot,
		},
		{
			name:     "no wording",
			text:     "Välkommen till kommunen.",
			wantRule: model.RuleNoCompatibleWord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding, issues := DetectCompliance("https://example.se/", tt.text)

			if tt.wantWord == "" {
				if finding != nil {
					t.Errorf("Expected no finding, got %+v", finding)
				}
			} else if finding == nil || finding.Word != tt.wantWord {
				t.Errorf("Expected word %q, got %+v", tt.wantWord, finding)
			}

			if tt.wantRule == "" {
				if len(issues) != 0 {
					t.Errorf("Expected no issues, got %v", issues)
				}
				return
			}
			if len(issues) != 1 {
				t.Fatalf("Expected 1 issue, got %d", len(issues))
			}
			if issues[0].Rule != tt.wantRule {
				t.Errorf("Expected rule %s, got %s", tt.wantRule, issues[0].Rule)
			}
			if issues[0].Severity != model.SeverityError {
				t.Errorf("Expected error severity, got %s", issues[0].Severity)
			}
			if issues[0].Category != model.CategoryA11y {
				t.Errorf("Expected category a11y, got %s", issues[0].Category)
			}
		})
	}
}

func TestDetectCompliance_Sentence(t *testing.T) {
	text := "Inledning här. Sajten är delvis förenlig med lagen. Slut."

	finding, _ := DetectCompliance("https://example.se/", text)
	if finding == nil {
		t.Fatal("Expected finding")
	}
	if finding.Sentence != "Sajten är delvis förenlig med lagen." {
		t.Errorf("Unexpected sentence: %q", finding.Sentence)
	}
}

func TestDetectNotificationLink(t *testing.T) {
	tests := []struct {
		name      string
		anchors   []model.Anchor
		wantURL   string
		wantRules []string
	}{
		{
			name:    "short canonical url",
			anchors: []model.Anchor{{Href: NotificationShortURL, Text: "Anmäl till DIGG"}},
			wantURL: NotificationShortURL,
		},
		{
			name:      "long canonical url",
			anchors:   []model.Anchor{{Href: NotificationCanonicalURL, Text: "DIGG"}},
			wantURL:   NotificationCanonicalURL,
			wantRules: []string{model.RuleCanonicalNotificationLink},
		},
		{
			name:      "legacy url",
			anchors:   []model.Anchor{{Href: "https://digg.se/kunskap/anmal-bristande-tillganglighet", Text: "DIGG"}},
			wantURL:   "https://digg.se/kunskap/anmal-bristande-tillganglighet",
			wantRules: []string{model.RuleOldNotificationLink},
		},
		{
			name: "legacy then short",
			anchors: []model.Anchor{
				{Href: "https://www.digg.se/old/anmal-bristande-tillganglighet", Text: "gammal"},
				{Href: NotificationShortURL, Text: "ny"},
			},
			wantURL:   NotificationShortURL,
			wantRules: []string{model.RuleOldNotificationLink},
		},
		{
			name:      "no link",
			anchors:   []model.Anchor{{Href: "/kontakt", Text: "Kontakt"}},
			wantRules: []string{model.RuleNoNotificationLink},
		},
		{
			name:      "no anchors",
			wantRules: []string{model.RuleNoNotificationLink},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link, issues := DetectNotificationLink("https://example.se/", tt.anchors)

			if tt.wantURL == "" {
				if link != nil {
					t.Errorf("Expected no link, got %+v", link)
				}
			} else if link == nil || link.URL != tt.wantURL {
				t.Errorf("Expected link %s, got %+v", tt.wantURL, link)
			}

			if len(issues) != len(tt.wantRules) {
				t.Fatalf("Expected %d issues, got %d: %v", len(tt.wantRules), len(issues), issues)
			}
			for i, rule := range tt.wantRules {
				if issues[i].Rule != rule {
					t.Errorf("Issue %d: expected %s, got %s", i, rule, issues[i].Rule)
				}
			}
		})
	}
}

func TestDetectNotificationLink_Severities(t *testing.T) {
	_, issues := DetectNotificationLink("https://example.se/", []model.Anchor{
		{Href: NotificationCanonicalURL, Text: "a"},
		{Href: "http://www.digg.se/x/anmal-bristande-tillganglighet", Text: "b"},
	})

	if len(issues) != 2 {
		t.Fatalf("Expected 2 issues, got %d", len(issues))
	}
	if issues[0].Severity != model.SeverityInfo {
		t.Errorf("Expected info for canonical link, got %s", issues[0].Severity)
	}
	if issues[1].Severity != model.SeverityWarning {
		t.Errorf("Expected warning for legacy link, got %s", issues[1].Severity)
	}
	if issues[0].Data["url"] != NotificationCanonicalURL {
		t.Errorf("Expected url in issue data, got %v", issues[0].Data)
	}
}

func TestDetectBurdensomeAccommodation(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantWord string
	}{
		{"paragraph citation", "Vi åberopar 12 § i lagen om tillgänglighet.", "12 § i lagen"},
		{"without space", "Enligt 12§ lagen undantas filmerna.", "12§ lagen"},
		{"phrase", "Det vore en oskäligt betungande anpassning att åtgärda.", "oskäligt betungande anpassning"},
		{"absent", "Allt innehåll är tillgängligt.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding, issues := DetectBurdensomeAccommodation("https://example.se/", tt.text)

			if tt.wantWord == "" {
				if finding != nil || len(issues) != 0 {
					t.Errorf("Expected nothing, got %+v %v", finding, issues)
				}
				return
			}

			if finding == nil || finding.Word != tt.wantWord {
				t.Fatalf("Expected word %q, got %+v", tt.wantWord, finding)
			}
			if len(issues) != 1 || issues[0].Rule != model.RuleBurdensomeAccommodation {
				t.Fatalf("Expected burden issue, got %v", issues)
			}
			if issues[0].Data["word"] != tt.wantWord {
				t.Errorf("Expected issue data word %q, got %v", tt.wantWord, issues[0].Data["word"])
			}
		})
	}
}

func TestDetectEvaluationMethod(t *testing.T) {
	tests := []struct {
		text     string
		wantWord string
	}{
		{"Vi har gjort en självskattning av webbplatsen.", "självskattning"},
		{"Webbplatsen har granskats av Funka under våren.", "Funka"},
		{"Vi testar med Siteimprove varje vecka.", "Siteimprove"},
		{"Det funkar bra för de flesta.", ""},
		{"Ingen information.", ""},
	}

	for _, tt := range tests {
		finding, issues := DetectEvaluationMethod("https://example.se/", tt.text)

		if tt.wantWord == "" {
			if finding != nil {
				t.Errorf("%q: expected no finding, got %+v", tt.text, finding)
			}
			if len(issues) != 1 || issues[0].Rule != model.RuleNoEvaluationMethod {
				t.Errorf("%q: expected no-evaluation-method issue, got %v", tt.text, issues)
			}
			continue
		}

		if finding == nil || finding.Word != tt.wantWord {
			t.Errorf("%q: expected word %q, got %+v", tt.text, tt.wantWord, finding)
		}
		if len(issues) != 0 {
			t.Errorf("%q: expected no issues, got %v", tt.text, issues)
		}
	}
}
