package seo_test

import (
	"strings"
	"testing"

	"github.com/agencykit/cms/seo"
)

func fullCreditData() seo.Data {
	return seo.Data{
		Title:         strings.Repeat("t", 41),
		Description:   strings.Repeat("d", 140),
		Keywords:      []string{"models", "agency", "casting"},
		CanonicalURL:  "https://example.com/about",
		OGTitle:       "About Us",
		OGDescription: "Who we are and what we do.",
		SchemaMarkup:  map[string]any{"@type": "Organization"},
	}
}

func TestScoreFullCredit(t *testing.T) {
	content := strings.Repeat("word ", 80)
	if got := seo.Score(fullCreditData(), content); got != 100 {
		t.Fatalf("score = %d, want 100", got)
	}
}

func TestScoreEmptyEverything(t *testing.T) {
	if got := seo.Score(seo.Data{}, ""); got != 0 {
		t.Fatalf("score = %d, want 0", got)
	}
}

func TestScorePartialCredit(t *testing.T) {
	data := seo.Data{
		Title:       "Hi",                    // present but below the 30 char band
		Description: strings.Repeat("x", 50), // present but below the 120 char band
	}
	// 10 + 10 out of 100 = 20.
	if got := seo.Score(data, ""); got != 20 {
		t.Fatalf("score = %d, want 20", got)
	}
}

func TestScoreTitleBandEdges(t *testing.T) {
	base := fullCreditData()
	content := strings.Repeat("word ", 80)

	base.Title = strings.Repeat("t", 30)
	if got := seo.Score(base, content); got != 100 {
		t.Fatalf("30 char title should earn full credit, score = %d", got)
	}

	base.Title = strings.Repeat("t", 61)
	// Title drops from 20 to 10: 90/100.
	if got := seo.Score(base, content); got != 90 {
		t.Fatalf("61 char title score = %d, want 90", got)
	}
}

func TestScoreContentBands(t *testing.T) {
	data := fullCreditData()

	// 150..299 chars earns 10 of 15: (95)/100.
	partial := strings.Repeat("a", 200)
	if got := seo.Score(data, partial); got != 95 {
		t.Fatalf("partial content score = %d, want 95", got)
	}
	// Below 150 earns nothing: 85/100.
	if got := seo.Score(data, "short"); got != 85 {
		t.Fatalf("short content score = %d, want 85", got)
	}
}

func TestScoreEmptySchemaMapStillCounts(t *testing.T) {
	data := fullCreditData()
	data.SchemaMarkup = map[string]any{}
	content := strings.Repeat("word ", 80)
	if got := seo.Score(data, content); got != 100 {
		t.Fatalf("empty but non-nil schema markup must count, score = %d", got)
	}
}
