package seo_test

import (
	"math"
	"strings"
	"testing"

	"github.com/agencykit/cms/seo"
)

func TestAnalyzeReadabilityEmptyContent(t *testing.T) {
	got := seo.AnalyzeReadability("")
	if got.Score != 0 {
		t.Fatalf("score = %v, want 0", got.Score)
	}
	if math.IsNaN(got.Score) || math.IsInf(got.Score, 0) {
		t.Fatal("score must stay finite")
	}
	if got.Level != seo.LevelVeryDifficult {
		t.Fatalf("level = %q", got.Level)
	}
	if len(got.Suggestions) != 1 {
		t.Fatalf("suggestions = %v", got.Suggestions)
	}
}

func TestAnalyzeReadabilityNoSentenceTerminator(t *testing.T) {
	// Words but no ., !, or ? still counts as one sentence segment.
	got := seo.AnalyzeReadability("just a few words with no punctuation")
	if got.Score <= 0 {
		t.Fatalf("score = %v, want > 0", got.Score)
	}
}

func TestAnalyzeReadabilitySimpleProse(t *testing.T) {
	got := seo.AnalyzeReadability("The cat sat. The dog ran. We had fun.")
	if got.Score < 90 {
		t.Fatalf("short simple sentences should score very easy, got %v", got.Score)
	}
	if got.Level != seo.LevelVeryEasy {
		t.Fatalf("level = %q", got.Level)
	}
}

func TestAnalyzeReadabilityLongSentenceSuggestion(t *testing.T) {
	sentence := strings.Repeat("word ", 30) + "."
	got := seo.AnalyzeReadability(sentence)
	found := false
	for _, s := range got.Suggestions {
		if strings.Contains(s, "shorter sentences") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected long-sentence suggestion, got %v", got.Suggestions)
	}
}

func TestAnalyzeReadabilityScoreClamped(t *testing.T) {
	complex := strings.Repeat("extraordinarily incomprehensible organizational ", 20) + "."
	got := seo.AnalyzeReadability(complex)
	if got.Score < 0 || got.Score > 100 {
		t.Fatalf("score out of range: %v", got.Score)
	}
}
