package seo

import (
	"regexp"
	"strings"
)

// Readability approximates the Flesch reading-ease metric for raw content.
type Readability struct {
	Score       float64  `json:"score"`
	Level       string   `json:"level"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Readability levels mapped from the score via fixed thresholds.
const (
	LevelVeryEasy      = "very-easy"
	LevelEasy          = "easy"
	LevelFair          = "fair"
	LevelDifficult     = "difficult"
	LevelVeryDifficult = "very-difficult"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// AnalyzeReadability computes the approximate Flesch reading-ease score.
// Words are whitespace-split tokens, sentences are [.!?]+ delimited runs,
// and syllables are approximated as vowel runs. Empty or near-empty content
// yields a defined minimum instead of dividing by zero.
func AnalyzeReadability(content string) Readability {
	words := strings.Fields(content)
	wordCount := len(words)
	sentenceCount := countSentences(content)

	if wordCount == 0 || sentenceCount == 0 {
		return Readability{
			Score:       0,
			Level:       LevelVeryDifficult,
			Suggestions: []string{"Add more content to improve readability analysis."},
		}
	}

	syllableCount := 0
	for _, word := range words {
		syllableCount += countSyllables(word)
	}

	wordsPerSentence := float64(wordCount) / float64(sentenceCount)
	syllablesPerWord := float64(syllableCount) / float64(wordCount)

	score := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var suggestions []string
	if wordsPerSentence > 20 {
		suggestions = append(suggestions, "Use shorter sentences to improve readability.")
	}
	if syllablesPerWord > 2 {
		suggestions = append(suggestions, "Use simpler words with fewer syllables.")
	}
	if wordCount < 300 {
		suggestions = append(suggestions, "Add more content to improve readability analysis.")
	}

	return Readability{
		Score:       score,
		Level:       levelFor(score),
		Suggestions: suggestions,
	}
}

func levelFor(score float64) string {
	switch {
	case score >= 90:
		return LevelVeryEasy
	case score >= 80:
		return LevelEasy
	case score >= 70:
		return LevelFair
	case score >= 60:
		return LevelDifficult
	}
	return LevelVeryDifficult
}

func countSentences(content string) int {
	count := 0
	for _, segment := range sentenceSplit.Split(content, -1) {
		if strings.TrimSpace(segment) != "" {
			count++
		}
	}
	return count
}

// countSyllables approximates syllables as runs of vowels, minimum one.
func countSyllables(word string) int {
	count := 0
	inRun := false
	for _, r := range strings.ToLower(word) {
		if isVowel(r) {
			if !inRun {
				count++
				inRun = true
			}
			continue
		}
		inRun = false
	}
	if count == 0 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
