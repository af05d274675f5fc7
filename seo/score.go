package seo

import (
	"math"
	"unicode/utf8"
)

// Scoring bands. Each criterion always contributes its maximum to the
// denominator, so the score is comparable across pages regardless of which
// fields are filled in.
const (
	titleMin       = 30
	titleMax       = 60
	descriptionMin = 120
	descriptionMax = 160
	keywordsMin    = 3
	keywordsMax    = 10
	contentFull    = 300
	contentPartial = 150
)

// Score computes the 0-100 SEO heuristic for the metadata and raw content.
//
// Criterion           max  full credit                 partial credit
// title                20  length in [30,60]           10 if present
// description          20  length in [120,160]         10 if present
// keywords             15  count in [3,10]              8 if any
// content length       15  >= 300 chars                10 if >= 150
// open graph           10  both og title+description    5 if one
// canonical url        10  present                      0
// schema markup        10  present                      0
func Score(data Data, content string) int {
	earned := 0
	maxPossible := 0

	maxPossible += 20
	switch titleLen := utf8.RuneCountInString(data.Title); {
	case titleLen >= titleMin && titleLen <= titleMax:
		earned += 20
	case titleLen > 0:
		earned += 10
	}

	maxPossible += 20
	switch descLen := utf8.RuneCountInString(data.Description); {
	case descLen >= descriptionMin && descLen <= descriptionMax:
		earned += 20
	case descLen > 0:
		earned += 10
	}

	maxPossible += 15
	switch count := len(data.Keywords); {
	case count >= keywordsMin && count <= keywordsMax:
		earned += 15
	case count > 0:
		earned += 8
	}

	maxPossible += 15
	switch contentLen := utf8.RuneCountInString(content); {
	case contentLen >= contentFull:
		earned += 15
	case contentLen >= contentPartial:
		earned += 10
	}

	maxPossible += 10
	switch {
	case data.OGTitle != "" && data.OGDescription != "":
		earned += 10
	case data.OGTitle != "" || data.OGDescription != "":
		earned += 5
	}

	maxPossible += 10
	if data.CanonicalURL != "" {
		earned += 10
	}

	maxPossible += 10
	if data.SchemaMarkup != nil {
		earned += 10
	}

	return int(math.Round(float64(earned) / float64(maxPossible) * 100))
}
