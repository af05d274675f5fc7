package seo

import (
	"maps"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Robots enumerates the four index/follow directive combinations.
type Robots string

const (
	RobotsIndexFollow     Robots = "index, follow"
	RobotsIndexNoFollow   Robots = "index, nofollow"
	RobotsNoIndexFollow   Robots = "noindex, follow"
	RobotsNoIndexNoFollow Robots = "noindex, nofollow"
)

// Valid reports whether the directive is one of the four combinations.
func (r Robots) Valid() bool {
	switch r {
	case RobotsIndexFollow, RobotsIndexNoFollow, RobotsNoIndexFollow, RobotsNoIndexNoFollow:
		return true
	}
	return false
}

// Data carries the per-page SEO metadata. No field is required; analysis
// operates on whatever is present, treating empty values as absent.
type Data struct {
	Title              string            `json:"title,omitempty"`
	Description        string            `json:"description,omitempty"`
	Keywords           []string          `json:"keywords,omitempty"`
	CanonicalURL       string            `json:"canonical_url,omitempty"`
	OGTitle            string            `json:"og_title,omitempty"`
	OGDescription      string            `json:"og_description,omitempty"`
	OGImage            string            `json:"og_image,omitempty"`
	TwitterTitle       string            `json:"twitter_title,omitempty"`
	TwitterDescription string            `json:"twitter_description,omitempty"`
	TwitterImage       string            `json:"twitter_image,omitempty"`
	SchemaMarkup       map[string]any    `json:"schema_markup,omitempty"`
	Robots             Robots            `json:"robots,omitempty"`
	Hreflang           map[string]string `json:"hreflang,omitempty"`
}

// Default returns the SEO metadata seeded onto a new page.
func Default() Data {
	return Data{Robots: RobotsIndexFollow}
}

// Patch captures a partial SEO update. Nil fields are left untouched; merge
// only ever touches the known keys below, so typo'd keys cannot slip in.
type Patch struct {
	Title              *string           `json:"title,omitempty"`
	Description        *string           `json:"description,omitempty"`
	Keywords           []string          `json:"keywords,omitempty"`
	CanonicalURL       *string           `json:"canonical_url,omitempty"`
	OGTitle            *string           `json:"og_title,omitempty"`
	OGDescription      *string           `json:"og_description,omitempty"`
	OGImage            *string           `json:"og_image,omitempty"`
	TwitterTitle       *string           `json:"twitter_title,omitempty"`
	TwitterDescription *string           `json:"twitter_description,omitempty"`
	TwitterImage       *string           `json:"twitter_image,omitempty"`
	SchemaMarkup       map[string]any    `json:"schema_markup,omitempty"`
	Robots             *Robots           `json:"robots,omitempty"`
	Hreflang           map[string]string `json:"hreflang,omitempty"`
}

// Clone performs a deep copy of the patch.
func (p Patch) Clone() Patch {
	out := p
	out.Title = clonePtr(p.Title)
	out.Description = clonePtr(p.Description)
	if p.Keywords != nil {
		out.Keywords = append([]string(nil), p.Keywords...)
	}
	out.CanonicalURL = clonePtr(p.CanonicalURL)
	out.OGTitle = clonePtr(p.OGTitle)
	out.OGDescription = clonePtr(p.OGDescription)
	out.OGImage = clonePtr(p.OGImage)
	out.TwitterTitle = clonePtr(p.TwitterTitle)
	out.TwitterDescription = clonePtr(p.TwitterDescription)
	out.TwitterImage = clonePtr(p.TwitterImage)
	out.SchemaMarkup = cloneSchema(p.SchemaMarkup)
	out.Robots = clonePtr(p.Robots)
	out.Hreflang = maps.Clone(p.Hreflang)
	return out
}

func clonePtr[T any](src *T) *T {
	if src == nil {
		return nil
	}
	copied := *src
	return &copied
}

// Merge applies the patch on top of the base, shallowly: a present patch
// field replaces the base value wholesale, absent fields survive untouched.
func Merge(base Data, patch Patch) Data {
	out := base.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Keywords != nil {
		out.Keywords = dedupe(patch.Keywords)
	}
	if patch.CanonicalURL != nil {
		out.CanonicalURL = *patch.CanonicalURL
	}
	if patch.OGTitle != nil {
		out.OGTitle = *patch.OGTitle
	}
	if patch.OGDescription != nil {
		out.OGDescription = *patch.OGDescription
	}
	if patch.OGImage != nil {
		out.OGImage = *patch.OGImage
	}
	if patch.TwitterTitle != nil {
		out.TwitterTitle = *patch.TwitterTitle
	}
	if patch.TwitterDescription != nil {
		out.TwitterDescription = *patch.TwitterDescription
	}
	if patch.TwitterImage != nil {
		out.TwitterImage = *patch.TwitterImage
	}
	if patch.SchemaMarkup != nil {
		out.SchemaMarkup = maps.Clone(patch.SchemaMarkup)
	}
	if patch.Robots != nil {
		out.Robots = *patch.Robots
	}
	if patch.Hreflang != nil {
		out.Hreflang = maps.Clone(patch.Hreflang)
	}
	return out
}

// AddKeyword appends a keyword unless an identical entry already exists.
// Insertion order is preserved; returns false for duplicates and blanks.
func (d *Data) AddKeyword(keyword string) bool {
	trimmed := strings.TrimSpace(keyword)
	if trimmed == "" {
		return false
	}
	for _, existing := range d.Keywords {
		if existing == trimmed {
			return false
		}
	}
	d.Keywords = append(d.Keywords, trimmed)
	return true
}

// RemoveKeyword drops a keyword; absent entries are a no-op returning false.
func (d *Data) RemoveKeyword(keyword string) bool {
	for i, existing := range d.Keywords {
		if existing == keyword {
			d.Keywords = append(d.Keywords[:i], d.Keywords[i+1:]...)
			return true
		}
	}
	return false
}

// Clone performs a deep copy of the metadata.
func (d Data) Clone() Data {
	out := d
	if d.Keywords != nil {
		out.Keywords = append([]string(nil), d.Keywords...)
	}
	out.SchemaMarkup = cloneSchema(d.SchemaMarkup)
	out.Hreflang = maps.Clone(d.Hreflang)
	return out
}

// Validate rejects malformed URL fields. Empty fields are fine; the data
// model has no required fields.
func (d Data) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.CanonicalURL, is.URL),
		validation.Field(&d.OGImage, is.URL),
		validation.Field(&d.TwitterImage, is.URL),
	)
}

func dedupe(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		trimmed := strings.TrimSpace(k)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}

func cloneSchema(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		switch typed := v.(type) {
		case map[string]any:
			out[k] = cloneSchema(typed)
		case []any:
			copied := make([]any, len(typed))
			copy(copied, typed)
			out[k] = copied
		default:
			out[k] = v
		}
	}
	return out
}
