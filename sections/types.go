package sections

import (
	"maps"

	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
)

// Type enumerates the supported section archetypes.
type Type string

const (
	TypeHero         Type = "hero"
	TypeContent      Type = "content"
	TypeGallery      Type = "gallery"
	TypeTestimonials Type = "testimonials"
	TypeContact      Type = "contact"
	TypeCustom       Type = "custom"
)

// Valid reports whether the type belongs to the supported archetype set.
func (t Type) Valid() bool {
	switch t {
	case TypeHero, TypeContent, TypeGallery, TypeTestimonials, TypeContact, TypeCustom:
		return true
	}
	return false
}

// Section is a named, typed, ordered container of blocks within a page.
// A block belongs to exactly one section; the builder clones on every
// boundary crossing to keep that ownership exclusive.
type Section struct {
	ID        uuid.UUID         `json:"id"`
	Name      string            `json:"name"`
	Type      Type              `json:"type"`
	Content   []blocks.Block    `json:"content"`
	Styles    map[string]string `json:"styles,omitempty"`
	Order     int               `json:"order"`
	IsVisible bool              `json:"is_visible"`
}

// Patch captures a partial section update. Nil fields are left untouched.
type Patch struct {
	Name      *string
	Styles    map[string]string
	IsVisible *bool
}

// DefaultName returns the display name seeded for a new section.
func DefaultName(t Type) string {
	switch t {
	case TypeHero:
		return "Hero Section"
	case TypeContent:
		return "Content Section"
	case TypeGallery:
		return "Gallery Section"
	case TypeTestimonials:
		return "Testimonials Section"
	case TypeContact:
		return "Contact Section"
	}
	return "Custom Section"
}

// DefaultStyles returns the initial style map for a section archetype.
func DefaultStyles(t Type) map[string]string {
	switch t {
	case TypeHero:
		return map[string]string{
			"backgroundColor": "#1a1a2e",
			"padding":         "80px 24px",
			"textAlign":       "center",
		}
	case TypeGallery:
		return map[string]string{"padding": "48px 24px"}
	case TypeTestimonials:
		return map[string]string{
			"backgroundColor": "#f7f7f9",
			"padding":         "48px 24px",
		}
	case TypeContact:
		return map[string]string{"padding": "48px 24px", "textAlign": "center"}
	}
	return map[string]string{"padding": "32px 24px"}
}

// DefaultBlocks seeds the starter blocks for a section archetype. Block ids
// come from the supplied generator so sessions stay deterministic in tests.
func DefaultBlocks(t Type, id func() uuid.UUID) []blocks.Block {
	build := func(bt blocks.Type, content map[string]any, order int) blocks.Block {
		block := blocks.Block{
			ID:      id(),
			Type:    bt,
			Content: blocks.DefaultContent(bt),
			Styles:  blocks.DefaultStyles(bt),
			Order:   order,
		}
		block.Merge(blocks.Patch{Content: content})
		return block
	}

	switch t {
	case TypeHero:
		return []blocks.Block{
			build(blocks.TypeHeading, map[string]any{"text": "Welcome", "level": 1}, 0),
			build(blocks.TypeParagraph, map[string]any{"text": "Introduce your agency in one sentence."}, 1),
			build(blocks.TypeButton, map[string]any{"text": "Get in touch", "url": "/contact"}, 2),
		}
	case TypeContent:
		return []blocks.Block{
			build(blocks.TypeParagraph, nil, 0),
		}
	case TypeGallery:
		return []blocks.Block{
			build(blocks.TypeImage, nil, 0),
		}
	case TypeTestimonials:
		return []blocks.Block{
			build(blocks.TypeQuote, map[string]any{"text": "What clients say.", "author": ""}, 0),
		}
	case TypeContact:
		return []blocks.Block{
			build(blocks.TypeHeading, map[string]any{"text": "Contact us", "level": 2}, 0),
			build(blocks.TypeParagraph, map[string]any{"text": "Tell visitors how to reach you."}, 1),
		}
	}
	return nil
}

// Clone performs a deep copy of the section and its blocks.
func (s Section) Clone() Section {
	copied := s
	copied.Content = blocks.CloneBlocks(s.Content)
	copied.Styles = maps.Clone(s.Styles)
	return copied
}

// CloneSections deep-copies a section slice.
func CloneSections(src []Section) []Section {
	if src == nil {
		return nil
	}
	out := make([]Section, len(src))
	for i, s := range src {
		out[i] = s.Clone()
	}
	return out
}
