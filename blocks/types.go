package blocks

import (
	"maps"

	"github.com/google/uuid"
)

// Type enumerates the closed set of block variants the editor understands.
type Type string

const (
	TypeHeading   Type = "heading"
	TypeParagraph Type = "paragraph"
	TypeImage     Type = "image"
	TypeVideo     Type = "video"
	TypeCode      Type = "code"
	TypeList      Type = "list"
	TypeQuote     Type = "quote"
	TypeTable     Type = "table"
	TypeButton    Type = "button"
	TypeSpacer    Type = "spacer"
	TypeDivider   Type = "divider"
)

// Types lists every supported block variant in palette order.
func Types() []Type {
	return []Type{
		TypeHeading,
		TypeParagraph,
		TypeImage,
		TypeVideo,
		TypeCode,
		TypeList,
		TypeQuote,
		TypeTable,
		TypeButton,
		TypeSpacer,
		TypeDivider,
	}
}

// Valid reports whether the type belongs to the supported variant set.
func (t Type) Valid() bool {
	switch t {
	case TypeHeading, TypeParagraph, TypeImage, TypeVideo, TypeCode,
		TypeList, TypeQuote, TypeTable, TypeButton, TypeSpacer, TypeDivider:
		return true
	}
	return false
}

// Block is the smallest addressable content unit inside a section or page.
// Content carries the variant-specific payload; Styles is an open map that
// carries no behavioural meaning for the editing core.
type Block struct {
	ID      uuid.UUID         `json:"id"`
	Type    Type              `json:"type"`
	Content map[string]any    `json:"content"`
	Styles  map[string]string `json:"styles,omitempty"`
	Order   int               `json:"order"`
}

// Patch captures a partial block update. Only content and style keys can be
// patched; identity, type, and order are managed by the builder.
type Patch struct {
	Content map[string]any
	Styles  map[string]string
}

// DefaultContent returns the initial payload for a block of the given type.
// Unknown types get an empty payload so future variants degrade gracefully.
func DefaultContent(t Type) map[string]any {
	switch t {
	case TypeHeading:
		return map[string]any{"text": "New Heading", "level": 2}
	case TypeParagraph:
		return map[string]any{"text": "New paragraph text."}
	case TypeImage:
		return map[string]any{"src": "", "alt": "", "caption": ""}
	case TypeVideo:
		return map[string]any{"src": "", "caption": "", "autoplay": false}
	case TypeCode:
		return map[string]any{"code": "", "language": "plaintext"}
	case TypeList:
		return map[string]any{"items": []any{"First item"}, "ordered": false}
	case TypeQuote:
		return map[string]any{"text": "", "author": ""}
	case TypeTable:
		return map[string]any{
			"headers": []any{"Column 1", "Column 2"},
			"rows":    []any{[]any{"", ""}},
		}
	case TypeButton:
		return map[string]any{"text": "Click me", "url": "#", "style": "primary"}
	case TypeSpacer:
		return map[string]any{"height": 40}
	case TypeDivider:
		return map[string]any{}
	}
	return map[string]any{}
}

// DefaultStyles returns the initial style map for a block of the given type.
func DefaultStyles(t Type) map[string]string {
	switch t {
	case TypeHeading:
		return map[string]string{"margin": "0 0 16px"}
	case TypeParagraph:
		return map[string]string{"margin": "0 0 12px", "lineHeight": "1.6"}
	case TypeImage, TypeVideo:
		return map[string]string{"margin": "0 0 24px", "maxWidth": "100%"}
	case TypeButton:
		return map[string]string{"margin": "0 0 16px"}
	case TypeDivider:
		return map[string]string{"margin": "24px 0"}
	}
	return map[string]string{}
}

// Clone performs a deep copy of the block so callers can hand out values
// without exposing internal state to mutation.
func (b Block) Clone() Block {
	copied := b
	copied.Content = cloneContent(b.Content)
	copied.Styles = maps.Clone(b.Styles)
	return copied
}

// CloneBlocks deep-copies a block slice.
func CloneBlocks(src []Block) []Block {
	if src == nil {
		return nil
	}
	out := make([]Block, len(src))
	for i, b := range src {
		out[i] = b.Clone()
	}
	return out
}

// Merge applies the patch to the block, touching only content and style keys
// present in the patch. Merge is shallow at the key level: a patched key
// replaces the previous value wholesale.
func (b *Block) Merge(patch Patch) {
	if len(patch.Content) > 0 {
		if b.Content == nil {
			b.Content = make(map[string]any, len(patch.Content))
		}
		for k, v := range patch.Content {
			b.Content[k] = cloneValue(v)
		}
	}
	if len(patch.Styles) > 0 {
		if b.Styles == nil {
			b.Styles = make(map[string]string, len(patch.Styles))
		}
		maps.Copy(b.Styles, patch.Styles)
	}
}

func cloneContent(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		return cloneContent(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
