package pages

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
	"github.com/agencykit/cms/domain"
	"github.com/agencykit/cms/sections"
	"github.com/agencykit/cms/seo"
)

// Page is the aggregate root tying together content blocks, sections, SEO
// metadata, and publishing state.
type Page struct {
	ID            uuid.UUID          `json:"id"`
	Title         string             `json:"title"`
	Slug          string             `json:"slug"`
	Content       []blocks.Block     `json:"content"`
	Sections      []sections.Section `json:"sections"`
	SEO           seo.Data           `json:"seo"`
	Status        domain.Status      `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	Author        string             `json:"author,omitempty"`
	Category      string             `json:"category,omitempty"`
	Tags          []string           `json:"tags,omitempty"`
	FeaturedImage string             `json:"featured_image,omitempty"`
	Excerpt       string             `json:"excerpt,omitempty"`
}

// Clone performs a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	copied := *p
	copied.Content = blocks.CloneBlocks(p.Content)
	copied.Sections = sections.CloneSections(p.Sections)
	copied.SEO = p.SEO.Clone()
	if p.Tags != nil {
		copied.Tags = append([]string(nil), p.Tags...)
	}
	return &copied
}

// ClonePages deep-copies a page slice.
func ClonePages(src []*Page) []*Page {
	if src == nil {
		return nil
	}
	out := make([]*Page, len(src))
	for i, p := range src {
		out[i] = p.Clone()
	}
	return out
}

// SiteData is the whole-site document persisted through the store. The CMS
// only owns the pages collection; every other top-level key in the document
// belongs to unrelated domains and round-trips untouched through Extra.
type SiteData struct {
	Pages []*Page
	Extra map[string]json.RawMessage
}

// Clone deep-copies the document.
func (d *SiteData) Clone() *SiteData {
	if d == nil {
		return nil
	}
	copied := &SiteData{Pages: ClonePages(d.Pages)}
	if d.Extra != nil {
		copied.Extra = make(map[string]json.RawMessage, len(d.Extra))
		for k, v := range d.Extra {
			copied.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return copied
}

// MarshalJSON flattens pages and the untouched foreign keys into one object.
func (d *SiteData) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.Extra)+1)
	for k, v := range d.Extra {
		out[k] = v
	}
	pages := d.Pages
	if pages == nil {
		pages = []*Page{}
	}
	encoded, err := json.Marshal(pages)
	if err != nil {
		return nil, err
	}
	out["pages"] = encoded
	return json.Marshal(out)
}

// UnmarshalJSON splits the pages collection out of the document and parks
// every other top-level key in Extra verbatim.
func (d *SiteData) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Pages = nil
	if encoded, ok := raw["pages"]; ok {
		if err := json.Unmarshal(encoded, &d.Pages); err != nil {
			return err
		}
		delete(raw, "pages")
	}
	d.Extra = raw
	return nil
}
