package sections

import (
	"fmt"
	"sort"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pkg/interfaces"
	"github.com/agencykit/cms/seo"
)

// Category groups templates in the template picker.
type Category string

const (
	CategoryLanding   Category = "landing"
	CategoryAbout     Category = "about"
	CategoryServices  Category = "services"
	CategoryPortfolio Category = "portfolio"
	CategoryContact   Category = "contact"
	CategoryBlog      Category = "blog"
)

// Valid reports whether the category is one of the known groups.
func (c Category) Valid() bool {
	switch c {
	case CategoryLanding, CategoryAbout, CategoryServices, CategoryPortfolio, CategoryContact, CategoryBlog:
		return true
	}
	return false
}

// Template is a canned page layout used to seed a page. Applying a template
// replaces the target's content and sections wholesale; there is no merge for
// either. SEO is the exception: it is a patch shallow-merged over the page's
// existing metadata, template values winning on overlapping keys.
type Template struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Thumbnail   string         `json:"thumbnail,omitempty"`
	Category    Category       `json:"category"`
	Content     []blocks.Block `json:"content,omitempty"`
	Sections    []Section      `json:"sections"`
	SEO         seo.Patch      `json:"seo,omitempty"`
}

// Clone performs a deep copy of the template.
func (t Template) Clone() Template {
	copied := t
	copied.Content = blocks.CloneBlocks(t.Content)
	copied.Sections = CloneSections(t.Sections)
	copied.SEO = t.SEO.Clone()
	return copied
}

// Validate checks the template's metadata and structure. Structural problems
// (nil or duplicate ids, gapped orders, payloads that break their variant
// schema) are collected into a single TemplateValidationError so a malformed
// template is rejected at registration time, never at apply time.
func (t Template) Validate() error {
	if err := validation.ValidateStruct(&t,
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Category, validation.Required, validation.By(func(any) error {
			if !t.Category.Valid() {
				return fmt.Errorf("unknown category %q", t.Category)
			}
			return nil
		})),
	); err != nil {
		return &TemplateValidationError{TemplateName: t.Name, Problems: []string{err.Error()}}
	}

	var problems []string
	if t.ID == uuid.Nil {
		problems = append(problems, "template id is nil")
	}

	seenSections := map[uuid.UUID]struct{}{}
	seenBlocks := map[uuid.UUID]struct{}{}
	for i, section := range t.Sections {
		if section.ID == uuid.Nil {
			problems = append(problems, fmt.Sprintf("section %d: id is nil", i))
		} else if _, dup := seenSections[section.ID]; dup {
			problems = append(problems, fmt.Sprintf("section %d: duplicate id %s", i, section.ID))
		} else {
			seenSections[section.ID] = struct{}{}
		}
		if section.Order != i {
			problems = append(problems, fmt.Sprintf("section %d: order %d breaks dense sequence", i, section.Order))
		}
		if !section.Type.Valid() {
			problems = append(problems, fmt.Sprintf("section %d: unknown type %q", i, section.Type))
		}
		for j, block := range section.Content {
			if block.ID == uuid.Nil {
				problems = append(problems, fmt.Sprintf("section %d block %d: id is nil", i, j))
			} else if _, dup := seenBlocks[block.ID]; dup {
				problems = append(problems, fmt.Sprintf("section %d block %d: duplicate id %s", i, j, block.ID))
			} else {
				seenBlocks[block.ID] = struct{}{}
			}
			if block.Order != j {
				problems = append(problems, fmt.Sprintf("section %d block %d: order %d breaks dense sequence", i, j, block.Order))
			}
			if err := blocks.ValidateContent(block.Type, block.Content); err != nil {
				problems = append(problems, fmt.Sprintf("section %d block %d: %v", i, j, err))
			}
		}
	}

	if len(problems) > 0 {
		return &TemplateValidationError{TemplateName: t.Name, Problems: problems}
	}
	return nil
}

// Registry holds the templates available to the page builder. Registration
// validates structure; lookups return deep copies.
type Registry struct {
	mu        sync.RWMutex
	templates map[uuid.UUID]Template
	logger    interfaces.Logger
}

// RegistryOption configures a Registry at construction time.
type RegistryOption func(*Registry)

// RegistryWithLogger attaches a logger to the registry.
func RegistryWithLogger(logger interfaces.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry constructs an empty template registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		templates: make(map[uuid.UUID]Template),
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register validates and stores a template. Re-registering an existing id
// fails with ErrTemplateExists.
func (r *Registry) Register(tpl Template) error {
	if err := tpl.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[tpl.ID]; exists {
		return fmt.Errorf("%w: %s", ErrTemplateExists, tpl.ID)
	}
	r.templates[tpl.ID] = tpl.Clone()
	r.logger.Info("template registered", "template_id", tpl.ID, "name", tpl.Name)
	return nil
}

// Get returns a deep copy of the template with the given id.
func (r *Registry) Get(id uuid.UUID) (Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return tpl.Clone(), nil
}

// List returns deep copies of every registered template sorted by name.
func (r *Registry) List() []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.templates))
	for _, tpl := range r.templates {
		out = append(out, tpl.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ListByCategory returns templates in the given category sorted by name.
func (r *Registry) ListByCategory(category Category) []Template {
	all := r.List()
	out := all[:0]
	for _, tpl := range all {
		if tpl.Category == category {
			out = append(out, tpl)
		}
	}
	return out
}
