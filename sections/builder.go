package sections

import (
	"maps"

	"github.com/google/uuid"

	"github.com/agencykit/cms/blocks"
	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pkg/interfaces"
)

// Builder edits the ordered section list of a page. It mirrors the block
// builder's CRUD/move contract one level up, and composes a nested block
// builder for per-section content edits. Missing ids are harmless no-ops.
//
// After every structural change the surviving sections' Order fields form a
// dense 0..n-1 sequence.
type Builder struct {
	sections []Section
	selected uuid.UUID
	id       func() uuid.UUID
	logger   interfaces.Logger
}

// BuilderOption configures a Builder at construction time.
type BuilderOption func(*Builder)

// WithIDGenerator overrides the generator used for new section and block ids.
func WithIDGenerator(generator func() uuid.UUID) BuilderOption {
	return func(b *Builder) {
		if generator != nil {
			b.id = generator
		}
	}
}

// WithLogger attaches a logger to the builder.
func WithLogger(logger interfaces.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder constructs a builder seeded with the supplied sections. The
// input is cloned and renumbered so the builder never aliases caller state.
func NewBuilder(initial []Section, opts ...BuilderOption) *Builder {
	b := &Builder{
		sections: CloneSections(initial),
		id:       uuid.New,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.renumber()
	return b
}

// Add appends a new section of the given type seeded with its archetype's
// default name, styles, and starter blocks. New sections start visible.
func (b *Builder) Add(t Type) Section {
	section := Section{
		ID:        b.id(),
		Name:      DefaultName(t),
		Type:      t,
		Content:   DefaultBlocks(t, b.id),
		Styles:    DefaultStyles(t),
		Order:     len(b.sections),
		IsVisible: true,
	}
	b.sections = append(b.sections, section)
	b.logger.Debug("section added", "section_id", section.ID, "type", string(t))
	return section.Clone()
}

// Update applies the patch to the section with the given id. A missing id is
// a recoverable no-op and returns false.
func (b *Builder) Update(id uuid.UUID, patch Patch) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	section := &b.sections[idx]
	if patch.Name != nil {
		section.Name = *patch.Name
	}
	if len(patch.Styles) > 0 {
		if section.Styles == nil {
			section.Styles = make(map[string]string, len(patch.Styles))
		}
		maps.Copy(section.Styles, patch.Styles)
	}
	if patch.IsVisible != nil {
		section.IsVisible = *patch.IsVisible
	}
	return true
}

// Delete removes the section with the given id and renumbers the survivors.
// A second delete of the same id returns false.
func (b *Builder) Delete(id uuid.UUID) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	if b.selected == id {
		b.selected = uuid.Nil
	}
	b.sections = append(b.sections[:idx], b.sections[idx+1:]...)
	b.renumber()
	b.logger.Debug("section deleted", "section_id", id)
	return true
}

// Move swaps the section with its adjacent sibling in the given direction
// and renumbers every section. Boundary moves are no-ops returning false.
func (b *Builder) Move(id uuid.UUID, dir blocks.Direction) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	target := idx
	switch dir {
	case blocks.MoveUp:
		target = idx - 1
	case blocks.MoveDown:
		target = idx + 1
	default:
		return false
	}
	if target < 0 || target >= len(b.sections) {
		return false
	}
	b.sections[idx], b.sections[target] = b.sections[target], b.sections[idx]
	b.renumber()
	return true
}

// Select marks the section with the given id as the current editing target.
func (b *Builder) Select(id uuid.UUID) bool {
	if b.indexOf(id) < 0 {
		b.selected = uuid.Nil
		return false
	}
	b.selected = id
	return true
}

// ClearSelection drops the current editing target.
func (b *Builder) ClearSelection() {
	b.selected = uuid.Nil
}

// Selected returns the currently selected section, if any.
func (b *Builder) Selected() (Section, bool) {
	idx := b.indexOf(b.selected)
	if idx < 0 {
		return Section{}, false
	}
	return b.sections[idx].Clone(), true
}

// EditBlocks runs fn against a block builder bound to the section's content
// and writes the result back, exactly like the nested content editor in the
// admin surface. Returns false when the section id is unknown.
func (b *Builder) EditBlocks(id uuid.UUID, fn func(*blocks.Builder)) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	nested := blocks.NewBuilder(b.sections[idx].Content,
		blocks.WithIDGenerator(b.id),
		blocks.WithLogger(b.logger),
	)
	fn(nested)
	b.sections[idx].Content = nested.Blocks()
	return true
}

// ApplyTemplate replaces the entire section list with a deep copy of the
// template's sections. The operation is destructive by design; later edits
// never reach back into the template.
func (b *Builder) ApplyTemplate(tpl Template) {
	b.sections = CloneSections(tpl.Sections)
	b.selected = uuid.Nil
	b.renumber()
	b.logger.Debug("template applied", "template_id", tpl.ID, "sections", len(b.sections))
}

// Get returns a clone of the section with the given id.
func (b *Builder) Get(id uuid.UUID) (Section, bool) {
	idx := b.indexOf(id)
	if idx < 0 {
		return Section{}, false
	}
	return b.sections[idx].Clone(), true
}

// Sections returns a deep copy of the current section list in order.
func (b *Builder) Sections() []Section {
	return CloneSections(b.sections)
}

// Len reports the number of sections in the list.
func (b *Builder) Len() int {
	return len(b.sections)
}

func (b *Builder) indexOf(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	for i := range b.sections {
		if b.sections[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) renumber() {
	for i := range b.sections {
		b.sections[i].Order = i
	}
}
