package blocks

import (
	"github.com/google/uuid"

	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pkg/interfaces"
)

// Direction identifies which way a block moves relative to its siblings.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Builder edits an ordered sequence of blocks. It owns the editing session
// state (the currently selected block) so callers never thread UI state
// through the data layer. Mutations that reference a missing id are
// harmless no-ops reported through the boolean return.
//
// After every structural change the surviving blocks' Order fields form a
// dense 0..n-1 sequence.
type Builder struct {
	blocks   []Block
	selected uuid.UUID
	id       func() uuid.UUID
	logger   interfaces.Logger
}

// BuilderOption configures a Builder at construction time.
type BuilderOption func(*Builder)

// WithIDGenerator overrides the generator used for new block ids.
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

// NewBuilder constructs a builder seeded with the supplied blocks. The input
// is cloned and renumbered so the builder never aliases caller state.
func NewBuilder(initial []Block, opts ...BuilderOption) *Builder {
	b := &Builder{
		blocks: CloneBlocks(initial),
		id:     uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.renumber()
	return b
}

// Add appends a new block of the given type with default content and styles.
// It always succeeds; unknown types produce an empty payload the preview
// renders as a placeholder.
func (b *Builder) Add(t Type) Block {
	block := Block{
		ID:      b.id(),
		Type:    t,
		Content: DefaultContent(t),
		Styles:  DefaultStyles(t),
		Order:   len(b.blocks),
	}
	b.blocks = append(b.blocks, block)
	b.logger.Debug("block added", "block_id", block.ID, "type", string(t))
	return block.Clone()
}

// Update merges the patch into the block with the given id. A missing id is
// a recoverable no-op and returns false.
func (b *Builder) Update(id uuid.UUID, patch Patch) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	b.blocks[idx].Merge(patch)
	return true
}

// Delete removes the block with the given id, clearing the selection when it
// pointed at the removed block. Surviving blocks are renumbered. Deleting an
// absent id is a no-op; a second delete of the same id returns false.
func (b *Builder) Delete(id uuid.UUID) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	if b.selected == id {
		b.selected = uuid.Nil
	}
	b.blocks = append(b.blocks[:idx], b.blocks[idx+1:]...)
	b.renumber()
	b.logger.Debug("block deleted", "block_id", id)
	return true
}

// Move swaps the block with its adjacent sibling in the given direction and
// renumbers every block. Moving the first block up or the last block down is
// a boundary no-op returning false.
func (b *Builder) Move(id uuid.UUID, dir Direction) bool {
	idx := b.indexOf(id)
	if idx < 0 {
		return false
	}
	target := idx
	switch dir {
	case MoveUp:
		target = idx - 1
	case MoveDown:
		target = idx + 1
	default:
		return false
	}
	if target < 0 || target >= len(b.blocks) {
		return false
	}
	b.blocks[idx], b.blocks[target] = b.blocks[target], b.blocks[idx]
	b.renumber()
	return true
}

// Select marks the block with the given id as the current editing target.
// Selecting an absent id clears the selection and returns false.
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

// Selected returns the currently selected block, if any.
func (b *Builder) Selected() (Block, bool) {
	idx := b.indexOf(b.selected)
	if idx < 0 {
		return Block{}, false
	}
	return b.blocks[idx].Clone(), true
}

// Get returns a clone of the block with the given id.
func (b *Builder) Get(id uuid.UUID) (Block, bool) {
	idx := b.indexOf(id)
	if idx < 0 {
		return Block{}, false
	}
	return b.blocks[idx].Clone(), true
}

// Blocks returns a deep copy of the current block sequence in order.
func (b *Builder) Blocks() []Block {
	return CloneBlocks(b.blocks)
}

// Len reports the number of blocks in the sequence.
func (b *Builder) Len() int {
	return len(b.blocks)
}

func (b *Builder) indexOf(id uuid.UUID) int {
	if id == uuid.Nil {
		return -1
	}
	for i := range b.blocks {
		if b.blocks[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) renumber() {
	for i := range b.blocks {
		b.blocks[i].Order = i
	}
}
