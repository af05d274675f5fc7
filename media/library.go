package media

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pkg/interfaces"
)

// SortField selects the catalog ordering criterion.
type SortField string

const (
	SortByName SortField = "name"
	SortByDate SortField = "date"
	SortBySize SortField = "size"
	SortByKind SortField = "kind"
)

// SortDir selects ascending or descending order.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Query narrows the catalog. Search matches the name or any tag,
// case-insensitively; Kind and Folder are exact matches when set.
type Query struct {
	Search string
	Kind   Kind
	Folder string
}

// Filter is a pure function over the supplied catalog slice. Items survive
// when they match the search term and every exact criterion.
func Filter(items []Item, q Query) []Item {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if q.Kind != "" && item.Kind != q.Kind {
			continue
		}
		if q.Folder != "" && item.Folder != q.Folder {
			continue
		}
		if search != "" && !matchesSearch(item, search) {
			continue
		}
		out = append(out, item.Clone())
	}
	return out
}

// Sort orders a catalog slice by the given field and direction. The input is
// not mutated; filter and sort compose by filtering first.
func Sort(items []Item, field SortField, dir SortDir) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	less := lessFunc(field)
	sort.SliceStable(out, func(i, j int) bool {
		if dir == SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Library is the in-memory media catalog with selection state. All returned
// items are clones; the catalog is only mutated through its methods.
type Library struct {
	mu       sync.RWMutex
	items    []Item
	selected map[uuid.UUID]struct{}
	logger   interfaces.Logger
}

// LibraryOption configures a Library at construction time.
type LibraryOption func(*Library)

// LibraryWithLogger attaches a logger to the library.
func LibraryWithLogger(logger interfaces.Logger) LibraryOption {
	return func(l *Library) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLibrary constructs a catalog seeded with the supplied items.
func NewLibrary(initial []Item, opts ...LibraryOption) *Library {
	l := &Library{
		selected: make(map[uuid.UUID]struct{}),
		logger:   logging.NoOp(),
	}
	for _, item := range initial {
		l.items = append(l.items, item.Clone())
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add inserts an item into the catalog.
func (l *Library) Add(item Item) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, item.Clone())
}

// Items returns a deep copy of the whole catalog in insertion order.
func (l *Library) Items() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Item, len(l.items))
	for i, item := range l.items {
		out[i] = item.Clone()
	}
	return out
}

// Find filters then sorts the catalog in one call.
func (l *Library) Find(q Query, field SortField, dir SortDir) []Item {
	return Sort(Filter(l.Items(), q), field, dir)
}

// Get returns a clone of the item with the given id.
func (l *Library) Get(id uuid.UUID) (Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	idx := l.indexOf(id)
	if idx < 0 {
		return Item{}, false
	}
	return l.items[idx].Clone(), true
}

// Edit applies the patch to the item with the given id. A missing id is a
// harmless no-op returning false.
func (l *Library) Edit(id uuid.UUID, patch Patch) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	item := &l.items[idx]
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Alt != nil {
		item.Alt = *patch.Alt
	}
	if patch.Caption != nil {
		item.Caption = *patch.Caption
	}
	if patch.Folder != nil {
		item.Folder = *patch.Folder
	}
	if patch.Tags != nil {
		item.Tags = dedupeTags(patch.Tags)
	}
	return true
}

// Remove deletes the item from the catalog and drops it from the selection.
// The catalog performs no referential cleanup against pages using the asset;
// callers own that. A second remove of the same id returns false.
func (l *Library) Remove(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.indexOf(id)
	if idx < 0 {
		return false
	}
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	delete(l.selected, id)
	l.logger.Debug("media item removed", "item_id", id)
	return true
}

// Select replaces the selection with the single given item.
func (l *Library) Select(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexOf(id) < 0 {
		return false
	}
	l.selected = map[uuid.UUID]struct{}{id: {}}
	return true
}

// Toggle flips the item's membership in the multi-selection set.
func (l *Library) Toggle(id uuid.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.indexOf(id) < 0 {
		return false
	}
	if _, ok := l.selected[id]; ok {
		delete(l.selected, id)
	} else {
		l.selected[id] = struct{}{}
	}
	return true
}

// ClearSelection empties the selection set.
func (l *Library) ClearSelection() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selected = make(map[uuid.UUID]struct{})
}

// SelectedIDs returns the selected ids in catalog order.
func (l *Library) SelectedIDs() []uuid.UUID {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(l.selected))
	for _, item := range l.items {
		if _, ok := l.selected[item.ID]; ok {
			out = append(out, item.ID)
		}
	}
	return out
}

func (l *Library) indexOf(id uuid.UUID) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func matchesSearch(item Item, search string) bool {
	if strings.Contains(strings.ToLower(item.Name), search) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func lessFunc(field SortField) func(a, b Item) bool {
	switch field {
	case SortByDate:
		return func(a, b Item) bool { return a.UploadedAt.Before(b.UploadedAt) }
	case SortBySize:
		return func(a, b Item) bool { return a.Size < b.Size }
	case SortByKind:
		return func(a, b Item) bool { return a.Kind < b.Kind }
	}
	return func(a, b Item) bool { return a.Name < b.Name }
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
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
