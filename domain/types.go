package domain

// Status represents lifecycle states for CMS entities.
type Status string

const (
	// StatusDraft indicates content still under preparation.
	StatusDraft Status = "draft"
	// StatusPublished identifies content available to consumers.
	StatusPublished Status = "published"
	// StatusArchived marks content that is retained for history but not publicly visible.
	StatusArchived Status = "archived"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// Choose returns the supplied status when recognised, falling back to draft.
func Choose(raw string) Status {
	s := Status(raw)
	if s.Valid() {
		return s
	}
	return StatusDraft
}
