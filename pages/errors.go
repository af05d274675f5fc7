package pages

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrPageRequired   = errors.New("pages: page is required")
	ErrPageIDRequired = errors.New("pages: page id is required")
	ErrTitleRequired  = errors.New("pages: title is required")
	ErrPageNotFound   = errors.New("pages: page not found")
	ErrSEOInvalid     = errors.New("pages: seo metadata is invalid")
	ErrPersistFailed  = errors.New("pages: site document save failed")
	ErrStoreRequired  = errors.New("pages: store is required")
)

// NotFoundError reports a lookup miss for a specific page id.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("pages: page %s not found", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPageNotFound
}
