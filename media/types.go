package media

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a catalog asset, derived from its MIME prefix at upload
// time. Anything unrecognised is filed as a document.
type Kind string

const (
	KindImage    Kind = "image"
	KindVideo    Kind = "video"
	KindDocument Kind = "document"
	KindAudio    Kind = "audio"
)

// KindFromMime maps a MIME type onto a catalog kind.
func KindFromMime(mimeType string) Kind {
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindVideo
	case strings.HasPrefix(mimeType, "audio/"):
		return KindAudio
	}
	return KindDocument
}

// Dimensions records pixel dimensions for visual assets.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Item is a single asset in the media catalog.
type Item struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	Kind       Kind           `json:"kind"`
	URL        string         `json:"url"`
	Thumbnail  string         `json:"thumbnail,omitempty"`
	Size       int64          `json:"size"`
	Dimensions *Dimensions    `json:"dimensions,omitempty"`
	Alt        string         `json:"alt,omitempty"`
	Caption    string         `json:"caption,omitempty"`
	Tags       []string       `json:"tags"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Folder     string         `json:"folder,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Patch captures a partial item edit. Nil fields are left untouched; Tags
// replaces the tag list wholesale when present.
type Patch struct {
	Name    *string
	Alt     *string
	Caption *string
	Folder  *string
	Tags    []string
}

// Clone performs a deep copy of the item.
func (i Item) Clone() Item {
	copied := i
	if i.Tags != nil {
		copied.Tags = append([]string(nil), i.Tags...)
	}
	if i.Dimensions != nil {
		d := *i.Dimensions
		copied.Dimensions = &d
	}
	copied.Metadata = maps.Clone(i.Metadata)
	return copied
}
