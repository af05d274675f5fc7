package interfaces

import (
	"context"
	"io"
	"time"
)

// Notification carries the payload handed to the notification collaborator
// when a page transitions to published.
type Notification struct {
	To       string
	Subject  string
	HTMLBody string
}

// NotificationReceipt identifies a delivered notification.
type NotificationReceipt struct {
	ID string
}

// Notifier sends notifications on behalf of publish workflows. The editing
// core treats delivery as best effort; failures are reported, never fatal.
type Notifier interface {
	Send(ctx context.Context, msg Notification) (NotificationReceipt, error)
}

// UploadConstraints bound what the blob store accepts for a single file.
type UploadConstraints struct {
	MaxSize       int64
	AcceptedTypes []string
}

// StoredObject describes the durable result of a blob upload.
type StoredObject struct {
	URL      string
	Size     int64
	MimeType string
}

// BlobStore persists raw file bytes and returns a durable URL. The reference
// deployment keeps objects in memory; production backends wrap object storage.
type BlobStore interface {
	Store(ctx context.Context, name string, mimeType string, r io.Reader, constraints UploadConstraints) (StoredObject, error)
}

// PerformanceMetrics captures the probe's view of a rendered page.
type PerformanceMetrics struct {
	LoadTime        time.Duration
	ImagesOptimized bool
	MobileFriendly  bool
	HTTPSEnabled    bool
}

// PerformanceProbe measures page delivery characteristics for SEO analysis.
// No real measurement is required; implementations may be static stubs.
type PerformanceProbe interface {
	Measure(ctx context.Context, url string) (PerformanceMetrics, error)
}
