package media

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agencykit/cms/internal/logging"
	"github.com/agencykit/cms/pkg/interfaces"
)

// UploadState tracks a single file through the upload state machine:
// queued -> uploading -> committed | rejected.
type UploadState string

const (
	UploadQueued    UploadState = "queued"
	UploadUploading UploadState = "uploading"
	UploadCommitted UploadState = "committed"
	UploadRejected  UploadState = "rejected"
)

// File is the raw input handed to the uploader.
type File struct {
	Name     string
	MimeType string
	Size     int64
	Data     io.Reader
}

// Upload is the per-file outcome. Progress runs 0-100 and reaches 100
// before the upload commits; rejected uploads carry the rejection in Err.
type Upload struct {
	ID       uuid.UUID
	FileName string
	MimeType string
	Size     int64
	State    UploadState
	Progress int
	Err      error
	Item     *Item
}

// ProgressFunc observes per-file progress transitions.
type ProgressFunc func(Upload)

// Uploader pushes files through the blob store and commits the resulting
// items into the library. One rejected file never aborts the batch.
type Uploader struct {
	store       interfaces.BlobStore
	library     *Library
	constraints interfaces.UploadConstraints
	id          func() uuid.UUID
	now         func() time.Time
	progress    ProgressFunc
	logger      interfaces.Logger
}

// UploaderOption configures an Uploader at construction time.
type UploaderOption func(*Uploader)

// WithConstraints bounds what the uploader accepts per file.
func WithConstraints(constraints interfaces.UploadConstraints) UploaderOption {
	return func(u *Uploader) {
		u.constraints = constraints
	}
}

// WithIDGenerator overrides the generator used for upload and item ids.
func WithIDGenerator(generator func() uuid.UUID) UploaderOption {
	return func(u *Uploader) {
		if generator != nil {
			u.id = generator
		}
	}
}

// WithClock overrides the clock used to stamp committed items.
func WithClock(clock func() time.Time) UploaderOption {
	return func(u *Uploader) {
		if clock != nil {
			u.now = clock
		}
	}
}

// WithProgress registers a callback invoked on every state or progress
// transition.
func WithProgress(fn ProgressFunc) UploaderOption {
	return func(u *Uploader) {
		u.progress = fn
	}
}

// WithLogger attaches a logger to the uploader.
func WithLogger(logger interfaces.Logger) UploaderOption {
	return func(u *Uploader) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUploader constructs an uploader committing into the given library.
func NewUploader(store interfaces.BlobStore, library *Library, opts ...UploaderOption) *Uploader {
	u := &Uploader{
		store:   store,
		library: library,
		id:      uuid.New,
		now:     time.Now,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UploadBatch processes the files in order. Each file advances through the
// state machine independently; oversize or unacceptable files are rejected
// and the batch continues with the next file. Cancelling the context rejects
// every file not yet processed.
func (u *Uploader) UploadBatch(ctx context.Context, files []File) []Upload {
	uploads := make([]Upload, len(files))
	for i, file := range files {
		uploads[i] = Upload{
			ID:       u.id(),
			FileName: file.Name,
			MimeType: file.MimeType,
			Size:     file.Size,
			State:    UploadQueued,
		}
		u.report(uploads[i])
	}

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			uploads[i].State = UploadRejected
			uploads[i].Err = err
			u.report(uploads[i])
			continue
		}
		u.uploadOne(ctx, file, &uploads[i])
	}
	return uploads
}

func (u *Uploader) uploadOne(ctx context.Context, file File, up *Upload) {
	if err := u.validate(file); err != nil {
		up.State = UploadRejected
		up.Err = err
		u.logger.Warn("upload rejected", "file", file.Name, "error", err)
		u.report(*up)
		return
	}

	up.State = UploadUploading
	up.Progress = 0
	u.report(*up)

	reader := file.Data
	if file.Size > 0 {
		reader = &progressReader{
			inner: file.Data,
			total: file.Size,
			onProgress: func(percent int) {
				up.Progress = percent
				u.report(*up)
			},
		}
	}

	stored, err := u.store.Store(ctx, file.Name, file.MimeType, reader, u.constraints)
	if err != nil {
		up.State = UploadRejected
		up.Err = fmt.Errorf("%w: %v", ErrUploadFailed, err)
		u.logger.Error("upload failed", "file", file.Name, "error", err)
		u.report(*up)
		return
	}

	item := Item{
		ID:         u.id(),
		Name:       file.Name,
		Kind:       KindFromMime(stored.MimeType),
		URL:        stored.URL,
		Size:       stored.Size,
		Tags:       []string{},
		UploadedAt: u.now(),
		Folder:     "uploads",
	}
	u.library.Add(item)

	up.Progress = 100
	up.State = UploadCommitted
	up.Item = &item
	u.logger.Info("upload committed", "file", file.Name, "item_id", item.ID)
	u.report(*up)
}

func (u *Uploader) validate(file File) error {
	if max := u.constraints.MaxSize; max > 0 && file.Size > max {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrFileTooLarge, file.Name, file.Size, max)
	}
	if accepted := u.constraints.AcceptedTypes; len(accepted) > 0 {
		ok := false
		for _, prefix := range accepted {
			if strings.HasPrefix(file.MimeType, prefix) {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrTypeNotAccepted, file.MimeType)
		}
	}
	return nil
}

func (u *Uploader) report(up Upload) {
	if u.progress != nil {
		u.progress(up)
	}
}

// progressReader reports percentage milestones as the blob store consumes
// the file.
type progressReader struct {
	inner      io.Reader
	total      int64
	read       int64
	last       int
	onProgress func(percent int)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.inner.Read(p)
	if n > 0 {
		r.read += int64(n)
		percent := int(r.read * 100 / r.total)
		if percent > 100 {
			percent = 100
		}
		if percent != r.last {
			r.last = percent
			r.onProgress(percent)
		}
	}
	return n, err
}
