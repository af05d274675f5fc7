package media

import "errors"

var (
	ErrFileTooLarge    = errors.New("media: file exceeds the maximum upload size")
	ErrTypeNotAccepted = errors.New("media: file type not accepted")
	ErrUploadFailed    = errors.New("media: blob store rejected the upload")
)
