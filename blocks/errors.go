package blocks

import "errors"

var (
	ErrTypeUnknown    = errors.New("blocks: unknown block type")
	ErrContentInvalid = errors.New("blocks: content does not match variant schema")
)
