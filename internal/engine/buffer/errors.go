package buffer

import "errors"

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrClosed           = errors.New("buffer is closed")
	ErrTagExists        = errors.New("tag name already in use")
	ErrUnknownTag       = errors.New("tag does not belong to this buffer")
)
