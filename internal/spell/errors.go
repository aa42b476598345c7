package spell

import "errors"

var (
	// ErrBufferClosed is returned when attaching to a closed buffer.
	ErrBufferClosed = errors.New("spell: buffer is closed")

	// ErrOutOfSync is the panic value when the adapter's region no longer
	// matches its buffer. It indicates a missed edit notification.
	ErrOutOfSync = errors.New("spell: region out of sync with buffer")
)
