package textregion

import "errors"

// ErrOutOfRange is wrapped by the panic value of an operation that addresses
// offsets outside the region.
var ErrOutOfRange = errors.New("textregion: offset out of range")
