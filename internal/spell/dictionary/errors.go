package dictionary

import "errors"

var (
	// ErrWatcherClosed is returned when using a closed watcher.
	ErrWatcherClosed = errors.New("dictionary watcher closed")

	// ErrNoSources is returned when a dictionary is opened without files.
	ErrNoSources = errors.New("no dictionary sources")
)
