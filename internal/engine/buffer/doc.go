// Package buffer provides the text buffer that spell checking runs against.
//
// A Buffer holds UTF-8 text addressed by byte offsets together with a tag
// table. Tags mark spans of text (a misspelling decoration, a region that
// must not be spell checked, ...) and move with the text they cover as the
// buffer is edited.
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	// Create a tag and apply it to "World"
//	tag, _ := buf.CreateTag("highlight")
//	buf.ApplyTag(tag, 7, 12)
//
//	// Edits shift tagged spans
//	buf.Insert(0, ">> ")
//	buf.TagRanges(tag) // [[10:15)]
//
// Observers:
//
// Components that mirror buffer state register an Observer. Observers are
// called synchronously, after the change has been applied and outside the
// buffer lock, so they may read the buffer from within a notification.
//
// Liveness:
//
// Close marks a buffer as destroyed. Deferred work that holds on to a buffer
// must check Closed before touching it; edits to a closed buffer fail with
// ErrClosed.
//
// Thread Safety:
//
// All Buffer methods are safe for concurrent use. Observers run outside the
// lock, so notification order is only guaranteed for changes made from a
// single goroutine. A buffer with observers attached, such as a spell
// adapter mirroring its length, must be edited from one goroutine.
package buffer
