package buffer

import (
	"bytes"
	"io"
	"slices"
	"sync"
	"unicode/utf8"
)

// Buffer holds editable text and its tag table.
// All methods are thread-safe, but observers are notified after the lock is
// released. Edits to a buffer with observers must come from one goroutine,
// or observers may see changes out of order.
type Buffer struct {
	mu        sync.RWMutex
	text      []byte
	tags      []*Tag
	cursor    ByteOffset
	observers []*observerEntry
	closed    bool
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string) *Buffer {
	return &Buffer{text: []byte(s)}
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &Buffer{text: data}, nil
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.text)
}

// TextRange returns text in the given byte range.
// An invalid range yields the empty string.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if start < 0 || start > end || end > len(b.text) {
		return ""
	}
	return string(b.text[start:end])
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// RuneAt returns the rune starting at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.text) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(b.text[offset:])
}

// RuneBefore returns the rune ending at the given byte offset.
// Returns utf8.RuneError and size 0 if there is none.
func (b *Buffer) RuneBefore(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset <= 0 || offset > len(b.text) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeLastRune(b.text[:offset])
}

// OffsetToPoint converts a byte offset to line/column.
// Offsets past the end are clamped.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = max(0, min(offset, len(b.text)))
	prefix := b.text[:offset]
	line := bytes.Count(prefix, []byte{'\n'})
	return Point{Line: line, Column: offset - (bytes.LastIndexByte(prefix, '\n') + 1)}
}

// Cursor returns the insertion cursor offset.
func (b *Buffer) Cursor() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor
}

// Write Operations

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0, ErrClosed
	}
	if offset < 0 || offset > len(b.text) {
		b.mu.Unlock()
		return 0, ErrOffsetOutOfRange
	}
	if text == "" {
		b.mu.Unlock()
		return offset, nil
	}

	b.text = slices.Insert(b.text, offset, []byte(text)...)
	for _, tag := range b.tags {
		tag.spans.Insert(offset, len(text), false)
	}
	if b.cursor >= offset {
		b.cursor += len(text)
	}
	observers := b.observerList()
	b.mu.Unlock()

	for _, o := range observers {
		o.TextInserted(offset, len(text))
	}
	return offset + len(text), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if start < 0 || start > end || end > len(b.text) {
		b.mu.Unlock()
		return ErrRangeInvalid
	}
	if start == end {
		b.mu.Unlock()
		return nil
	}

	b.text = slices.Delete(b.text, start, end)
	for _, tag := range b.tags {
		tag.spans.Remove(start, end-start)
	}
	switch {
	case b.cursor >= end:
		b.cursor -= end - start
	case b.cursor > start:
		b.cursor = start
	}
	observers := b.observerList()
	b.mu.Unlock()

	for _, o := range observers {
		o.TextDeleted(start, end-start)
	}
	return nil
}

// Replace replaces text in the given range with new text.
// Observers see a deletion followed by an insertion.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	if err := b.Delete(start, end); err != nil {
		return 0, err
	}
	return b.Insert(start, text)
}

// SetCursor moves the insertion cursor.
func (b *Buffer) SetCursor(offset ByteOffset) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if offset < 0 || offset > len(b.text) {
		b.mu.Unlock()
		return ErrOffsetOutOfRange
	}
	b.cursor = offset
	observers := b.observerList()
	b.mu.Unlock()

	for _, o := range observers {
		o.CursorMoved(offset)
	}
	return nil
}

// Observers and lifecycle

// AddObserver registers o for change notifications and returns a function
// that detaches it. The detach function is idempotent.
func (b *Buffer) AddObserver(o Observer) (detach func()) {
	entry := &observerEntry{observer: o}

	b.mu.Lock()
	b.observers = append(b.observers, entry)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.observers = slices.DeleteFunc(b.observers, func(e *observerEntry) bool {
			return e == entry
		})
	}
}

// Close marks the buffer as destroyed and drops all observers.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.observers = nil
}

// Closed reports whether Close has been called.
func (b *Buffer) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// observerList snapshots the observers. Caller must hold b.mu.
func (b *Buffer) observerList() []Observer {
	if len(b.observers) == 0 {
		return nil
	}
	out := make([]Observer, len(b.observers))
	for i, e := range b.observers {
		out[i] = e.observer
	}
	return out
}
