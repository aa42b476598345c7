package buffer

import (
	"slices"

	"github.com/dshills/spellscan/internal/engine/textregion"
	"github.com/google/uuid"
)

// Tag marks spans of buffer text. A tag belongs to the buffer that created
// it; its spans shift with edits to that buffer.
type Tag struct {
	id    uuid.UUID
	name  string
	owner *Buffer
	spans *textregion.Region[bool]
}

// ID returns the tag's unique identity.
func (t *Tag) ID() uuid.UUID {
	return t.id
}

// Name returns the tag name, or "" for an anonymous tag.
func (t *Tag) Name() string {
	return t.name
}

// String returns the tag name, or its ID for anonymous tags.
func (t *Tag) String() string {
	if t.name != "" {
		return t.name
	}
	return t.id.String()
}

// CreateTag adds a tag to the tag table. Named tags must be unique within the
// buffer; anonymous tags (name "") cannot be found with LookupTag.
func (b *Buffer) CreateTag(name string) (*Tag, error) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	if name != "" && b.lookupTag(name) != nil {
		b.mu.Unlock()
		return nil, ErrTagExists
	}

	tag := &Tag{
		id:    uuid.New(),
		name:  name,
		owner: b,
		spans: textregion.New[bool](),
	}
	tag.spans.Insert(0, len(b.text), false)
	b.tags = append(b.tags, tag)
	observers := b.observerList()
	b.mu.Unlock()

	for _, o := range observers {
		o.TagAdded(tag)
	}
	return tag, nil
}

// LookupTag returns the tag with the given name, or nil.
func (b *Buffer) LookupTag(name string) *Tag {
	if name == "" {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lookupTag(name)
}

// Tags returns the tags in the table in creation order.
func (b *Buffer) Tags() []*Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.tags)
}

// DeleteTag removes tag from the tag table. Its spans are discarded.
func (b *Buffer) DeleteTag(tag *Tag) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	i := slices.Index(b.tags, tag)
	if i < 0 {
		b.mu.Unlock()
		return ErrUnknownTag
	}
	b.tags = slices.Delete(b.tags, i, i+1)
	observers := b.observerList()
	b.mu.Unlock()

	for _, o := range observers {
		o.TagDeleted(tag)
	}
	return nil
}

// ApplyTag applies tag over [start, end).
func (b *Buffer) ApplyTag(tag *Tag, start, end ByteOffset) error {
	return b.setTag(tag, start, end, true)
}

// RemoveTagRange clears tag from [start, end).
func (b *Buffer) RemoveTagRange(tag *Tag, start, end ByteOffset) error {
	return b.setTag(tag, start, end, false)
}

func (b *Buffer) setTag(tag *Tag, start, end ByteOffset, on bool) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	if err := b.checkTag(tag); err != nil {
		b.mu.Unlock()
		return err
	}
	if start < 0 || start > end || end > len(b.text) {
		b.mu.Unlock()
		return ErrRangeInvalid
	}
	if start == end {
		b.mu.Unlock()
		return nil
	}

	tag.spans.Replace(start, end-start, on)
	observers := b.observerList()
	b.mu.Unlock()

	r := Range{Start: start, End: end}
	for _, o := range observers {
		if on {
			o.TagApplied(tag, r)
		} else {
			o.TagRemoved(tag, r)
		}
	}
	return nil
}

// HasTag reports whether any byte of [start, end) carries tag.
func (b *Buffer) HasTag(tag *Tag, start, end ByteOffset) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if tag == nil || b.checkTag(tag) != nil {
		return false
	}
	if start < 0 || start >= end || end > len(b.text) {
		return false
	}
	return tag.spans.ForEachInRange(start, end, func(_ int, run textregion.Run[bool]) bool {
		return run.Label
	})
}

// TagsAt returns the tags covering the byte at offset.
func (b *Buffer) TagsAt(offset ByteOffset) []*Tag {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.text) {
		return nil
	}
	var out []*Tag
	for _, tag := range b.tags {
		covered := tag.spans.ForEachInRange(offset, offset+1, func(_ int, run textregion.Run[bool]) bool {
			return run.Label
		})
		if covered {
			out = append(out, tag)
		}
	}
	return out
}

// TagRanges returns the maximal spans covered by tag, in order.
func (b *Buffer) TagRanges(tag *Tag) []Range {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if tag == nil || b.checkTag(tag) != nil {
		return nil
	}
	var out []Range
	for offset, run := range tag.spans.All(0, tag.spans.Len()) {
		if run.Label {
			out = append(out, Range{Start: offset, End: offset + run.Length})
		}
	}
	return out
}

// checkTag verifies tag is in this buffer's table. Caller must hold b.mu.
func (b *Buffer) checkTag(tag *Tag) error {
	if tag == nil || tag.owner != b || !slices.Contains(b.tags, tag) {
		return ErrUnknownTag
	}
	return nil
}

// lookupTag finds a named tag. Caller must hold b.mu.
func (b *Buffer) lookupTag(name string) *Tag {
	for _, tag := range b.tags {
		if tag.name == name {
			return tag
		}
	}
	return nil
}
