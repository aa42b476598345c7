package buffer

// Observer receives buffer change notifications.
//
// Offsets and ranges are expressed in the coordinates of the buffer after the
// change, except for TextDeleted which reports where the removed text used
// to start.
type Observer interface {
	// TextInserted is called after length bytes were inserted at offset.
	TextInserted(offset, length int)
	// TextDeleted is called after length bytes starting at offset were removed.
	TextDeleted(offset, length int)
	// TagApplied is called after tag was applied over r.
	TagApplied(tag *Tag, r Range)
	// TagRemoved is called after tag was cleared from r.
	TagRemoved(tag *Tag, r Range)
	// TagAdded is called after tag was added to the tag table.
	TagAdded(tag *Tag)
	// TagDeleted is called after tag was removed from the tag table.
	TagDeleted(tag *Tag)
	// CursorMoved is called after the insertion cursor moved to offset.
	CursorMoved(offset int)
}

// NopObserver implements Observer with no-ops. Embed it to implement only
// the notifications of interest.
type NopObserver struct{}

func (NopObserver) TextInserted(int, int) {}
func (NopObserver) TextDeleted(int, int) {}
func (NopObserver) TagApplied(*Tag, Range) {}
func (NopObserver) TagRemoved(*Tag, Range) {}
func (NopObserver) TagAdded(*Tag) {}
func (NopObserver) TagDeleted(*Tag) {}
func (NopObserver) CursorMoved(int) {}

// observerEntry gives every registration its own identity so that the same
// Observer value can be registered and detached more than once.
type observerEntry struct {
	observer Observer
}
