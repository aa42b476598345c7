package spell

import (
	"fmt"
	"time"
	"weak"

	"github.com/dshills/spellscan/internal/engine/buffer"
	"github.com/dshills/spellscan/internal/engine/textregion"
	"github.com/dshills/spellscan/internal/logging"
	"github.com/dshills/spellscan/internal/scheduler"
)

// Stats counts the work an adapter has done.
type Stats struct {
	Ticks      int
	Words      int
	Misspelled int
}

// Adapter tracks which text of a buffer has been spell checked and keeps the
// buffer's misspelling decoration current.
type Adapter struct {
	buffer weak.Pointer[buffer.Buffer]
	detach func()

	checker Checker
	sched   scheduler.Scheduler
	region  *textregion.Region[Label]

	decoration    *buffer.Tag
	exclusion     *buffer.Tag
	exclusionName string

	cursor  int
	enabled bool
	closed  bool
	state   State
	timer   scheduler.Handle

	delay  time.Duration
	budget time.Duration
	log    *logging.Logger
	stats  Stats
}

// NewAdapter attaches a new adapter to buf. checker may be nil, in which case
// nothing is scanned until SetChecker provides one. The adapter holds buf
// weakly; it stops working once buf is closed or collected.
func NewAdapter(buf *buffer.Buffer, checker Checker, sched scheduler.Scheduler, opts ...Option) (*Adapter, error) {
	a := &Adapter{
		checker:       checker,
		sched:         sched,
		region:        textregion.New[Label](),
		exclusionName: DefaultExclusionTagName,
		enabled:       true,
		delay:         DefaultDelay,
		budget:        DefaultBudget,
		log:           logging.Null(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.attach(buf); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Adapter) attach(buf *buffer.Buffer) error {
	if buf == nil || buf.Closed() {
		return ErrBufferClosed
	}

	decoration, err := buf.CreateTag("")
	if err != nil {
		return fmt.Errorf("creating decoration tag: %w", err)
	}

	a.decoration = decoration
	a.exclusion = buf.LookupTag(a.exclusionName)
	a.cursor = buf.Cursor()
	a.region.Insert(0, buf.Len(), Unchecked)
	a.buffer = weak.Make(buf)
	a.detach = buf.AddObserver(a)

	a.queueUpdate()
	return nil
}

// Buffer returns the attached buffer, or nil once it is gone.
func (a *Adapter) Buffer() *buffer.Buffer {
	return a.liveBuffer()
}

// Checker returns the current checker.
func (a *Adapter) Checker() Checker {
	return a.checker
}

// SetChecker replaces the checker. Everything is rechecked with the new one;
// a nil checker stops scanning.
func (a *Adapter) SetChecker(checker Checker) {
	if sameChecker(a.checker, checker) {
		return
	}
	a.checker = checker
	a.cancel()
	a.invalidateAll()
	a.queueUpdate()
}

// Enabled reports whether the adapter is scanning.
func (a *Adapter) Enabled() bool {
	return a.enabled
}

// SetEnabled turns scanning on or off. Disabling cancels any pending scan
// and leaves the region as it is; enabling rechecks everything.
func (a *Adapter) SetEnabled(enabled bool) {
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled
	if !enabled {
		a.cancel()
		return
	}
	a.invalidateAll()
	a.queueUpdate()
}

// State returns the scheduling state.
func (a *Adapter) State() State {
	return a.state
}

// Stats returns the work counters.
func (a *Adapter) Stats() Stats {
	return a.stats
}

// DecorationTag returns the tag applied to misspelled words.
func (a *Adapter) DecorationTag() *buffer.Tag {
	return a.decoration
}

// ExclusionTag returns the tag whose text is skipped, or nil.
func (a *Adapter) ExclusionTag() *buffer.Tag {
	return a.exclusion
}

// CursorPosition returns the last cursor position reported by the buffer.
func (a *Adapter) CursorPosition() int {
	return a.cursor
}

// UncheckedLen returns how much of the buffer is waiting to be checked.
func (a *Adapter) UncheckedLen() int {
	n := 0
	for _, run := range a.region.All(0, a.region.Len()) {
		if run.Label == Unchecked {
			n += run.Length
		}
	}
	return n
}

// InvalidateAll marks the whole buffer for rechecking.
func (a *Adapter) InvalidateAll() {
	if a.invalidateAll() {
		a.queueUpdate()
	}
}

// InvalidateRange marks [start, end) for rechecking.
func (a *Adapter) InvalidateRange(start, end int) {
	if a.closed || start >= end {
		return
	}
	a.region.Replace(start, end-start, Unchecked)
	a.queueUpdate()
}

// Close detaches the adapter from its buffer and cancels pending work.
func (a *Adapter) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.cancel()
	if a.detach != nil {
		a.detach()
		a.detach = nil
	}
	a.buffer = weak.Pointer[buffer.Buffer]{}
}

// Buffer notifications. These keep the region in step with the buffer and
// must arrive synchronously with each edit.

// TextInserted implements buffer.Observer.
func (a *Adapter) TextInserted(offset, length int) {
	if length <= 0 {
		return
	}
	a.region.Insert(offset, length, Unchecked)
	a.queueUpdate()
}

// TextDeleted implements buffer.Observer. The text on both sides of the
// deletion is rechecked since the words there may have been joined.
func (a *Adapter) TextDeleted(offset, length int) {
	if length <= 0 {
		return
	}
	a.region.Remove(offset, length)

	start := max(offset-1, 0)
	end := min(offset+1, a.region.Len())
	if start < end {
		a.region.Replace(start, end-start, Unchecked)
	}
	a.queueUpdate()
}

// TagApplied implements buffer.Observer.
func (a *Adapter) TagApplied(tag *buffer.Tag, r buffer.Range) {
	if a.exclusion != nil && tag == a.exclusion {
		a.InvalidateRange(r.Start, r.End)
	}
}

// TagRemoved implements buffer.Observer.
func (a *Adapter) TagRemoved(tag *buffer.Tag, r buffer.Range) {
	if a.exclusion != nil && tag == a.exclusion {
		a.InvalidateRange(r.Start, r.End)
	}
}

// TagAdded implements buffer.Observer.
func (a *Adapter) TagAdded(tag *buffer.Tag) {
	if tag.Name() != "" && tag.Name() == a.exclusionName {
		a.exclusion = tag
		a.InvalidateAll()
	}
}

// TagDeleted implements buffer.Observer. Losing the decoration tag creates
// a fresh one and rechecks everything.
func (a *Adapter) TagDeleted(tag *buffer.Tag) {
	switch {
	case tag == a.decoration:
		a.recreateDecoration()
	case a.exclusion != nil && tag == a.exclusion:
		a.exclusion = nil
		a.InvalidateAll()
	}
}

func (a *Adapter) recreateDecoration() {
	buf := a.liveBuffer()
	if buf == nil {
		return
	}
	decoration, err := buf.CreateTag("")
	if err != nil {
		a.log.Debug("recreating decoration tag: %v", err)
		a.cancel()
		return
	}
	a.decoration = decoration
	a.InvalidateAll()
}

// CursorMoved implements buffer.Observer.
func (a *Adapter) CursorMoved(offset int) {
	a.cursor = offset
	a.queueUpdate()
}

// invalidateAll relabels the whole region Unchecked and reports whether
// there was anything to relabel.
func (a *Adapter) invalidateAll() bool {
	length := a.region.Len()
	if a.closed || length == 0 {
		return false
	}
	a.region.Replace(0, length, Unchecked)
	return true
}

// queueUpdate (re)arms the debounce timer, or goes idle when scanning is
// not possible.
func (a *Adapter) queueUpdate() {
	a.cancel()
	if a.checker == nil || !a.enabled || a.liveBuffer() == nil {
		return
	}
	a.timer = a.sched.Schedule(a.delay, true, a.update)
	a.state = StateArmed
}

func (a *Adapter) cancel() {
	if a.timer != nil {
		a.timer.Cancel()
		a.timer = nil
	}
	a.state = StateIdle
}

func (a *Adapter) liveBuffer() *buffer.Buffer {
	if a.closed {
		return nil
	}
	buf := a.buffer.Value()
	if buf == nil || buf.Closed() {
		return nil
	}
	return buf
}

// update is the timer callback. It returns true while unchecked text may
// remain.
func (a *Adapter) update() bool {
	buf := a.liveBuffer()
	if buf == nil || a.checker == nil || !a.enabled {
		a.timer = nil
		a.state = StateIdle
		return false
	}

	length := a.region.Len()
	if n := buf.Len(); n != length {
		panic(fmt.Errorf("%w: region covers %d bytes, buffer has %d", ErrOutOfSync, length, n))
	}

	a.state = StateRunning
	a.stats.Ticks++
	deadline := a.sched.Now().Add(a.budget)

	if a.updateRange(buf, 0, length, deadline) {
		a.state = StateArmed
		return true
	}
	a.timer = nil
	a.state = StateIdle
	return false
}

// updateRange checks from the first unchecked run in [begin, end) to end.
// It returns true if it stopped at the deadline with text left to check.
func (a *Adapter) updateRange(buf *buffer.Buffer, begin, end int, deadline time.Time) bool {
	if begin == end {
		return false
	}
	position, found := a.nextUnchecked(begin, end)
	if !found {
		return false
	}

	// Decorations past the run may belong to text that has since moved,
	// so everything to the end is cleared and rebuilt.
	start := wordStart(buf, position)
	if err := buf.RemoveTagRange(a.decoration, start, end); err != nil {
		a.log.Debug("clearing decoration: %v", err)
		return false
	}

	checkedEnd := end
	words, misspelled := 0, 0
	cursor := NewCursor(buf, start, end, a.decoration)
	for cursor.Next() {
		if !cursor.ContainsTag(a.exclusion) {
			words++
			if !a.checker.CheckWord(cursor.Word()) {
				cursor.Tag()
				misspelled++
			}
		}
		if r := cursor.Range(); r.End > position && r.End < end && a.sched.Now().After(deadline) {
			checkedEnd = r.End
			break
		}
	}

	a.region.Replace(position, checkedEnd-position, Checked)
	if checkedEnd < end {
		// The tail lost its decoration above and must be scanned again.
		a.region.Replace(checkedEnd, end-checkedEnd, Unchecked)
	}
	a.stats.Words += words
	a.stats.Misspelled += misspelled
	a.log.Debug("checked [%d,%d) of %d: %d words, %d misspelled", position, checkedEnd, end, words, misspelled)

	return checkedEnd < end
}

func (a *Adapter) nextUnchecked(begin, end int) (int, bool) {
	position, found := 0, false
	a.region.ForEachInRange(begin, end, func(offset int, run textregion.Run[Label]) bool {
		if run.Label == Unchecked {
			position, found = offset, true
			return true
		}
		return false
	})
	return position, found
}
