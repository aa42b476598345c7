// Package spell keeps a text buffer's misspelling decorations up to date.
//
// An Adapter mirrors its buffer in a run-length encoded region whose runs are
// labeled Checked or Unchecked. Buffer edits relabel the touched text as
// Unchecked synchronously, from within the buffer's change notification, and
// arm a debounced timer. When the timer fires the adapter finds the first
// Unchecked run, walks the words from there to the end of the buffer with a
// Cursor, asks the Checker about each one, decorates the words it rejects
// and marks the walked text Checked. A walk that runs past its time budget
// stops after the current word and leaves the rest for the next tick.
//
// Words covered by the exclusion tag (by default the tag named
// "no-spell-check", typically applied by a syntax highlighter to code) are
// never decorated. Adding, removing, applying or clearing that tag
// invalidates the affected text.
//
// An Adapter is not safe for concurrent use. Its methods, the buffer edits it
// observes and the scheduler callbacks it receives must all happen on one
// goroutine, normally the event loop that owns the scheduler.
package spell
