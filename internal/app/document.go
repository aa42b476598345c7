package app

import (
	"path/filepath"

	"github.com/dshills/spellscan/internal/engine/buffer"
	"github.com/dshills/spellscan/internal/spell"
	"github.com/rivo/uniseg"
)

// Document is an open buffer and the adapter checking it.
type Document struct {
	// Path is the absolute file path, or a caller-chosen name for text
	// opened with OpenString.
	Path string

	// Name is the display name.
	Name string

	buf     *buffer.Buffer
	adapter *spell.Adapter
}

func newDocument(path string, buf *buffer.Buffer) *Document {
	name := filepath.Base(path)
	if path == "" {
		name = "Untitled"
	}
	return &Document{Path: path, Name: name, buf: buf}
}

// Buffer returns the document's buffer. Edits must be made through
// Session.Edit so they reach the adapter on the loop.
func (d *Document) Buffer() *buffer.Buffer {
	return d.buf
}

// Content returns the full document content.
func (d *Document) Content() string {
	return d.buf.Text()
}

// Misspelling is a decorated word.
type Misspelling struct {
	Word  string
	Range buffer.Range

	// Line and Column are 1-based. Column counts user-perceived
	// characters, so it lines up with what an editor shows.
	Line   int
	Column int
}

// misspellings lists the decorated spans of the document in order.
func (d *Document) misspellings() []Misspelling {
	if d.adapter == nil {
		return nil
	}
	tag := d.adapter.DecorationTag()
	ranges := d.buf.TagRanges(tag)
	out := make([]Misspelling, 0, len(ranges))
	for _, r := range ranges {
		p := d.buf.OffsetToPoint(r.Start)
		lineStart := r.Start - p.Column
		out = append(out, Misspelling{
			Word:   d.buf.TextRange(r.Start, r.End),
			Range:  r,
			Line:   p.Line + 1,
			Column: uniseg.GraphemeClusterCount(d.buf.TextRange(lineStart, r.Start)) + 1,
		})
	}
	return out
}
