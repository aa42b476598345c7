package spell

import (
	"unicode"

	"github.com/dshills/spellscan/internal/engine/buffer"
	"github.com/rivo/uniseg"
)

// Cursor walks the words of a buffer span once, front to back.
//
// Word boundaries follow Unicode text segmentation (UAX #29); a segment is a
// word when it contains a letter. A span boundary that falls inside a word
// is widened to the whole word.
type Cursor struct {
	buf        *buffer.Buffer
	decoration *buffer.Tag

	text  string
	base  int
	pos   int
	state int

	word  string
	start int
	end   int
}

// NewCursor creates a cursor over [begin, end) of buf. Tag applies
// decoration to the current word.
func NewCursor(buf *buffer.Buffer, begin, end int, decoration *buffer.Tag) *Cursor {
	begin = wordStart(buf, begin)
	end = wordEnd(buf, end)
	return &Cursor{
		buf:        buf,
		decoration: decoration,
		text:       buf.TextRange(begin, end),
		base:       begin,
		state:      -1,
	}
}

// Next advances to the next word. It returns false when the span is
// exhausted.
func (c *Cursor) Next() bool {
	for c.pos < len(c.text) {
		var segment string
		segment, _, c.state = uniseg.FirstWordInString(c.text[c.pos:], c.state)
		start := c.pos
		c.pos += len(segment)

		if isWord(segment) {
			c.word = segment
			c.start = c.base + start
			c.end = c.start + len(segment)
			return true
		}
	}
	c.word = ""
	c.start, c.end = c.base+len(c.text), c.base+len(c.text)
	return false
}

// Word returns the current word.
func (c *Cursor) Word() string {
	return c.word
}

// Range returns the buffer range of the current word.
func (c *Cursor) Range() buffer.Range {
	return buffer.NewRange(c.start, c.end)
}

// ContainsTag reports whether any part of the current word carries tag.
// A nil tag is never contained.
func (c *Cursor) ContainsTag(tag *buffer.Tag) bool {
	if tag == nil || c.word == "" {
		return false
	}
	return c.buf.HasTag(tag, c.start, c.end)
}

// Tag decorates the current word, replacing any decoration already there.
func (c *Cursor) Tag() {
	if c.decoration == nil || c.word == "" {
		return
	}
	_ = c.buf.RemoveTagRange(c.decoration, c.start, c.end)
	_ = c.buf.ApplyTag(c.decoration, c.start, c.end)
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// isWordRune reports whether r can continue a word across a span boundary.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) ||
		r == '\'' || r == '’' || r == '_'
}

// wordStart moves offset back to the start of the word it falls in.
func wordStart(buf *buffer.Buffer, offset int) int {
	for offset > 0 {
		r, size := buf.RuneBefore(offset)
		if size == 0 || !isWordRune(r) {
			break
		}
		offset -= size
	}
	return offset
}

// wordEnd moves offset forward to the end of the word it falls in.
func wordEnd(buf *buffer.Buffer, offset int) int {
	for {
		r, size := buf.RuneAt(offset)
		if size == 0 || !isWordRune(r) {
			return offset
		}
		offset += size
	}
}
