package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"theorycheck/internal/source"
)

// Cursor is a byte offset into one source file.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // exclusive
}

// NewCursor panics when the file does not fit in a 32-bit span.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte, 0 at end of file.
func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt looks n bytes ahead, 0 past the end.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Rest is the unread part of the file.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.File.Content[c.Off:c.Limit]
}

// Bump consumes one byte and returns it.
func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Mark is a saved offset: the start of the token being read.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

// Reset rewinds to m; used when a verbatim or interpolated prefix turns out
// to be something else.
func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// SpanFrom covers the bytes read since m.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}
