package lexer

import (
	"testing"

	"theorycheck/internal/source"
)

func TestCursorBasics(t *testing.T) {
	f := &source.File{ID: 3, Content: []byte("ab")}
	c := NewCursor(f)
	if c.Peek() != 'a' || c.PeekAt(1) != 'b' || c.PeekAt(2) != 0 {
		t.Fatal("peek mismatch")
	}
	m := c.Mark()
	if !c.Eat('a') || c.Eat('a') {
		t.Fatal("Eat mismatch")
	}
	c.Bump()
	if !c.EOF() || c.Bump() != 0 {
		t.Fatal("expected EOF")
	}
	if sp := c.SpanFrom(m); sp.File != 3 || sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Reset(m)
	if c.Peek() != 'a' {
		t.Fatal("Reset failed")
	}
}
