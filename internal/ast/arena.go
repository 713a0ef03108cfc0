package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores nodes of one kind; ids are 1-based so that 0 means "none".
type Arena[T any] struct {
	data []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its id.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.data = append(a.data, value)
	id, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return id
}

// Get returns nil for 0 and for ids never allocated.
func (a *Arena[T]) Get(id uint32) *T {
	if id == 0 || uint64(id) > uint64(len(a.data)) {
		return nil
	}
	return &a.data[id-1]
}

// Slice exposes the backing slice; callers must not append to it.
func (a *Arena[T]) Slice() []T { return a.data }

func (a *Arena[T]) Len() int { return len(a.data) }
