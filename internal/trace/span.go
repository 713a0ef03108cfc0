package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seq       atomic.Uint64
	spanIDs   atomic.Uint64
	openSpans atomic.Int64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seq.Add(1) }

// OpenSpans is the number of spans begun but not yet ended, across all
// tracers. Heartbeats report it to point at a stuck file.
func OpenSpans() int64 { return openSpans.Load() }

// Span tracks one Begin/End pair. A nil or disabled span accepts every
// call and emits nothing.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	file    string
	started time.Time
	extra   map[string]string
}

// Begin starts a span and emits its begin event. parent is 0 for roots.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, scope, name, "", parent)
}

// BeginFile starts a file-scoped span tagged with the file path.
func BeginFile(t Tracer, name, path string, parent uint64) *Span {
	return begin(t, ScopeFile, name, path, parent)
}

func begin(t Tracer, scope Scope, name, file string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().records(scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		file:    file,
		started: time.Now(),
	}
	openSpans.Add(1)
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) live() bool { return s != nil && s.tracer != nil }

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	ev := &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		File:     s.file,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	return ev
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	openSpans.Add(-1)
	s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	s.tracer = nil // повторный End ничего не пишет
	return now.Sub(s.started)
}

// WithExtra attaches a key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

type tracerKey struct{}
type parentKey struct{}

// FromContext returns the tracer stored in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithParent makes s the parent of spans begun from the returned context.
func WithParent(ctx context.Context, s *Span) context.Context {
	return context.WithValue(ctx, parentKey{}, s.ID())
}

// ParentFrom returns the span ID stored by WithParent, 0 if none.
func ParentFrom(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}
