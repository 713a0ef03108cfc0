package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring dump on failure only
	LevelPhase        // driver and pass boundaries
	LevelDetail       // plus one span per file
	LevelDebug        // plus per-site bindings
)

var levelNames = []string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level. The empty string is off.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil // #nosec G115 -- index of a five element table
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames, "|"))
}

// maxScope is the finest scope written at this level.
func (l Level) maxScope() Scope {
	switch l {
	case LevelPhase:
		return ScopePass
	case LevelDetail:
		return ScopeFile
	case LevelDebug:
		return ScopeSite
	}
	return 0
}

// ShouldEmit reports whether a stream writes events of scope at this level.
// LevelError writes nothing: it only feeds the ring buffer.
func (l Level) ShouldEmit(scope Scope) bool {
	return scope <= l.maxScope()
}

// records is ShouldEmit widened for LevelError, where the ring keeps phase
// and file events for the post-mortem dump.
func (l Level) records(scope Scope) bool {
	if l == LevelError {
		return scope <= ScopeFile
	}
	return l.ShouldEmit(scope)
}
