package types

import "theorycheck/internal/source"

var zeroSpan = source.Span{}
