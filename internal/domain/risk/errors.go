package risk

import "errors"

// ErrScorerPanic wraps a value recovered from a panicking scorer.
var ErrScorerPanic = errors.New("sector scorer panicked")
