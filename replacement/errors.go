package replacement

import (
	"errors"

	"github.com/archsim/beladyopt/preload"
)

// ErrTraceExhausted is re-exported from preload: the trace ended before the
// requested warmup+simulation window. Non-fatal; InitializeReplacement
// still completes with whatever was read.
var ErrTraceExhausted = preload.ErrTraceExhausted

// ErrTranslationFailure documents the TranslationFailure error kind. It is
// never returned as a Go error: a translation failure is resolved entirely
// inside Chooser.ChooseVictim by treating the block as never-reused. It
// exists here so the error taxonomy is discoverable from the package.
var ErrTranslationFailure = errors.New("replacement: address translation failed")

// ErrAllocationFailure is fatal: the core cannot operate with a partial
// index. Nothing in this package constructs one deliberately — Go reports
// genuine out-of-memory conditions as a runtime panic, not a returned
// error — but it is named here to complete the documented error kinds.
var ErrAllocationFailure = errors.New("replacement: allocation failure")
