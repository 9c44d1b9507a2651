package argmark

import (
	"errors"
	"fmt"
)

// Kind separates programmer mistakes from user input mistakes.
type Kind int

const (
	// KindConfig is a caller configuration error: missing sinks, missing or
	// mis-sized output storage, inconsistent declaration tables.
	KindConfig Kind = iota + 1
	// KindUsage is an error in the argument vector itself. Callers usually
	// respond by printing their usage message.
	KindUsage
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindUsage:
		return "usage"
	default:
		return "unknown"
	}
}

// Configuration errors.
var (
	ErrNoInfoSink          = errors.New("information sink not specified")
	ErrNoErrorSink         = errors.New("error sink not specified")
	ErrUnallocatedOutput   = errors.New("no short-form storage to infer into")
	ErrUninitializedOutput = errors.New("role array not sized to token sequence")
	ErrMismatchedTable     = errors.New("short and long forms differ in length")
	ErrAnonymousCount      = errors.New("anonymous count does not match classification")
)

// Usage errors.
var (
	ErrCrossover       = errors.New("option given in both short and long form")
	ErrDuplicateOption = errors.New("option given more than once")
	ErrMissingValue    = errors.New("value option missing value")
)

// Error carries the phase, the offending option and token position of a
// failed parse. It unwraps to one of the package sentinels.
type Error struct {
	Kind   Kind
	Op     string // prep, mark, parse or init
	Option string // spelling as it appears on the command line, if any
	Index  int    // token position, -1 when not tied to one token
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Err.Error()
	if e.Option != "" {
		msg += fmt.Sprintf(" (%s)", e.Option)
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" at argument %d", e.Index)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsUsage reports whether err was caused by the argument vector rather than
// by the caller's configuration.
func IsUsage(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUsage
}

func configError(op string, err error) *Error {
	return &Error{Kind: KindConfig, Op: op, Index: -1, Err: err}
}

func usageError(op, option string, index int, err error) *Error {
	return &Error{Kind: KindUsage, Op: op, Option: option, Index: index, Err: err}
}
