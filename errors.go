package physics

import "fmt"

// ErrorKind classifies the error kinds this package returns.
type ErrorKind int

const (
	// KindInvalidConfiguration covers a Config that fails Validate (e.g. a
	// non-positive step size), a prismatic/line joint between two static
	// bodies, and Add/Remove/AddJoint/RemoveJoint calls made while Step is
	// running. Body masses are not validated.
	KindInvalidConfiguration ErrorKind = iota
	// KindDanglingReference covers a joint referencing a body not owned by
	// the World.
	KindDanglingReference
	// KindInvariantViolation is a hard-fatal internal condition, such as a
	// tree node's bounding box not equaling the union of its children's
	// boxes. It indicates a bug, not user error.
	KindInvariantViolation
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidConfiguration:
		return "InvalidConfiguration"
	case KindDanglingReference:
		return "DanglingReference"
	case KindInvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// Error is this package's typed error, classified by ErrorKind and usable
// with errors.Is/errors.As. It wraps stdlib errors/fmt.Errorf rather than a
// third-party error-wrapping library: a synchronous, single-process library
// boundary like this one doesn't need stack traces or multi-error grouping,
// just a stable Kind callers can branch on.
type Error struct {
	Kind ErrorKind
	Msg  string
	err  error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is lets callers write errors.Is(err, physics.ErrInvalidConfiguration) (or
// any *Error with the same Kind) regardless of Msg/cause.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Sentinel errors usable with errors.Is, one per kind; Msg/err are ignored
// by Is's Kind-only comparison.
var (
	ErrInvalidConfiguration = &Error{Kind: KindInvalidConfiguration, Msg: "invalid configuration"}
	ErrDanglingReference    = &Error{Kind: KindDanglingReference, Msg: "dangling reference"}
	ErrInvariantViolation   = &Error{Kind: KindInvariantViolation, Msg: "invariant violation"}
)

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func wrapError(kind ErrorKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, err: cause}
}
