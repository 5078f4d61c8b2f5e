package fsa

import "fmt"

// ErrorKind enumerates the validation-error taxonomy of spec.md §7.
type ErrorKind int

const (
	NoStartState ErrorKind = iota
	NoMatchingTransition
	UnexpectedEndOfInput
	NotInAcceptState
	EmbeddedFsmFailed
	InvalidState
	InvalidTransition
	AmbiguousTransition
	UnreachableStates
)

func (k ErrorKind) String() string {
	switch k {
	case NoStartState:
		return "NoStartState"
	case NoMatchingTransition:
		return "NoMatchingTransition"
	case UnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case NotInAcceptState:
		return "NotInAcceptState"
	case EmbeddedFsmFailed:
		return "EmbeddedFsmFailed"
	case InvalidState:
		return "InvalidState"
	case InvalidTransition:
		return "InvalidTransition"
	case AmbiguousTransition:
		return "AmbiguousTransition"
	case UnreachableStates:
		return "UnreachableStates"
	default:
		return "Unknown"
	}
}

// Error is the structured record returned by a failed validation
// (spec.md §7). Every validation error is returned, never panicked.
type Error struct {
	Kind      ErrorKind
	Position  int
	Byte      byte
	State     StateID
	Message   string
	Attempted []StateID
	Context   string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("fsa: %s at position %d (state %d, byte 0x%02X)", e.Kind, e.Position, e.State, e.Byte)
}

// NewInvalidStateError and NewInvalidTransitionError construct the ordinary
// (non-panicking) error values a data-driven caller returns when it cannot
// trust its input to reference live graph elements — see fsabuilder, which
// resolves symbolic names out of YAML rather than trusted Go call sites.
func NewInvalidStateError(name string) *Error {
	return &Error{Kind: InvalidState, Message: fmt.Sprintf("fsa: invalid state reference %q", name)}
}

func NewInvalidTransitionError(from, to string) *Error {
	return &Error{Kind: InvalidTransition, Message: fmt.Sprintf("fsa: invalid transition %s -> %s", from, to)}
}

func (a *Automaton) newError(kind ErrorKind, pos int, b byte, state StateID, msg string, attempted []StateID) *Error {
	e := &Error{Kind: kind, Position: pos, Byte: b, State: state, Message: msg, Attempted: attempted}
	if a.debug.Flags.Has(VerboseErrors) {
		e.Context = a.inputContext(pos)
	}
	return e
}

// inputContext renders a short snippet of the input buffer around pos,
// used only when VerboseErrors is enabled (original_source/Fsm's
// getInputContext, ported per SPEC_FULL.md §4).
func (a *Automaton) inputContext(pos int) string {
	buf := a.exec.input
	const radius = 8
	lo := pos - radius
	if lo < 0 {
		lo = 0
	}
	hi := pos + radius
	if hi > len(buf) {
		hi = len(buf)
	}
	if lo >= hi {
		return ""
	}
	return fmt.Sprintf("%q (byte %d of context starting at %d)", buf[lo:hi], pos-lo, lo)
}
