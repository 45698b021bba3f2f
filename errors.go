package self

import "fmt"

// ErrorKind distinguishes the runtime failure kinds named in §7. Each kind
// carries exactly one identifying name (or, for SyntaxError, a message and
// a position).
type ErrorKind uint8

// Error kinds.
const (
	// UnknownMessageSend means findSlot found nothing reachable.
	UnknownMessageSend ErrorKind = iota
	// AmbiguousMessageSend means findSlot found two or more slots reachable
	// via distinct parent chains with no closer shadowing.
	AmbiguousMessageSend
	// UnknownPrimitive means a "_"-prefixed selector has no registered
	// primitive.
	UnknownPrimitive
	// MutatorWithoutDataSlot means a Mutator's data-name has no reachable
	// sibling slot.
	MutatorWithoutDataSlot
	// SyntaxError means the parser rejected the source text.
	SyntaxError
	// IndexOutOfRange means a string or vector primitive was invoked with an
	// index outside the receiver's bounds. Distinct from UnknownPrimitive:
	// the primitive was found and ran, its argument was merely bad.
	IndexOutOfRange
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownMessageSend:
		return "UnknownMessageSend"
	case AmbiguousMessageSend:
		return "AmbiguousMessageSend"
	case UnknownPrimitive:
		return "UnknownPrimitive"
	case MutatorWithoutDataSlot:
		return "MutatorWithoutDataSlot"
	case SyntaxError:
		return "SyntaxError"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	default:
		return "ErrorKind(?)"
	}
}

// SelfError is the concrete error type for every runtime and parse failure
// this interpreter produces (§7). Non-local return is deliberately not a
// SelfError: it is an internal Outcome variant (see control.go) that must
// never escape the top-level activation.
type SelfError struct {
	Kind ErrorKind
	Name string // the message/selector/data name identifying the failure
	Msg  string // human-readable detail; used for SyntaxError
	Pos  int    // zero-based character offset; meaningful for SyntaxError
}

func (e *SelfError) Error() string {
	switch e.Kind {
	case SyntaxError:
		return fmt.Sprintf("SyntaxError: %s at %d", e.Msg, e.Pos)
	case UnknownMessageSend, AmbiguousMessageSend, UnknownPrimitive, MutatorWithoutDataSlot, IndexOutOfRange:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Name)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Name)
	}
}

func errUnknownMessage(name string) *SelfError {
	return &SelfError{Kind: UnknownMessageSend, Name: name}
}

func errAmbiguousMessage(name string) *SelfError {
	return &SelfError{Kind: AmbiguousMessageSend, Name: name}
}

func errUnknownPrimitive(name string) *SelfError {
	return &SelfError{Kind: UnknownPrimitive, Name: name}
}

func errMutatorWithoutDataSlot(name string) *SelfError {
	return &SelfError{Kind: MutatorWithoutDataSlot, Name: name}
}

func errSyntax(msg string, pos int) *SelfError {
	return &SelfError{Kind: SyntaxError, Msg: msg, Pos: pos}
}

func errIndexOutOfRange(name string) *SelfError {
	return &SelfError{Kind: IndexOutOfRange, Name: name}
}

// NewErrorObject wraps a SelfError as a printable Object carrying an
// "error" constant slot with the Go error text and an "errorKind" constant
// slot with the kind name, so that a failure can be handed to Self code as
// an ordinary value. The evaluator itself carries failures as *SelfError in
// Outcome.Err.
func (vm *VM) NewErrorObject(err *SelfError) *Object {
	o := NewObject()
	o.AddConstantSlot("error", NewString(err.Error()), false)
	o.AddConstantSlot("errorKind", NewString(err.Kind.String()), false)
	return o
}
