package self

import "sync/atomic"

// Kind discriminates the variant of value an Object carries. Every runtime
// value is represented by *Object; Kind says which of the struct's payload
// fields are meaningful.
type Kind uint8

// Value kinds.
const (
	// ObjectKind is a plain slot-bearing object: nil, true, false, the
	// lobby, traits, block objects and user objects are all of this kind.
	ObjectKind Kind = iota
	// MethodKind is a kind of ObjectKind that additionally carries a code
	// list. Its own slots still matter: slot 0 is always the synthesized
	// self or (parent) argument.
	MethodKind
	// IntegerKind carries a 64-bit signed integer in num.
	IntegerKind
	// FloatKind carries an IEEE-754 double in float.
	FloatKind
	// StringKind carries immutable text in str.
	StringKind
	// VectorKind carries a growable slice of element cells in vec.
	VectorKind
)

// String names a Kind for diagnostics.
func (k Kind) String() string {
	switch k {
	case ObjectKind:
		return "Object"
	case MethodKind:
		return "Method"
	case IntegerKind:
		return "Integer"
	case FloatKind:
		return "Float"
	case StringKind:
		return "String"
	case VectorKind:
		return "Vector"
	default:
		return "Kind(?)"
	}
}

// Object is the single runtime representation for every value in the
// language: numbers, strings, vectors, plain objects and methods alike.
// Numbers, strings and vectors never carry their own slots (§3.1); findSlot
// routes lookups on them to the VM's shared trait objects instead.
type Object struct {
	kind Kind
	id   uintptr

	slots ordSlots

	num   int64
	float float64
	str   string
	vec   []*Object

	// code is populated only for MethodKind objects.
	code []Node
}

var objectIDs uint64

func nextObjectID() uintptr {
	return uintptr(atomic.AddUint64(&objectIDs, 1))
}

// UniqueID returns an identity suitable for cycle detection and identity
// comparison. It is stable for the lifetime of the Object.
func (o *Object) UniqueID() uintptr {
	return o.id
}

// Kind reports which payload fields of o are meaningful.
func (o *Object) Kind() Kind {
	return o.kind
}

// IsObjectish reports whether o behaves as a slot-bearing object for the
// purposes of the parent-flag rule in §3.2 ("non-object parents are treated
// as having no further slots"): plain objects and methods are objectish,
// numbers/strings/vectors are not.
func (o *Object) IsObjectish() bool {
	return o.kind == ObjectKind || o.kind == MethodKind
}

// newBareObject allocates an Object with a fresh identity and no slots.
func newBareObject(kind Kind) *Object {
	return &Object{kind: kind, id: nextObjectID()}
}

// NewObject creates an empty plain object.
func NewObject() *Object {
	return newBareObject(ObjectKind)
}

// NewInteger creates an Integer value.
func NewInteger(n int64) *Object {
	o := newBareObject(IntegerKind)
	o.num = n
	return o
}

// NewFloat creates a Float value.
func NewFloat(f float64) *Object {
	o := newBareObject(FloatKind)
	o.float = f
	return o
}

// NewString creates a String value. Strings are immutable once created.
func NewString(s string) *Object {
	o := newBareObject(StringKind)
	o.str = s
	return o
}

// NewVector creates a Vector value from the given elements. The slice is
// taken by reference; callers should not retain it.
func NewVector(elems []*Object) *Object {
	o := newBareObject(VectorKind)
	o.vec = elems
	return o
}

// Int returns the integer payload; valid only when Kind() == IntegerKind.
func (o *Object) Int() int64 { return o.num }

// Float64 returns the float payload; valid only when Kind() == FloatKind.
func (o *Object) Float64() float64 { return o.float }

// Str returns the string payload; valid only when Kind() == StringKind.
func (o *Object) Str() string { return o.str }

// Vec returns the vector backing slice; valid only when Kind() == VectorKind.
func (o *Object) Vec() []*Object { return o.vec }

// AsFloat64 widens an Integer or Float to float64. Panics on any other kind;
// callers must check Kind first.
func (o *Object) AsFloat64() float64 {
	switch o.kind {
	case IntegerKind:
		return float64(o.num)
	case FloatKind:
		return o.float
	default:
		panic("self: AsFloat64 on non-numeric value")
	}
}

// Mutator is the tagged value stored in a synthesized "name:" slot. Sending
// that selector reassigns the sibling data slot named Data. It is not an
// Object: it can only ever be found as a slot's value, never as a message
// receiver (§9 "Slot values that are themselves slot-identifiers").
type Mutator struct {
	Data string
}

// SlotValue is anything a Slot may carry: *Object or Mutator.
type SlotValue = interface{}
