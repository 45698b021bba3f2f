package self

import "strconv"

// primitiveFunc is a host function backing a "_"-prefixed selector.
// Primitives never perform slot lookup or activate methods (§4.2 step 3);
// args[0] is the receiver, the rest are the evaluated message arguments.
type primitiveFunc func(vm *VM, args []*Object) (*Object, *SelfError)

// installPrimitives populates the registry described in §4.4. Called once
// per (re)initialization, matching the teacher's initXxx ordering pattern
// in vm.go.
func (vm *VM) installPrimitives() {
	vm.primitives = map[string]primitiveFunc{
		"_NumAdd:":       primNumAdd,
		"_NumSub:":       primNumSub,
		"_NumMul:":       primNumMul,
		"_NumDiv:":       primNumDiv,
		"_NumMod:":       primNumMod,
		"_NumLt:":        primNumLt,
		"_NumToString":   primNumToString,
		"_Equal:":        primEqual,
		"_StringSize":    primStringSize,
		"_StringAt:":     primStringAt,
		"_StringConcat:": primStringConcat,
		"_StringFrom:To:": primStringFromTo,
		"_VectorClone:":   primVectorClone,
		"_VectorSize":     primVectorSize,
		"_VectorAdd:":     primVectorAdd,
		"_VectorAt:":      primVectorAt,
		"_VectorAt:Put:":  primVectorAtPut,
		"_VectorFrom:To:": primVectorFromTo,
		"_Clone":            primClone,
		"_AddSlotsIfAbsent:": primAddSlotsIfAbsent,
	}
}

func bothInteger(a, b *Object) bool {
	return a.kind == IntegerKind && b.kind == IntegerKind
}

func primNumAdd(vm *VM, args []*Object) (*Object, *SelfError) {
	a, b := args[0], args[1]
	if bothInteger(a, b) {
		return NewInteger(a.Int() + b.Int()), nil
	}
	return NewFloat(a.AsFloat64() + b.AsFloat64()), nil
}

func primNumSub(vm *VM, args []*Object) (*Object, *SelfError) {
	a, b := args[0], args[1]
	if bothInteger(a, b) {
		return NewInteger(a.Int() - b.Int()), nil
	}
	return NewFloat(a.AsFloat64() - b.AsFloat64()), nil
}

func primNumMul(vm *VM, args []*Object) (*Object, *SelfError) {
	a, b := args[0], args[1]
	if bothInteger(a, b) {
		return NewInteger(a.Int() * b.Int()), nil
	}
	return NewFloat(a.AsFloat64() * b.AsFloat64()), nil
}

// primNumDiv always produces a Float (§3.1: Float is "produced by
// division or literal fractions").
func primNumDiv(vm *VM, args []*Object) (*Object, *SelfError) {
	a, b := args[0], args[1]
	return NewFloat(a.AsFloat64() / b.AsFloat64()), nil
}

func primNumMod(vm *VM, args []*Object) (*Object, *SelfError) {
	a, b := args[0], args[1]
	if bothInteger(a, b) {
		if b.Int() == 0 {
			return NewInteger(0), nil
		}
		return NewInteger(a.Int() % b.Int()), nil
	}
	af, bf := a.AsFloat64(), b.AsFloat64()
	if bf == 0 {
		return NewFloat(0), nil
	}
	return NewFloat(modFloat(af, bf)), nil
}

func modFloat(a, b float64) float64 {
	q := int64(a / b)
	return a - float64(q)*b
}

func primNumLt(vm *VM, args []*Object) (*Object, *SelfError) {
	a, b := args[0], args[1]
	if a.AsFloat64() < b.AsFloat64() {
		return vm.True, nil
	}
	return vm.False, nil
}

func primNumToString(vm *VM, args []*Object) (*Object, *SelfError) {
	a := args[0]
	if a.kind == IntegerKind {
		return NewString(strconv.FormatInt(a.Int(), 10)), nil
	}
	return NewString(strconv.FormatFloat(a.Float64(), 'g', -1, 64)), nil
}

// primEqual implements universal equality (§4.4): numbers compare by
// value (cross-kind: 3 equals 3.0), strings by content, everything else
// (objects, methods, vectors) by identity.
func primEqual(vm *VM, args []*Object) (*Object, *SelfError) {
	a, b := args[0], args[1]
	switch {
	case (a.kind == IntegerKind || a.kind == FloatKind) && (b.kind == IntegerKind || b.kind == FloatKind):
		return vm.IoBool(a.AsFloat64() == b.AsFloat64()), nil
	case a.kind == StringKind && b.kind == StringKind:
		return vm.IoBool(a.Str() == b.Str()), nil
	default:
		return vm.IoBool(a == b), nil
	}
}

func primStringSize(vm *VM, args []*Object) (*Object, *SelfError) {
	return NewInteger(int64(len([]rune(args[0].Str())))), nil
}

func primStringAt(vm *VM, args []*Object) (*Object, *SelfError) {
	s := []rune(args[0].Str())
	i := args[1].Int()
	if i < 0 || int(i) >= len(s) {
		return nil, errIndexOutOfRange("_StringAt:")
	}
	return NewString(string(s[i])), nil
}

func primStringConcat(vm *VM, args []*Object) (*Object, *SelfError) {
	return NewString(args[0].Str() + args[1].Str()), nil
}

// primStringFromTo slices with a 0-based half-open range (matching the
// boundary example 'abc' from: 1 To: 2 -> 'b'): [from, to).
func primStringFromTo(vm *VM, args []*Object) (*Object, *SelfError) {
	s := []rune(args[0].Str())
	from, to := clampRange(args[1].Int(), args[2].Int(), len(s))
	return NewString(string(s[from:to])), nil
}

func clampRange(from, to int64, n int) (int, int) {
	f, t := int(from), int(to)
	if f < 0 {
		f = 0
	}
	if t > n {
		t = n
	}
	if f > t {
		f = t
	}
	return f, t
}

func primVectorClone(vm *VM, args []*Object) (*Object, *SelfError) {
	n := args[1].Int()
	elems := make([]*Object, n)
	for i := range elems {
		elems[i] = vm.Nil
	}
	return NewVector(elems), nil
}

func primVectorSize(vm *VM, args []*Object) (*Object, *SelfError) {
	return NewInteger(int64(len(args[0].Vec()))), nil
}

func primVectorAdd(vm *VM, args []*Object) (*Object, *SelfError) {
	v := args[0]
	v.vec = append(v.vec, args[1])
	return v, nil
}

func primVectorAt(vm *VM, args []*Object) (*Object, *SelfError) {
	v := args[0].Vec()
	i := args[1].Int()
	if i < 0 || int(i) >= len(v) {
		return nil, errIndexOutOfRange("_VectorAt:")
	}
	return v[i], nil
}

func primVectorAtPut(vm *VM, args []*Object) (*Object, *SelfError) {
	v := args[0]
	i := args[1].Int()
	if i < 0 || int(i) >= len(v.vec) {
		return nil, errIndexOutOfRange("_VectorAt:Put:")
	}
	v.vec[i] = args[2]
	return args[2], nil
}

func primVectorFromTo(vm *VM, args []*Object) (*Object, *SelfError) {
	v := args[0].Vec()
	from, to := clampRange(args[1].Int(), args[2].Int(), len(v))
	out := make([]*Object, to-from)
	copy(out, v[from:to])
	return NewVector(out), nil
}

// primClone is the generic clone primitive (§4.4). Numbers and strings are
// immutable and clone to themselves, and so are the nil/true/false
// singletons (§8.2's "n clone = n" law, "same for nil, true, false,
// strings"). _Clone on a method is an open question (§9): this
// implementation returns a plain structural clone without committing to
// special method-cloning semantics.
func primClone(vm *VM, args []*Object) (*Object, *SelfError) {
	a := args[0]
	switch {
	case a.kind == IntegerKind, a.kind == FloatKind, a.kind == StringKind:
		return a, nil
	case a == vm.Nil, a == vm.True, a == vm.False:
		return a, nil
	default:
		return a.Clone(), nil
	}
}

// primAddSlotsIfAbsent adds each slot of args[1] to args[0] if a slot of
// that name is not already present, re-emitting paired mutators for added
// data slots (§4.4).
func primAddSlotsIfAbsent(vm *VM, args []*Object) (*Object, *SelfError) {
	recv, other := args[0], args[1]
	for _, sl := range other.Slots() {
		if recv.LocalSlot(sl.Name) != nil {
			continue
		}
		recv.slots.append(Slot{Name: sl.Name, Kind: sl.Kind, Parent: sl.Parent, Value: sl.Value})
		if sl.Kind == DataSlot {
			recv.ensureMutator(sl.Name)
		}
	}
	return recv, nil
}
