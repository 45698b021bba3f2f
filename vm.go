package self

import "fmt"

// VM is a single interpreter instance (§3.7, §5): it owns the singletons
// nil/true/false, the trait objects, the lobby, and the primitive
// registry. Separate VMs share no state, and one VM is not safe for
// concurrent use (§5).
type VM struct {
	// Lobby is the implicit receiver of a top-level program (§4.2.3).
	Lobby *Object

	Nil   *Object
	True  *Object
	False *Object

	TraitsNumber *Object
	TraitsString *Object
	TraitsVector *Object
	TraitsBlock  *Object

	primitives map[string]primitiveFunc
}

// NewVM creates and initializes a new interpreter instance, equivalent to
// calling Initialize on a freshly allocated VM (§6.1 "initialize()").
func NewVM() *VM {
	vm := &VM{}
	vm.Initialize()
	return vm
}

// Initialize (re)initializes the VM (§3.7, §6.1): it clears the singleton
// and trait objects, clears and repopulates the primitive registry, then
// evaluates the bootstrap Self source (§6.4) to grow the trait objects.
// Calling Initialize on a VM already in use discards all prior state.
func (vm *VM) Initialize() {
	vm.Nil = newBareObject(ObjectKind)
	vm.True = newBareObject(ObjectKind)
	vm.False = newBareObject(ObjectKind)

	vm.TraitsNumber = NewObject()
	vm.TraitsString = NewObject()
	vm.TraitsVector = NewObject()
	vm.TraitsBlock = NewObject()

	vm.Lobby = NewObject()
	vm.Lobby.AddDataSlot("nil", vm.Nil, false)
	vm.Lobby.AddDataSlot("true", vm.True, false)
	vm.Lobby.AddDataSlot("false", vm.False, false)
	vm.Lobby.AddConstantSlot("traitsNumber", vm.TraitsNumber, false)
	vm.Lobby.AddConstantSlot("traitsString", vm.TraitsString, false)
	vm.Lobby.AddConstantSlot("traitsVector", vm.TraitsVector, false)
	vm.Lobby.AddConstantSlot("traitsBlock", vm.TraitsBlock, false)
	vm.Lobby.AddConstantSlot("lobby", vm.Lobby, false)

	vm.installPrimitives()
	vm.runBootstrap()
}

// IoBool converts a Go bool to the corresponding Self singleton, named
// after the teacher's own IoBool for the analogous conversion.
func (vm *VM) IoBool(c bool) *Object {
	if c {
		return vm.True
	}
	return vm.False
}

// AsBool treats every value other than false and nil as true. The
// bootstrap's conditionals do not use it: ifTrue:/ifFalse: are separate Self
// methods on the true and false objects (corelib/boolean.self).
func (vm *VM) AsBool(o *Object) bool {
	return o != vm.False && o != vm.Nil
}

// Execute parses source as a top-level program and runs it with the lobby
// as self (§4.2.3, §6.1 "execute(source)").
func (vm *VM) Execute(source string) (*Object, error) {
	method, err := vm.Parse(source)
	if err != nil {
		return nil, err
	}
	out := vm.Activate(method, []*Object{vm.Lobby})
	return vm.outcomeToResult(out)
}

// Send looks selector up on receiver; if the slot holds a method, it is
// activated with args, otherwise its value is returned directly (§6.1
// "send(selector, [receiver, args...])"). args must not include receiver.
func (vm *VM) Send(selector string, receiver *Object, args ...*Object) (*Object, error) {
	slot, err := vm.FindSlot(receiver, selector)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, errUnknownMessage(selector)
	}
	switch v := slot.Value.(type) {
	case Mutator:
		dslot, derr := vm.FindSlot(receiver, v.Data)
		if derr != nil {
			return nil, derr
		}
		if dslot == nil {
			return nil, errMutatorWithoutDataSlot(selector)
		}
		if len(args) > 0 {
			dslot.Value = args[0]
			return args[0], nil
		}
		return dslot.Value.(*Object), nil
	case *Object:
		if v.kind == MethodKind {
			out := vm.Activate(v, append([]*Object{receiver}, args...))
			return vm.outcomeToResult(out)
		}
		return v, nil
	default:
		return vm.Nil, nil
	}
}

// outcomeToResult converts the internal Outcome of a top-level activation
// into the (value, error) shape the public API exposes. A ReturnStop
// escaping to the top level is an internal-invariant violation (§7:
// "non-local return ... must never escape the top-level activation") and
// indicates a bug in method-activation bookkeeping, not a user error.
func (vm *VM) outcomeToResult(out Outcome) (*Object, error) {
	switch out.Stop {
	case NoStop:
		return out.Value, nil
	case ErrorStop:
		return nil, out.Err
	case ReturnStop:
		panic(fmt.Sprintf("self: non-local return escaped to top level (target=%v)", out.Target))
	default:
		panic(fmt.Sprintf("self: invalid Stop: %v", out.Stop))
	}
}
