package self

import "github.com/zephyrtronium/contains"

// FindSlot implements the findSlot(obj, name) operation of §4.1: it returns
// the unique slot named name reachable from recv, honoring inheritance
// through parent-flagged slots, or an error identifying the failure.
//
// Non-object receivers (numbers, strings, vectors) route to their shared
// trait object first (§4.1 "slot source for non-object values"); once
// inside the walk, a parent slot whose value is not objectish is treated as
// having no further slots (§3.2), matching Self rather than routing parent
// values back through the trait tables.
func (vm *VM) FindSlot(recv *Object, name string) (*Slot, error) {
	start := vm.slotSource(recv)
	if start == nil {
		return nil, nil
	}
	var visited contains.Set
	return vm.lookup(start, name, &visited)
}

// slotSource returns the object whose own slots should be scanned first
// when looking something up on recv.
func (vm *VM) slotSource(recv *Object) *Object {
	switch recv.kind {
	case IntegerKind, FloatKind:
		return vm.TraitsNumber
	case StringKind:
		return vm.TraitsString
	case VectorKind:
		return vm.TraitsVector
	default:
		return recv
	}
}

// lookup performs the cycle-safe tree walk described in §4.1. It returns
// (slot, nil) on success, (nil, nil) for "not found", and a non-nil error
// for UnknownMessageSend's sibling failure, AmbiguousMessageSend.
func (vm *VM) lookup(obj *Object, name string, visited *contains.Set) (*Slot, error) {
	if obj == nil {
		return nil, nil
	}
	if !visited.Add(obj.UniqueID()) {
		// Already visited on this walk: cycle, treat as not found here.
		return nil, nil
	}
	if s := obj.LocalSlot(name); s != nil {
		return s, nil
	}
	var found *Slot
	for i := 0; i < obj.slots.len(); i++ {
		sl := obj.slots.at(i)
		if !sl.Parent {
			continue
		}
		parent, ok := sl.Value.(*Object)
		if !ok || !parent.IsObjectish() {
			// A non-object parent value is treated as having no further
			// slots (§3.2); Mutator or nil values fall in here too.
			continue
		}
		got, err := vm.lookup(parent, name, visited)
		if err != nil {
			return nil, err
		}
		if got == nil {
			continue
		}
		if found == nil {
			found = got
		} else if found != got {
			return nil, &SelfError{Kind: AmbiguousMessageSend, Name: name}
		}
	}
	return found, nil
}
