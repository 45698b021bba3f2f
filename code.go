package self

// Node is a single code node, the evaluator's unit of work (§3.6, §4.2).
// Five variants exist: Lit, Mth, Blk, Msg, Ret.
type Node interface {
	Eval(vm *VM, act *Object) Outcome
}

// LitNode returns its wrapped value unchanged.
type LitNode struct {
	Value *Object
}

// Eval implements Node.
func (n LitNode) Eval(vm *VM, act *Object) Outcome {
	return ok(n.Value)
}

// MthNode is a method-literal wrapper: executing it evaluates the wrapped
// method's code list inline in the current activation, rather than
// activating the method as a callable (§4.2 "Mth(m)"). This is how a
// parenthesized object with a body but no slots behaves as a grouped
// expression.
type MthNode struct {
	Method *Object
}

// Eval implements Node.
func (n MthNode) Eval(vm *VM, act *Object) Outcome {
	return vm.evalCodeList(n.Method.code, act)
}

// BlkNode clones its block prototype and binds the clone's lexicalParent to
// the current activation (§4.2 "Blk(prototype)").
type BlkNode struct {
	Proto *Object
}

// Eval implements Node.
func (n BlkNode) Eval(vm *VM, act *Object) Outcome {
	clone := n.Proto.Clone()
	clone.slots.at(blockLexicalParentSlot).Value = act
	return ok(clone)
}

// MsgNode performs a message send (§4.2 "Message send semantics"). A nil
// Receiver means implicit self: the receiver is the current activation.
type MsgNode struct {
	Receiver Node
	Selector string
	Args     []Node
}

// Eval implements Node.
func (n MsgNode) Eval(vm *VM, act *Object) Outcome {
	var recv *Object
	explicit := n.Receiver != nil
	if explicit {
		o := n.Receiver.Eval(vm, act)
		if o.Failed() {
			return o
		}
		recv = o.Value
	} else {
		recv = act
	}

	args := make([]*Object, len(n.Args))
	for i, a := range n.Args {
		o := a.Eval(vm, act)
		if o.Failed() {
			return o
		}
		args[i] = o.Value
	}

	if isPrimitiveSelector(n.Selector) {
		fn, found := vm.primitives[n.Selector]
		if !found {
			return errStop(errUnknownPrimitive(n.Selector))
		}
		v, err := fn(vm, append([]*Object{recv}, args...))
		if err != nil {
			return errStop(err)
		}
		return ok(v)
	}

	slot, lerr := vm.FindSlot(recv, n.Selector)
	if lerr != nil {
		return errStop(lerr.(*SelfError))
	}
	if slot == nil {
		return errStop(errUnknownMessage(n.Selector))
	}

	switch v := slot.Value.(type) {
	case Mutator:
		dslot, derr := vm.FindSlot(recv, v.Data)
		if derr != nil {
			return errStop(derr.(*SelfError))
		}
		if dslot == nil {
			return errStop(errMutatorWithoutDataSlot(n.Selector))
		}
		var assigned *Object
		if len(args) > 0 {
			assigned = args[0]
		} else {
			assigned = vm.Nil
		}
		dslot.Value = assigned
		return ok(assigned)
	case *Object:
		if v.kind == MethodKind {
			selfArg, serr := vm.resolveSelfArg(recv, explicit)
			if serr != nil {
				return errStop(serr)
			}
			return vm.Activate(v, append([]*Object{selfArg}, args...))
		}
		return ok(v)
	default:
		return ok(vm.Nil)
	}
}

// resolveSelfArg implements the self-argument rule of §4.2 step 4: for
// explicit sends the self argument is the already-evaluated receiver; for
// implicit sends it is findSlot(receiver, "self"), the enclosing instance.
func (vm *VM) resolveSelfArg(recv *Object, explicit bool) (*Object, *SelfError) {
	if explicit {
		return recv, nil
	}
	s, err := vm.FindSlot(recv, "self")
	if err != nil {
		return nil, err.(*SelfError)
	}
	if s == nil {
		return recv, nil
	}
	if so, ok := s.Value.(*Object); ok {
		return so, nil
	}
	return recv, nil
}

// RetNode raises a non-local return targeted at the closest enclosing
// regular method (§4.2 "Ret(expr)", §4.2.2).
type RetNode struct {
	Expr Node
}

// Eval implements Node.
func (n RetNode) Eval(vm *VM, act *Object) Outcome {
	o := n.Expr.Eval(vm, act)
	if o.Failed() {
		return o
	}
	return retStop(o.Value, nonLocalReturnTarget(act))
}

// nonLocalReturnTarget walks act's slot 0 while it names the block
// parent-argument "(parent)", stopping at the first activation whose slot 0
// is the regular-method "self" argument (§4.2.2).
func nonLocalReturnTarget(act *Object) *Object {
	cur := act
	for cur != nil {
		s0 := cur.SlotAt(0)
		if s0 == nil || s0.Name != blockParentSlotName {
			return cur
		}
		parent, ok := s0.Value.(*Object)
		if !ok {
			return cur
		}
		cur = parent
	}
	return cur
}

// evalCodeList runs a method's code nodes in turn within act, implementing
// steps 4-5 of §4.2.1 without the clone-and-bind steps (used both by
// Activate and by MthNode's in-place execution).
func (vm *VM) evalCodeList(code []Node, act *Object) Outcome {
	var last Outcome
	last.Value = vm.Nil
	for _, node := range code {
		last = node.Eval(vm, act)
		if last.Stop == ErrorStop {
			return last
		}
		if last.Stop == ReturnStop {
			if last.Target == act {
				return ok(last.Value)
			}
			return last
		}
	}
	return last
}

// Activate performs method activation (§4.2.1). args is [recv, arg1, ...,
// argK], where recv is already the resolved self-argument (the evaluated
// receiver for explicit sends, or the enclosing instance for implicit
// sends; for a block's "value"-family selectors, recv is always the block
// object itself).
func (vm *VM) Activate(method *Object, args []*Object) Outcome {
	clone := method.Clone()
	isBlock := isBlockMethod(method)

	for i := 0; i < len(args) && i < clone.slots.len(); i++ {
		clone.slots.at(i).Value = args[i]
	}

	if isBlock {
		// Rebind (parent) to the activation where the block was created,
		// captured in the block object's lexicalParent slot (§4.2.1 step
		// 3). recv (args[0]) is the block object, whose lexicalParent
		// occupies slot index 1 by construction (§3.5).
		blockObj := args[0]
		lex := blockObj.SlotAt(blockLexicalParentSlot)
		if lex != nil {
			clone.slots.at(0).Value = lex.Value
		} else {
			clone.slots.at(0).Value = vm.Nil
		}
	}

	return vm.evalCodeList(clone.code, clone)
}

// isBlockMethod reports whether m's structural slot 0 is the block
// parent-argument "(parent)" rather than the regular-method "self" (§3.4).
func isBlockMethod(m *Object) bool {
	s0 := m.SlotAt(0)
	return s0 != nil && s0.Name == blockParentSlotName
}

const blockParentSlotName = "(parent)"

// Fixed slot indices of a block object (§3.5).
const (
	blockParentConstSlot   = 0
	blockLexicalParentSlot = 1
	blockValueSlot         = 2
)

func isPrimitiveSelector(sel string) bool {
	return len(sel) > 0 && sel[0] == '_'
}
