package self

import "testing"

// TestMutatorInvariant checks §8.1's "every data slot has a sibling name:
// mutator" property for a slot added by AddDataSlot (the parser's case is
// covered by the SlotInspection boundary scenario).
func TestMutatorInvariant(t *testing.T) {
	o := NewObject()
	o.AddDataSlot("x", NewInteger(1), false)

	mut := o.LocalSlot("x:")
	if mut == nil {
		t.Fatal("no x: slot after AddDataSlot")
	}
	if mut.Kind != ConstantSlot {
		t.Errorf("x: expected ConstantSlot, got %v", mut.Kind)
	}
	m, ok := mut.Value.(Mutator)
	if !ok || m.Data != "x" {
		t.Errorf("x: expected mutator(x), got %v", mut.Value)
	}
}

// TestCloneIndependence checks §8.1's clone-independence invariant: mutating
// a data slot on a clone must not affect the original.
func TestCloneIndependence(t *testing.T) {
	orig := NewObject()
	orig.AddDataSlot("x", NewInteger(1), false)

	clone := orig.Clone()
	clone.LocalSlot("x").Value = NewInteger(2)

	got := orig.LocalSlot("x").Value.(*Object)
	if got.Int() != 1 {
		t.Errorf("mutating clone changed original: x = %d", got.Int())
	}
}

// TestLookupCycleSafe checks §8.1's cycle-safety invariant and §9's note
// that the test suite exercises two objects each pointing at the other.
func TestLookupCycleSafe(t *testing.T) {
	vm := newTestVM()
	a := NewObject()
	b := NewObject()
	a.AddConstantSlot("p", b, true)
	b.AddConstantSlot("p", a, true)

	_, err := vm.FindSlot(a, "nonexistent")
	if err == nil {
		t.Fatal("expected UnknownMessageSend, got nil")
	}
	serr, ok := err.(*SelfError)
	if !ok || serr.Kind != UnknownMessageSend {
		t.Errorf("expected UnknownMessageSend, got %v", err)
	}
}

// TestLocalShadowsInherited checks §8.1's shadowing invariant.
func TestLocalShadowsInherited(t *testing.T) {
	_, r := runSource(t, "(| p* <- (| a = 1 |). a = 2 |) a")
	wantInt(t, r, 2)
}

// TestEmptyMethodAndBlock check §8.2's empty-body laws.
func TestEmptyMethodAndBlock(t *testing.T) {
	t.Run("EmptyMethod", func(t *testing.T) {
		vm, r := runSource(t, "")
		if r != vm.Nil {
			t.Fatalf("expected nil singleton, got %v", r)
		}
	})

	t.Run("EmptyBlock", func(t *testing.T) {
		vm, r := runSource(t, "[] value")
		if r != vm.Nil {
			t.Errorf("expected nil, got %v", r)
		}
	})
}

// TestGroupingLaw checks §8.2's "(| x = e |) x equals executing e" law for a
// handful of side-effect-free expressions.
func TestGroupingLaw(t *testing.T) {
	cases := []string{
		"3 + 4",
		"'ab' , 'cd'",
		"1 + 2 * 3",
	}
	for _, e := range cases {
		direct, err := newTestVM().Execute(e)
		if err != nil {
			t.Fatalf("%q: %v", e, err)
		}
		grouped, err := newTestVM().Execute("(| x = " + e + " |) x")
		if err != nil {
			t.Fatalf("(| x = %s |) x: %v", e, err)
		}
		if direct.Kind() != grouped.Kind() {
			t.Fatalf("%q: kind mismatch %s vs %s", e, direct.Kind(), grouped.Kind())
		}
		switch direct.Kind() {
		case IntegerKind:
			if direct.Int() != grouped.Int() {
				t.Errorf("%q: %d != %d", e, direct.Int(), grouped.Int())
			}
		case StringKind:
			if direct.Str() != grouped.Str() {
				t.Errorf("%q: %q != %q", e, direct.Str(), grouped.Str())
			}
		}
	}
}

// TestCloneLaws checks §8.2's "n clone = n" law for each immutable kind.
func TestCloneLaws(t *testing.T) {
	vm := newTestVM()

	n := NewInteger(5)
	if c, err := vm.Send("clone", n); err != nil || c != n {
		t.Errorf("integer clone: got %v, %v", c, err)
	}

	s := NewString("hi")
	if c, err := vm.Send("clone", s); err != nil || c != s {
		t.Errorf("string clone: got %v, %v", c, err)
	}

	if c, err := vm.Send("clone", vm.Nil); err != nil || c != vm.Nil {
		t.Errorf("nil clone: expected the nil singleton itself, got %v, %v", c, err)
	}
	if c, err := vm.Send("clone", vm.True); err != nil || c != vm.True {
		t.Errorf("true clone: expected the true singleton itself, got %v, %v", c, err)
	}
}
