package self

import "testing"

// TestBoundaryScenarios runs the concrete end-to-end scenarios of §8.3, each
// against a fresh VM, grounded on the teacher's table-driven number/message
// tests.
func TestBoundaryScenarios(t *testing.T) {
	t.Run("Add", func(t *testing.T) {
		_, r := runSource(t, "3 + 4")
		wantInt(t, r, 7)
	})

	t.Run("LeftToRight", func(t *testing.T) {
		_, r := runSource(t, "1 + 2 * 3")
		wantInt(t, r, 9)
	})

	t.Run("Parens", func(t *testing.T) {
		_, r := runSource(t, "(1 + 2) * (3 - 4)")
		wantInt(t, r, -3)
	})

	t.Run("StringSlice", func(t *testing.T) {
		_, r := runSource(t, "'abc' from: 1 To: 2")
		wantString(t, r, "b")
	})

	t.Run("IfTrueFalse", func(t *testing.T) {
		_, r := runSource(t, "true ifTrue: [5] False: [6]")
		wantInt(t, r, 5)
	})

	t.Run("WhileFalse", func(t *testing.T) {
		_, r := runSource(t, "(| x <- 0. m = ([x = 3] whileFalse: [x: x + 1]. x) |) m")
		wantInt(t, r, 3)
	})

	t.Run("NonLocalReturn", func(t *testing.T) {
		_, r := runSource(t, "(| m = ([^42] value. 1) |) m")
		wantInt(t, r, 42)
	})

	t.Run("VectorChain", func(t *testing.T) {
		_, r := runSource(t, "(| m = (1 & 2 & 3 & 4) |) m printString")
		wantString(t, r, "(1, 2, 3, 4)")
	})

	t.Run("Factorial", func(t *testing.T) {
		vm, _ := runSource(t, `
traitsNumber _AddSlotsIfAbsent: (|
    factorial = (self = 0 ifTrue: [1] False: [self * (self - 1) factorial])
|).
nil`)
		r, err := vm.Send("factorial", NewInteger(6))
		if err != nil {
			t.Fatalf("send factorial: %v", err)
		}
		wantInt(t, r, 720)
	})

	t.Run("Fibonacci", func(t *testing.T) {
		vm, _ := runSource(t, `
traitsNumber _AddSlotsIfAbsent: (|
    fibonacci = (self < 2 ifTrue: [self] False: [(self - 1) fibonacci + (self - 2) fibonacci])
|).
nil`)
		r, err := vm.Send("fibonacci", NewInteger(25))
		if err != nil {
			t.Fatalf("send fibonacci: %v", err)
		}
		wantInt(t, r, 75025)
	})

	t.Run("SlotInspection", func(t *testing.T) {
		vm, r := runSource(t, "(| a |)")
		slots := r.Slots()
		if len(slots) != 2 {
			t.Fatalf("expected 2 slots, got %d (%v)", len(slots), slots)
		}
		a := r.LocalSlot("a")
		if a == nil {
			t.Fatal("no slot a")
		}
		if a.Kind != DataSlot {
			t.Errorf("slot a: expected DataSlot, got %v", a.Kind)
		}
		if v, ok := a.Value.(*Object); !ok || v != vm.Nil {
			t.Errorf("slot a: expected value nil, got %v", a.Value)
		}
		mut := r.LocalSlot("a:")
		if mut == nil {
			t.Fatal("no slot a:")
		}
		if mut.Kind != ConstantSlot {
			t.Errorf("slot a:: expected ConstantSlot, got %v", mut.Kind)
		}
		m, ok := mut.Value.(Mutator)
		if !ok || m.Data != "a" {
			t.Errorf("slot a:: expected mutator(a), got %v", mut.Value)
		}
	})

	t.Run("AmbiguousSend", func(t *testing.T) {
		wantErrorKind(t, "(| p1* <- (| a = 1 |). p2* <- (| a = 2 |) |) a", AmbiguousMessageSend)
	})

	t.Run("UnknownMessage", func(t *testing.T) {
		wantErrorKind(t, "3 thisSelectorDoesNotExist", UnknownMessageSend)
	})

	t.Run("UnknownPrimitive", func(t *testing.T) {
		wantErrorKind(t, "3 _Qux", UnknownPrimitive)
	})
}
