package self

import "testing"

// newTestVM returns a fresh, fully initialized VM. Each test gets its own
// instance since, unlike the teacher's shared TestingVM, bootstrap execution
// here is cheap enough (six short embedded files) that isolation is worth
// more than reuse: tests that add slots to a trait object must not leak
// into their neighbors.
func newTestVM() *VM {
	return NewVM()
}

// runSource parses and executes source against a fresh VM and fails the
// test immediately if execution errors.
func runSource(t *testing.T, source string) (*VM, *Object) {
	t.Helper()
	vm := newTestVM()
	result, err := vm.Execute(source)
	if err != nil {
		t.Fatalf("could not execute %q: %v", source, err)
	}
	return vm, result
}

// wantInt fails the test unless result is an integer equal to want.
func wantInt(t *testing.T, result *Object, want int64) {
	t.Helper()
	if result.Kind() != IntegerKind {
		t.Fatalf("expected integer, got %s (%v)", result.Kind(), result)
	}
	if result.Int() != want {
		t.Errorf("expected %d, got %d", want, result.Int())
	}
}

// wantString fails the test unless result is a string equal to want.
func wantString(t *testing.T, result *Object, want string) {
	t.Helper()
	if result.Kind() != StringKind {
		t.Fatalf("expected string, got %s (%v)", result.Kind(), result)
	}
	if result.Str() != want {
		t.Errorf("expected %q, got %q", want, result.Str())
	}
}

// wantErrorKind runs source expecting execution to fail with kind.
func wantErrorKind(t *testing.T, source string, kind ErrorKind) {
	t.Helper()
	vm := newTestVM()
	_, err := vm.Execute(source)
	if err == nil {
		t.Fatalf("%q: expected error, got none", source)
	}
	serr, ok := err.(*SelfError)
	if !ok {
		t.Fatalf("%q: expected *SelfError, got %T (%v)", source, err, err)
	}
	if serr.Kind != kind {
		t.Errorf("%q: expected %s, got %s (%v)", source, kind, serr.Kind, err)
	}
}
