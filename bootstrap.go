package self

import "embed"

// corelib holds the Self source that grows the primitive traits into usable
// objects (§6.4): arithmetic and comparison on numbers, control flow on
// nil/true/false, looping on blocks, and the remaining string and vector
// operations. Everything in here is ordinary Self source evaluated against
// the lobby; none of it has special status once loaded.
//
//go:embed corelib/*.self
var corelib embed.FS

// bootFiles lists the embedded sources in the order they are evaluated.
// Order only matters for a file's own top-level statements; selectors one
// file defines may freely be used from inside method bodies in a file
// loaded earlier, since a method body is not evaluated until it is sent.
var bootFiles = []string{
	"corelib/number.self",
	"corelib/boolean.self",
	"corelib/block.self",
	"corelib/string.self",
	"corelib/vector.self",
	"corelib/lobby.self",
}

// runBootstrap evaluates the embedded core library against the lobby,
// filling in the trait objects and nil/true/false, which Initialize creates
// with no slots of their own (§3.7, §6.1). A failure here means the embedded
// source itself is
// broken, not a user error, so it panics rather than returning an error.
func (vm *VM) runBootstrap() {
	for _, name := range bootFiles {
		src, err := corelib.ReadFile(name)
		if err != nil {
			panic("self: missing bootstrap source " + name + ": " + err.Error())
		}
		if _, err := vm.Execute(string(src)); err != nil {
			panic("self: bootstrap " + name + " failed: " + err.Error())
		}
	}
}
