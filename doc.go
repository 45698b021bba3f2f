/*
Package self implements the core of a Self-like prototype-based object
language: a value model of slot-bearing objects, a cycle-safe inheritance
lookup engine, a tree-walking evaluator with method activation, block
closures and non-local returns, and a parser for Self source text.

Self is a prototype-based language in the lineage of Smalltalk: there are no
classes, only objects with named slots, and every object may declare other
objects as parents to inherit their slots. Cloning an object produces a new
object with its own copy of each of the original's slots.

A minimal session looks like:

	vm := self.NewVM()
	result, err := vm.Execute(`3 + 4`)

Objects are written with a pair of pipes enclosing their slots:

	(| x <- 0. double = (x + x) |)

A slot ending in `<-` holds mutable data and receives a synthesized `name:`
mutator slot; a slot defined with `=` is constant. Blocks are written in
square brackets and close over the activation in which they were created:

	(| x <- 1. m = ([x] value) |) m

Methods activate by cloning themselves and binding their argument slots,
including a synthetic `self` (or, for blocks, `(parent)`) in slot zero; this
is also how a non-local return finds its target, by walking that chain back
to the nearest enclosing non-block method.

The interpreter is single-threaded and strictly synchronous: one VM owns all
of its prototype objects and its primitive registry, and is not safe for
concurrent use from multiple goroutines. Separate VMs share no state.
*/
package self
