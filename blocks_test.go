package self

import "testing"

// TestLexicalCaptureReadsEnclosingLocal exercises §9's open question
// scenario: a block reads an enclosing method's local through inherited
// lookup. The suite follows the documented resolution and expects 13.
func TestLexicalCaptureReadsEnclosingLocal(t *testing.T) {
	_, r := runSource(t, "(| x = 13. m = ([x] value) |) m")
	wantInt(t, r, 13)
}

// TestLexicalCaptureWrite checks that a block can also assign into an
// enclosing method's data slot through the mutator it inherits.
func TestLexicalCaptureWrite(t *testing.T) {
	_, r := runSource(t, "(| x <- 0. m = ([x: 5] value. x) |) m")
	wantInt(t, r, 5)
}

// TestNonLocalReturnSkipsRemainingStatements checks that a block's ^ return
// unwinds straight to the enclosing method, discarding later statements in
// that method's body.
func TestNonLocalReturnSkipsRemainingStatements(t *testing.T) {
	_, r := runSource(t, "(| m = ([^1] value. 2. 3) |) m")
	wantInt(t, r, 1)
}

// TestNonLocalReturnThroughNestedBlocks checks that ^ unwinds through more
// than one level of block nesting to the nearest enclosing method.
func TestNonLocalReturnThroughNestedBlocks(t *testing.T) {
	_, r := runSource(t, "(| m = ([[^9] value] value. 99) |) m")
	wantInt(t, r, 9)
}

// TestWhileTrueLoop checks the counterpart to the whileFalse: boundary
// scenario.
func TestWhileTrueLoop(t *testing.T) {
	_, r := runSource(t, "(| x <- 0. m = ([x < 5] whileTrue: [x: x + 1]. x) |) m")
	wantInt(t, r, 5)
}

// TestToDoCountsInclusive checks the number loop family added in the core
// library.
func TestToDoCountsInclusive(t *testing.T) {
	_, r := runSource(t, "(| sum <- 0. m = (1 to: 4 Do: [:i | sum: sum + i]. sum) |) m")
	wantInt(t, r, 10)
}

// TestVectorIteration exercises do:/select:/collect:/join: together.
func TestVectorIteration(t *testing.T) {
	t.Run("Do", func(t *testing.T) {
		_, r := runSource(t, "(| sum <- 0. v = (1 & 2 & 3). m = (v do: [:x | sum: sum + x]. sum) |) m")
		wantInt(t, r, 6)
	})

	t.Run("Select", func(t *testing.T) {
		_, r := runSource(t, "(| v = (1 & 2 & 3 & 4). m = (v select: [:x | x > 2]) |) m printString")
		wantString(t, r, "(3, 4)")
	})

	t.Run("Collect", func(t *testing.T) {
		_, r := runSource(t, "(| v = (1 & 2 & 3). m = (v collect: [:x | x * 2]) |) m printString")
		wantString(t, r, "(2, 4, 6)")
	})
}
