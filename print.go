package self

import (
	"strconv"
	"strings"
)

// PrintObjectForm renders o in the structural printed form of §6.2:
// "(| slot1. slot2. … |)" for a plain object, "(| slots | codes )" for a
// method. This is the form §8.4's parser round-trips check against, and is
// distinct from a value's Self-level printString (defined in corelib),
// which renders for humans rather than for structural inspection.
func PrintObjectForm(o *Object) string {
	var b strings.Builder
	b.WriteString("(|")
	slots := o.Slots()
	for i, sl := range slots {
		if i > 0 {
			b.WriteString(".")
		}
		b.WriteString(" ")
		b.WriteString(printSlot(sl))
	}
	if len(slots) > 0 {
		b.WriteString(" ")
	}
	if o.kind == MethodKind {
		b.WriteString("| ")
		for i, n := range o.code {
			if i > 0 {
				b.WriteString(". ")
			}
			b.WriteString(PrintNode(n))
		}
		b.WriteString(" )")
		return b.String()
	}
	b.WriteString("|)")
	return b.String()
}

// printSlot renders one slot's kind markers: "[:]<name>[*][<-]" (§6.2).
func printSlot(sl Slot) string {
	var b strings.Builder
	if sl.Kind == ArgumentSlot {
		b.WriteString(":")
	}
	b.WriteString(sl.Name)
	if sl.Parent {
		b.WriteString("*")
	}
	if sl.Kind == DataSlot {
		b.WriteString("<-")
	}
	return b.String()
}

// PrintNode renders a code node in the tagged-list form §6.2 describes for
// parser tests: a message prints as "{selector receiver args…}"; an
// implicit receiver prints as "_".
func PrintNode(n Node) string {
	switch v := n.(type) {
	case LitNode:
		return printLiteral(v.Value)
	case MsgNode:
		var b strings.Builder
		b.WriteString("{")
		b.WriteString(v.Selector)
		b.WriteString(" ")
		if v.Receiver == nil {
			b.WriteString("_")
		} else {
			b.WriteString(PrintNode(v.Receiver))
		}
		for _, a := range v.Args {
			b.WriteString(" ")
			b.WriteString(PrintNode(a))
		}
		b.WriteString("}")
		return b.String()
	case MthNode:
		return PrintObjectForm(v.Method)
	case BlkNode:
		return "[" + PrintObjectForm(v.Proto) + "]"
	case RetNode:
		return "^" + PrintNode(v.Expr)
	default:
		return "?"
	}
}

// printLiteral renders the value a LitNode wraps: numbers and strings
// render as source literals, everything else falls back to its own
// structural form.
func printLiteral(v *Object) string {
	switch v.Kind() {
	case IntegerKind:
		return strconv.FormatInt(v.Int(), 10)
	case FloatKind:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case StringKind:
		return "'" + v.Str() + "'"
	default:
		return PrintObjectForm(v)
	}
}
