package self

import (
	"strconv"
	"strings"
	"unicode"
)

// parser turns a token stream into code nodes and prototype objects,
// following the grammar of §4.3. It holds the VM both for constructing
// trait-linked prototypes (blocks need traitsBlock, parse-time constant
// initializers need the lobby) and for materializing computed slot values
// immediately, as the grammar requires.
type parser struct {
	vm   *VM
	toks []tok
	pos  int
}

// Parse compiles source into a runnable top-level method whose single
// parent-argument "self" names the lobby (§4.2.3). The caller activates it
// with the lobby bound into that slot (see vm.go's Execute).
func (vm *VM) Parse(source string) (*Object, error) {
	toks, err := lexAll(source)
	if err != nil {
		return nil, err
	}
	p := &parser{vm: vm, toks: toks}
	nodes, err := p.parseStatements("", false)
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, errSyntax("unexpected trailing input", p.curPos())
	}
	method := newBareObject(MethodKind)
	method.AddArgumentSlot("self", nil, true)
	method.code = nodes
	return method, nil
}

func (p *parser) curTok() tok {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *parser) curPos() int { return p.curTok().Pos }

func (p *parser) next() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

func (p *parser) atEOF() bool { return p.curTok().Kind == tokEOF }

func (p *parser) atPunct(s string) bool {
	t := p.curTok()
	return t.Kind == tokPunct && t.Text == s
}

func (p *parser) atOp(s string) bool {
	t := p.curTok()
	return t.Kind == tokOp && t.Text == s
}

func (p *parser) atOpToken() bool { return p.curTok().Kind == tokOp }

func (p *parser) atKeyword() bool { return p.curTok().Kind == tokKeyword }

// isClose reports whether the parser sits at the closer for a statement
// sequence: a specific punctuator for object/block bodies, or end of input
// for the top-level program (closer == "").
func (p *parser) isClose(closer string) bool {
	if closer == "" {
		return p.atEOF()
	}
	return p.atPunct(closer)
}

// parseStatements implements both the "program" and "body" productions
// (§4.3): a dot-separated sequence of messages, with an optional trailing
// "^ message" as the very last statement when allowReturn is set (blocks
// only; §4.3 "non-local returns").
func (p *parser) parseStatements(closer string, allowReturn bool) ([]Node, error) {
	var nodes []Node
	for {
		if p.isClose(closer) {
			break
		}
		if allowReturn && p.atPunct("^") {
			p.next()
			expr, err := p.parseMessage()
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, RetNode{Expr: expr})
			if p.atPunct(".") {
				p.next()
			}
			if !p.isClose(closer) {
				return nil, errSyntax("non-local return must be the last statement of a block body", p.curPos())
			}
			break
		}
		expr, err := p.parseMessage()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, expr)
		if p.atPunct(".") {
			p.next()
			continue
		}
		break
	}
	return nodes, nil
}

// parseMessage implements "message = binary { kw1 binary { kw2 binary } }":
// a keyword message is one compound selector built from a lowercase-initial
// keyword followed by zero or more uppercase-initial continuations, each
// paired with a binary-level argument. A keyword message with no receiver
// before its first keyword (e.g. "x: x + 1") is an implicit-self send.
func (p *parser) parseMessage() (Node, error) {
	var left Node
	if !p.atKeyword() || startsUpper(p.curTok().Text) {
		var err error
		left, err = p.parseBinary()
		if err != nil {
			return nil, err
		}
	}
	for p.atKeyword() && !startsUpper(p.curTok().Text) {
		var parts []string
		var args []Node
		for {
			kw := p.curTok().Text
			p.next()
			arg, err := p.parseBinary()
			if err != nil {
				return nil, err
			}
			parts = append(parts, kw)
			args = append(args, arg)
			if p.atKeyword() && startsUpper(p.curTok().Text) {
				continue
			}
			break
		}
		left = MsgNode{Receiver: left, Selector: strings.Join(parts, ""), Args: args}
	}
	return left, nil
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// parseBinary implements "binary = unary { OP unary }": left-associative,
// single precedence level, strictly left to right (§8.3's "1 + 2 * 3" = 9).
func (p *parser) parseBinary() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.atOpToken() {
		sel := p.curTok().Text
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = MsgNode{Receiver: left, Selector: sel, Args: []Node{right}}
	}
	return left, nil
}

// parseUnary implements "unary = primary { NAME }": a chain of zero-argument
// messages, each sent explicitly to the previous result.
func (p *parser) parseUnary() (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.curTok().Kind == tokIdent {
		name := p.curTok().Text
		p.next()
		left = MsgNode{Receiver: left, Selector: name}
	}
	return left, nil
}

// parsePrimary implements "primary = NUMBER | STRING | object | block", plus
// a bare NAME, which is an implicit-self message send (§4.2 "a missing
// receiver becomes the current activation").
func (p *parser) parsePrimary() (Node, error) {
	t := p.curTok()
	switch t.Kind {
	case tokNumber:
		p.next()
		return p.numberLit(t)
	case tokString:
		p.next()
		s, err := unescapeString(t.Text, t.Pos)
		if err != nil {
			return nil, err
		}
		return LitNode{Value: NewString(s)}, nil
	case tokIdent:
		p.next()
		return MsgNode{Selector: t.Text}, nil
	case tokPunct:
		switch t.Text {
		case "(":
			return p.parseObject()
		case "[":
			return p.parseBlock()
		}
	}
	return nil, errSyntax("expected an expression", t.Pos)
}

func (p *parser) numberLit(t tok) (Node, error) {
	if t.Float {
		f, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, errSyntax("invalid float literal", t.Pos)
		}
		return LitNode{Value: NewFloat(f)}, nil
	}
	n, err := strconv.ParseInt(t.Text, 10, 64)
	if err != nil {
		return nil, errSyntax("invalid integer literal", t.Pos)
	}
	return LitNode{Value: NewInteger(n)}, nil
}

// parseObject implements "object = ( [slots] [body] )". A body-less object
// is a plain prototype carrying exactly its declared slots (§8.3's
// "Parse (| a |) ... two slots"). A body turns it into a method, whose
// slot 0 is the synthesized "self" parent-argument (§3.4); evaluating it in
// place (Mth) versus activating it as a callable (stored via a constant
// slot's "=") is decided by the caller (§9 "Distinguishing methods from
// parenthesized expressions").
func (p *parser) parseObject() (Node, error) {
	open := p.curPos()
	p.next() // "("
	declared, err := p.parseOptionalSlotsList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatements(")", false)
	if err != nil {
		return nil, err
	}
	if !p.atPunct(")") {
		return nil, errSyntax("unterminated object", open)
	}
	p.next()

	if len(body) == 0 {
		obj := newBareObject(ObjectKind)
		appendDeclaredSlots(obj, declared)
		return LitNode{Value: obj}, nil
	}

	method := newBareObject(MethodKind)
	method.AddArgumentSlot("self", nil, true)
	appendDeclaredSlots(method, declared)
	method.code = body
	return MthNode{Method: method}, nil
}

// parseBlock implements "block = [ [slots] [body] ]", producing the fixed
// two-tier structure of §3.4 (block method) and §3.5 (block object): Eval of
// the returned BlkNode clones the object and binds its lexicalParent
// argument slot to the activation in which the block literal executes.
func (p *parser) parseBlock() (Node, error) {
	open := p.curPos()
	p.next() // "["
	declared, err := p.parseOptionalSlotsList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseStatements("]", true)
	if err != nil {
		return nil, err
	}
	if !p.atPunct("]") {
		return nil, errSyntax("unterminated block", open)
	}
	p.next()

	method := newBareObject(MethodKind)
	method.AddArgumentSlot(blockParentSlotName, nil, true)
	arity := 0
	for _, sl := range declared {
		appendSlot(method, sl)
		if sl.Kind == ArgumentSlot {
			arity++
		}
	}
	if len(body) == 0 {
		body = []Node{LitNode{Value: p.vm.Nil}}
	}
	method.code = body

	obj := newBareObject(ObjectKind)
	obj.AddConstantSlot("parent", p.vm.TraitsBlock, true)
	obj.AddArgumentSlot("lexicalParent", p.vm.Nil, false)
	obj.AddConstantSlot(blockValueSelector(arity), method, false)
	return BlkNode{Proto: obj}, nil
}

// blockValueSelector names the constant slot a block object exposes for
// invocation, arity-encoded per §3.5: "value" for 0 args, "value:" for 1,
// "value:With:...:With:" for N >= 2.
func blockValueSelector(arity int) string {
	if arity == 0 {
		return "value"
	}
	var b strings.Builder
	b.WriteString("value:")
	for i := 1; i < arity; i++ {
		b.WriteString("With:")
	}
	return b.String()
}

func appendSlot(o *Object, sl Slot) {
	o.slots.append(sl)
	if sl.Kind == DataSlot {
		o.ensureMutator(sl.Name)
	}
}

func appendDeclaredSlots(o *Object, declared []Slot) {
	for _, sl := range declared {
		appendSlot(o, sl)
	}
}

// parseOptionalSlotsList implements "slots = | slot { . slot } [ . ] |",
// plus the argument-only shorthand ":a :b |", returning nil if neither is
// present.
func (p *parser) parseOptionalSlotsList() ([]Slot, error) {
	if p.atPunct(":") {
		var out []Slot
		for p.atPunct(":") {
			p.next()
			t := p.curTok()
			if t.Kind != tokIdent {
				return nil, errSyntax("expected an argument name", t.Pos)
			}
			p.next()
			out = append(out, Slot{Name: t.Text, Kind: ArgumentSlot, Value: p.vm.Nil})
		}
		if !p.atPunct("|") {
			return nil, errSyntax("expected | after argument names", p.curPos())
		}
		p.next()
		return out, nil
	}
	if !p.atPunct("|") {
		return nil, nil
	}
	p.next()
	var out []Slot
	for {
		if p.atPunct("|") {
			break
		}
		sl, err := p.parseSlot()
		if err != nil {
			return nil, err
		}
		out = append(out, sl)
		if p.atPunct(".") {
			p.next()
			continue
		}
		break
	}
	if !p.atPunct("|") {
		return nil, errSyntax("expected | to close slot list", p.curPos())
	}
	p.next()
	return out, nil
}

// parseSlot implements "slot = [:] selector [*] [ (= message) | (<- message) ]"
// together with the slot construction rules of §4.3.
func (p *parser) parseSlot() (Slot, error) {
	pos := p.curPos()
	isArg := false
	if p.atPunct(":") {
		isArg = true
		p.next()
	}
	name, params, isKeyword, err := p.parseSelector()
	if err != nil {
		return Slot{}, err
	}
	parentFlag := false
	if p.atOp("*") {
		parentFlag = true
		p.next()
	}

	const (
		initNone = iota
		initConstant
		initData
	)
	init := initNone
	switch {
	case p.atOp("="):
		p.next()
		init = initConstant
	case p.atOp("<-"):
		p.next()
		init = initData
	}

	if isArg {
		if init == initData {
			return Slot{}, errSyntax("argument slot cannot use <-", pos)
		}
		if isKeyword {
			return Slot{}, errSyntax("argument slot selector must be a bare name or operator", pos)
		}
		val := SlotValue(p.vm.Nil)
		if init == initConstant {
			rhs, err := p.parseMessage()
			if err != nil {
				return Slot{}, err
			}
			v, err := p.evalAtParseTime(rhs)
			if err != nil {
				return Slot{}, err
			}
			val = v
		}
		return Slot{Name: name, Kind: ArgumentSlot, Parent: parentFlag, Value: val}, nil
	}

	hasParams := false
	for _, pn := range params {
		if pn != "" {
			hasParams = true
		}
	}

	if init == initNone {
		return Slot{Name: name, Kind: DataSlot, Parent: parentFlag, Value: p.vm.Nil}, nil
	}

	rhs, err := p.parseMessage()
	if err != nil {
		return Slot{}, err
	}

	if init == initData {
		if hasParams {
			return Slot{}, errSyntax("data slot initializer cannot take inline parameters", pos)
		}
		v, err := p.evalAtParseTime(rhs)
		if err != nil {
			return Slot{}, err
		}
		return Slot{Name: name, Kind: DataSlot, Parent: parentFlag, Value: v}, nil
	}

	// init == initConstant.
	if hasParams {
		method, err := p.methodFromNode(rhs, params)
		if err != nil {
			return Slot{}, err
		}
		return Slot{Name: name, Kind: ConstantSlot, Parent: parentFlag, Value: method}, nil
	}

	switch n := rhs.(type) {
	case LitNode:
		return Slot{Name: name, Kind: ConstantSlot, Parent: parentFlag, Value: n.Value}, nil
	case MthNode:
		return Slot{Name: name, Kind: ConstantSlot, Parent: parentFlag, Value: n.Method}, nil
	default:
		v, err := p.evalAtParseTime(rhs)
		if err != nil {
			return Slot{}, err
		}
		return Slot{Name: name, Kind: ConstantSlot, Parent: parentFlag, Value: v}, nil
	}
}

// parseSelector implements "selector = NAME | OP [NAME] | kw1 [NAME] { kw2 [NAME] }",
// returning the compound name, the per-part inline parameter names (empty
// strings where a part carried none), and whether it is a keyword form.
func (p *parser) parseSelector() (string, []string, bool, error) {
	t := p.curTok()
	switch t.Kind {
	case tokIdent:
		p.next()
		return t.Text, nil, false, nil
	case tokOp:
		p.next()
		var params []string
		if p.curTok().Kind == tokIdent {
			params = append(params, p.curTok().Text)
			p.next()
		}
		return t.Text, params, false, nil
	case tokKeyword:
		var parts, params []string
		for p.curTok().Kind == tokKeyword {
			kw := p.curTok().Text
			p.next()
			parts = append(parts, kw)
			if p.curTok().Kind == tokIdent {
				params = append(params, p.curTok().Text)
				p.next()
			} else {
				params = append(params, "")
			}
		}
		named, empty := 0, 0
		for _, pn := range params {
			if pn == "" {
				empty++
			} else {
				named++
			}
		}
		if named > 0 && empty > 0 {
			return "", nil, false, errSyntax("inconsistent inline-parameter lists across keyword parts", t.Pos)
		}
		if named == 0 {
			params = nil
		}
		return strings.Join(parts, ""), params, true, nil
	default:
		return "", nil, false, errSyntax("expected a selector", t.Pos)
	}
}

// methodFromNode synthesizes the argument-bearing method a "=" slot with
// inline parameter names requires (§4.3): if the RHS already compiled to an
// object body (Mth), its argument slots are injected after "self"; otherwise
// a method is built whose sole code node is the RHS expression.
func (p *parser) methodFromNode(node Node, params []string) (*Object, error) {
	var method *Object
	if mth, ok := node.(MthNode); ok {
		method = mth.Method
	} else {
		method = newBareObject(MethodKind)
		method.AddArgumentSlot("self", nil, true)
		method.code = []Node{node}
	}
	insertArgSlotsAfterSelf(method, params)
	return method, nil
}

// insertArgSlotsAfterSelf rebuilds m's slot list as [self, params..., rest...].
func insertArgSlotsAfterSelf(m *Object, params []string) {
	if len(params) == 0 {
		return
	}
	old := m.slots.list
	self := old[0]
	rest := append([]Slot(nil), old[1:]...)
	out := make([]Slot, 0, len(old)+len(params))
	out = append(out, self)
	for _, name := range params {
		out = append(out, Slot{Name: name, Kind: ArgumentSlot})
	}
	out = append(out, rest...)
	m.slots = ordSlots{list: out}
}

// evalAtParseTime runs node once against the lobby, used for every slot
// initializer the grammar requires to execute immediately (§4.3: "<- expr:
// ... the RHS is always executed at parse time"; "= expr: otherwise the RHS
// is executed at parse time in the lobby").
func (p *parser) evalAtParseTime(node Node) (*Object, error) {
	out := node.Eval(p.vm, p.vm.Lobby)
	switch out.Stop {
	case NoStop:
		return out.Value, nil
	case ErrorStop:
		return nil, out.Err
	default:
		return nil, errSyntax("non-local return used outside a block", p.curPos())
	}
}
