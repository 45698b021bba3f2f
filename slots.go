package self

import "fmt"

// SlotKind discriminates how a slot was declared (§3.2).
type SlotKind uint8

// Slot kinds.
const (
	ConstantSlot SlotKind = iota
	DataSlot
	ArgumentSlot
)

func (k SlotKind) String() string {
	switch k {
	case ConstantSlot:
		return "Constant"
	case DataSlot:
		return "Data"
	case ArgumentSlot:
		return "Argument"
	default:
		return "SlotKind(?)"
	}
}

// Slot is a single named cell inside an object: a (name, kind, value)
// triple, optionally flagged as a parent for inheritance.
type Slot struct {
	Name   string
	Kind   SlotKind
	Parent bool
	Value  SlotValue
}

// ordSlots is an object's slot list. Order is preserved (it is observable
// in printing and in method-activation slot indexing, §3.3), while name is
// indexed for O(1) lookup. This departs from the teacher's plain map-backed
// Slots, which has no ordering guarantee at all: Self's structural slot-0
// conventions (§3.4) require stable positional indexing that Io never
// needed, so the slot list itself must be an ordered structure rather than
// a bare map.
type ordSlots struct {
	list  []Slot
	index map[string]int
}

func (s *ordSlots) ensureIndex() {
	if s.index == nil {
		s.index = make(map[string]int, len(s.list))
		for i, sl := range s.list {
			s.index[sl.Name] = i
		}
	}
}

// find returns a pointer into the slot list for name, or nil.
func (s *ordSlots) find(name string) *Slot {
	s.ensureIndex()
	if i, ok := s.index[name]; ok {
		return &s.list[i]
	}
	return nil
}

// at returns a pointer to the slot at position i. Panics out of range.
func (s *ordSlots) at(i int) *Slot {
	return &s.list[i]
}

// append adds a new slot. The caller must ensure the name is not already
// present (slot names within one object are unique, §3.2).
func (s *ordSlots) append(sl Slot) *Slot {
	s.ensureIndex()
	s.index[sl.Name] = len(s.list)
	s.list = append(s.list, sl)
	return &s.list[len(s.list)-1]
}

func (s *ordSlots) len() int { return len(s.list) }

// Slots returns a read-only snapshot of o's own slots, in declaration
// order. Mutating the returned slice does not affect o.
func (o *Object) Slots() []Slot {
	out := make([]Slot, len(o.slots.list))
	copy(out, o.slots.list)
	return out
}

// SlotAt returns a pointer to o's own slot at position i, or nil if i is out
// of range. Used by method activation to bind positional arguments.
func (o *Object) SlotAt(i int) *Slot {
	if i < 0 || i >= o.slots.len() {
		return nil
	}
	return o.slots.at(i)
}

// LocalSlot returns a pointer to o's own slot named name, or nil. This does
// not consult parents; use (*VM).FindSlot for inherited lookup.
func (o *Object) LocalSlot(name string) *Slot {
	return o.slots.find(name)
}

// AddConstantSlot appends a constant slot with no mutator companion.
func (o *Object) AddConstantSlot(name string, value SlotValue, parent bool) *Slot {
	return o.slots.append(Slot{Name: name, Kind: ConstantSlot, Parent: parent, Value: value})
}

// AddArgumentSlot appends an argument slot. Argument slots never receive a
// mutator companion (§3.2: "only the runtime may assign it").
func (o *Object) AddArgumentSlot(name string, value SlotValue, parent bool) *Slot {
	return o.slots.append(Slot{Name: name, Kind: ArgumentSlot, Parent: parent, Value: value})
}

// AddDataSlot appends a data slot together with its companion mutator slot
// "name:" (the mutator invariant, §3.2). Returns the data slot.
func (o *Object) AddDataSlot(name string, value SlotValue, parent bool) *Slot {
	d := o.slots.append(Slot{Name: name, Kind: DataSlot, Parent: parent, Value: value})
	o.ensureMutator(name)
	return d
}

// ensureMutator adds the "name:" constant-mutator slot for a data slot
// named name, if it is not already present.
func (o *Object) ensureMutator(name string) {
	mname := name + ":"
	if o.slots.find(mname) == nil {
		o.slots.append(Slot{Name: mname, Kind: ConstantSlot, Value: Mutator{Data: name}})
	}
}

// cloneSlotList produces the per-slot clones a plain Object.Clone needs
// (§3.3): data and argument slots are copied so that mutating the clone
// never touches the original; constant slots are shared since they are
// immutable by contract.
func cloneSlotList(src ordSlots) ordSlots {
	out := make([]Slot, len(src.list))
	copy(out, src.list)
	return ordSlots{list: out}
}

// Clone produces an independent copy of o: same kind, same payload for
// immutable kinds, and a per-slot clone of its slot list. Numbers, strings
// and a method's code list are shared (§3.3, §8.2's "n clone = n" law; a
// method's code is immutable once parsed).
func (o *Object) Clone() *Object {
	c := newBareObject(o.kind)
	c.num, c.float, c.str = o.num, o.float, o.str
	if o.vec != nil {
		c.vec = append([]*Object(nil), o.vec...)
	}
	c.code = o.code
	c.slots = cloneSlotList(o.slots)
	return c
}

// String implements fmt.Stringer for debugging purposes only; the
// user-facing printed form lives in print.go.
func (o *Object) String() string {
	return fmt.Sprintf("%s#%d", o.kind, o.id)
}
