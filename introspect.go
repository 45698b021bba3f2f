package self

import (
	"strconv"

	"gopkg.in/yaml.v2"
)

// yamlSlot is the introspection record for a single slot, rendered via
// gopkg.in/yaml.v2 in DumpYAML.
type yamlSlot struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Parent bool   `yaml:"parent,omitempty"`
	Value  string `yaml:"value"`
}

// yamlObject is the introspection record for one object's own slot list.
type yamlObject struct {
	Kind  string     `yaml:"kind"`
	Slots []yamlSlot `yaml:"slots"`
}

// DumpYAML renders a snapshot of o's own slots (name, kind, printed value,
// parent flag) as YAML, for debugging and for inspecting state the §6.2
// printed forms don't surface (slot values). It does not follow parents.
func DumpYAML(o *Object) (string, error) {
	doc := yamlObject{Kind: o.Kind().String()}
	for _, sl := range o.Slots() {
		doc.Slots = append(doc.Slots, yamlSlot{
			Name:   sl.Name,
			Kind:   sl.Kind.String(),
			Parent: sl.Parent,
			Value:  describeSlotValue(sl.Value),
		})
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// describeSlotValue renders a slot's payload for DumpYAML: a Mutator names
// the data slot it assigns into, an *Object renders through printLiteral
// for numbers/strings and identity otherwise.
func describeSlotValue(v SlotValue) string {
	switch t := v.(type) {
	case Mutator:
		return "mutator(" + t.Data + ")"
	case *Object:
		if t == nil {
			return "nil"
		}
		switch t.Kind() {
		case IntegerKind, FloatKind, StringKind:
			return printLiteral(t)
		case MethodKind:
			return "method#" + strconv.FormatUint(uint64(t.UniqueID()), 10)
		default:
			return t.Kind().String() + "#" + strconv.FormatUint(uint64(t.UniqueID()), 10)
		}
	default:
		return "?"
	}
}
