package shapegen

import "fmt"

// DescKind identifies a Descriptor node type.
type DescKind int

const (
	DescUnknown DescKind = iota // Lattice bottom: no observation yet.
	DescString
	DescNumber
	DescBoolean
	DescNull
	DescObject
	DescArray
	DescUnion // Top-adjacent: used when a join cannot unify.
)

var descKindNames = map[DescKind]string{
	DescUnknown: "unknown",
	DescString:  "string",
	DescNumber:  "number",
	DescBoolean: "boolean",
	DescNull:    "null",
	DescObject:  "object",
	DescArray:   "array",
	DescUnion:   "union",
}

func (k DescKind) String() string {
	if s, ok := descKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// MarshalText renders the kind name; cached documents stay human-readable.
func (k DescKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText parses a kind name.
func (k *DescKind) UnmarshalText(b []byte) error {
	s := string(b)
	for kind, name := range descKindNames {
		if name == s {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("shapegen: unknown descriptor kind %q", s)
}

// Property is one named member of an object descriptor.
type Property struct {
	Desc      *Descriptor `json:"desc"`
	Required  bool        `json:"required,omitempty"`
	Nullable  bool        `json:"nullable,omitempty"`  // Set by Build from configuration.
	Attribute bool        `json:"attribute,omitempty"` // Markup attribute; path uses '@'.
	Repeated  bool        `json:"repeated,omitempty"`  // Repeated sibling element.
}

// Descriptor is a type-lattice element. Descriptors are treated as immutable
// once built; Join returns fresh nodes and may share operand subtrees.
type Descriptor struct {
	Kind       DescKind             `json:"kind"`
	Properties map[string]*Property `json:"properties,omitempty"` // DescObject.
	Item       *Descriptor          `json:"item,omitempty"`       // DescArray.
	Members    []*Descriptor        `json:"members,omitempty"`    // DescUnion.
	Mixed      bool                 `json:"mixed,omitempty"`      // Element with both text and children.
}

// Unknown returns the lattice bottom.
func Unknown() *Descriptor { return &Descriptor{Kind: DescUnknown} }

// Primitive returns a primitive descriptor for the given kind.
func Primitive(k DescKind) *Descriptor { return &Descriptor{Kind: k} }

// Join computes the least upper bound of two descriptors. It is commutative,
// associative and idempotent; Unknown joins to the other operand.
func Join(a, b *Descriptor) *Descriptor {
	switch {
	case a == nil || a.Kind == DescUnknown:
		return b
	case b == nil || b.Kind == DescUnknown:
		return a
	}
	if a.Kind == DescUnion || b.Kind == DescUnion {
		return makeUnion(unionMembers(a), unionMembers(b))
	}
	if a.Kind != b.Kind {
		return makeUnion([]*Descriptor{a}, []*Descriptor{b})
	}
	switch a.Kind {
	case DescString, DescNumber, DescBoolean, DescNull:
		return a
	case DescObject:
		return joinObjects(a, b)
	case DescArray:
		return &Descriptor{Kind: DescArray, Item: Join(a.Item, b.Item)}
	default:
		return makeUnion([]*Descriptor{a}, []*Descriptor{b})
	}
}

// joinObjects unions the property sets. A property present in only one
// operand becomes non-required in the result; this is how optionality arises
// structurally from heterogeneous arrays, independent of configuration.
func joinObjects(a, b *Descriptor) *Descriptor {
	props := make(map[string]*Property, len(a.Properties)+len(b.Properties))
	for name, pa := range a.Properties {
		if pb, ok := b.Properties[name]; ok {
			props[name] = &Property{
				Desc:      Join(pa.Desc, pb.Desc),
				Required:  pa.Required && pb.Required,
				Nullable:  pa.Nullable || pb.Nullable,
				Attribute: pa.Attribute || pb.Attribute,
				Repeated:  pa.Repeated || pb.Repeated,
			}
			continue
		}
		props[name] = &Property{Desc: pa.Desc, Nullable: pa.Nullable, Attribute: pa.Attribute, Repeated: pa.Repeated}
	}
	for name, pb := range b.Properties {
		if _, ok := a.Properties[name]; ok {
			continue
		}
		props[name] = &Property{Desc: pb.Desc, Nullable: pb.Nullable, Attribute: pb.Attribute, Repeated: pb.Repeated}
	}
	return &Descriptor{Kind: DescObject, Properties: props, Mixed: a.Mixed || b.Mixed}
}

func unionMembers(d *Descriptor) []*Descriptor {
	if d.Kind == DescUnion {
		return d.Members
	}
	return []*Descriptor{d}
}

// makeUnion flattens and deduplicates members; a single survivor collapses
// back to itself, which keeps Join idempotent.
func makeUnion(groups ...[]*Descriptor) *Descriptor {
	var members []*Descriptor
	for _, g := range groups {
		for _, m := range g {
			if m == nil || m.Kind == DescUnknown {
				continue
			}
			dup := false
			for i, have := range members {
				if have.Kind == m.Kind && have.Kind != DescUnion {
					// Same-kind members join rather than coexist.
					members[i] = Join(have, m)
					dup = true
					break
				}
				if Equal(have, m) {
					dup = true
					break
				}
			}
			if !dup {
				members = append(members, m)
			}
		}
	}
	switch len(members) {
	case 0:
		return Unknown()
	case 1:
		return members[0]
	}
	return &Descriptor{Kind: DescUnion, Members: members}
}

// Equal reports structural equality of two descriptors.
func Equal(a, b *Descriptor) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Mixed != b.Mixed {
		return false
	}
	switch a.Kind {
	case DescObject:
		if len(a.Properties) != len(b.Properties) {
			return false
		}
		for name, pa := range a.Properties {
			pb, ok := b.Properties[name]
			if !ok {
				return false
			}
			if pa.Required != pb.Required || pa.Nullable != pb.Nullable ||
				pa.Attribute != pb.Attribute || pa.Repeated != pb.Repeated {
				return false
			}
			if !Equal(pa.Desc, pb.Desc) {
				return false
			}
		}
		return true
	case DescArray:
		return Equal(a.Item, b.Item)
	case DescUnion:
		if len(a.Members) != len(b.Members) {
			return false
		}
		// Order-insensitive: unions are sets.
		used := make([]bool, len(b.Members))
	outer:
		for _, ma := range a.Members {
			for i, mb := range b.Members {
				if !used[i] && Equal(ma, mb) {
					used[i] = true
					continue outer
				}
			}
			return false
		}
		return true
	default:
		return true
	}
}

// ContainsNull reports whether the descriptor admits an explicit null, either
// directly or through a union member.
func (d *Descriptor) ContainsNull() bool {
	if d == nil {
		return false
	}
	if d.Kind == DescNull {
		return true
	}
	if d.Kind == DescUnion {
		for _, m := range d.Members {
			if m.ContainsNull() {
				return true
			}
		}
	}
	return false
}
