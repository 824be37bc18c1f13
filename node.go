package shapegen

// Kind identifies a Node type.
type Kind int

const (
	KindInvalid Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
	KindNull
	KindElement
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindNull:
		return "null"
	case KindElement:
		return "element"
	default:
		return "invalid"
	}
}

// Attr is a markup attribute on an Element node.
type Attr struct {
	Name  string
	Value string
}

// Node is one position in a parsed document tree. The same model carries JSON
// object graphs (Object/Array/scalars) and XML element trees (Element with
// attributes, child sequence and optional text). Trees are owned by the
// caller; the library never retains one beyond a single call.
type Node struct {
	Kind   Kind
	Name   string           // Element tag; empty for other kinds.
	Fields map[string]*Node // Object children, unique names.
	Items  []*Node          // Array elements, or Element children (names may repeat).
	Attrs  []Attr           // Element attributes.
	Text   string           // String value, or Element text content.
	Num    float64          // Number value. Integers and floats share this slot.
	Bool   bool             // Boolean value.
}

// Object returns an object node over the given fields. The map is used as-is.
func Object(fields map[string]*Node) *Node {
	if fields == nil {
		fields = map[string]*Node{}
	}
	return &Node{Kind: KindObject, Fields: fields}
}

// Array returns an array node over the given elements.
func Array(items ...*Node) *Node {
	return &Node{Kind: KindArray, Items: items}
}

// String returns a string scalar node.
func String(v string) *Node { return &Node{Kind: KindString, Text: v} }

// Number returns a number scalar node.
func Number(v float64) *Node { return &Node{Kind: KindNumber, Num: v} }

// Bool returns a boolean scalar node.
func Bool(v bool) *Node { return &Node{Kind: KindBool, Bool: v} }

// Null returns a null scalar node.
func Null() *Node { return &Node{Kind: KindNull} }

// Element returns a markup element node.
func Element(name string, attrs []Attr, text string, children ...*Node) *Node {
	return &Node{Kind: KindElement, Name: name, Attrs: attrs, Text: text, Items: children}
}
