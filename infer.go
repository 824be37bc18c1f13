package shapegen

import "strconv"

// Infer walks a tree once and produces its TypeDescriptor. Array elements and
// repeated markup elements are folded with Join, so heterogeneous shapes
// surface as unions or structurally optional properties rather than errors.
//
// A root element is wrapped into an object keyed by its tag, mirroring how
// Flatten records the root tag as a path; nested elements contribute to their
// parent's property map instead.
func Infer(n *Node, opt Options) (*Descriptor, error) {
	if n == nil {
		return nil, malformedAt("", "nil node")
	}
	if n.Kind == KindElement {
		content, err := inferAt(n, 0, opt.maxDepth())
		if err != nil {
			return nil, err
		}
		return &Descriptor{Kind: DescObject, Properties: map[string]*Property{
			n.Name: {Desc: content, Required: true},
		}}, nil
	}
	return inferAt(n, 0, opt.maxDepth())
}

func inferAt(n *Node, depth, limit int) (*Descriptor, error) {
	if n == nil {
		return nil, malformedAt("", "nil node")
	}
	if depth > limit {
		return nil, malformedAt("", "depth limit exceeded")
	}
	switch n.Kind {
	case KindString:
		return Primitive(DescString), nil
	case KindNumber:
		// Integer and floating values both infer as number; 1 and 1.0 must
		// never produce a type conflict.
		return Primitive(DescNumber), nil
	case KindBool:
		return Primitive(DescBoolean), nil
	case KindNull:
		return Primitive(DescNull), nil
	case KindObject:
		props := make(map[string]*Property, len(n.Fields))
		for name, child := range n.Fields {
			d, err := inferAt(child, depth+1, limit)
			if err != nil {
				return nil, err
			}
			props[name] = &Property{Desc: d, Required: true}
		}
		return &Descriptor{Kind: DescObject, Properties: props}, nil
	case KindArray:
		item := Unknown()
		for _, el := range n.Items {
			d, err := inferAt(el, depth+1, limit)
			if err != nil {
				return nil, err
			}
			item = Join(item, d)
		}
		return &Descriptor{Kind: DescArray, Item: item}, nil
	case KindElement:
		return inferElement(n, depth, limit)
	default:
		return nil, malformedAt("", "invalid node kind")
	}
}

// inferElement produces the descriptor of an element's content: attributes
// and child tags become properties, repeated child tags are joined and marked
// repeated, and text alongside children or attributes marks the object mixed.
func inferElement(n *Node, depth, limit int) (*Descriptor, error) {
	hasText := n.Text != ""
	if len(n.Items) == 0 && len(n.Attrs) == 0 {
		return inferText(n.Text), nil
	}
	props := map[string]*Property{}
	for _, a := range n.Attrs {
		props[AttrSeparator+a.Name] = &Property{Desc: inferText(a.Value), Required: true, Attribute: true}
	}
	for _, child := range n.Items {
		if child == nil || child.Kind != KindElement {
			return nil, malformedAt(n.Name, "element child is not an element")
		}
		d, err := inferAt(child, depth+1, limit)
		if err != nil {
			return nil, err
		}
		if have, ok := props[child.Name]; ok {
			have.Desc = Join(have.Desc, d)
			have.Repeated = true
			continue
		}
		props[child.Name] = &Property{Desc: d, Required: true}
	}
	return &Descriptor{Kind: DescObject, Properties: props, Mixed: hasText && (len(n.Items) > 0 || len(n.Attrs) > 0)}, nil
}

// inferText guesses the scalar type of markup text the way attribute values
// are typed: boolean literals, then numeric, then string.
func inferText(s string) *Descriptor {
	switch s {
	case "true", "false":
		return Primitive(DescBoolean)
	}
	if s != "" {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return Primitive(DescNumber)
		}
	}
	return Primitive(DescString)
}
