package jsonschema

import (
	"sort"

	shapegen "github.com/shapegen/shapegen"
)

// Render projects a schema document into its Draft-07-shaped form. The
// document identifier lands in checksum_id; required lists are sorted so
// repeated runs emit byte-identical schemas.
func Render(doc *shapegen.Document) *Schema {
	s := renderDesc(doc.Root)
	if s == nil {
		s = &Schema{}
	}
	s.SchemaURI = DraftURI
	s.ChecksumID = doc.ID
	return s
}

func renderDesc(d *shapegen.Descriptor) *Schema {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case shapegen.DescString:
		return &Schema{Type: "string"}
	case shapegen.DescNumber:
		return &Schema{Type: "number"}
	case shapegen.DescBoolean:
		return &Schema{Type: "boolean"}
	case shapegen.DescNull:
		return &Schema{Type: "null"}
	case shapegen.DescObject:
		return renderObject(d)
	case shapegen.DescArray:
		out := &Schema{Type: "array"}
		if d.Item != nil && d.Item.Kind != shapegen.DescUnknown {
			out.Items = renderDesc(d.Item)
		}
		return out
	case shapegen.DescUnion:
		out := &Schema{}
		for _, m := range d.Members {
			out.AnyOf = append(out.AnyOf, renderDesc(m))
		}
		return out
	default: // DescUnknown: accepts anything.
		return &Schema{}
	}
}

func renderObject(d *shapegen.Descriptor) *Schema {
	out := &Schema{Type: "object", Properties: map[string]*Schema{}}
	for name, p := range d.Properties {
		ps := renderDesc(p.Desc)
		if p.Nullable && ps != nil && ps.Type != "null" {
			ps = &Schema{AnyOf: []*Schema{ps, {Type: "null"}}}
		}
		out.Properties[name] = ps
		if p.Required {
			out.Required = append(out.Required, name)
		}
	}
	sort.Strings(out.Required)
	return out
}
