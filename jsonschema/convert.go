package jsonschema

import (
	"strings"

	shapegen "github.com/shapegen/shapegen"
)

// ToDescriptor rehydrates a parsed schema file back into a descriptor graph,
// so documents loaded from a cache can drive validation without re-inference.
// The conversion is the inverse of Render over the subset this emitter
// produces; unknown constructs degrade to the Unknown descriptor rather than
// failing.
func ToDescriptor(s *Schema) *shapegen.Descriptor {
	if s == nil {
		return shapegen.Unknown()
	}
	if len(s.AnyOf) > 0 {
		members := make([]*shapegen.Descriptor, 0, len(s.AnyOf))
		for _, m := range s.AnyOf {
			members = append(members, ToDescriptor(m))
		}
		return &shapegen.Descriptor{Kind: shapegen.DescUnion, Members: members}
	}
	switch s.Type {
	case "string":
		return shapegen.Primitive(shapegen.DescString)
	case "number", "integer":
		return shapegen.Primitive(shapegen.DescNumber)
	case "boolean":
		return shapegen.Primitive(shapegen.DescBoolean)
	case "null":
		return shapegen.Primitive(shapegen.DescNull)
	case "array":
		return &shapegen.Descriptor{Kind: shapegen.DescArray, Item: ToDescriptor(s.Items)}
	case "object":
		props := make(map[string]*shapegen.Property, len(s.Properties))
		for name, ps := range s.Properties {
			props[name] = &shapegen.Property{
				Desc:     ToDescriptor(ps),
				Required: containsName(s.Required, name),
				// A declared null type is an explicit null allowance in this
				// dialect; the flag survives the file round trip that way.
				Nullable:  ps != nil && ps.Type == "null",
				Attribute: strings.HasPrefix(name, shapegen.AttrSeparator),
			}
		}
		return &shapegen.Descriptor{Kind: shapegen.DescObject, Properties: props}
	default:
		return shapegen.Unknown()
	}
}

// ToDocument wraps ToDescriptor, restoring a full document from a parsed
// schema file.
func ToDocument(s *Schema) *shapegen.Document {
	return &shapegen.Document{ID: s.ChecksumID, Format: shapegen.FormatJSONSchema, Root: ToDescriptor(s)}
}

func containsName(names []string, n string) bool {
	for _, s := range names {
		if s == n {
			return true
		}
	}
	return false
}
