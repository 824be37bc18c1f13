package shapegen

import "strings"

// Document is the emitted schema artifact: an inferred type graph with the
// configuration folded in (required/optional/nullable markers, excluded paths
// pruned) and the fingerprint as its identifier. Documents are immutable once
// stored and read-only for validation thereafter.
type Document struct {
	ID     string      `json:"id"` // Fingerprint hex string.
	Format Format      `json:"format"`
	Root   *Descriptor `json:"root"`
}

// Build combines an inferred type graph with configuration overrides into a
// schema document. It is pure with respect to any cache: the hit/miss
// decision belongs to the orchestration layer, which calls Build only on
// miss.
func Build(root *Descriptor, cfg Config, fp Fingerprint, format Format) *Document {
	return &Document{
		ID:     string(fp),
		Format: format,
		Root:   applyConfig(root, "", cfg),
	}
}

// applyConfig clones the descriptor graph, pruning excluded properties,
// clearing required on optional ones and marking nullable ones. Array items
// keep their parent's path: indices are never part of a field path.
func applyConfig(d *Descriptor, prefix string, cfg Config) *Descriptor {
	if d == nil {
		return nil
	}
	switch d.Kind {
	case DescObject:
		props := make(map[string]*Property, len(d.Properties))
		for name, p := range d.Properties {
			path := propPath(prefix, name, p.Attribute)
			r := cfg.Resolve(path)
			if r.Excluded {
				continue
			}
			np := &Property{
				Desc:      applyConfig(p.Desc, path, cfg),
				Required:  p.Required && !r.Optional,
				Nullable:  p.Nullable || r.Nullable,
				Attribute: p.Attribute,
				Repeated:  p.Repeated,
			}
			// Array elements share the array's path, so a nullable array
			// admits null elements as well as a null value. An Unknown item
			// already accepts anything and needs no union.
			if r.Nullable && np.Desc != nil && np.Desc.Kind == DescArray &&
				np.Desc.Item != nil && np.Desc.Item.Kind != DescUnknown {
				np.Desc = &Descriptor{Kind: DescArray, Item: Join(np.Desc.Item, Primitive(DescNull))}
			}
			props[name] = np
		}
		return &Descriptor{Kind: DescObject, Properties: props, Mixed: d.Mixed}
	case DescArray:
		return &Descriptor{Kind: DescArray, Item: applyConfig(d.Item, prefix, cfg)}
	case DescUnion:
		members := make([]*Descriptor, 0, len(d.Members))
		for _, m := range d.Members {
			members = append(members, applyConfig(m, prefix, cfg))
		}
		return &Descriptor{Kind: DescUnion, Members: members}
	default:
		return d
	}
}

// propPath resolves the field path of a property. Attribute property names
// carry an '@' prefix in the map to avoid colliding with child elements of
// the same name; the path form is parent@attr.
func propPath(prefix, name string, attribute bool) string {
	if attribute {
		return AttrPath(prefix, strings.TrimPrefix(name, AttrSeparator))
	}
	return JoinPath(prefix, name)
}
