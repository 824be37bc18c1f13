package shapegen

import (
	"sort"
	"strings"

	"github.com/shapegen/shapegen/i18n"
)

// Field paths are dot-joined segment names (user.address.street). Array
// indices are not part of a path: every element of an array shares the path
// of the array itself. Markup attributes are addressed as parent@attr.

// AttrSeparator joins an element path with one of its attribute names.
const AttrSeparator = "@"

// JoinPath appends one segment to a (possibly empty) path.
func JoinPath(prefix, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}

// AttrPath addresses an attribute of the element at path.
func AttrPath(path, attr string) string { return path + AttrSeparator + attr }

// Flatten enumerates every reachable field path in a tree, recursing into
// object and element children and descending into (but not indexing) array
// elements. Paths contributed by heterogeneous array elements are
// deduplicated. The result is sorted lexicographically.
func Flatten(n *Node, opt Options) ([]string, error) {
	seen := map[string]struct{}{}
	if err := flattenInto(n, "", 0, opt.maxDepth(), seen); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

func flattenInto(n *Node, prefix string, depth, limit int, seen map[string]struct{}) error {
	if n == nil {
		return malformedAt(prefix, "nil node")
	}
	if depth > limit {
		return malformedAt(prefix, "depth limit exceeded")
	}
	switch n.Kind {
	case KindObject:
		for name, child := range n.Fields {
			p := JoinPath(prefix, name)
			seen[p] = struct{}{}
			if err := flattenInto(child, p, depth+1, limit, seen); err != nil {
				return err
			}
		}
	case KindArray:
		for _, item := range n.Items {
			if err := flattenInto(item, prefix, depth+1, limit, seen); err != nil {
				return err
			}
		}
	case KindElement:
		p := JoinPath(prefix, n.Name)
		seen[p] = struct{}{}
		for _, a := range n.Attrs {
			seen[AttrPath(p, a.Name)] = struct{}{}
		}
		for _, child := range n.Items {
			if err := flattenInto(child, p, depth+1, limit, seen); err != nil {
				return err
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		// Scalars contribute no path of their own; their key was recorded by
		// the enclosing object or element.
	default:
		return malformedAt(prefix, "invalid node kind")
	}
	return nil
}

func malformedAt(path, hint string) error {
	return Issues{{
		Path:     pointerFromPath(path),
		Code:     CodeMalformedTree,
		Severity: Error,
		Message:  i18n.T(CodeMalformedTree, nil),
		Hint:     hint,
	}}
}

// pointerFromPath renders a dot path as a JSON Pointer for issue reporting.
func pointerFromPath(path string) string {
	if path == "" {
		return "/"
	}
	return "/" + strings.ReplaceAll(path, ".", "/")
}
