package shapegen

import (
	"strconv"

	"github.com/shapegen/shapegen/i18n"
)

// Result is a structural validation verdict. Validation is never fail-fast:
// Issues aggregates every violation found so a single call reports every
// defect in one pass.
type Result struct {
	OK     bool
	Issues Issues
}

// Err returns the issues as an error, or nil when the instance validated.
func (r Result) Err() error {
	if r.OK {
		return nil
	}
	return r.Issues
}

// Validate re-walks an instance tree against a schema document in lockstep.
// Missing required properties and type mismatches are reported as issues;
// instance properties absent from the schema are tolerated by policy,
// matching the exclusion semantics of Build. Neither the instance nor the
// document is mutated.
func Validate(instance *Node, doc *Document, opt Options) Result {
	v := &validator{limit: opt.maxDepth()}
	if doc == nil || doc.Root == nil {
		return Result{OK: false, Issues: singleIssue("/", CodeParseError, "nil schema document")}
	}
	n := instance
	if n != nil && n.Kind == KindElement {
		// Mirror Infer: a root element is addressed by its tag.
		n = Object(map[string]*Node{n.Name: n})
	}
	v.walk(n, doc.Root, false, "", 0)
	return Result{OK: len(v.issues) == 0, Issues: v.issues}
}

type validator struct {
	limit  int
	issues Issues
}

func (v *validator) report(ptr, code string, params map[string]any) {
	data := map[string]string{}
	for k, p := range params {
		if s, ok := p.(string); ok {
			data[k] = s
		}
	}
	if ptr == "" {
		ptr = "/"
	}
	v.issues = AppendIssues(v.issues, IssueAt(ptr, code, i18n.T(code, data), params))
}

func (v *validator) walk(n *Node, d *Descriptor, nullable bool, ptr string, depth int) {
	if d == nil || d.Kind == DescUnknown {
		return
	}
	if n == nil {
		v.report(ptr, CodeMalformedTree, map[string]any{"got": "nil"})
		return
	}
	if depth > v.limit {
		v.report(ptr, CodeMalformedTree, map[string]any{"got": "depth limit exceeded"})
		return
	}
	if n.Kind == KindNull {
		// Null is permitted when configuration allows it or when the shape
		// itself joined null with another type (heterogeneous arrays). A bare
		// null descriptor does not admit null: absent an allow_null
		// directive, an explicit null is a defect.
		if nullable || (d.Kind == DescUnion && d.ContainsNull()) {
			return
		}
		v.report(ptr, CodeInvalidType, map[string]any{"expected": d.Kind.String(), "got": "null"})
		return
	}
	switch d.Kind {
	case DescString, DescNumber, DescBoolean, DescNull:
		if !scalarMatches(n, d.Kind) {
			v.report(ptr, CodeInvalidType, map[string]any{"expected": d.Kind.String(), "got": n.Kind.String()})
		}
	case DescArray:
		if n.Kind != KindArray {
			v.report(ptr, CodeInvalidType, map[string]any{"expected": "array", "got": n.Kind.String()})
			return
		}
		for i, el := range n.Items {
			v.walk(el, d.Item, false, ptr+"/"+strconv.Itoa(i), depth+1)
		}
	case DescObject:
		v.walkObject(n, d, ptr, depth)
	case DescUnion:
		for _, m := range d.Members {
			probe := &validator{limit: v.limit}
			probe.walk(n, m, false, ptr, depth)
			if len(probe.issues) == 0 {
				return
			}
		}
		v.report(ptr, CodeInvalidType, map[string]any{"expected": "union", "got": n.Kind.String()})
	}
}

func (v *validator) walkObject(n *Node, d *Descriptor, ptr string, depth int) {
	switch n.Kind {
	case KindObject:
		for name, p := range d.Properties {
			child, present := n.Fields[name]
			if !present {
				if p.Required {
					v.report(ptr+"/"+name, CodeRequired, map[string]any{"key": name})
				}
				continue
			}
			v.walk(child, p.Desc, p.Nullable, ptr+"/"+name, depth+1)
		}
	case KindElement:
		v.walkElement(n, d, ptr, depth)
	default:
		v.report(ptr, CodeInvalidType, map[string]any{"expected": "object", "got": n.Kind.String()})
	}
}

// walkElement checks an element instance against an object descriptor:
// attribute properties against the attribute list, child-tag properties
// against the grouped child elements, leaf text against primitive kinds.
func (v *validator) walkElement(n *Node, d *Descriptor, ptr string, depth int) {
	children := map[string][]*Node{}
	for _, c := range n.Items {
		if c != nil && c.Kind == KindElement {
			children[c.Name] = append(children[c.Name], c)
		}
	}
	for name, p := range d.Properties {
		if p.Attribute {
			attr, ok := lookupAttr(n.Attrs, name)
			aptr := ptr + "/" + name
			if !ok {
				if p.Required {
					v.report(aptr, CodeRequired, map[string]any{"key": name})
				}
				continue
			}
			if !textMatches(attr, p.Desc) {
				v.report(aptr, CodeInvalidType, map[string]any{"expected": p.Desc.Kind.String(), "got": "string"})
			}
			continue
		}
		occurrences := children[name]
		if len(occurrences) == 0 {
			if p.Required {
				v.report(ptr+"/"+name, CodeRequired, map[string]any{"key": name})
			}
			continue
		}
		for i, c := range occurrences {
			cptr := ptr + "/" + name
			if p.Repeated {
				cptr += "/" + strconv.Itoa(i)
			}
			v.walkElementValue(c, p, cptr, depth+1)
		}
	}
}

// walkElementValue dispatches one element occurrence against its property
// descriptor: primitive descriptors check the text content, object
// descriptors recurse.
func (v *validator) walkElementValue(n *Node, p *Property, ptr string, depth int) {
	d := p.Desc
	if d == nil || d.Kind == DescUnknown {
		return
	}
	switch d.Kind {
	case DescString, DescNumber, DescBoolean, DescNull:
		if len(n.Items) > 0 {
			v.report(ptr, CodeInvalidType, map[string]any{"expected": d.Kind.String(), "got": "element"})
			return
		}
		if n.Text == "" && p.Nullable {
			return
		}
		if !textMatches(n.Text, d) {
			v.report(ptr, CodeInvalidType, map[string]any{"expected": d.Kind.String(), "got": "string"})
		}
	case DescUnion:
		for _, m := range d.Members {
			probe := &validator{limit: v.limit}
			probe.walkElementValue(n, &Property{Desc: m}, ptr, depth)
			if len(probe.issues) == 0 {
				return
			}
		}
		v.report(ptr, CodeInvalidType, map[string]any{"expected": "union", "got": "element"})
	default:
		v.walk(n, d, p.Nullable, ptr, depth)
	}
}

func scalarMatches(n *Node, k DescKind) bool {
	switch k {
	case DescString:
		return n.Kind == KindString
	case DescNumber:
		return n.Kind == KindNumber
	case DescBoolean:
		return n.Kind == KindBool
	case DescNull:
		return n.Kind == KindNull
	}
	return false
}

// textMatches checks markup text against a primitive descriptor. A string
// descriptor accepts any text; otherwise the inferred kind of the text must
// agree.
func textMatches(s string, d *Descriptor) bool {
	if d == nil {
		return true
	}
	switch d.Kind {
	case DescString:
		return true
	case DescUnion:
		for _, m := range d.Members {
			if textMatches(s, m) {
				return true
			}
		}
		return false
	default:
		return inferText(s).Kind == d.Kind
	}
}

func lookupAttr(attrs []Attr, propName string) (string, bool) {
	name := propName
	if len(name) > 0 && name[0] == AttrSeparator[0] {
		name = name[1:]
	}
	for _, a := range attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
