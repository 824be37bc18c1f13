package shapegen

// Format selects the target schema dialect. It participates in the
// fingerprint, so a JSON Schema and an XSD generated from the same tree never
// share a cache slot.
type Format int

const (
	FormatJSONSchema Format = iota
	FormatXSD
)

func (f Format) String() string {
	switch f {
	case FormatXSD:
		return "xsd"
	default:
		return "jsonschema"
	}
}

// DefaultMaxDepth bounds tree recursion when Options.MaxDepth is zero.
// Exceeding the bound is reported as a malformed tree, not a panic.
const DefaultMaxDepth = 1000

// Options bundles tree-walking limits shared by Flatten, Infer and Validate.
type Options struct {
	MaxDepth int // Maximum nesting depth; 0 means DefaultMaxDepth.
}

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)
