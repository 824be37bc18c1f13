// Package shapegen derives structural schemas from example tree-shaped data
// (JSON object graphs, XML element trees), applies per-field directives
// (optional, nullable, excluded), fingerprints the (shape, config) pair so
// identical shapes reuse one cached schema, and validates instances against
// the generated schema.
//
// - A generic Node tree carries parsed documents independent of surface syntax
// - Infer/Join reduce type inference to lattice joins over TypeDescriptors
// - ComputeFingerprint hashes sorted field paths + configuration + format
// - Build folds configuration into an immutable Document
// - Validate reports every structural defect in one pass via Issues
//
// Design policy:
// - Keep only public APIs in the root package; emitters live under
//   jsonschema/ and xsd/, parsers under source/, persistence under cache/,
//   and the CLI under cmd/shapegen.
// - Every core operation is a pure function of its inputs; there is no shared
//   mutable state, so parallel batch workers need no locking.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	tree, err := json.Parse(data, shapegen.Options{})
//	fp, err := shapegen.ComputeFingerprint(tree, cfg, shapegen.FormatJSONSchema, opt)
//	desc, err := shapegen.Infer(tree, opt)
//	doc := shapegen.Build(desc, cfg, fp, shapegen.FormatJSONSchema)
//	res := shapegen.Validate(tree, doc, opt)
package shapegen
