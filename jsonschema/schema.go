package jsonschema

// DraftURI identifies the dialect the emitter targets. Only the shape below
// is produced; full draft compliance ($ref, pattern, facets) is out of scope.
const DraftURI = "http://json-schema.org/draft-07/schema#"

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	SchemaURI string `json:"$schema,omitempty"`
	Type      string `json:"type,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union (also carries nullable declarations as anyOf with {"type":"null"})
	AnyOf []*Schema `json:"anyOf,omitempty"`

	// ChecksumID is the fingerprint hex string identifying the document.
	ChecksumID string `json:"checksum_id,omitempty"`
}
