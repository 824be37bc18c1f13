package shapegen

import (
	"crypto/sha256"
	"encoding/hex"

	gojson "github.com/goccy/go-json"
)

// Fingerprint is the hex-encoded SHA-256 of a (shape, configuration, format)
// triple. It depends only on the set of field paths and the directives, never
// on scalar values: two instances with identical keys but different values
// collide by design, which is what makes it a useful cache key.
type Fingerprint string

// fingerprintPayload is the canonical serialization hashed into a
// Fingerprint. All slices are sorted; goccy/go-json emits struct fields in
// declaration order, so the byte stream is deterministic.
type fingerprintPayload struct {
	Paths    []string `json:"paths"`
	Optional []string `json:"optional"`
	Nullable []string `json:"nullable"`
	Format   string   `json:"format"`
}

// ComputeFingerprint flattens the tree, drops paths the configuration
// excludes, and hashes the sorted remainder together with the canonical
// optional/nullable sets and the target format.
//
// Excluding a path removes it from the computation entirely, so a field's
// presence or absence under Excluded never produces a new schema.
func ComputeFingerprint(n *Node, cfg Config, format Format, opt Options) (Fingerprint, error) {
	paths, err := Flatten(n, opt)
	if err != nil {
		return "", err
	}
	kept := paths[:0]
	for _, p := range paths {
		if !cfg.Resolve(p).Excluded && !underExcluded(p, cfg) {
			kept = append(kept, p)
		}
	}
	return FingerprintPaths(kept, cfg, format)
}

// FingerprintPaths hashes an already-flattened, already-filtered path list.
// Exposed so orchestration layers can fingerprint without re-walking a tree.
func FingerprintPaths(paths []string, cfg Config, format Format) (Fingerprint, error) {
	payload := fingerprintPayload{
		Paths:    paths,
		Optional: cfg.optionalSet(),
		Nullable: cfg.nullableSet(),
		Format:   format.String(),
	}
	if payload.Paths == nil {
		payload.Paths = []string{}
	}
	b, err := gojson.Marshal(payload)
	if err != nil {
		return "", singleIssue("/", CodeParseError, "fingerprint serialization failed: "+err.Error())
	}
	sum := sha256.Sum256(b)
	return Fingerprint(hex.EncodeToString(sum[:])), nil
}

// underExcluded reports whether p lies beneath an excluded subtree; removing
// a subtree and excluding its root must yield the same fingerprint.
func underExcluded(p string, cfg Config) bool {
	for _, ex := range cfg.Excluded {
		if len(p) > len(ex) && p[:len(ex)] == ex && (p[len(ex)] == '.' || p[len(ex)] == AttrSeparator[0]) {
			return true
		}
	}
	return false
}
