package shapegen

import (
	"sort"

	"github.com/shapegen/shapegen/i18n"
)

// Config carries the per-field directives applied on top of structural
// inference. Paths use dot notation (user.profile.bio); markup attributes are
// addressed as parent@attr. Config values are immutable by convention and are
// passed into every call, so one Config can safely drive parallel workers.
type Config struct {
	Optional []string // Present-or-absent, both valid.
	Nullable []string // Null explicitly permitted in addition to the inferred type.
	Excluded []string // Removed from inference, fingerprint and output entirely.
}

// Resolution classifies one field path by Config set membership.
type Resolution struct {
	Optional bool
	Nullable bool
	Excluded bool
}

// Resolve classifies a path. Exclusion dominates: a path listed as both
// optional (or nullable) and excluded resolves to excluded only. A path that
// does not occur in any tree is inert, never an error, so one Config can be
// shared across structurally varying instances of the same logical entity.
func (c Config) Resolve(path string) Resolution {
	if contains(c.Excluded, path) {
		return Resolution{Excluded: true}
	}
	return Resolution{
		Optional: contains(c.Optional, path),
		Nullable: contains(c.Nullable, path),
	}
}

// Conflicts reports paths listed both in Excluded and in Optional or
// Nullable. The conflict is resolved deterministically (excluded wins); the
// issues are advisory (Warn severity) so batch runs stay resilient to
// redundant configuration.
func (c Config) Conflicts() Issues {
	var iss Issues
	for _, p := range c.Excluded {
		if contains(c.Optional, p) || contains(c.Nullable, p) {
			iss = AppendIssues(iss, Issue{
				Path:     pointerFromPath(p),
				Code:     CodeConflictingConfig,
				Severity: Warn,
				Message:  i18n.T(CodeConflictingConfig, map[string]string{"path": p}),
				Hint:     "excluded wins; remove the path from optional/nullable",
			})
		}
	}
	return iss
}

// optionalSet returns the sorted, deduplicated optional paths minus excluded
// ones, ready for canonical serialization.
func (c Config) optionalSet() []string { return canonicalSet(c.Optional, c.Excluded) }

// nullableSet is optionalSet for the nullable directive.
func (c Config) nullableSet() []string { return canonicalSet(c.Nullable, c.Excluded) }

func canonicalSet(paths, excluded []string) []string {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, dup := seen[p]; dup {
			continue
		}
		if contains(excluded, p) {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func contains(set []string, p string) bool {
	for _, s := range set {
		if s == p {
			return true
		}
	}
	return false
}
