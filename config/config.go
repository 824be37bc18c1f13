// Package config loads per-file directive configuration. The on-disk format
// is a list of entries keyed by input file name; YAML and JSON are both
// accepted (JSON being a YAML subset).
//
//	- file: users.json
//	  optional_fields: [user.profile.bio]
//	  allow_null_fields: [email]
//	  exclude_fields: [internal_id]
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	shapegen "github.com/shapegen/shapegen"
)

// Entry is the directive set for one input file.
type Entry struct {
	File            string   `yaml:"file" json:"file"`
	OptionalFields  []string `yaml:"optional_fields" json:"optional_fields"`
	AllowNullFields []string `yaml:"allow_null_fields" json:"allow_null_fields"`
	ExcludeFields   []string `yaml:"exclude_fields" json:"exclude_fields"`
}

// Config converts an entry into the engine's configuration value.
func (e Entry) Config() shapegen.Config {
	return shapegen.Config{
		Optional: e.OptionalFields,
		Nullable: e.AllowNullFields,
		Excluded: e.ExcludeFields,
	}
}

// Set is a loaded configuration file.
type Set []Entry

// Load reads and decodes a configuration file. A missing path yields an
// empty set, not an error: configuration is always optional.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode parses configuration bytes.
func Decode(data []byte) (Set, error) {
	var set Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return set, nil
}

// ForFile returns the configuration for a specific input file name, or the
// zero Config when no entry matches.
func (s Set) ForFile(name string) shapegen.Config {
	for _, e := range s {
		if e.File == name {
			return e.Config()
		}
	}
	return shapegen.Config{}
}
