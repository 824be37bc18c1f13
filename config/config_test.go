package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shapegen/shapegen/config"
)

const sampleYAML = `
- file: users.json
  optional_fields: [user.profile.bio]
  allow_null_fields: [email]
  exclude_fields: [internal_id]
- file: orders.xml
  optional_fields: [order.note]
`

func TestDecode_YAML(t *testing.T) {
	set, err := config.Decode([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("entries = %d", len(set))
	}
	cfg := set.ForFile("users.json")
	if !reflect.DeepEqual(cfg.Optional, []string{"user.profile.bio"}) {
		t.Fatalf("optional = %v", cfg.Optional)
	}
	if !reflect.DeepEqual(cfg.Nullable, []string{"email"}) {
		t.Fatalf("nullable = %v", cfg.Nullable)
	}
	if !reflect.DeepEqual(cfg.Excluded, []string{"internal_id"}) {
		t.Fatalf("excluded = %v", cfg.Excluded)
	}
}

func TestDecode_JSONIsAccepted(t *testing.T) {
	data := []byte(`[{"file":"a.json","optional_fields":["x"]}]`)
	set, err := config.Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := set.ForFile("a.json").Optional; !reflect.DeepEqual(got, []string{"x"}) {
		t.Fatalf("optional = %v", got)
	}
}

func TestForFile_UnknownNameYieldsZeroConfig(t *testing.T) {
	set, err := config.Decode([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cfg := set.ForFile("unknown.json")
	if len(cfg.Optional)+len(cfg.Nullable)+len(cfg.Excluded) != 0 {
		t.Fatalf("cfg = %+v, want zero", cfg)
	}
}

func TestLoad_MissingFileIsEmptySet(t *testing.T) {
	set, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil || set != nil {
		t.Fatalf("set=%v err=%v, want empty and nil", set, err)
	}
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	set, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("entries = %d", len(set))
	}
}
