package cache_test

import (
	"context"
	"path/filepath"
	"testing"

	shapegen "github.com/shapegen/shapegen"
	"github.com/shapegen/shapegen/cache"
)

func TestSQLite_RoundTrip(t *testing.T) {
	s, err := cache.NewSQLite(filepath.Join(t.TempDir(), "schemas.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	if _, ok, err := s.Lookup(ctx, "abc"); err != nil || ok {
		t.Fatalf("ok=%v err=%v, want miss", ok, err)
	}
	doc := sampleDoc("abc")
	if err := s.Store(ctx, "abc", doc); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, ok, err := s.Lookup(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got.ID != doc.ID || got.Format != doc.Format {
		t.Fatalf("got = %+v", got)
	}
	p := got.Root.Properties["name"]
	if p == nil || p.Desc.Kind != shapegen.DescString || !p.Required {
		t.Fatalf("descriptor lost in round trip: %+v", got.Root)
	}
}

func TestSQLite_StoreIsIdempotent(t *testing.T) {
	s, err := cache.NewSQLite(filepath.Join(t.TempDir(), "schemas.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	if err := s.Store(ctx, "abc", sampleDoc("abc")); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Store(ctx, "abc", sampleDoc("abc")); err != nil {
		t.Fatalf("second store must be a no-op: %v", err)
	}
}
