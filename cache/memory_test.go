package cache_test

import (
	"context"
	"sync"
	"testing"

	shapegen "github.com/shapegen/shapegen"
	"github.com/shapegen/shapegen/cache"
)

func sampleDoc(id string) *shapegen.Document {
	return &shapegen.Document{
		ID:     id,
		Format: shapegen.FormatJSONSchema,
		Root: &shapegen.Descriptor{Kind: shapegen.DescObject, Properties: map[string]*shapegen.Property{
			"name": {Desc: shapegen.Primitive(shapegen.DescString), Required: true},
		}},
	}
}

func TestMemory_LookupMiss(t *testing.T) {
	m := cache.NewMemory()
	_, ok, err := m.Lookup(context.Background(), "missing")
	if err != nil || ok {
		t.Fatalf("ok=%v err=%v, want miss", ok, err)
	}
}

func TestMemory_StoreThenLookup(t *testing.T) {
	m := cache.NewMemory()
	ctx := context.Background()
	doc := sampleDoc("abc")
	if err := m.Store(ctx, "abc", doc); err != nil {
		t.Fatalf("store: %v", err)
	}
	got, ok, err := m.Lookup(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if got.ID != "abc" {
		t.Fatalf("id = %s", got.ID)
	}
}

func TestMemory_StoreIsIdempotent(t *testing.T) {
	m := cache.NewMemory()
	ctx := context.Background()
	first := sampleDoc("abc")
	if err := m.Store(ctx, "abc", first); err != nil {
		t.Fatalf("store: %v", err)
	}
	// A second store of the same key must be treated as equivalent, not
	// conflicting.
	if err := m.Store(ctx, "abc", sampleDoc("abc")); err != nil {
		t.Fatalf("second store: %v", err)
	}
	got, _, _ := m.Lookup(ctx, "abc")
	if got != first {
		t.Fatalf("first write must win")
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d", m.Len())
	}
}

func TestMemory_ConcurrentStores(t *testing.T) {
	m := cache.NewMemory()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := m.Store(ctx, "same", sampleDoc("same")); err != nil {
				t.Errorf("store: %v", err)
			}
			if _, ok, err := m.Lookup(ctx, "same"); err != nil || !ok {
				t.Errorf("lookup after store: ok=%v err=%v", ok, err)
			}
		}()
	}
	wg.Wait()
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
}
