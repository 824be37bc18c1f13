package shapegen_test

import (
	"testing"

	shapegen "github.com/shapegen/shapegen"
)

func TestJoin_UnknownIsIdentity(t *testing.T) {
	s := shapegen.Primitive(shapegen.DescString)
	if got := shapegen.Join(shapegen.Unknown(), s); !shapegen.Equal(got, s) {
		t.Fatalf("unknown ⊔ string = %v", got.Kind)
	}
	if got := shapegen.Join(s, shapegen.Unknown()); !shapegen.Equal(got, s) {
		t.Fatalf("string ⊔ unknown = %v", got.Kind)
	}
}

func TestJoin_Idempotent(t *testing.T) {
	d := &shapegen.Descriptor{Kind: shapegen.DescObject, Properties: map[string]*shapegen.Property{
		"a": {Desc: shapegen.Primitive(shapegen.DescNumber), Required: true},
	}}
	if got := shapegen.Join(d, d); !shapegen.Equal(got, d) {
		t.Fatalf("d ⊔ d != d")
	}
}

func TestJoin_Commutative(t *testing.T) {
	a := shapegen.Primitive(shapegen.DescString)
	b := shapegen.Primitive(shapegen.DescNumber)
	ab := shapegen.Join(a, b)
	ba := shapegen.Join(b, a)
	if !shapegen.Equal(ab, ba) {
		t.Fatalf("join is not commutative: %v vs %v", ab, ba)
	}
	if ab.Kind != shapegen.DescUnion {
		t.Fatalf("string ⊔ number = %v, want union", ab.Kind)
	}
}

func TestJoin_NullWithPrimitiveYieldsUnion(t *testing.T) {
	got := shapegen.Join(shapegen.Primitive(shapegen.DescString), shapegen.Primitive(shapegen.DescNull))
	if got.Kind != shapegen.DescUnion || !got.ContainsNull() {
		t.Fatalf("string ⊔ null = %v", got)
	}
}

func TestJoin_ObjectsUnionProperties(t *testing.T) {
	a := &shapegen.Descriptor{Kind: shapegen.DescObject, Properties: map[string]*shapegen.Property{
		"a": {Desc: shapegen.Primitive(shapegen.DescNumber), Required: true},
	}}
	b := &shapegen.Descriptor{Kind: shapegen.DescObject, Properties: map[string]*shapegen.Property{
		"a": {Desc: shapegen.Primitive(shapegen.DescNumber), Required: true},
		"b": {Desc: shapegen.Primitive(shapegen.DescString), Required: true},
	}}
	got := shapegen.Join(a, b)
	if got.Kind != shapegen.DescObject {
		t.Fatalf("kind = %v", got.Kind)
	}
	if !got.Properties["a"].Required {
		t.Fatalf("shared property lost required")
	}
	if got.Properties["b"].Required {
		t.Fatalf("one-sided property must become non-required")
	}
}

func TestJoin_Associative(t *testing.T) {
	a := shapegen.Primitive(shapegen.DescString)
	b := shapegen.Primitive(shapegen.DescNumber)
	c := shapegen.Primitive(shapegen.DescBoolean)
	left := shapegen.Join(shapegen.Join(a, b), c)
	right := shapegen.Join(a, shapegen.Join(b, c))
	if !shapegen.Equal(left, right) {
		t.Fatalf("join is not associative: %v vs %v", left, right)
	}
}

func TestJoin_ArraysJoinItems(t *testing.T) {
	a := &shapegen.Descriptor{Kind: shapegen.DescArray, Item: shapegen.Primitive(shapegen.DescNumber)}
	b := &shapegen.Descriptor{Kind: shapegen.DescArray, Item: shapegen.Primitive(shapegen.DescString)}
	got := shapegen.Join(a, b)
	if got.Kind != shapegen.DescArray || got.Item.Kind != shapegen.DescUnion {
		t.Fatalf("join = %+v", got)
	}
}
