package xsd_test

import (
	"strings"
	"testing"

	shapegen "github.com/shapegen/shapegen"
	"github.com/shapegen/shapegen/xsd"
)

func buildXSDDoc(t *testing.T, tree *shapegen.Node, cfg shapegen.Config) *shapegen.Document {
	t.Helper()
	opt := shapegen.Options{}
	fp, err := shapegen.ComputeFingerprint(tree, cfg, shapegen.FormatXSD, opt)
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	desc, err := shapegen.Infer(tree, opt)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	return shapegen.Build(desc, cfg, fp, shapegen.FormatXSD)
}

func TestRender_ElementTree(t *testing.T) {
	tree := shapegen.Element("note", []shapegen.Attr{{Name: "id", Value: "42"}}, "",
		shapegen.Element("to", nil, "Alice"),
		shapegen.Element("count", nil, "3"),
	)
	doc := buildXSDDoc(t, tree, shapegen.Config{})
	out, err := xsd.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">`,
		`checksum_id=` + doc.ID,
		`<xs:element name="note">`,
		`<xs:element name="to" type="xs:string"/>`,
		`<xs:element name="count" type="xs:decimal"/>`,
		`<xs:attribute name="id" type="xs:decimal"/>`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("output misses %q:\n%s", want, s)
		}
	}
}

func TestRender_OptionalAndNullableMarkers(t *testing.T) {
	tree := shapegen.Element("user", nil, "",
		shapegen.Element("name", nil, "Alice"),
		shapegen.Element("bio", nil, "hello"),
		shapegen.Element("email", nil, "a@b"),
	)
	cfg := shapegen.Config{
		Optional: []string{"user.bio"},
		Nullable: []string{"user.email"},
	}
	doc := buildXSDDoc(t, tree, cfg)
	out, err := xsd.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `<xs:element name="bio" type="xs:string" minOccurs="0"/>`) {
		t.Fatalf("optional field misses minOccurs=0:\n%s", s)
	}
	if !strings.Contains(s, `<xs:element name="email" type="xs:string" nillable="true"/>`) {
		t.Fatalf("nullable field misses nillable:\n%s", s)
	}
}

func TestRender_RepeatedElementUnbounded(t *testing.T) {
	tree := shapegen.Element("list", nil, "",
		shapegen.Element("item", nil, "1"),
		shapegen.Element("item", nil, "2"),
	)
	doc := buildXSDDoc(t, tree, shapegen.Config{})
	out, err := xsd.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `maxOccurs="unbounded"`) {
		t.Fatalf("repeated element misses maxOccurs:\n%s", out)
	}
}

func TestRender_MixedContent(t *testing.T) {
	tree := shapegen.Element("p", nil, "some text",
		shapegen.Element("b", nil, "bold"),
	)
	doc := buildXSDDoc(t, tree, shapegen.Config{})
	out, err := xsd.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `<xs:complexType mixed="true">`) {
		t.Fatalf("text-with-children misses mixed=true:\n%s", out)
	}
}

func TestRender_TextWithAttributesMixed(t *testing.T) {
	tree := shapegen.Element("price", []shapegen.Attr{{Name: "currency", Value: "USD"}}, "10")
	doc := buildXSDDoc(t, tree, shapegen.Config{})
	out, err := xsd.Render(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `<xs:complexType mixed="true">`) {
		t.Fatalf("text-with-attributes misses mixed=true:\n%s", out)
	}
	if !strings.Contains(string(out), `<xs:attribute name="currency" type="xs:string"/>`) {
		t.Fatalf("attribute declaration missing:\n%s", out)
	}
}

func TestRender_RejectsNonObjectRoot(t *testing.T) {
	doc := &shapegen.Document{ID: "x", Format: shapegen.FormatXSD, Root: shapegen.Primitive(shapegen.DescString)}
	if _, err := xsd.Render(doc); err == nil {
		t.Fatalf("expected error for scalar root")
	}
}
