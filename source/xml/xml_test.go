package xml_test

import (
	"testing"

	shapegen "github.com/shapegen/shapegen"
	xmlsource "github.com/shapegen/shapegen/source/xml"
)

func TestParse_ElementTree(t *testing.T) {
	data := []byte(`<?xml version="1.0"?>
<note id="42">
  <to>Alice</to>
  <item>1</item>
  <item>2</item>
</note>`)
	n, err := xmlsource.Parse(data, shapegen.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n.Kind != shapegen.KindElement || n.Name != "note" {
		t.Fatalf("root = %+v", n)
	}
	if len(n.Attrs) != 1 || n.Attrs[0].Name != "id" || n.Attrs[0].Value != "42" {
		t.Fatalf("attrs = %+v", n.Attrs)
	}
	if len(n.Items) != 3 {
		t.Fatalf("children = %d, want 3", len(n.Items))
	}
	if n.Items[0].Name != "to" || n.Items[0].Text != "Alice" {
		t.Fatalf("to = %+v", n.Items[0])
	}
}

func TestParse_NamespacePrefixStripped(t *testing.T) {
	data := []byte(`<ns:root xmlns:ns="http://example.com"><ns:child>x</ns:child></ns:root>`)
	n, err := xmlsource.Parse(data, shapegen.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n.Name != "root" {
		t.Fatalf("root name = %s", n.Name)
	}
	if n.Items[0].Name != "child" {
		t.Fatalf("child name = %s", n.Items[0].Name)
	}
}

func TestParse_WhitespaceTextIgnored(t *testing.T) {
	data := []byte("<a>\n  <b>x</b>\n</a>")
	n, err := xmlsource.Parse(data, shapegen.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n.Text != "" {
		t.Fatalf("text = %q, want empty", n.Text)
	}
}

func TestParse_DepthLimit(t *testing.T) {
	data := []byte(`<a><b><c><d><e>x</e></d></c></b></a>`)
	_, err := xmlsource.Parse(data, shapegen.Options{MaxDepth: 2})
	iss, ok := shapegen.AsIssues(err)
	if !ok || iss[0].Code != shapegen.CodeMalformedTree {
		t.Fatalf("expected malformed_tree, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := xmlsource.Parse([]byte(`<a><b></a>`), shapegen.Options{})
	iss, ok := shapegen.AsIssues(err)
	if !ok || iss[0].Code != shapegen.CodeParseError {
		t.Fatalf("expected parse_error, got %v", err)
	}
}

func TestParse_NoRoot(t *testing.T) {
	_, err := xmlsource.Parse([]byte(`<!-- nothing here -->`), shapegen.Options{})
	if err == nil {
		t.Fatalf("expected error for empty document")
	}
}
