// Package xsd renders schema documents in XML Schema shape: element and
// attribute declarations with minOccurs="0" for optional fields and
// nillable="true" for nullable ones. Only basic typing is emitted; XSD facets
// are out of scope.
package xsd

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	shapegen "github.com/shapegen/shapegen"
)

const xsNamespace = "http://www.w3.org/2001/XMLSchema"

// Render emits the XSD form of a schema document. The fingerprint travels in
// an xs:annotation/xs:appinfo block, keeping the output a valid schema while
// preserving the identifier for cache bookkeeping.
func Render(doc *shapegen.Document) ([]byte, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("xsd: nil document")
	}
	if doc.Root.Kind != shapegen.DescObject {
		return nil, fmt.Errorf("xsd: root descriptor must be an object, got %s", doc.Root.Kind)
	}
	b := &strings.Builder{}
	b.WriteString(xml.Header)
	fmt.Fprintf(b, "<xs:schema xmlns:xs=%q>\n", xsNamespace)
	if doc.ID != "" {
		b.WriteString("  <xs:annotation>\n")
		fmt.Fprintf(b, "    <xs:appinfo>checksum_id=%s</xs:appinfo>\n", doc.ID)
		b.WriteString("  </xs:annotation>\n")
	}
	for _, name := range sortedElementNames(doc.Root) {
		renderElement(b, name, doc.Root.Properties[name], 1)
	}
	b.WriteString("</xs:schema>\n")
	return []byte(b.String()), nil
}

func renderElement(b *strings.Builder, name string, p *shapegen.Property, depth int) {
	ind := strings.Repeat("  ", depth)
	occurs := ""
	if !p.Required {
		occurs += ` minOccurs="0"`
	}
	if p.Repeated {
		occurs += ` maxOccurs="unbounded"`
	}
	d := p.Desc
	if d != nil && d.Kind == shapegen.DescArray {
		// Arrays render as the repeated item element.
		d = d.Item
		if !strings.Contains(occurs, "maxOccurs") {
			occurs += ` maxOccurs="unbounded"`
		}
		if !strings.Contains(occurs, "minOccurs") {
			occurs += ` minOccurs="0"`
		}
	}
	if d == nil || d.Kind != shapegen.DescObject {
		typ, nillable := scalarType(d)
		if p.Nullable {
			nillable = true
		}
		nil2 := ""
		if nillable {
			nil2 = ` nillable="true"`
		}
		fmt.Fprintf(b, "%s<xs:element name=\"%s\" type=\"%s\"%s%s/>\n", ind, escape(name), typ, occurs, nil2)
		return
	}
	nil2 := ""
	if p.Nullable {
		nil2 = ` nillable="true"`
	}
	fmt.Fprintf(b, "%s<xs:element name=\"%s\"%s%s>\n", ind, escape(name), occurs, nil2)
	mixed := ""
	if d.Mixed {
		mixed = ` mixed="true"`
	}
	fmt.Fprintf(b, "%s  <xs:complexType%s>\n", ind, mixed)
	children := sortedElementNames(d)
	if len(children) > 0 {
		fmt.Fprintf(b, "%s    <xs:sequence>\n", ind)
		for _, cn := range children {
			renderElement(b, cn, d.Properties[cn], depth+3)
		}
		fmt.Fprintf(b, "%s    </xs:sequence>\n", ind)
	}
	for _, an := range sortedAttributeNames(d) {
		p := d.Properties[an]
		typ, _ := scalarType(p.Desc)
		use := ""
		if !p.Required {
			use = ` use="optional"`
		}
		fmt.Fprintf(b, "%s    <xs:attribute name=\"%s\" type=\"%s\"%s/>\n",
			ind, escape(strings.TrimPrefix(an, shapegen.AttrSeparator)), typ, use)
	}
	fmt.Fprintf(b, "%s  </xs:complexType>\n", ind)
	fmt.Fprintf(b, "%s</xs:element>\n", ind)
}

// scalarType maps a non-object descriptor onto an XSD builtin. Unions have no
// direct XSD counterpart: a null union becomes the non-null member plus
// nillable, anything else degrades to xs:string.
func scalarType(d *shapegen.Descriptor) (typ string, nillable bool) {
	if d == nil {
		return "xs:string", false
	}
	switch d.Kind {
	case shapegen.DescNumber:
		return "xs:decimal", false
	case shapegen.DescBoolean:
		return "xs:boolean", false
	case shapegen.DescNull:
		return "xs:string", true
	case shapegen.DescUnion:
		var nonNull []*shapegen.Descriptor
		sawNull := false
		for _, m := range d.Members {
			if m.Kind == shapegen.DescNull {
				sawNull = true
				continue
			}
			nonNull = append(nonNull, m)
		}
		if len(nonNull) == 1 {
			t, n := scalarType(nonNull[0])
			return t, n || sawNull
		}
		return "xs:string", sawNull
	default:
		return "xs:string", false
	}
}

func sortedElementNames(d *shapegen.Descriptor) []string {
	names := make([]string, 0, len(d.Properties))
	for n, p := range d.Properties {
		if !p.Attribute {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func sortedAttributeNames(d *shapegen.Descriptor) []string {
	names := make([]string, 0, len(d.Properties))
	for n, p := range d.Properties {
		if p.Attribute {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

func escape(s string) string {
	b := &strings.Builder{}
	_ = xml.EscapeText(b, []byte(s))
	return b.String()
}
