// Package xml parses XML text into the generic shapegen tree. Namespace
// prefixes are stripped from tag names and whitespace-only text is ignored,
// so structurally identical documents fingerprint identically regardless of
// prefix choices or formatting.
package xml

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	shapegen "github.com/shapegen/shapegen"
	"github.com/shapegen/shapegen/i18n"
)

// Parse decodes an XML document into an Element node tree.
func Parse(data []byte, opt shapegen.Options) (*shapegen.Node, error) {
	return ParseReader(bytes.NewReader(data), opt)
}

// ParseReader is Parse over an io.Reader.
func ParseReader(r io.Reader, opt shapegen.Options) (*shapegen.Node, error) {
	dec := xml.NewDecoder(r)
	limit := opt.MaxDepth
	if limit <= 0 {
		limit = shapegen.DefaultMaxDepth
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, parseIssue("/", errors.New("no root element"))
			}
			return nil, parseIssue("/", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue // prolog, comments, directives
		}
		return element(dec, start, "", 0, limit)
	}
}

func element(dec *xml.Decoder, start xml.StartElement, parent string, depth, limit int) (*shapegen.Node, error) {
	name := start.Name.Local
	path := shapegen.JoinPath(parent, name)
	if depth > limit {
		return nil, shapegen.Issues{{
			Path:     pointer(path),
			Code:     shapegen.CodeMalformedTree,
			Severity: shapegen.Error,
			Message:  i18n.T(shapegen.CodeMalformedTree, nil),
			Hint:     "depth limit exceeded",
		}}
	}
	var attrs []shapegen.Attr
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		attrs = append(attrs, shapegen.Attr{Name: a.Name.Local, Value: a.Value})
	}
	var (
		children []*shapegen.Node
		text     strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, parseIssue(pointer(path), err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := element(dec, t, path, depth+1, limit)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			return shapegen.Element(name, attrs, strings.TrimSpace(text.String()), children...), nil
		}
	}
}

func pointer(path string) string {
	if path == "" {
		return "/"
	}
	return "/" + strings.ReplaceAll(path, ".", "/")
}

func parseIssue(ptr string, err error) error {
	return shapegen.Issues{{Path: ptr, Code: shapegen.CodeParseError, Severity: shapegen.Error, Message: err.Error(), Cause: err}}
}
