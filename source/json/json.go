// Package json parses JSON text into the generic shapegen tree. It is the
// JSON text-to-tree collaborator: the core never sees surface syntax.
package json

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	gojson "github.com/goccy/go-json"

	shapegen "github.com/shapegen/shapegen"
	"github.com/shapegen/shapegen/i18n"
)

// Parse decodes a JSON document into a Node tree. Numbers are decoded with
// UseNumber and folded to float64; integers and floats land in the same
// number kind. Duplicate object keys and depth overruns are reported as
// malformed-tree issues with the offending JSON Pointer.
func Parse(data []byte, opt shapegen.Options) (*shapegen.Node, error) {
	return ParseReader(bytes.NewReader(data), opt)
}

// ParseReader is Parse over an io.Reader.
func ParseReader(r io.Reader, opt shapegen.Options) (*shapegen.Node, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	p := &parser{dec: dec, limit: maxDepth(opt)}
	tok, err := p.next()
	if err != nil {
		return nil, parseIssue("/", err)
	}
	n, err := p.value(tok, "", 0)
	if err != nil {
		return nil, err
	}
	// Trailing garbage after the top-level value is a parse error.
	if _, err := p.dec.Token(); err != io.EOF {
		return nil, parseIssue("/", fmt.Errorf("unexpected trailing content"))
	}
	return n, nil
}

type parser struct {
	dec   *gojson.Decoder
	limit int
}

func (p *parser) next() (gojson.Token, error) {
	return p.dec.Token()
}

func (p *parser) value(tok gojson.Token, path string, depth int) (*shapegen.Node, error) {
	if depth > p.limit {
		return nil, depthIssue(path)
	}
	switch v := tok.(type) {
	case gojson.Delim:
		switch v {
		case '{':
			return p.object(path, depth)
		case '[':
			return p.array(path, depth)
		}
		return nil, parseIssue(pointer(path), fmt.Errorf("unexpected delimiter %v", v))
	case string:
		return shapegen.String(v), nil
	case gojson.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, parseIssue(pointer(path), err)
		}
		return shapegen.Number(f), nil
	case bool:
		return shapegen.Bool(v), nil
	case nil:
		return shapegen.Null(), nil
	default:
		return nil, parseIssue(pointer(path), fmt.Errorf("unexpected token %v", tok))
	}
}

func (p *parser) object(path string, depth int) (*shapegen.Node, error) {
	fields := map[string]*shapegen.Node{}
	for {
		tok, err := p.next()
		if err != nil {
			return nil, parseIssue(pointer(path), err)
		}
		if d, ok := tok.(gojson.Delim); ok && d == '}' {
			return shapegen.Object(fields), nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, parseIssue(pointer(path), fmt.Errorf("object key is not a string"))
		}
		childPath := shapegen.JoinPath(path, key)
		if _, dup := fields[key]; dup {
			// A misbehaving producer; continuing would silently corrupt
			// inference, so fail the document.
			return nil, shapegen.Issues{{
				Path:     pointer(childPath),
				Code:     shapegen.CodeDuplicateKey,
				Severity: shapegen.Error,
				Message:  i18n.T(shapegen.CodeDuplicateKey, map[string]string{"key": key}),
			}}
		}
		vt, err := p.next()
		if err != nil {
			return nil, parseIssue(pointer(childPath), err)
		}
		child, err := p.value(vt, childPath, depth+1)
		if err != nil {
			return nil, err
		}
		fields[key] = child
	}
}

func (p *parser) array(path string, depth int) (*shapegen.Node, error) {
	var items []*shapegen.Node
	for {
		tok, err := p.next()
		if err != nil {
			return nil, parseIssue(pointer(path), err)
		}
		if d, ok := tok.(gojson.Delim); ok && d == ']' {
			return shapegen.Array(items...), nil
		}
		// Array elements share their array's field path.
		item, err := p.value(tok, path, depth+1)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func maxDepth(opt shapegen.Options) int {
	if opt.MaxDepth > 0 {
		return opt.MaxDepth
	}
	return shapegen.DefaultMaxDepth
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

func depthIssue(path string) error {
	return shapegen.Issues{{
		Path:     pointer(path),
		Code:     shapegen.CodeMalformedTree,
		Severity: shapegen.Error,
		Message:  i18n.T(shapegen.CodeMalformedTree, nil),
		Hint:     "depth limit exceeded",
	}}
}
