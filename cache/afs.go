package cache

import (
	"bytes"
	"context"
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	shapegen "github.com/shapegen/shapegen"
)

// FileCache stores one document per fingerprint as <baseURL>/<fp>.json. The
// abstract file service accepts local paths as well as remote URLs, so the
// same cache works against a directory or an object store. Writes upload a
// complete byte slice; an existing file is an equivalent artifact and is left
// alone.
type FileCache struct {
	svc     afs.Service
	baseURL string
}

// NewFileCache returns a cache rooted at baseURL (e.g. "json_schema" or
// "s3://bucket/schemas").
func NewFileCache(baseURL string) *FileCache {
	return &FileCache{svc: afs.New(), baseURL: baseURL}
}

func (c *FileCache) location(fp shapegen.Fingerprint) string {
	return url.Join(c.baseURL, string(fp)+".json")
}

func (c *FileCache) Lookup(ctx context.Context, fp shapegen.Fingerprint) (*shapegen.Document, bool, error) {
	location := c.location(fp)
	exists, err := c.svc.Exists(ctx, location)
	if err != nil {
		return nil, false, fmt.Errorf("cache: exists %v: %w", location, err)
	}
	if !exists {
		return nil, false, nil
	}
	data, err := c.svc.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, false, fmt.Errorf("cache: download %v: %w", location, err)
	}
	var doc shapegen.Document
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, false, fmt.Errorf("cache: decode %v: %w", location, err)
	}
	return &doc, true, nil
}

func (c *FileCache) Store(ctx context.Context, fp shapegen.Fingerprint, doc *shapegen.Document) error {
	location := c.location(fp)
	exists, err := c.svc.Exists(ctx, location)
	if err != nil {
		return fmt.Errorf("cache: exists %v: %w", location, err)
	}
	if exists {
		return nil
	}
	data, err := gojson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache: encode %v: %w", location, err)
	}
	if err := c.svc.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("cache: upload %v: %w", location, err)
	}
	return nil
}
