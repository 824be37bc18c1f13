package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"

	shapegen "github.com/shapegen/shapegen"
	"github.com/shapegen/shapegen/cache"
	"github.com/shapegen/shapegen/config"
	"github.com/shapegen/shapegen/jsonschema"
	jsonsource "github.com/shapegen/shapegen/source/json"
	xmlsource "github.com/shapegen/shapegen/source/xml"
	"github.com/shapegen/shapegen/xsd"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "infer":
		inferCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "shapegen CLI\n\nUsage:\n  shapegen infer -in file-or-dir -out schemadir [-config config.yaml] [-format jsonschema|xsd] [-sqlite store.db]\n  shapegen validate -in instance.json -schema schema.json")
}

func inferCmd(args []string) {
	fs := flag.NewFlagSet("infer", flag.ExitOnError)
	var in, out, configPath, format, sqlitePath string
	var maxDepth int
	fs.StringVar(&in, "in", "", "input file or directory (.json/.xml)")
	fs.StringVar(&out, "out", "schemas", "directory for generated schema artifacts")
	fs.StringVar(&configPath, "config", "", "per-file directive configuration (YAML or JSON)")
	fs.StringVar(&format, "format", "", "target dialect: jsonschema or xsd (default by extension)")
	fs.StringVar(&sqlitePath, "sqlite", "", "use a SQLite schema store instead of the file cache")
	fs.IntVar(&maxDepth, "max-depth", 0, "tree depth limit (0 = default)")
	_ = fs.Parse(args)
	if in == "" {
		fs.Usage()
		os.Exit(2)
	}

	cfgSet, err := config.Load(configPath)
	if err != nil {
		fatalf("load config: %v", err)
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		fatalf("create output dir: %v", err)
	}

	var store cache.Cache
	if sqlitePath != "" {
		db, err := cache.NewSQLite(sqlitePath)
		if err != nil {
			fatalf("open sqlite store: %v", err)
		}
		defer db.Close()
		store = db
	} else {
		store = cache.NewFileCache(out)
	}

	files, err := collectInputs(in)
	if err != nil {
		fatalf("collect inputs: %v", err)
	}

	ctx := context.Background()
	opt := shapegen.Options{MaxDepth: maxDepth}
	failures := 0
	for _, path := range files {
		// One bad file must not stop the batch.
		if err := processFile(ctx, path, out, format, cfgSet, store, opt); err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
		}
	}
	if failures > 0 {
		os.Exit(1)
	}
}

func processFile(ctx context.Context, path, out, format string, cfgSet config.Set, store cache.Cache, opt shapegen.Options) error {
	tree, f, err := parseFile(path, format, opt)
	if err != nil {
		return err
	}
	cfg := cfgSet.ForFile(filepath.Base(path))
	for _, c := range cfg.Conflicts() {
		fmt.Fprintf(os.Stderr, "warn %s: %s at %s\n", path, c.Code, c.Path)
	}

	fp, err := shapegen.ComputeFingerprint(tree, cfg, f, opt)
	if err != nil {
		return err
	}
	doc, hit, err := store.Lookup(ctx, fp)
	if err != nil {
		return err
	}
	if !hit {
		desc, err := shapegen.Infer(tree, opt)
		if err != nil {
			return err
		}
		doc = shapegen.Build(desc, cfg, fp, f)
		if err := store.Store(ctx, fp, doc); err != nil {
			return err
		}
		if err := writeArtifact(out, doc); err != nil {
			return err
		}
	}

	res := shapegen.Validate(tree, doc, opt)
	status := "ok"
	if !res.OK {
		status = "INVALID"
	}
	reuse := "new"
	if hit {
		reuse = "cached"
	}
	fmt.Printf("%-7s %s  schema=%s (%s)\n", status, path, fp, reuse)
	for _, iss := range res.Issues {
		fmt.Printf("        [%s] %s %s\n", iss.Path, iss.Code, iss.Message)
	}
	return nil
}

func parseFile(path, format string, opt shapegen.Options) (*shapegen.Node, shapegen.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}
	isXML := strings.EqualFold(filepath.Ext(path), ".xml")
	f := shapegen.FormatJSONSchema
	if format == "xsd" || (format == "" && isXML) {
		f = shapegen.FormatXSD
	}
	if isXML {
		n, err := xmlsource.Parse(data, opt)
		return n, f, err
	}
	n, err := jsonsource.Parse(data, opt)
	return n, f, err
}

// writeArtifact renders the document in its target dialect next to the cache
// entry, named by fingerprint like the cache key itself.
func writeArtifact(out string, doc *shapegen.Document) error {
	switch doc.Format {
	case shapegen.FormatXSD:
		data, err := xsd.Render(doc)
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(out, doc.ID+".xsd"), data, 0o644)
	default:
		data, err := gojson.MarshalIndent(jsonschema.Render(doc), "", "  ")
		if err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(out, doc.ID+".schema.json"), data, 0o644)
	}
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var in, schemaPath string
	var maxDepth int
	fs.StringVar(&in, "in", "", "instance file (.json/.xml)")
	fs.StringVar(&schemaPath, "schema", "", "rendered JSON Schema file")
	fs.IntVar(&maxDepth, "max-depth", 0, "tree depth limit (0 = default)")
	_ = fs.Parse(args)
	if in == "" || schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	opt := shapegen.Options{MaxDepth: maxDepth}

	tree, _, err := parseFile(in, "", opt)
	if err != nil {
		fatalf("parse instance: %v", err)
	}
	raw, err := os.ReadFile(schemaPath)
	if err != nil {
		fatalf("read schema: %v", err)
	}
	var s jsonschema.Schema
	if err := gojson.Unmarshal(raw, &s); err != nil {
		fatalf("decode schema: %v", err)
	}
	res := shapegen.Validate(tree, jsonschema.ToDocument(&s), opt)
	if res.OK {
		fmt.Println("ok")
		return
	}
	for _, iss := range res.Issues {
		fmt.Printf("[%s] %s %s\n", iss.Path, iss.Code, iss.Message)
	}
	os.Exit(1)
}

func collectInputs(in string) ([]string, error) {
	info, err := os.Stat(in)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{in}, nil
	}
	entries, err := os.ReadDir(in)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".xml":
			files = append(files, filepath.Join(in, e.Name()))
		}
	}
	return files, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
