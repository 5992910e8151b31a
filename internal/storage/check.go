package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/cazan/points/internal/point"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchemaURL is the synthetic resource id of the embedded schema.
const documentSchemaURL = "mem://schemas/assets.json"

// documentSchema describes assets.json.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["path", "points"],
    "properties": {
      "path": {"type": "string"},
      "points": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["x", "y", "n"],
          "properties": {
            "x": {"type": "integer", "minimum": 0, "maximum": 4294967295},
            "y": {"type": "integer", "minimum": 0, "maximum": 4294967295},
            "n": {"type": "integer", "minimum": 0}
          }
        }
      }
    }
  }
}`

var (
	compiledSchema     *jsonschema.Schema
	compiledSchemaErr  error
	compiledSchemaOnce sync.Once
)

// schema compiles the embedded document schema once.
func schema() (*jsonschema.Schema, error) {
	compiledSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
			compiledSchemaErr = fmt.Errorf("adding document schema: %w", err)
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile(documentSchemaURL)
	})
	return compiledSchema, compiledSchemaErr
}

// ValidateDocument checks raw assets.json bytes against the document schema.
// Empty input is a valid empty document.
func ValidateDocument(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	sch, err := schema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}

	return sch.Validate(doc)
}

// Issue types reported by CheckRecords.
const (
	IssueDuplicatePath = "duplicate_path"
	IssueEmptyPath     = "empty_path"
	IssueNonPOSIXPath  = "non_posix_path"
	IssueOutsideAssets = "outside_assets_dir"
)

// Issue describes a problem found in a decoded document.
type Issue struct {
	Type    string `json:"type"`
	Path    string `json:"path"`
	Index   int    `json:"index"` // Position of the offending record
	Message string `json:"message"`
}

// CheckRecords reports records that break the document invariants:
// unique, non-empty, forward-slash image paths.
func CheckRecords(records []point.ImageRecord) []Issue {
	var issues []Issue
	firstSeen := make(map[string]int, len(records))

	for i, rec := range records {
		if rec.Path == "" {
			issues = append(issues, Issue{
				Type:    IssueEmptyPath,
				Index:   i,
				Message: "image record has an empty path",
			})
			continue
		}
		if normalized := point.NormalizePath(rec.Path); normalized != rec.Path {
			issues = append(issues, Issue{
				Type:    IssueNonPOSIXPath,
				Path:    rec.Path,
				Index:   i,
				Message: fmt.Sprintf("path contains backslashes; lookups for %q will not match it", normalized),
			})
		}
		if first, ok := firstSeen[rec.Path]; ok {
			issues = append(issues, Issue{
				Type:    IssueDuplicatePath,
				Path:    rec.Path,
				Index:   i,
				Message: fmt.Sprintf("duplicate of record %d; lookups only see the first", first),
			})
			continue
		}
		firstSeen[rec.Path] = i
	}

	return issues
}

// CheckAssetsDir reports records whose image path is not inside assetsDir,
// the project's configured source image directory. An empty or "." dir
// accepts every path.
func CheckAssetsDir(records []point.ImageRecord, assetsDir string) []Issue {
	dir := strings.TrimSuffix(strings.TrimPrefix(point.NormalizePath(assetsDir), "./"), "/")
	if dir == "" || dir == "." {
		return nil
	}

	var issues []Issue
	for i, rec := range records {
		if rec.Path == "" {
			continue // reported by CheckRecords
		}
		p := strings.TrimPrefix(point.NormalizePath(rec.Path), "./")
		if !strings.HasPrefix(p, dir+"/") {
			issues = append(issues, Issue{
				Type:    IssueOutsideAssets,
				Path:    rec.Path,
				Index:   i,
				Message: fmt.Sprintf("image is outside the assets directory %q", dir),
			})
		}
	}
	return issues
}
