// Package ingest feeds OCR page dumps into the extraction pipeline: a
// schema-validated JSON decoder plus a debounced directory watcher for the
// daemon's inbox directories.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/josephvaleri/mlmp/internal/entity"
)

// pageDumpSchema constrains the OCR collaborator's dump format: an array of
// page objects, each with an ordered line list. Malformed dumps are rejected
// whole rather than half-decoded.
var pageDumpSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":     "object",
		"required": []any{"page_number", "lines"},
		"properties": map[string]any{
			"page_number": map[string]any{"type": "integer", "minimum": 1},
			"confidence":  map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"lines": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"text"},
					"properties": map[string]any{
						"text":       map[string]any{"type": "string"},
						"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
						"box": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"x":      map[string]any{"type": "integer"},
								"y":      map[string]any{"type": "integer"},
								"width":  map[string]any{"type": "integer", "minimum": 0},
								"height": map[string]any{"type": "integer", "minimum": 0},
							},
						},
					},
				},
			},
		},
	},
}

var compiledPageDumpSchema = mustCompileSchema(pageDumpSchema)

func mustCompileSchema(schemaMap map[string]any) *jsonschema.Schema {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		panic(fmt.Sprintf("marshal page dump schema: %v", err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("pagedump.json", bytes.NewReader(b)); err != nil {
		panic(fmt.Sprintf("add page dump schema: %v", err))
	}
	schema, err := compiler.Compile("pagedump.json")
	if err != nil {
		panic(fmt.Sprintf("compile page dump schema: %v", err))
	}
	return schema
}

// DecodePageDump validates and decodes one page dump stream.
func DecodePageDump(r io.Reader) ([]entity.OcrPage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read page dump: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("unmarshal page dump: %w", err)
	}
	if err := compiledPageDumpSchema.Validate(v); err != nil {
		return nil, fmt.Errorf("page dump does not match schema: %w", err)
	}

	var pages []entity.OcrPage
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, fmt.Errorf("decode page dump: %w", err)
	}
	return pages, nil
}

// ReadPageDump decodes the page dump file at path.
func ReadPageDump(path string) ([]entity.OcrPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodePageDump(f)
}
