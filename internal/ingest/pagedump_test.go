package ingest

import (
	"strings"
	"testing"
)

const validDump = `[
  {
    "page_number": 1,
    "confidence": 0.93,
    "lines": [
      {"text": "ENTREES", "confidence": 0.97, "box": {"x": 40, "y": 100, "width": 280, "height": 36}},
      {"text": "Grilled Salmon $24", "confidence": 0.91, "box": {"x": 40, "y": 160, "width": 420, "height": 22}}
    ]
  },
  {
    "page_number": 2,
    "lines": [
      {"text": "Desserts", "confidence": 0.95}
    ]
  }
]`

func TestDecodePageDump(t *testing.T) {
	pages, err := DecodePageDump(strings.NewReader(validDump))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	p := pages[0]
	if p.PageNumber != 1 || len(p.Lines) != 2 {
		t.Fatalf("page 1 = %+v", p)
	}
	if p.Lines[0].Text != "ENTREES" {
		t.Errorf("line text = %q", p.Lines[0].Text)
	}
	if p.Lines[0].Box.Height != 36 {
		t.Errorf("box height = %d", p.Lines[0].Box.Height)
	}
	if pages[1].Lines[0].Box.Width != 0 {
		t.Errorf("absent box should decode to zero value")
	}
}

func TestDecodePageDumpRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":          `{`,
		"not an array":      `{"page_number": 1, "lines": []}`,
		"empty array":       `[]`,
		"missing lines":     `[{"page_number": 1}]`,
		"zero page number":  `[{"page_number": 0, "lines": []}]`,
		"line without text": `[{"page_number": 1, "lines": [{"confidence": 0.5}]}]`,
		"confidence out of range": `[{"page_number": 1, "confidence": 1.5, "lines": []}]`,
	}
	for name, payload := range cases {
		if _, err := DecodePageDump(strings.NewReader(payload)); err == nil {
			t.Errorf("%s: decode accepted malformed dump", name)
		}
	}
}

func TestAllowedExt(t *testing.T) {
	if !allowed("/inbox/menu-7.json", defaultExts) {
		t.Error("json dump rejected")
	}
	if allowed("/inbox/menu-7.pdf", defaultExts) {
		t.Error("pdf accepted")
	}
	if allowed("/inbox/menu-7.JSON.tmp", defaultExts) {
		t.Error("tmp suffix accepted")
	}
	if !allowed("/inbox/MENU.JSON", defaultExts) {
		t.Error("uppercase extension rejected")
	}
}
