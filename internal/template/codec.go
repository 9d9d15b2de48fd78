// Package template assembles, serializes and applies the exportable
// template: the sole artifact exchanged with downstream stamping tools.
package template

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dooform/pdf-template-editor/internal/fields"
	"github.com/dooform/pdf-template-editor/internal/geom"
)

// A4 page dimensions in points, used when a page's real dimensions were
// never measured (the document was not rendered at that page).
const (
	FallbackPageWidth  = 595.28
	FallbackPageHeight = 841.89
)

// ImportedTemplateName replaces a blank templateName on import.
const ImportedTemplateName = "imported_template"

// Dimensions aliases the point-space page extents used across the editor.
type Dimensions = geom.Dimensions

// PageTemplate is the export form of one page: its point-space dimensions
// and its fields in stored order. Pages without fields are never emitted.
type PageTemplate struct {
	Page   int            `json:"page"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Fields []fields.Field `json:"fields"`
}

// Template is the complete exported layout for one document. It round-trips
// losslessly through JSON.
type Template struct {
	TemplateName string         `json:"templateName"`
	PDFFileName  string         `json:"pdfFileName"`
	CreatedAt    time.Time      `json:"createdAt"`
	Pages        []PageTemplate `json:"pages"`
}

// ParseError reports malformed import text. Import never partially accepts:
// a ParseError means the field store was left untouched.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("template is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Build assembles a Template from the store's current contents. Only pages
// with at least one field are emitted, ascending by page number. Dimensions
// come from pageDims when the page was measured and fall back to A4
// otherwise. CreatedAt is always the build time, never carried over from a
// previously imported template.
func Build(store *fields.Store, pageDims map[int]Dimensions, templateName, pdfFileName string) Template {
	snap := store.Snapshot()

	pages := make([]PageTemplate, 0, len(snap))
	for pageNum, fs := range snap {
		if len(fs) == 0 {
			continue
		}
		dims, ok := pageDims[pageNum]
		if !ok {
			dims = Dimensions{Width: FallbackPageWidth, Height: FallbackPageHeight}
		}
		pages = append(pages, PageTemplate{
			Page:   pageNum,
			Width:  geom.Round2(dims.Width),
			Height: geom.Round2(dims.Height),
			Fields: fs,
		})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Page < pages[j].Page })

	return Template{
		TemplateName: templateName,
		PDFFileName:  pdfFileName,
		CreatedAt:    time.Now().UTC(),
		Pages:        pages,
	}
}

// Serialize renders the template as pretty-printed JSON, preserving field
// order as stored.
func Serialize(t Template) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize template: %w", err)
	}
	return data, nil
}

// Parse decodes template JSON. Malformed input yields a ParseError with no
// partial result. Parse does not structurally validate the decoded shape
// beyond JSON syntax; callers check required fields defensively before
// trusting it.
func Parse(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &t, nil
}

// Apply replaces the store's entire contents with the template's pages in
// one atomic step, and returns the effective template name (falling back
// to ImportedTemplateName when blank). A field whose style variant does
// not match its type, as hand-written imports can produce, gets the
// type's default style instead of a mismatched one.
func Apply(t *Template, store *fields.Store) string {
	pages := make(map[int][]fields.Field, len(t.Pages))
	for _, p := range t.Pages {
		if len(p.Fields) == 0 {
			continue
		}
		fs := make([]fields.Field, len(p.Fields))
		copy(fs, p.Fields)
		for i := range fs {
			if !fs[i].Style.MatchesType(fs[i].Type) {
				fs[i].Style = fields.DefaultStyleFor(fs[i].Type)
			}
		}
		pages[p.Page] = fs
	}
	store.Replace(pages)

	name := strings.TrimSpace(t.TemplateName)
	if name == "" {
		name = ImportedTemplateName
	}
	return name
}
