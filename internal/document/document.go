// Package document wraps the PDF libraries behind the single interface the
// editor core needs: page count, per-page point dimensions, and viewport
// computation for a (page, zoom) pair. Pixel painting itself stays with the
// consuming shell; the core only ever sees geometry.
package document

import (
	"fmt"

	"github.com/dooform/pdf-template-editor/internal/geom"
)

// Backend identifies the underlying PDF library serving a document.
type Backend string

const (
	BackendPDFCPU     Backend = "pdfcpu"
	BackendLedongthuc Backend = "ledongthuc"
)

// Document is an opened PDF. Implementations are read-only and safe for
// concurrent reads after Load returns.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageDimensions returns the point-space extents of a 1-based page.
	PageDimensions(page int) (geom.Dimensions, error)

	// Backend reports which library parsed the document.
	Backend() Backend

	// Close releases any resources held by the backend.
	Close() error
}

// LoadError reports document bytes that no backend could parse. It aborts
// only the load that triggered it.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load PDF document: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// RenderError reports a failed viewport computation for one (page, zoom)
// pair. Prior viewport state stays untouched.
type RenderError struct {
	Page  int
	Scale float64
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render page %d at scale %g: %v", e.Page, e.Scale, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Load parses document bytes, preferring the pdfcpu backend and falling
// back to ledongthuc/pdf when pdfcpu rejects the input. When both fail the
// LoadError wraps the pdfcpu cause, which is usually the more precise one.
func Load(data []byte) (Document, error) {
	doc, primaryErr := loadPDFCPU(data)
	if primaryErr == nil {
		return doc, nil
	}

	doc, fallbackErr := loadLedongthuc(data)
	if fallbackErr == nil {
		return doc, nil
	}

	return nil, &LoadError{Err: fmt.Errorf("pdfcpu: %v; ledongthuc: %v", primaryErr, fallbackErr)}
}

// RenderPage computes the viewport for a page at a zoom scale: the page's
// point dimensions multiplied by the scale. The scale must be positive.
func RenderPage(doc Document, page int, scale float64) (geom.Viewport, error) {
	if scale <= 0 {
		return geom.Viewport{}, &RenderError{Page: page, Scale: scale, Err: fmt.Errorf("scale must be positive")}
	}
	dims, err := doc.PageDimensions(page)
	if err != nil {
		return geom.Viewport{}, &RenderError{Page: page, Scale: scale, Err: err}
	}
	return geom.Viewport{
		Width:  dims.Width * scale,
		Height: dims.Height * scale,
		Scale:  scale,
	}, nil
}
