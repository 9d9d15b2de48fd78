package document

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/dooform/pdf-template-editor/internal/geom"
)

// pdfcpuDocument serves page geometry from a pdfcpu read context. Page
// dimensions are materialized once at load time so later lookups cannot
// fail mid-session.
type pdfcpuDocument struct {
	pageCount int
	dims      []geom.Dimensions
}

func loadPDFCPU(data []byte) (Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	pageDims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	dims := make([]geom.Dimensions, 0, len(pageDims))
	for _, d := range pageDims {
		dims = append(dims, geom.Dimensions{
			Width:  geom.Round2(d.Width),
			Height: geom.Round2(d.Height),
		})
	}

	return &pdfcpuDocument{
		pageCount: ctx.PageCount,
		dims:      dims,
	}, nil
}

func (d *pdfcpuDocument) PageCount() int {
	return d.pageCount
}

func (d *pdfcpuDocument) PageDimensions(page int) (geom.Dimensions, error) {
	if page < 1 || page > len(d.dims) {
		return geom.Dimensions{}, fmt.Errorf("invalid page number %d (document has %d pages)", page, len(d.dims))
	}
	return d.dims[page-1], nil
}

func (d *pdfcpuDocument) Backend() Backend {
	return BackendPDFCPU
}

func (d *pdfcpuDocument) Close() error {
	return nil
}
