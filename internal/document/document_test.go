package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dooform/pdf-template-editor/internal/geom"
)

// fakeDocument stands in for a parsed PDF in viewport tests.
type fakeDocument struct {
	pages int
	dims  geom.Dimensions
	err   error
}

func (f *fakeDocument) PageCount() int { return f.pages }

func (f *fakeDocument) PageDimensions(page int) (geom.Dimensions, error) {
	if f.err != nil {
		return geom.Dimensions{}, f.err
	}
	return f.dims, nil
}

func (f *fakeDocument) Backend() Backend { return BackendPDFCPU }
func (f *fakeDocument) Close() error     { return nil }

func TestLoadRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "not_a_pdf", data: []byte("definitely not a pdf")},
		{name: "truncated_header", data: []byte("%PDF-1.7\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load(tt.data)
			assert.Nil(t, doc)

			var loadErr *LoadError
			require.ErrorAs(t, err, &loadErr, "both backends failing must surface a LoadError")
		})
	}
}

func TestRenderPage(t *testing.T) {
	doc := &fakeDocument{pages: 1, dims: geom.Dimensions{Width: 595.28, Height: 841.89}}

	vp, err := RenderPage(doc, 1, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 892.92, vp.Width, 0.001)
	assert.InDelta(t, 1262.835, vp.Height, 0.001)
	assert.Equal(t, 1.5, vp.Scale)
}

func TestRenderPageRejectsNonPositiveScale(t *testing.T) {
	doc := &fakeDocument{pages: 1, dims: geom.Dimensions{Width: 100, Height: 100}}

	for _, scale := range []float64{0, -1} {
		_, err := RenderPage(doc, 1, scale)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, scale, renderErr.Scale)
	}
}

func TestRenderPagePropagatesDimensionFailure(t *testing.T) {
	doc := &fakeDocument{pages: 1, err: assert.AnError}

	_, err := RenderPage(doc, 4, 1)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, 4, renderErr.Page)
	assert.ErrorIs(t, err, assert.AnError)
}
