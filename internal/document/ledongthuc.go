package document

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/dooform/pdf-template-editor/internal/geom"
)

// ledongthucDocument is the fallback backend for files pdfcpu rejects.
// ledongthuc/pdf tolerates some structural damage pdfcpu will not.
type ledongthucDocument struct {
	reader *pdf.Reader
}

func loadLedongthuc(data []byte) (Document, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	if reader.NumPage() < 1 {
		return nil, fmt.Errorf("document has no pages")
	}
	return &ledongthucDocument{reader: reader}, nil
}

func (d *ledongthucDocument) PageCount() int {
	return d.reader.NumPage()
}

func (d *ledongthucDocument) PageDimensions(page int) (geom.Dimensions, error) {
	if page < 1 || page > d.reader.NumPage() {
		return geom.Dimensions{}, fmt.Errorf("invalid page number %d (document has %d pages)", page, d.reader.NumPage())
	}

	p := d.reader.Page(page)
	if p.V.IsNull() {
		return geom.Dimensions{}, fmt.Errorf("page %d is unreadable", page)
	}

	box := inheritedMediaBox(p.V)
	if box.IsNull() || box.Len() != 4 {
		return geom.Dimensions{}, fmt.Errorf("page %d has no MediaBox", page)
	}

	llx := box.Index(0).Float64()
	lly := box.Index(1).Float64()
	urx := box.Index(2).Float64()
	ury := box.Index(3).Float64()

	return geom.Dimensions{
		Width:  geom.Round2(urx - llx),
		Height: geom.Round2(ury - lly),
	}, nil
}

// inheritedMediaBox resolves MediaBox on the page or, when absent, on its
// ancestors in the page tree.
func inheritedMediaBox(v pdf.Value) pdf.Value {
	for !v.IsNull() {
		if box := v.Key("MediaBox"); !box.IsNull() {
			return box
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

func (d *ledongthucDocument) Backend() Backend {
	return BackendLedongthuc
}

func (d *ledongthucDocument) Close() error {
	return nil
}
