// Package fields holds the field data model for the template editor: the
// typed field definitions, their style variants, and the page-keyed store
// that owns them during an editing session.
package fields

// Geometry defaults and limits, in points.
const (
	DefaultWidth  = 100
	DefaultHeight = 20

	// MinDimension is the hard floor for field width and height. It is
	// enforced at every mutation site, never deferred to validation time.
	MinDimension = 8
)

// Field is one positioned overlay on a page. X and Y are the field's
// point-space position (origin at the page's bottom-left, Y growing
// upward); Width and Height are point-space dimensions, both at least
// MinDimension. The ID is unique across the entire template, not just the
// field's page.
type Field struct {
	ID     string    `json:"id"`
	Type   FieldType `json:"type"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Style  Style     `json:"style"`
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.Style = f.Style.Clone()
	return out
}
