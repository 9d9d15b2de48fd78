package fields

import (
	"encoding/json"
	"fmt"
)

// FieldType identifies what kind of value a field stamps onto the page.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeCheck  FieldType = "check"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeCheck:
		return true
	}
	return false
}

// Alignment is the horizontal text alignment of a text or number field.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// CheckMark selects the glyph drawn for a checked field.
type CheckMark string

const (
	CheckMarkV CheckMark = "v-mark"
	CheckMarkX CheckMark = "x-mark"
)

// TextStyle styles text and number fields.
type TextStyle struct {
	FontSize      float64   `json:"fontSize"`
	FontFamily    string    `json:"fontFamily"`
	LetterSpacing float64   `json:"letterSpacing"`
	Color         string    `json:"color"`
	Alignment     Alignment `json:"alignment"`
}

// CheckStyle styles check fields.
type CheckStyle struct {
	Mark  CheckMark `json:"checkStyle"`
	Size  float64   `json:"checkSize"`
	Color string    `json:"color"`
}

// Style is a tagged union over the field type: exactly one branch is set,
// and the set branch must match the owning field's Type. Switching a
// field's type replaces the whole Style with the new type's default rather
// than merging across variants.
type Style struct {
	Text  *TextStyle
	Check *CheckStyle
}

// DefaultTextStyle returns the style installed on newly created text and
// number fields.
func DefaultTextStyle() Style {
	return Style{Text: &TextStyle{
		FontSize:      12,
		FontFamily:    "Arial",
		LetterSpacing: 0,
		Color:         "#000000",
		Alignment:     AlignLeft,
	}}
}

// DefaultCheckStyle returns the style installed when a field becomes a
// check field.
func DefaultCheckStyle() Style {
	return Style{Check: &CheckStyle{
		Mark:  CheckMarkV,
		Size:  14,
		Color: "#000000",
	}}
}

// DefaultStyleFor returns the default style variant for the given type.
func DefaultStyleFor(t FieldType) Style {
	if t == FieldTypeCheck {
		return DefaultCheckStyle()
	}
	return DefaultTextStyle()
}

// MatchesType reports whether the active variant is the one the field
// type requires: the check variant for check fields, the text variant
// otherwise.
func (s Style) MatchesType(t FieldType) bool {
	if t == FieldTypeCheck {
		return s.Check != nil && s.Text == nil
	}
	return s.Text != nil && s.Check == nil
}

// MarshalJSON encodes the active variant as a flat object, matching the
// template wire format.
func (s Style) MarshalJSON() ([]byte, error) {
	switch {
	case s.Text != nil:
		return json.Marshal(s.Text)
	case s.Check != nil:
		return json.Marshal(s.Check)
	default:
		return []byte("{}"), nil
	}
}

// UnmarshalJSON decodes a flat style object, selecting the variant by the
// keys present: check styles carry "checkStyle"/"checkSize", text styles do
// not.
func (s *Style) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("style is not an object: %w", err)
	}

	_, hasMark := probe["checkStyle"]
	_, hasSize := probe["checkSize"]
	if hasMark || hasSize {
		var cs CheckStyle
		if err := json.Unmarshal(data, &cs); err != nil {
			return err
		}
		*s = Style{Check: &cs}
		return nil
	}

	var ts TextStyle
	if err := json.Unmarshal(data, &ts); err != nil {
		return err
	}
	*s = Style{Text: &ts}
	return nil
}

// Clone returns a deep copy so stored fields never share style pointers
// with callers.
func (s Style) Clone() Style {
	out := Style{}
	if s.Text != nil {
		ts := *s.Text
		out.Text = &ts
	}
	if s.Check != nil {
		cs := *s.Check
		out.Check = &cs
	}
	return out
}

// StylePatch is a partial style update. Only keys valid for the field's
// current variant are applied; the rest are ignored.
type StylePatch struct {
	FontSize      *float64   `json:"fontSize,omitempty"`
	FontFamily    *string    `json:"fontFamily,omitempty"`
	LetterSpacing *float64   `json:"letterSpacing,omitempty"`
	Color         *string    `json:"color,omitempty"`
	Alignment     *Alignment `json:"alignment,omitempty"`
	CheckMark     *CheckMark `json:"checkStyle,omitempty"`
	CheckSize     *float64   `json:"checkSize,omitempty"`
}

// apply merges the patch into the style, respecting the active variant.
func (p StylePatch) apply(s *Style) {
	switch {
	case s.Text != nil:
		if p.FontSize != nil {
			s.Text.FontSize = *p.FontSize
		}
		if p.FontFamily != nil {
			s.Text.FontFamily = *p.FontFamily
		}
		if p.LetterSpacing != nil {
			s.Text.LetterSpacing = *p.LetterSpacing
		}
		if p.Color != nil {
			s.Text.Color = *p.Color
		}
		if p.Alignment != nil {
			s.Text.Alignment = *p.Alignment
		}
	case s.Check != nil:
		if p.CheckMark != nil {
			s.Check.Mark = *p.CheckMark
		}
		if p.CheckSize != nil {
			s.Check.Size = *p.CheckSize
		}
		if p.Color != nil {
			s.Check.Color = *p.Color
		}
	}
}
