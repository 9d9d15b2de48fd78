package editor

import (
	"github.com/dooform/pdf-template-editor/internal/fields"
	"github.com/dooform/pdf-template-editor/internal/geom"
)

// Request types

// OpenDocumentRequest opens a PDF file and starts an editing session.
type OpenDocumentRequest struct {
	Path         string `json:"path"`
	TemplateName string `json:"template_name,omitempty"`
}

// CloseDocumentRequest ends an editing session.
type CloseDocumentRequest struct {
	SessionID string `json:"session"`
}

// TogglePlacementRequest arms or cancels placement mode.
type TogglePlacementRequest struct {
	SessionID string `json:"session"`
}

// PointerDownRequest feeds a pointer press into the session.
type PointerDownRequest struct {
	SessionID string  `json:"session"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Target    Target  `json:"target"`
}

// PointerMoveRequest feeds pointer motion into the session.
type PointerMoveRequest struct {
	SessionID string  `json:"session"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// PointerUpRequest feeds a pointer release into the session.
type PointerUpRequest struct {
	SessionID string `json:"session"`
}

// EscapeRequest feeds an Escape key signal into the session.
type EscapeRequest struct {
	SessionID string `json:"session"`
}

// ListFieldsRequest lists the fields of one page.
type ListFieldsRequest struct {
	SessionID string `json:"session"`
	Page      int    `json:"page,omitempty"` // 0 means the current page
}

// DeleteFieldRequest removes a field from the current page.
type DeleteFieldRequest struct {
	SessionID string `json:"session"`
	FieldID   string `json:"field_id"`
}

// RenameFieldRequest changes a field's id.
type RenameFieldRequest struct {
	SessionID string `json:"session"`
	FieldID   string `json:"field_id"`
	NewID     string `json:"new_id"`
}

// RestyleFieldRequest merges a partial style update into a field.
type RestyleFieldRequest struct {
	SessionID string            `json:"session"`
	FieldID   string            `json:"field_id"`
	Patch     fields.StylePatch `json:"patch"`
}

// ChangeFieldTypeRequest switches a field's type, resetting its style.
type ChangeFieldTypeRequest struct {
	SessionID string           `json:"session"`
	FieldID   string           `json:"field_id"`
	Type      fields.FieldType `json:"type"`
}

// SetPageRequest navigates to a page.
type SetPageRequest struct {
	SessionID string `json:"session"`
	Page      int    `json:"page"`
}

// SetZoomRequest changes the zoom scale.
type SetZoomRequest struct {
	SessionID string  `json:"session"`
	Scale     float64 `json:"scale"`
}

// ExportTemplateRequest builds and serializes the session's template.
type ExportTemplateRequest struct {
	SessionID    string `json:"session"`
	TemplateName string `json:"template_name,omitempty"`
}

// ImportTemplateRequest replaces the session's fields from template JSON.
type ImportTemplateRequest struct {
	SessionID string `json:"session"`
	JSON      string `json:"json"`
}

// Result types

// OpenDocumentResult describes a freshly opened session.
type OpenDocumentResult struct {
	SessionID    string        `json:"session"`
	PDFFileName  string        `json:"pdf_file_name"`
	TemplateName string        `json:"template_name"`
	PageCount    int           `json:"page_count"`
	Page         int           `json:"page"`
	Zoom         float64       `json:"zoom"`
	Viewport     geom.Viewport `json:"viewport"`
	Restored     bool          `json:"restored"` // true when a persisted session was resumed
}

// TogglePlacementResult reports the resulting placement mode.
type TogglePlacementResult struct {
	Armed bool `json:"armed"`
}

// PointerResult reports the interaction state after a pointer signal.
type PointerResult struct {
	State    State         `json:"state"`
	Selected string        `json:"selected,omitempty"`
	Field    *fields.Field `json:"field,omitempty"` // the created or mutated field, if any
}

// ListFieldsResult lists one page's fields.
type ListFieldsResult struct {
	Page     int            `json:"page"`
	Fields   []fields.Field `json:"fields"`
	Selected string         `json:"selected,omitempty"`
}

// ViewResult reports the viewport after a page or zoom change.
type ViewResult struct {
	Page     int           `json:"page"`
	Zoom     float64       `json:"zoom"`
	Viewport geom.Viewport `json:"viewport"`
}

// ExportTemplateResult carries the serialized template.
type ExportTemplateResult struct {
	TemplateName string `json:"template_name"`
	JSON         string `json:"json"`
	PageCount    int    `json:"page_count"`
	FieldCount   int    `json:"field_count"`
}

// ImportTemplateResult summarizes an applied import.
type ImportTemplateResult struct {
	TemplateName string `json:"template_name"`
	PageCount    int    `json:"page_count"`
	FieldCount   int    `json:"field_count"`
}
