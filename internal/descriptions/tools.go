package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Session Tools
	TemplateOpenDocumentDescription = `Open a PDF document and start a field template editing session.

**When to use:** Beginning any template work on a PDF file. Every other template tool needs the session id this returns.

**Why it's useful:** Parses the document once, measures its pages, and restores the last persisted working template when the same file is reopened, so interrupted work continues where it stopped.

**Examples:**
• Start a new template: "Open invoice.pdf and begin placing fields"
• Resume work: "Reopen contract.pdf to continue yesterday's template"

**Common workflows:**
1. New Template: Open document → Arm placement → Place fields → Export
2. Resume Session: Open same path → Restored flag true → Continue editing

**Best practices:** Keep the returned session id; pass it to every subsequent tool call. Check the restored flag to know whether prior fields came back.`

	TemplateCloseDocumentDescription = `End an editing session and release its document.

**When to use:** Finished with a document, or before opening a large batch of files.

**Why it's useful:** Frees the parsed document and removes the session from the server's table. The persisted working template survives closing and is restored on reopen.

**Common workflows:**
1. Clean Finish: Export template → Close document → Open next file

**Best practices:** Export before closing if you need the JSON now; otherwise the working set is still recoverable by reopening the same path.`

	// Interaction Tools
	TemplateTogglePlacementDescription = `Arm or cancel field placement mode for the next pointer press.

**When to use:** Before clicking a spot on the page to create a new field there.

**Why it's useful:** Placement mode makes the next press create a field at the press point instead of selecting or dragging. Toggling again, or pressing Escape, cancels without creating anything.

**Common workflows:**
1. Place a Field: Toggle placement (armed) → Pointer down at target → Field created and selected
2. Change of Mind: Toggle placement (armed) → Escape → Back to idle

**Best practices:** Placement disarms automatically after one field is created; re-arm for each additional field.`

	TemplatePointerDownDescription = `Send a pointer press at screen coordinates into the session.

**When to use:** Simulating or forwarding a click on the rendered page: placing a field, selecting one, or starting a drag or resize.

**Why it's useful:** One entry point drives the whole interaction machine. The target kind decides what the press means: the page surface, a field body, or a corner handle.

**Examples:**
• Place: arm placement, then press on the surface at (120, 340)
• Drag: press on target kind "field" with the field's id
• Resize: press on "handle_se" or "handle_sw" of the selected field

**Common workflows:**
1. Move a Field: Pointer down on field → Pointer move → Pointer up
2. Resize: Pointer down on handle → Pointer move → Pointer up

**Best practices:** Coordinates are screen pixels at the current zoom; the server converts them to PDF points internally.`

	TemplatePointerMoveDescription = `Send pointer motion at screen coordinates into the session.

**When to use:** Between pointer down and pointer up, to drag a field or resize it through a handle.

**Why it's useful:** Motion is measured against where the press started, not the previous move, so jittery or out-of-order coordinates never accumulate error. Returning to the press point restores the original geometry exactly.

**Common workflows:**
1. Drag: Pointer down on field → Several pointer moves → Pointer up
2. Resize from a corner: Pointer down on handle → Moves → Pointer up

**Best practices:** Moves are ignored while idle; only an active drag or resize responds.`

	TemplatePointerUpDescription = `Send a pointer release into the session.

**When to use:** Ending a drag or resize that a pointer down started.

**Why it's useful:** Releases end the interaction and keep whatever geometry the last move produced. The field stays selected.

**Best practices:** Always pair every pointer down with a pointer up, even when the pointer left the page area.`

	TemplateEscapeDescription = `Send an Escape key signal into the session.

**When to use:** Cancelling armed placement mode, or clearing the current selection.

**Why it's useful:** Escape disarms placement before any field is created and deselects when idle. It deliberately does not abort an in-flight drag or resize; release the pointer for that.

**Common workflows:**
1. Cancel Placement: Toggle placement → Escape → Nothing created
2. Deselect: Escape while idle → No field selected

**Best practices:** To undo an unwanted drag, move back to the press point before releasing.`

	// Field Tools
	TemplateListFieldsDescription = `List the fields placed on a page of the current session.

**When to use:** Reviewing the working template, finding a field's id, or checking geometry after edits.

**Why it's useful:** Returns each field's id, type, position, size and style in PDF points, plus which field is selected.

**Examples:**
• Audit a page: "List fields on page 2 of the session"
• Find an id before renaming: "List fields, then rename field_3 to customer_name"

**Best practices:** Omit the page argument to list the page currently shown.`

	TemplateDeleteFieldDescription = `Remove a field from the current page.

**When to use:** A field was placed wrong or is no longer needed.

**Why it's useful:** Deletion also tears down any interaction involving the field and clears its selection, so the session never references a removed field.

**Best practices:** Deletion is immediate and unrecoverable within the session; export first if unsure.`

	TemplateRenameFieldDescription = `Change a field's identifier.

**When to use:** Giving placed fields meaningful names before export, e.g. renaming field_1 to invoice_total.

**Why it's useful:** Identifiers are unique across every page of the template, so downstream fill-in code can address fields without page qualifiers. Rejected names (empty, or already taken anywhere in the template) leave the field untouched.

**Common workflows:**
1. Finalize Naming: Place fields → List fields → Rename each → Export

**Best practices:** Surrounding whitespace is trimmed; renaming a field to its own id is accepted as a no-op.`

	TemplateRestyleFieldDescription = `Merge a partial style update into a field on the current page.

**When to use:** Adjusting font size, font family, color, alignment or check mark appearance of a placed field.

**Why it's useful:** Only the keys present in the patch change; everything else keeps its value. Keys belonging to the other style variant (check settings on a text field, or vice versa) are ignored rather than rejected.

**Examples:**
• "Set font_size 9 and alignment right on invoice_total"
• "Switch agreed_checkbox to an x-mark"

**Best practices:** Use template_change_field_type first when the field's variant itself must change.`

	TemplateChangeFieldTypeDescription = `Switch a field between text, number and check types.

**When to use:** A placed field should collect a different kind of value.

**Why it's useful:** The new type installs its default style wholesale, so stale settings from the previous variant never leak into the exported template. Geometry and identifier are preserved.

**Best practices:** Changing to the type the field already has is a no-op. Restyle after the switch to customize the fresh defaults.`

	// View Tools
	TemplateSetPageDescription = `Navigate the session to a different page.

**When to use:** Placing or editing fields on another page of the document.

**Why it's useful:** Page changes tear down any in-flight drag or resize, re-render at the current zoom, and record the page's dimensions for the eventual export.

**Best practices:** Pages are numbered from 1; navigation outside the document's range is rejected.`

	TemplateSetZoomDescription = `Change the zoom scale of the rendered page.

**When to use:** Working at finer precision (zoom in) or getting an overview (zoom out).

**Why it's useful:** Field geometry lives in PDF points, so zooming only changes the screen mapping; nothing placed moves. Rapid page and zoom changes are safe: a superseded render is discarded and the latest request wins.

**Best practices:** The scale is a positive multiplier; 1 means 100%.`

	// Template Tools
	TemplateExportDescription = `Build the session's field template and serialize it to JSON.

**When to use:** The working template is ready to save, share, or feed to a document filling pipeline.

**Why it's useful:** The export carries every page that has fields, with per-page dimensions and complete field styling, in a stable format that template_import reads back bit-for-bit.

**Examples:**
• "Export the template as customer_invoice"
• "Export with the default name derived from the file name"

**Common workflows:**
1. Save Work: Place and name fields → Export → Store JSON
2. Round Trip: Export → Import into another session on the same document

**Best practices:** Pages never rendered during the session fall back to A4 dimensions in the export; visit each page once for exact sizes.`

	TemplateImportDescription = `Replace the session's fields from template JSON.

**When to use:** Loading a previously exported template, or applying a template authored elsewhere to a fresh session.

**Why it's useful:** The import is atomic: malformed JSON leaves the current working set untouched and reports a parse error. On success the whole field set is replaced in one step.

**Common workflows:**
1. Continue Elsewhere: Export on machine A → Import on machine B → Keep editing

**Best practices:** Import replaces, never merges; export first if the current fields matter.`

	// Utility Tools
	TemplateServerInfoDescription = `Get server status, open sessions, and available tools.

**When to use:** Starting work with the template editor, troubleshooting, or checking configuration.

**Why it's useful:** Shows the configured directories and file size limit, which sessions are open, and a summary of every tool.

**Best practices:** Run at the start of a session to confirm the server is configured for the directory you are working in.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"template_open_document":     TemplateOpenDocumentDescription,
	"template_close_document":    TemplateCloseDocumentDescription,
	"template_toggle_placement":  TemplateTogglePlacementDescription,
	"template_pointer_down":      TemplatePointerDownDescription,
	"template_pointer_move":      TemplatePointerMoveDescription,
	"template_pointer_up":        TemplatePointerUpDescription,
	"template_escape":            TemplateEscapeDescription,
	"template_list_fields":       TemplateListFieldsDescription,
	"template_delete_field":      TemplateDeleteFieldDescription,
	"template_rename_field":      TemplateRenameFieldDescription,
	"template_restyle_field":     TemplateRestyleFieldDescription,
	"template_change_field_type": TemplateChangeFieldTypeDescription,
	"template_set_page":          TemplateSetPageDescription,
	"template_set_zoom":          TemplateSetZoomDescription,
	"template_export":            TemplateExportDescription,
	"template_import":            TemplateImportDescription,
	"template_server_info":       TemplateServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
