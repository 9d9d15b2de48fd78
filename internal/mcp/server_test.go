package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dooform/pdf-template-editor/internal/config"
	"github.com/dooform/pdf-template-editor/internal/editor"
	"github.com/dooform/pdf-template-editor/internal/fields"
	"github.com/dooform/pdf-template-editor/internal/geom"
)

func testConfig() *config.Config {
	return &config.Config{
		Mode:           "stdio",
		Host:           "127.0.0.1",
		Port:           8080,
		PDFDirectory:   "/tmp",
		StateDirectory: "/tmp/state",
		Version:        "1.0.0",
		ServerName:     "test-server",
		LogLevel:       "info",
		MaxFileSize:    1024 * 1024,
	}
}

func TestNewServer(t *testing.T) {
	editorService := editor.NewService(1024*1024, nil)

	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
	}{
		{
			name:        "valid stdio mode config",
			config:      testConfig(),
			expectError: false,
		},
		{
			name: "valid server mode config",
			config: &config.Config{
				Mode:           "server",
				Host:           "127.0.0.1",
				Port:           8080,
				PDFDirectory:   "/tmp",
				StateDirectory: "/tmp/state",
				Version:        "1.0.0",
				ServerName:     "test-server",
				LogLevel:       "info",
				MaxFileSize:    1024 * 1024,
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, err := NewServer(tt.config, editorService)

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.expectError {
				if server == nil {
					t.Fatal("server should not be nil")
				}
				if server.config != tt.config {
					t.Error("server config not set correctly")
				}
				if server.editorService != editorService {
					t.Error("server editorService not set correctly")
				}
				if server.mcpServer == nil {
					t.Error("mcpServer should be initialized")
				}
			}
		})
	}
}

func TestNewServer_NilEditorService(t *testing.T) {
	_, err := NewServer(testConfig(), nil)
	if err == nil {
		t.Error("expected error with nil editor service")
	}
}

func TestServer_HandlersRejectUnknownSession(t *testing.T) {
	editorService := editor.NewService(1024*1024, nil)
	server, err := NewServer(testConfig(), editorService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"session":  "ghost",
				"x":        10.0,
				"y":        10.0,
				"page":     1.0,
				"scale":    1.0,
				"field_id": "field_1",
				"new_id":   "renamed",
				"type":     "check",
				"patch":    "{}",
				"json":     "{}",
			},
		},
	}

	handlers := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"CloseDocument", server.handleCloseDocument},
		{"TogglePlacement", server.handleTogglePlacement},
		{"PointerDown", server.handlePointerDown},
		{"PointerMove", server.handlePointerMove},
		{"PointerUp", server.handlePointerUp},
		{"Escape", server.handleEscape},
		{"ListFields", server.handleListFields},
		{"DeleteField", server.handleDeleteField},
		{"RenameField", server.handleRenameField},
		{"RestyleField", server.handleRestyleField},
		{"ChangeFieldType", server.handleChangeFieldType},
		{"SetPage", server.handleSetPage},
		{"SetZoom", server.handleSetZoom},
		{"Export", server.handleExport},
		{"Import", server.handleImport},
	}

	for _, h := range handlers {
		t.Run(h.name, func(t *testing.T) {
			result, err := h.handler(context.Background(), request)
			if err != nil {
				t.Errorf("handler should not return error, got: %v", err)
			}
			if result == nil {
				t.Fatal("result should not be nil")
			}

			resultText := extractTextFromResult(result)
			if !strings.Contains(resultText, "unknown session") {
				t.Errorf("expected unknown session message, got: %s", resultText)
			}
		})
	}
}

func TestServer_InvalidArguments(t *testing.T) {
	editorService := editor.NewService(1024*1024, nil)
	server, err := NewServer(testConfig(), editorService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Test with missing required arguments
	emptyRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	handlers := []struct {
		name    string
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"OpenDocument", server.handleOpenDocument},
		{"CloseDocument", server.handleCloseDocument},
		{"PointerDown", server.handlePointerDown},
		{"DeleteField", server.handleDeleteField},
		{"RenameField", server.handleRenameField},
		{"SetPage", server.handleSetPage},
		{"Import", server.handleImport},
	}

	for _, h := range handlers {
		t.Run(h.name, func(t *testing.T) {
			result, err := h.handler(context.Background(), emptyRequest)
			if err != nil {
				t.Errorf("handler should not return error, got: %v", err)
			}
			if result == nil {
				t.Fatal("result should not be nil")
			}

			// Check if it's an error result
			resultText := extractTextFromResult(result)
			if !strings.Contains(resultText, "required") &&
				!strings.Contains(resultText, "missing") &&
				!strings.Contains(resultText, "error") {
				t.Errorf("expected error message for missing arguments, got: %s", resultText)
			}
		})
	}
}

func TestServer_HandlePointerDown_InvalidTarget(t *testing.T) {
	editorService := editor.NewService(1024*1024, nil)
	server, err := NewServer(testConfig(), editorService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"session": "any",
				"x":       10.0,
				"y":       10.0,
				"target":  "corner_ne",
			},
		},
	}

	result, err := server.handlePointerDown(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "invalid target kind") {
		t.Errorf("expected invalid target kind message, got: %s", resultText)
	}
}

func TestServer_HandleRestyleField_InvalidPatch(t *testing.T) {
	editorService := editor.NewService(1024*1024, nil)
	server, err := NewServer(testConfig(), editorService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"session":  "any",
				"field_id": "field_1",
				"patch":    "{not json",
			},
		},
	}

	result, err := server.handleRestyleField(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "invalid style patch") {
		t.Errorf("expected invalid patch message, got: %s", resultText)
	}
}

func TestServer_HandleServerInfo(t *testing.T) {
	editorService := editor.NewService(1024*1024, nil)
	server, err := NewServer(testConfig(), editorService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}

	result, err := server.handleServerInfo(context.Background(), request)
	if err != nil {
		t.Fatalf("handler failed: %v", err)
	}

	resultText := extractTextFromResult(result)
	if !strings.Contains(resultText, "test-server v1.0.0") {
		t.Errorf("content should mention server name and version, got: %s", resultText)
	}
	if !strings.Contains(resultText, "Open Sessions: none") {
		t.Errorf("content should mention there are no open sessions, got: %s", resultText)
	}
	if !strings.Contains(resultText, "template_open_document") {
		t.Errorf("content should list the tools, got: %s", resultText)
	}
}

func TestFormatMethods(t *testing.T) {
	editorService := editor.NewService(1024*1024, nil)
	server, err := NewServer(testConfig(), editorService)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}

	// Test formatPointerResult
	field := &fields.Field{
		ID: "invoice_total", Type: fields.FieldTypeText,
		X: 100, Y: 700, Width: 100, Height: 20,
		Style: fields.DefaultTextStyle(),
	}
	pointerResult := &editor.PointerResult{
		State:    editor.StateDragging,
		Selected: "invoice_total",
		Field:    field,
	}

	formatted := server.formatPointerResult(pointerResult)
	if !strings.Contains(formatted, "State: dragging") {
		t.Error("formatted result should contain the state")
	}
	if !strings.Contains(formatted, "invoice_total") {
		t.Error("formatted result should contain the selected field")
	}
	if !strings.Contains(formatted, "x=100 y=700") {
		t.Error("formatted result should contain field geometry")
	}

	// Test formatListFieldsResult
	listResult := &editor.ListFieldsResult{
		Page:     2,
		Fields:   []fields.Field{*field},
		Selected: "invoice_total",
	}

	formatted = server.formatListFieldsResult(listResult)
	if !strings.Contains(formatted, "Fields on page 2 (1)") {
		t.Error("formatted result should contain the page and count")
	}
	if !strings.Contains(formatted, "Selected: yes") {
		t.Error("formatted result should flag the selected field")
	}

	empty := server.formatListFieldsResult(&editor.ListFieldsResult{Page: 3})
	if !strings.Contains(empty, "No fields on page 3") {
		t.Error("empty result should say the page has no fields")
	}

	// Test formatViewResult
	viewResult := &editor.ViewResult{
		Page: 1, Zoom: 1.5,
		Viewport: geom.Viewport{Width: 918, Height: 1188, Scale: 1.5},
	}

	formatted = server.formatViewResult(viewResult)
	if !strings.Contains(formatted, "Zoom: 1.5") {
		t.Error("formatted result should contain the zoom")
	}
	if !strings.Contains(formatted, "918x1188") {
		t.Error("formatted result should contain the viewport size")
	}
}

// Helper function to extract text from a CallToolResult
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}

	// Try to extract text content
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		// Handle pointer to TextContent as well
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}

	return ""
}
