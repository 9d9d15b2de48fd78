package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dooform/pdf-template-editor/internal/document"
	"github.com/dooform/pdf-template-editor/internal/fields"
	"github.com/dooform/pdf-template-editor/internal/geom"
	"github.com/dooform/pdf-template-editor/internal/session"
	"github.com/dooform/pdf-template-editor/internal/template"
)

// lastSessionKey is where the most recent session state is persisted.
const lastSessionKey = "last_session"

// Session is one document being edited: the parsed document, its field
// store and interaction controller, and the page dimensions measured so
// far.
type Session struct {
	ID          string
	Path        string
	PDFFileName string

	Doc        document.Document
	Store      *fields.Store
	Controller *Controller

	// mu guards templateName and pageDims. Handlers run concurrently, so
	// a render writing a page's dimensions can overlap an export reading
	// them; everything else in the session is immutable after open or
	// carries its own locking.
	mu           sync.Mutex
	templateName string

	// pageDims caches per-page point dimensions as pages get rendered;
	// the template build falls back to A4 for pages never measured.
	pageDims map[int]geom.Dimensions
}

// TemplateName returns the session's working template name.
func (sess *Session) TemplateName() string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.templateName
}

func (sess *Session) setTemplateName(name string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.templateName = name
}

func (sess *Session) setPageDims(page int, dims geom.Dimensions) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.pageDims[page] = dims
}

// snapshotPageDims returns a copy safe to hand to the template builder
// while renders keep writing.
func (sess *Session) snapshotPageDims() map[int]geom.Dimensions {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make(map[int]geom.Dimensions, len(sess.pageDims))
	for p, d := range sess.pageDims {
		out[p] = d
	}
	return out
}

// persistedState is the JSON shape written to the session store after
// every navigation, export and import.
type persistedState struct {
	Path     string            `json:"path"`
	Page     int               `json:"page"`
	Zoom     float64           `json:"zoom"`
	Template template.Template `json:"template"`
}

// Service exposes every editor operation as a request/result pair. It owns
// the session table; all mutations inside a session go through the
// session's controller and store, which carry their own locking.
type Service struct {
	mu          sync.Mutex
	maxFileSize int64
	sessions    map[string]*Session
	state       *session.Store
}

// NewService creates an editor service. The state store may be nil to
// disable persistence entirely.
func NewService(maxFileSize int64, state *session.Store) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		sessions:    make(map[string]*Session),
		state:       state,
	}
}

// OpenDocument loads a PDF from disk and starts an editing session on its
// first page at zoom 1. When the persisted last session refers to the same
// file, its working template, page and zoom are restored.
func (s *Service) OpenDocument(req OpenDocumentRequest) (*OpenDocumentResult, error) {
	if err := s.validatePath(req.Path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, &document.LoadError{Err: fmt.Errorf("cannot read file: %w", err)}
	}

	doc, err := document.Load(data)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:           uuid.NewString(),
		Path:         req.Path,
		PDFFileName:  filepath.Base(req.Path),
		templateName: req.TemplateName,
		Doc:          doc,
		Store:        fields.NewStore(),
		pageDims:     make(map[int]geom.Dimensions),
	}
	sess.Controller = NewController(sess.Store)

	restored := s.restore(sess)

	gen := sess.Controller.SetPage(sess.Controller.Page())
	if err := s.render(sess, gen); err != nil {
		doc.Close()
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.persist(sess)

	return &OpenDocumentResult{
		SessionID:    sess.ID,
		PDFFileName:  sess.PDFFileName,
		TemplateName: sess.TemplateName(),
		PageCount:    doc.PageCount(),
		Page:         sess.Controller.Page(),
		Zoom:         sess.Controller.Zoom(),
		Viewport:     sess.Controller.Viewport(),
		Restored:     restored,
	}, nil
}

// CloseDocument ends a session and releases its document.
func (s *Service) CloseDocument(req CloseDocumentRequest) error {
	s.mu.Lock()
	sess, ok := s.sessions[req.SessionID]
	if ok {
		delete(s.sessions, req.SessionID)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown session: %s", req.SessionID)
	}
	return sess.Doc.Close()
}

// TogglePlacement arms or cancels placement mode.
func (s *Service) TogglePlacement(req TogglePlacementRequest) (*TogglePlacementResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	return &TogglePlacementResult{Armed: sess.Controller.TogglePlacement()}, nil
}

// PointerDown feeds a pointer press into the session.
func (s *Service) PointerDown(req PointerDownRequest) (*PointerResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Controller.PointerDown(req.X, req.Y, req.Target)
	return s.pointerResult(sess), nil
}

// PointerMove feeds pointer motion into the session.
func (s *Service) PointerMove(req PointerMoveRequest) (*PointerResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Controller.PointerMove(req.X, req.Y)
	return s.pointerResult(sess), nil
}

// PointerUp feeds a pointer release into the session.
func (s *Service) PointerUp(req PointerUpRequest) (*PointerResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Controller.PointerUp()
	return s.pointerResult(sess), nil
}

// Escape feeds an Escape key signal into the session.
func (s *Service) Escape(req EscapeRequest) (*PointerResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	sess.Controller.Escape()
	return s.pointerResult(sess), nil
}

// ListFields lists one page's fields in stored order.
func (s *Service) ListFields(req ListFieldsRequest) (*ListFieldsResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	page := req.Page
	if page == 0 {
		page = sess.Controller.Page()
	}
	return &ListFieldsResult{
		Page:     page,
		Fields:   sess.Store.List(page),
		Selected: sess.Controller.Selected(),
	}, nil
}

// DeleteField removes a field from the session's current page.
func (s *Service) DeleteField(req DeleteFieldRequest) error {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return err
	}
	if !sess.Controller.DeleteField(req.FieldID) {
		return fmt.Errorf("no field %q on page %d", req.FieldID, sess.Controller.Page())
	}
	return nil
}

// RenameField changes a field's id. A validation failure is returned to
// the caller with the rejected id intact.
func (s *Service) RenameField(req RenameFieldRequest) error {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return err
	}
	return sess.Controller.Rename(req.FieldID, req.NewID)
}

// RestyleField merges a partial style update into a field on the current
// page. Keys from the other style variant are ignored.
func (s *Service) RestyleField(req RestyleFieldRequest) error {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return err
	}
	if !sess.Store.Restyle(sess.Controller.Page(), req.FieldID, req.Patch) {
		return fmt.Errorf("no field %q on page %d", req.FieldID, sess.Controller.Page())
	}
	return nil
}

// ChangeFieldType switches a field's type, installing the new type's
// default style wholesale.
func (s *Service) ChangeFieldType(req ChangeFieldTypeRequest) error {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return err
	}
	if !req.Type.Valid() {
		return fmt.Errorf("invalid field type %q", req.Type)
	}
	if !sess.Store.ChangeType(sess.Controller.Page(), req.FieldID, req.Type) {
		return fmt.Errorf("no field %q on page %d", req.FieldID, sess.Controller.Page())
	}
	return nil
}

// SetPage navigates to a page, tearing down any in-flight pointer session
// and rendering the new page at the current zoom.
func (s *Service) SetPage(req SetPageRequest) (*ViewResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Page < 1 || req.Page > sess.Doc.PageCount() {
		return nil, fmt.Errorf("invalid page %d (document has %d pages)", req.Page, sess.Doc.PageCount())
	}

	gen := sess.Controller.SetPage(req.Page)
	if err := s.render(sess, gen); err != nil {
		return nil, err
	}
	s.persist(sess)
	return s.viewResult(sess), nil
}

// SetZoom changes the zoom scale and re-renders the current page.
func (s *Service) SetZoom(req SetZoomRequest) (*ViewResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}
	if req.Scale <= 0 {
		return nil, fmt.Errorf("zoom scale must be positive, got %g", req.Scale)
	}

	gen := sess.Controller.SetZoom(req.Scale)
	if err := s.render(sess, gen); err != nil {
		return nil, err
	}
	s.persist(sess)
	return s.viewResult(sess), nil
}

// ExportTemplate builds the session's template and serializes it to JSON.
func (s *Service) ExportTemplate(req ExportTemplateRequest) (*ExportTemplateResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.TemplateName)
	if name == "" {
		name = sess.TemplateName()
	}
	if name == "" {
		base := strings.TrimSuffix(sess.PDFFileName, filepath.Ext(sess.PDFFileName))
		name = fields.Slugify(base) + "_template"
	}
	sess.setTemplateName(name)

	tpl := template.Build(sess.Store, sess.snapshotPageDims(), name, sess.PDFFileName)
	data, err := template.Serialize(tpl)
	if err != nil {
		return nil, err
	}

	s.persist(sess)

	return &ExportTemplateResult{
		TemplateName: name,
		JSON:         string(data),
		PageCount:    len(tpl.Pages),
		FieldCount:   sess.Store.Count(),
	}, nil
}

// ImportTemplate replaces the session's fields from template JSON. The
// import is atomic: on a parse failure the current store is left untouched
// and the ParseError is returned.
func (s *Service) ImportTemplate(req ImportTemplateRequest) (*ImportTemplateResult, error) {
	sess, err := s.session(req.SessionID)
	if err != nil {
		return nil, err
	}

	tpl, err := template.Parse([]byte(req.JSON))
	if err != nil {
		return nil, err
	}

	name := template.Apply(tpl, sess.Store)
	sess.setTemplateName(name)
	s.persist(sess)

	return &ImportTemplateResult{
		TemplateName: name,
		PageCount:    len(sess.Store.Pages()),
		FieldCount:   sess.Store.Count(),
	}, nil
}

// Sessions returns the ids of the open sessions.
func (s *Service) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (s *Service) session(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session: %s", id)
	}
	return sess, nil
}

// render computes the viewport for the controller's current (page, zoom)
// and applies it under the given generation. A stale generation is not an
// error; the newer request has already rendered.
func (s *Service) render(sess *Session, gen uint64) error {
	page := sess.Controller.Page()
	vp, err := document.RenderPage(sess.Doc, page, sess.Controller.Zoom())
	if err != nil {
		return err
	}
	if sess.Controller.ApplyViewport(gen, vp) {
		dims, derr := sess.Doc.PageDimensions(page)
		if derr == nil {
			sess.setPageDims(page, dims)
		}
	}
	return nil
}

// persist writes the session's state to the last-session slot.
// Best-effort: a storage failure degrades to nothing persisted.
func (s *Service) persist(sess *Session) {
	if s.state == nil {
		return
	}
	_ = s.state.PutJSON(lastSessionKey, persistedState{
		Path:     sess.Path,
		Page:     sess.Controller.Page(),
		Zoom:     sess.Controller.Zoom(),
		Template: template.Build(sess.Store, sess.snapshotPageDims(), sess.TemplateName(), sess.PDFFileName),
	})
}

// restore resumes a persisted session when it refers to the same file.
func (s *Service) restore(sess *Session) bool {
	if s.state == nil {
		return false
	}
	var st persistedState
	if !s.state.GetJSON(lastSessionKey, &st) || st.Path != sess.Path {
		return false
	}

	sess.setTemplateName(template.Apply(&st.Template, sess.Store))
	if st.Page >= 1 && st.Page <= sess.Doc.PageCount() {
		sess.Controller.SetPage(st.Page)
	}
	if st.Zoom > 0 {
		sess.Controller.SetZoom(st.Zoom)
	}
	return true
}

func (s *Service) pointerResult(sess *Session) *PointerResult {
	res := &PointerResult{
		State:    sess.Controller.State(),
		Selected: sess.Controller.Selected(),
	}
	if res.Selected != "" {
		if f, ok := sess.Store.Get(sess.Controller.Page(), res.Selected); ok {
			res.Field = &f
		}
	}
	return res
}

func (s *Service) viewResult(sess *Session) *ViewResult {
	return &ViewResult{
		Page:     sess.Controller.Page(),
		Zoom:     sess.Controller.Zoom(),
		Viewport: sess.Controller.Viewport(),
	}
}

// validatePath performs the same checks the file tools of the MCP surface
// rely on: the file exists, is a regular .pdf and fits the size limit.
func (s *Service) validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", path)
	}
	if info.Size() > s.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), s.maxFileSize)
	}
	return nil
}
