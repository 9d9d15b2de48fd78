// Package editor implements the pointer-driven interaction engine that
// turns raw pointer and keyboard signals into field model mutations:
// placement, selection, dragging and corner-specific resizing, plus the
// render bookkeeping for page and zoom changes.
package editor

import (
	"sync"

	"github.com/dooform/pdf-template-editor/internal/fields"
	"github.com/dooform/pdf-template-editor/internal/geom"
)

// State names the controller's interaction state. The controller starts
// Idle and runs for the life of the editing session; there is no terminal
// state.
type State string

const (
	StateIdle           State = "idle"
	StatePlacementArmed State = "placement_armed"
	StateDragging       State = "dragging"
	StateResizingSE     State = "resizing_se"
	StateResizingSW     State = "resizing_sw"
)

// TargetKind classifies what a pointer-down hit.
type TargetKind string

const (
	// TargetSurface is empty page surface.
	TargetSurface TargetKind = "surface"
	// TargetFieldBody is the body of an existing field.
	TargetFieldBody TargetKind = "field"
	// TargetHandleSE is a selected field's bottom-right resize handle.
	TargetHandleSE TargetKind = "handle_se"
	// TargetHandleSW is a selected field's bottom-left resize handle.
	TargetHandleSW TargetKind = "handle_sw"
)

// Target is the element under the pointer at press time, as reported by
// the shell's hit testing.
type Target struct {
	Kind    TargetKind `json:"kind"`
	FieldID string     `json:"fieldId,omitempty"`
}

// pointerSession is the anchor of one drag or resize: the pointer's screen
// position at press time plus the field geometry and zoom scale at press
// time. Every subsequent pointer-move computes against these captured
// values, never against the previous frame, so rounding cannot accumulate
// into drift, and a zoom change mid-session cannot re-interpret the
// screen-space anchor at a different scale.
//
// A session begins on pointer-down and is guaranteed to end on pointer-up,
// on deletion of its field, or on a page change; it never outlives either.
type pointerSession struct {
	state   State
	fieldID string
	page    int
	scale   float64

	pressX, pressY float64 // screen space
	startX, startY float64 // point space
	startW, startH float64
}

// Controller is the interaction state machine. All methods are safe for
// concurrent use; internally every transition runs under one mutex so the
// field store only ever sees whole mutations.
type Controller struct {
	mu    sync.Mutex
	store *fields.Store

	state    State
	session  *pointerSession
	selected string

	page     int
	zoom     float64
	viewport geom.Viewport

	// renderGen orders render requests so a completion belonging to a
	// superseded (page, zoom) pair is discarded, never applied.
	renderGen uint64

	// scratch holds per-field transient values (live preview text) keyed
	// by field id. Keys migrate on rename so user input survives.
	scratch map[string]string

	// Shell notification hooks. Nil hooks are skipped. Invoked outside
	// the controller lock.
	OnFieldsChanged        func(page int)
	OnSelectionChanged     func(id string)
	OnPlacementModeChanged func(armed bool)
}

// NewController returns an Idle controller over the given store, positioned
// on page 1 at zoom 1.
func NewController(store *fields.Store) *Controller {
	return &Controller{
		store:   store,
		state:   StateIdle,
		page:    1,
		zoom:    1,
		scratch: make(map[string]string),
	}
}

// State returns the current interaction state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Page returns the current 1-based page.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Zoom returns the current zoom scale.
func (c *Controller) Zoom() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

// Selected returns the selected field id, or "" when nothing is selected.
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// Viewport returns the viewport last applied for the current (page, zoom).
func (c *Controller) Viewport() geom.Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// TogglePlacement arms placement mode from Idle, or cancels it when
// already armed. Arming clears the current selection. Toggling has no
// effect during an active drag or resize.
func (c *Controller) TogglePlacement() bool {
	c.mu.Lock()
	var deselected bool
	var armed bool
	switch c.state {
	case StateIdle:
		c.state = StatePlacementArmed
		deselected = c.selected != ""
		c.selected = ""
		armed = true
	case StatePlacementArmed:
		c.state = StateIdle
	default:
		armed = c.state == StatePlacementArmed
		c.mu.Unlock()
		return armed
	}
	c.mu.Unlock()

	if deselected {
		c.notifySelection("")
	}
	c.notifyPlacement(armed)
	return armed
}

// PointerDown feeds a pointer press at a screen-space position over the
// given target. While placement is armed any press on the page surface
// creates a new field at the converted point-space position, selects it and
// disarms placement. Otherwise a press selects, begins a drag, or begins a
// corner resize, depending on the target.
func (c *Controller) PointerDown(screenX, screenY float64, target Target) {
	c.mu.Lock()

	switch c.state {
	case StatePlacementArmed:
		x, y := geom.ScreenToPDF(screenX, screenY, c.viewport)
		f := c.store.Create(c.page, x, y)
		c.state = StateIdle
		changed := c.selected != f.ID
		c.selected = f.ID
		page := c.page
		c.mu.Unlock()

		c.notifyFields(page)
		if changed {
			c.notifySelection(f.ID)
		}
		c.notifyPlacement(false)
		return

	case StateIdle:
		switch target.Kind {
		case TargetSurface:
			changed := c.selected != ""
			c.selected = ""
			c.mu.Unlock()
			if changed {
				c.notifySelection("")
			}
			return

		case TargetFieldBody:
			f, ok := c.store.Get(c.page, target.FieldID)
			if !ok {
				c.mu.Unlock()
				return
			}
			changed := c.selected != f.ID
			c.selected = f.ID
			c.session = &pointerSession{
				state:   StateDragging,
				fieldID: f.ID,
				page:    c.page,
				scale:   c.zoom,
				pressX:  screenX,
				pressY:  screenY,
				startX:  f.X,
				startY:  f.Y,
			}
			c.state = StateDragging
			c.mu.Unlock()
			if changed {
				c.notifySelection(f.ID)
			}
			return

		case TargetHandleSE, TargetHandleSW:
			f, ok := c.store.Get(c.page, target.FieldID)
			if !ok {
				c.mu.Unlock()
				return
			}
			st := StateResizingSE
			if target.Kind == TargetHandleSW {
				st = StateResizingSW
			}
			c.session = &pointerSession{
				state:   st,
				fieldID: f.ID,
				page:    c.page,
				scale:   c.zoom,
				pressX:  screenX,
				pressY:  screenY,
				startX:  f.X,
				startY:  f.Y,
				startW:  f.Width,
				startH:  f.Height,
			}
			c.state = st
			c.mu.Unlock()
			return
		}
	}

	c.mu.Unlock()
}

// PointerMove feeds pointer motion. It only matters during an active drag
// or resize session; the shell binds it globally because a fast drag can
// leave the field's bounds, or the page surface entirely.
func (c *Controller) PointerMove(screenX, screenY float64) {
	c.mu.Lock()
	s := c.session
	if s == nil {
		c.mu.Unlock()
		return
	}

	dx := screenX - s.pressX
	dy := screenY - s.pressY
	scale := s.scale
	page := s.page

	switch s.state {
	case StateDragging:
		ddx, ddy := geom.ScreenDeltaToPDF(dx, dy, scale)
		x := geom.Round1(max(0, s.startX+ddx))
		y := geom.Round1(max(0, s.startY+ddy))
		c.store.Move(page, s.fieldID, x, y)

	case StateResizingSE:
		// Top-left corner stays fixed on screen: width follows the
		// pointer right, height shrinks as the pointer moves up because
		// screen Y and point Y are inverted.
		w := max(fields.MinDimension, s.startW+dx/scale)
		h := max(fields.MinDimension, s.startH-dy/scale)
		c.store.Resize(page, s.fieldID, w, h)

	case StateResizingSW:
		// Right edge stays fixed: the left edge follows the pointer, so
		// x shifts by however much width the drag gave or took.
		w := max(fields.MinDimension, s.startW-dx/scale)
		x := s.startX + (s.startW - w)
		h := max(fields.MinDimension, s.startH-dy/scale)
		c.store.Move(page, s.fieldID, x, s.startY)
		c.store.Resize(page, s.fieldID, w, h)
	}

	c.mu.Unlock()
	c.notifyFields(page)
}

// PointerUp ends any active drag or resize, regardless of where the
// pointer currently is, including outside the page surface.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return
	}
	c.endSessionLocked()
	c.mu.Unlock()
}

// Escape cancels placement mode and clears the selection. An in-progress
// drag or resize is deliberately not aborted: only placement reacts to
// Escape, matching the reference editor.
func (c *Controller) Escape() {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		return
	}
	disarmed := c.state == StatePlacementArmed
	c.state = StateIdle
	deselected := c.selected != ""
	c.selected = ""
	c.mu.Unlock()

	if deselected {
		c.notifySelection("")
	}
	if disarmed {
		c.notifyPlacement(false)
	}
}

// DeleteField removes a field from the current page. A session opened
// against the field is torn down first, and a selection pointing at it
// becomes none.
func (c *Controller) DeleteField(id string) bool {
	c.mu.Lock()
	if c.session != nil && c.session.fieldID == id {
		c.endSessionLocked()
	}
	page := c.page
	ok := c.store.Delete(page, id)
	deselected := ok && c.selected == id
	if deselected {
		c.selected = ""
	}
	if ok {
		delete(c.scratch, id)
	}
	c.mu.Unlock()

	if ok {
		c.notifyFields(page)
	}
	if deselected {
		c.notifySelection("")
	}
	return ok
}

// Rename forwards to the store and, on success, migrates the field's
// scratch value to the new id so live preview text survives the rename.
// Selection follows the field as well.
func (c *Controller) Rename(oldID, newID string) error {
	c.mu.Lock()
	err := c.store.Rename(c.page, oldID, newID)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if v, ok := c.scratch[oldID]; ok {
		delete(c.scratch, oldID)
		c.scratch[newID] = v
	}
	if c.session != nil && c.session.fieldID == oldID {
		c.session.fieldID = newID
	}
	reselect := c.selected == oldID
	if reselect {
		c.selected = newID
	}
	page := c.page
	c.mu.Unlock()

	c.notifyFields(page)
	if reselect {
		c.notifySelection(newID)
	}
	return nil
}

// SetScratch records a transient per-field value, such as preview text
// typed into the shell's field list.
func (c *Controller) SetScratch(id, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scratch[id] = value
}

// Scratch returns the transient value recorded for a field.
func (c *Controller) Scratch(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.scratch[id]
	return v, ok
}

// SetPage switches the current page. A session in flight is torn down: it
// must never outlive the page it was opened against. The selection is kept
// at the model level; the shell scopes its visibility. The returned
// generation tags the render this change requires.
func (c *Controller) SetPage(page int) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		c.endSessionLocked()
	}
	c.page = page
	c.renderGen++
	return c.renderGen
}

// SetZoom changes the zoom scale and returns the generation tagging the
// render this change requires. Scale must be positive; the caller
// guarantees it.
func (c *Controller) SetZoom(scale float64) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = scale
	c.renderGen++
	return c.renderGen
}

// RenderGeneration returns the tag of the most recent page or zoom change.
func (c *Controller) RenderGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderGen
}

// ApplyViewport installs a completed render's viewport, but only when it
// belongs to the most recent request. A stale completion is discarded so
// the last requested (page, zoom) combination always wins.
func (c *Controller) ApplyViewport(gen uint64, vp geom.Viewport) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.renderGen {
		return false
	}
	c.viewport = vp
	return true
}

// endSessionLocked tears the pointer session down and returns to Idle.
// Every session exit path funnels through here.
func (c *Controller) endSessionLocked() {
	c.session = nil
	c.state = StateIdle
}

func (c *Controller) notifyFields(page int) {
	if c.OnFieldsChanged != nil {
		c.OnFieldsChanged(page)
	}
}

func (c *Controller) notifySelection(id string) {
	if c.OnSelectionChanged != nil {
		c.OnSelectionChanged(id)
	}
}

func (c *Controller) notifyPlacement(armed bool) {
	if c.OnPlacementModeChanged != nil {
		c.OnPlacementModeChanged(armed)
	}
}
