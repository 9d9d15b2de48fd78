package fields

import (
	"sort"
	"strings"
	"sync"

	"github.com/dooform/pdf-template-editor/internal/geom"
)

// Store owns every field of the current editing session, keyed by 1-based
// page number. Pages are sparse: a page exists in the map only while it has
// fields. Insertion order within a page is preserved for list display.
//
// All mutations go through Store methods under a single mutex, so handlers
// running on different goroutines never interleave partial updates.
type Store struct {
	mu    sync.RWMutex
	pages map[int][]*Field
}

// NewStore returns an empty field store.
func NewStore() *Store {
	return &Store{pages: make(map[int][]*Field)}
}

// Create allocates a new text field at the given point-space position with
// the default geometry and style, and appends it to the page. The id is the
// first free "field_<N>" across the whole store.
func (s *Store) Create(page int, x, y float64) Field {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := &Field{
		ID:     GenerateFieldID(s.allIDsLocked()),
		Type:   FieldTypeText,
		X:      geom.Round2(max(0, x)),
		Y:      geom.Round2(max(0, y)),
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Style:  DefaultTextStyle(),
	}
	s.pages[page] = append(s.pages[page], f)
	return f.Clone()
}

// Get returns a copy of the field, if present on the page.
func (s *Store) Get(page int, id string) (Field, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if f := s.findLocked(page, id); f != nil {
		return f.Clone(), true
	}
	return Field{}, false
}

// List returns copies of the page's fields in insertion order.
func (s *Store) List(page int) []Field {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Field, 0, len(s.pages[page]))
	for _, f := range s.pages[page] {
		out = append(out, f.Clone())
	}
	return out
}

// Pages returns the page numbers that currently hold at least one field,
// in ascending order.
func (s *Store) Pages() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int, 0, len(s.pages))
	for p, fs := range s.pages {
		if len(fs) > 0 {
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}

// Count returns the total number of fields across all pages.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, fs := range s.pages {
		n += len(fs)
	}
	return n
}

// Rename changes a field's id in place, preserving its position in the
// page's field list. It fails with ErrEmptyID when newID is blank and with
// ErrDuplicateID when newID is already used by any other field on any page.
func (s *Store) Rename(page int, oldID, newID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed := strings.TrimSpace(newID)
	if trimmed == "" {
		return &ValidationError{ID: newID, Err: ErrEmptyID}
	}

	f := s.findLocked(page, oldID)
	if f == nil {
		return &ValidationError{ID: oldID, Err: ErrUnknownField}
	}
	if trimmed == oldID {
		return nil
	}
	if _, taken := s.allIDsLocked()[trimmed]; taken {
		return &ValidationError{ID: trimmed, Err: ErrDuplicateID}
	}

	f.ID = trimmed
	return nil
}

// Restyle merges the patch into the field's current style variant. Keys
// belonging to the other variant are ignored; changing variants goes
// through ChangeType.
func (s *Store) Restyle(page int, id string, patch StylePatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.findLocked(page, id)
	if f == nil {
		return false
	}
	patch.apply(&f.Style)
	return true
}

// ChangeType switches the field's type and installs the new type's default
// style wholesale. Prior styling is discarded, never merged into the new
// variant.
func (s *Store) ChangeType(page int, id string, t FieldType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.findLocked(page, id)
	if f == nil || !t.Valid() {
		return false
	}
	if f.Type == t {
		return true
	}
	f.Type = t
	f.Style = DefaultStyleFor(t)
	return true
}

// Move sets the field's position. Coordinates are clamped to be
// non-negative and rounded to one decimal. There is no clamp against the
// page's far edge: overflowing off the top or right is permitted.
func (s *Store) Move(page int, id string, x, y float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.findLocked(page, id)
	if f == nil {
		return false
	}
	f.X = geom.Round1(max(0, x))
	f.Y = geom.Round1(max(0, y))
	return true
}

// Resize sets the field's dimensions, flooring both at MinDimension and
// rounding to one decimal.
func (s *Store) Resize(page int, id string, width, height float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.findLocked(page, id)
	if f == nil {
		return false
	}
	f.Width = geom.Round1(max(MinDimension, width))
	f.Height = geom.Round1(max(MinDimension, height))
	return true
}

// Delete removes the field from its page and reports whether it existed.
func (s *Store) Delete(page int, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := s.pages[page]
	for i, f := range fs {
		if f.ID == id {
			s.pages[page] = append(fs[:i], fs[i+1:]...)
			if len(s.pages[page]) == 0 {
				delete(s.pages, page)
			}
			return true
		}
	}
	return false
}

// Snapshot returns a deep copy of the whole store, keyed by page.
func (s *Store) Snapshot() map[int][]Field {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int][]Field, len(s.pages))
	for p, fs := range s.pages {
		page := make([]Field, 0, len(fs))
		for _, f := range fs {
			page = append(page, f.Clone())
		}
		out[p] = page
	}
	return out
}

// Replace swaps the entire store contents in one step. Template import
// uses this so an applied template is all-or-nothing.
func (s *Store) Replace(pages map[int][]Field) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[int][]*Field, len(pages))
	for p, fs := range pages {
		if len(fs) == 0 {
			continue
		}
		page := make([]*Field, 0, len(fs))
		for _, f := range fs {
			c := f.Clone()
			page = append(page, &c)
		}
		next[p] = page
	}
	s.pages = next
}

// AllIDs returns the set of field ids across every page.
func (s *Store) AllIDs() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allIDsLocked()
}

func (s *Store) allIDsLocked() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, fs := range s.pages {
		for _, f := range fs {
			ids[f.ID] = struct{}{}
		}
	}
	return ids
}

func (s *Store) findLocked(page int, id string) *Field {
	for _, f := range s.pages[page] {
		if f.ID == id {
			return f
		}
	}
	return nil
}
