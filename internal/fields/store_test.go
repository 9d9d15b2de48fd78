package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDefaults(t *testing.T) {
	s := NewStore()

	f := s.Create(1, 100.456, 200.123)

	assert.Equal(t, "field_1", f.ID)
	assert.Equal(t, FieldTypeText, f.Type)
	assert.Equal(t, 100.46, f.X)
	assert.Equal(t, 200.12, f.Y)
	assert.Equal(t, float64(DefaultWidth), f.Width)
	assert.Equal(t, float64(DefaultHeight), f.Height)
	require.NotNil(t, f.Style.Text)
	assert.Nil(t, f.Style.Check)
	assert.Equal(t, 12.0, f.Style.Text.FontSize)
	assert.Equal(t, "Arial", f.Style.Text.FontFamily)
	assert.Equal(t, AlignLeft, f.Style.Text.Alignment)
	assert.Equal(t, "#000000", f.Style.Text.Color)
}

func TestCreateIDsAreGlobal(t *testing.T) {
	s := NewStore()

	f1 := s.Create(1, 0, 0)
	f2 := s.Create(3, 0, 0) // different page still advances the counter
	f3 := s.Create(1, 0, 0)

	assert.Equal(t, "field_1", f1.ID)
	assert.Equal(t, "field_2", f2.ID)
	assert.Equal(t, "field_3", f3.ID)
}

func TestGenerateFieldID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "empty", existing: nil, want: "field_1"},
		{name: "fills_gap", existing: []string{"field_1", "field_3"}, want: "field_2"},
		{name: "appends", existing: []string{"field_1", "field_2"}, want: "field_3"},
		{name: "ignores_custom_ids", existing: []string{"invoice_total"}, want: "field_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(map[string]struct{}, len(tt.existing))
			for _, id := range tt.existing {
				set[id] = struct{}{}
			}
			assert.Equal(t, tt.want, GenerateFieldID(set))
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Invoice Total", "invoice_total"},
		{"  Customer   Name  ", "customer_name"},
		{"Amount ($USD)", "amount_usd"},
		{"___already__slugged___", "already_slugged"},
		{"ALL CAPS-42", "all_caps42"},
		{"", ""},
		{"***", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "slugify(%q)", tt.in)
	}
}

func TestRename(t *testing.T) {
	s := NewStore()
	s.Create(1, 0, 0) // field_1
	s.Create(1, 0, 0) // field_2
	s.Create(2, 0, 0) // field_3

	t.Run("success_preserves_position", func(t *testing.T) {
		require.NoError(t, s.Rename(1, "field_1", "header"))
		list := s.List(1)
		require.Len(t, list, 2)
		assert.Equal(t, "header", list[0].ID)
		assert.Equal(t, "field_2", list[1].ID)
	})

	t.Run("empty_id_rejected", func(t *testing.T) {
		err := s.Rename(1, "field_2", "   ")
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("duplicate_on_same_page_rejected", func(t *testing.T) {
		err := s.Rename(1, "field_2", "header")
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("duplicate_on_other_page_rejected", func(t *testing.T) {
		// Uniqueness is template-wide, not per page.
		err := s.Rename(2, "field_3", "header")
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("rename_to_self_is_noop", func(t *testing.T) {
		assert.NoError(t, s.Rename(1, "header", "header"))
	})

	t.Run("unknown_field", func(t *testing.T) {
		err := s.Rename(1, "ghost", "anything")
		assert.ErrorIs(t, err, ErrUnknownField)
	})
}

func TestMoveClampsAndRounds(t *testing.T) {
	s := NewStore()
	f := s.Create(1, 10, 10)

	require.True(t, s.Move(1, f.ID, -50, 123.456))

	got, ok := s.Get(1, f.ID)
	require.True(t, ok)
	assert.Equal(t, 0.0, got.X)
	assert.Equal(t, 123.5, got.Y)
}

func TestResizeFloor(t *testing.T) {
	s := NewStore()
	f := s.Create(1, 0, 0)

	tests := []struct {
		name  string
		w, h  float64
		wantW float64
		wantH float64
	}{
		{name: "normal", w: 120.04, h: 33.36, wantW: 120, wantH: 33.4},
		{name: "floors_at_8", w: 3, h: 7.9, wantW: 8, wantH: 8},
		{name: "large_negative", w: -10000, h: -1, wantW: 8, wantH: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, s.Resize(1, f.ID, tt.w, tt.h))
			got, _ := s.Get(1, f.ID)
			assert.Equal(t, tt.wantW, got.Width)
			assert.Equal(t, tt.wantH, got.Height)
		})
	}
}

func TestChangeTypeReplacesStyle(t *testing.T) {
	s := NewStore()
	f := s.Create(1, 0, 0)

	// Customize the text style, then switch to check.
	family := "Courier"
	align := AlignRight
	require.True(t, s.Restyle(1, f.ID, StylePatch{FontFamily: &family, Alignment: &align}))
	require.True(t, s.ChangeType(1, f.ID, FieldTypeCheck))

	got, _ := s.Get(1, f.ID)
	assert.Equal(t, FieldTypeCheck, got.Type)
	require.NotNil(t, got.Style.Check)
	assert.Nil(t, got.Style.Text, "text styling must be discarded, not merged")
	assert.Equal(t, CheckMarkV, got.Style.Check.Mark)
	assert.Equal(t, 14.0, got.Style.Check.Size)

	// Switching back installs fresh text defaults, not the old Courier.
	require.True(t, s.ChangeType(1, f.ID, FieldTypeText))
	got, _ = s.Get(1, f.ID)
	require.NotNil(t, got.Style.Text)
	assert.Equal(t, "Arial", got.Style.Text.FontFamily)
	assert.Equal(t, AlignLeft, got.Style.Text.Alignment)
}

func TestRestyleIgnoresForeignVariantKeys(t *testing.T) {
	s := NewStore()
	f := s.Create(1, 0, 0)

	mark := CheckMarkX
	size := 20.0
	require.True(t, s.Restyle(1, f.ID, StylePatch{CheckMark: &mark, CheckSize: &size}))

	got, _ := s.Get(1, f.ID)
	require.NotNil(t, got.Style.Text)
	assert.Nil(t, got.Style.Check)
}

func TestDelete(t *testing.T) {
	s := NewStore()
	f := s.Create(1, 0, 0)

	assert.True(t, s.Delete(1, f.ID))
	assert.False(t, s.Delete(1, f.ID))
	assert.Empty(t, s.Pages(), "empty pages disappear from the sparse map")
}

func TestSnapshotReplaceRoundTrip(t *testing.T) {
	s := NewStore()
	s.Create(1, 10, 20)
	s.Create(5, 30, 40)

	snap := s.Snapshot()

	other := NewStore()
	other.Replace(snap)

	assert.Equal(t, snap, other.Snapshot())
	assert.Equal(t, []int{1, 5}, other.Pages())
}
