package sheet

import (
	"reflect"
	"testing"
)

func TestCellBounds(t *testing.T) {
	s := New("t", 2, 2)
	s.Set(Pos{Row: 1, Col: 1}, "x")
	s.Set(Pos{Row: 5, Col: 0}, "ignored")

	if got := s.Cell(Pos{Row: 1, Col: 1}); got != "x" {
		t.Errorf("Cell(1,1) = %q, want x", got)
	}
	if got := s.Cell(Pos{Row: -1, Col: 0}); got != "" {
		t.Errorf("Cell(-1,0) = %q, want empty", got)
	}
	if !s.HasData() {
		t.Error("HasData should be true")
	}
	if New("e", 3, 3).HasData() {
		t.Error("empty sheet HasData should be false")
	}
}

func TestInsertDeleteRow(t *testing.T) {
	s := New("t", 3, 1)
	s.Set(Pos{Row: 0}, "a")
	s.Set(Pos{Row: 1}, "b")
	s.Set(Pos{Row: 2}, "c")
	s.Colors[Pos{Row: 2}] = "#FF0000"

	s.InsertRow(1)
	if got := col0(s); !reflect.DeepEqual(got, []string{"a", "", "b", "c"}) {
		t.Fatalf("after InsertRow: %v", got)
	}
	if s.Colors[Pos{Row: 3}] != "#FF0000" {
		t.Errorf("color did not move with its row: %v", s.Colors)
	}

	s.DeleteRow(1)
	if got := col0(s); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("after DeleteRow: %v", got)
	}
	if s.Colors[Pos{Row: 2}] != "#FF0000" {
		t.Errorf("color did not move back: %v", s.Colors)
	}

	one := New("one", 1, 1)
	one.DeleteRow(0)
	if r, _ := one.Dims(); r != 1 {
		t.Errorf("last row must be kept, got %d rows", r)
	}
}

func TestSortColumn(t *testing.T) {
	s := New("t", 5, 1)
	for i, v := range []string{"Header", "banana", "10", "2", "Apple"} {
		s.Set(Pos{Row: i}, v)
	}
	s.Styles[Pos{Row: 3}] = StyleBold // "2"

	s.SortColumn(0, true)
	if got := col0(s); !reflect.DeepEqual(got, []string{"Header", "2", "10", "Apple", "banana"}) {
		t.Fatalf("ascending: %v", got)
	}
	if s.Styles[Pos{Row: 1}] != StyleBold {
		t.Errorf("style did not follow its row: %v", s.Styles)
	}

	s.SortColumn(0, false)
	if got := col0(s); !reflect.DeepEqual(got, []string{"Header", "banana", "Apple", "10", "2"}) {
		t.Fatalf("descending: %v", got)
	}
}

func TestRef(t *testing.T) {
	tests := []struct {
		pos  Pos
		want string
	}{
		{Pos{0, 0}, "A1"},
		{Pos{9, 25}, "Z10"},
		{Pos{0, 26}, "AA1"},
		{Pos{1, 27}, "AB2"},
	}
	for _, tt := range tests {
		if got := tt.pos.Ref(); got != tt.want {
			t.Errorf("%+v.Ref() = %q, want %q", tt.pos, got, tt.want)
		}
	}
}

func TestTemplates(t *testing.T) {
	tpl, ok := FindTemplate("invoice")
	if !ok {
		t.Fatal("invoice template missing")
	}
	s := FromTemplate(tpl)
	rows, cols := s.Dims()
	if rows < minRows || cols < minCols {
		t.Errorf("Dims = %dx%d, want at least %dx%d", rows, cols, minRows, minCols)
	}
	if got := s.Cell(Pos{Row: 4, Col: 3}); got != "Amount" {
		t.Errorf("D5 = %q, want Amount", got)
	}

	blank, _ := FindTemplate("blank")
	if FromTemplate(blank).HasData() {
		t.Error("blank template should be empty")
	}
	if _, ok := FindTemplate("missing"); ok {
		t.Error("FindTemplate should fail for unknown id")
	}
}

func col0(s *Sheet) []string {
	var out []string
	for _, row := range s.Rows {
		out = append(out, row[0])
	}
	return out
}
