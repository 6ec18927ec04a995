package palette

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sheetui/pkg/presence/presencetest"
)

var testCommands = []Command{
	{ID: "save", Label: "Save", Shortcut: "ctrl+s", Group: "File", Keywords: "write disk"},
	{ID: "open", Label: "Open template", Group: "File"},
	{ID: "sort", Label: "Sort ascending", Group: "Data", Keywords: "order"},
	{ID: "find", Label: "Find", Shortcut: "ctrl+f", Group: "Edit", Keywords: "search"},
	{ID: "export", Label: "Export PDF", Group: "Share", Disabled: true},
}

func ids(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.ID
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Run("empty query returns everything in order", func(t *testing.T) {
		got := Filter("   ", testCommands)
		if len(got) != len(testCommands) {
			t.Fatalf("got %d commands, want %d", len(got), len(testCommands))
		}
		for i := range got {
			if got[i].ID != testCommands[i].ID {
				t.Errorf("position %d: got %q, want %q", i, got[i].ID, testCommands[i].ID)
			}
		}
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		got := Filter("  SORT   Ascending ", testCommands)
		if len(got) == 0 || got[0].ID != "sort" {
			t.Errorf("got %v, want sort first", ids(got))
		}
	})

	t.Run("matches keywords and group", func(t *testing.T) {
		got := Filter("file", testCommands)
		if len(got) < 2 || got[0].ID != "save" || got[1].ID != "open" {
			t.Errorf("got %v, want save, open first", ids(got))
		}
		if got := Filter("search", testCommands); len(got) == 0 || got[0].ID != "find" {
			t.Errorf("keyword search: got %v", ids(got))
		}
	})

	t.Run("fuzzy fallback", func(t *testing.T) {
		got := Filter("srtasc", testCommands)
		found := false
		for _, c := range got {
			if c.ID == "sort" {
				found = true
			}
		}
		if !found {
			t.Errorf("fuzzy query should find sort, got %v", ids(got))
		}
	})

	t.Run("no match", func(t *testing.T) {
		if got := Filter("zzzz", testCommands); len(got) != 0 {
			t.Errorf("got %v, want none", ids(got))
		}
	})
}

func typeText(p *Palette, s string) {
	for _, r := range s {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func newTestPalette(t *testing.T) (*Palette, *presencetest.Scheduler) {
	t.Helper()
	sched := presencetest.New()
	p := New(sched, DefaultExitDuration, testCommands)
	t.Cleanup(p.Dispose)
	return p, sched
}

func TestPaletteRunsActiveCommand(t *testing.T) {
	p, sched := newTestPalette(t)
	p.Open()
	sched.Frame()

	typeText(p, "sort")
	if p.Query() != "sort" {
		t.Fatalf("query: got %q", p.Query())
	}
	if c, ok := p.Active(); !ok || c.ID != "sort" {
		t.Fatalf("active: got %+v", c)
	}

	id, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if id != "sort" {
		t.Errorf("enter: got %q, want sort", id)
	}
	if p.IsOpen() {
		t.Error("palette should close after running a command")
	}
	if !p.Mounted() {
		t.Error("palette should stay mounted while exiting")
	}
	sched.Advance(DefaultExitDuration)
	if p.Mounted() || p.View() != "" {
		t.Error("palette should unmount after its exit")
	}
}

func TestPaletteNavigationWraps(t *testing.T) {
	p, _ := newTestPalette(t)
	p.Open()

	p.HandleKey(tea.KeyMsg{Type: tea.KeyUp})
	if c, _ := p.Active(); c.ID != "export" {
		t.Errorf("up from first: got %q, want export", c.ID)
	}
	p.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	if c, _ := p.Active(); c.ID != "save" {
		t.Errorf("down from last: got %q, want save", c.ID)
	}
}

func TestPaletteDisabledCommand(t *testing.T) {
	p, _ := newTestPalette(t)
	p.Open()
	typeText(p, "export")

	id, _ := p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if id != "" {
		t.Errorf("disabled command ran: %q", id)
	}
	if !p.IsOpen() {
		t.Error("palette should stay open")
	}
}

func TestPaletteActiveClampsToResults(t *testing.T) {
	p, _ := newTestPalette(t)
	p.Open()
	for range 4 {
		p.HandleKey(tea.KeyMsg{Type: tea.KeyDown})
	}
	typeText(p, "file")
	c, ok := p.Active()
	if !ok {
		t.Fatal("no active command")
	}
	if c.ID != p.Results()[len(p.Results())-1].ID {
		t.Errorf("active should clamp to the last result, got %q", c.ID)
	}

	typeText(p, "zzz")
	if _, ok := p.Active(); ok {
		t.Error("no results should mean no active command")
	}
	if !strings.Contains(ansi.Strip(p.View()), "No matching commands") {
		t.Error("empty results should render a hint")
	}
}

func TestPaletteEscCloses(t *testing.T) {
	p, _ := newTestPalette(t)
	p.Open()
	typeText(p, "sa")
	p.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if p.IsOpen() {
		t.Fatal("esc should close")
	}

	p.Open()
	if p.Query() != "" {
		t.Errorf("reopening should clear the query, got %q", p.Query())
	}
}

func TestPaletteView(t *testing.T) {
	p, _ := newTestPalette(t)
	if p.View() != "" {
		t.Fatal("closed palette should render nothing")
	}
	p.Open()
	out := ansi.Strip(p.View())
	for _, want := range []string{"FILE", "Save", "ctrl+s", "Sort ascending"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
