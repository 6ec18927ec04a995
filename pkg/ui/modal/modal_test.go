package modal

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sheetui/pkg/presence/presencetest"
	"github.com/marcus/sheetui/pkg/ui/overlay"
)

func newTestModal(t *testing.T, title string, opts ...Option) (*Modal, *presencetest.Scheduler) {
	t.Helper()
	sched := presencetest.New()
	ov := overlay.New(sched, "modal", 240*time.Millisecond)
	t.Cleanup(ov.Dispose)
	return New(title, ov, opts...), sched
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModalRenderFollowsPresence(t *testing.T) {
	m, sched := newTestModal(t, "Delete row?")
	m.AddSection(Text("This cannot be undone."))

	if got := m.Render(80, 24); got != "" {
		t.Fatalf("closed modal rendered %q", got)
	}

	m.Open()
	out := m.Render(80, 24)
	if !strings.Contains(ansi.Strip(out), "Delete row?") {
		t.Errorf("render missing title: %q", out)
	}
	sched.Frame()

	m.Close()
	if m.Render(80, 24) == "" {
		t.Error("modal should keep rendering while exiting")
	}
	sched.Advance(240 * time.Millisecond)
	if got := m.Render(80, 24); got != "" {
		t.Errorf("modal should be gone after exit, got %q", got)
	}
}

func TestModalFocusCycle(t *testing.T) {
	m, _ := newTestModal(t, "Confirm")
	m.AddSection(Text("Sure?"))
	m.AddSection(Buttons(Btn("Delete", "delete", BtnDanger()), Btn("Cancel", "cancel")))
	m.Open()

	if got := m.FocusedID(); got != "delete" {
		t.Fatalf("initial focus: got %q, want delete", got)
	}

	m.HandleKey(keyMsg("tab"))
	if got := m.FocusedID(); got != "cancel" {
		t.Errorf("after tab: got %q, want cancel", got)
	}
	m.HandleKey(keyMsg("tab"))
	if got := m.FocusedID(); got != "delete" {
		t.Errorf("tab should wrap: got %q", got)
	}
	m.HandleKey(keyMsg("shift+tab"))
	if got := m.FocusedID(); got != "cancel" {
		t.Errorf("shift+tab should wrap: got %q", got)
	}

	if action, _ := m.HandleKey(keyMsg("enter")); action != "cancel" {
		t.Errorf("enter on cancel: got %q", action)
	}
	m.SetFocus("delete")
	if action, _ := m.HandleKey(keyMsg("enter")); action != "delete" {
		t.Errorf("enter on delete: got %q", action)
	}
	if action, _ := m.HandleKey(keyMsg("esc")); action != "cancel" {
		t.Errorf("esc: got %q", action)
	}
}

func TestModalIgnoresKeysWhileClosed(t *testing.T) {
	m, _ := newTestModal(t, "Closed")
	m.AddSection(Buttons(Btn("OK", "ok")))
	if action, _ := m.HandleKey(keyMsg("enter")); action != "" {
		t.Errorf("closed modal returned %q", action)
	}
}

func TestModalPrimaryAction(t *testing.T) {
	m, _ := newTestModal(t, "Help", WithPrimaryAction("close"))
	m.AddSection(Text("Nothing focusable here."))
	m.Open()

	if action, _ := m.HandleKey(keyMsg("enter")); action != "close" {
		t.Errorf("enter: got %q, want close", action)
	}
}

func TestListSection(t *testing.T) {
	items := []ListItem{
		{ID: "blank", Label: "Blank"},
		{ID: "budget", Label: "Budget", Detail: "monthly"},
		{ID: "invoice", Label: "Invoice"},
	}
	sel := 0
	m, _ := newTestModal(t, "Templates")
	m.AddSection(List("templates", items, &sel, WithMaxVisible(2)))
	m.Open()

	m.HandleKey(keyMsg("down"))
	m.HandleKey(keyMsg("down"))
	m.HandleKey(keyMsg("down"))
	if sel != 2 {
		t.Fatalf("selection: got %d, want 2", sel)
	}

	out := ansi.Strip(m.Render(80, 24))
	if !strings.Contains(out, "Invoice") || !strings.Contains(out, "more above") {
		t.Errorf("list should scroll to the selection: %q", out)
	}

	m.HandleKey(keyMsg("up"))
	if action, _ := m.HandleKey(keyMsg("enter")); action != "budget" {
		t.Errorf("enter: got %q, want budget", action)
	}
}

func TestInputSection(t *testing.T) {
	ti := textinput.New()
	m, _ := newTestModal(t, "Rename")
	m.AddSection(Input("name", &ti, WithLabel("Sheet name"), WithSubmitAction("rename")))
	m.AddSection(Buttons(Btn("Rename", "rename")))
	m.Open()

	for _, r := range "Q3" {
		m.HandleKey(keyMsg(string(r)))
	}
	if ti.Value() != "Q3" {
		t.Errorf("input value: got %q, want Q3", ti.Value())
	}
	if action, _ := m.HandleKey(keyMsg("enter")); action != "rename" {
		t.Errorf("enter in input: got %q, want rename", action)
	}
}

func TestMarkdownSection(t *testing.T) {
	s := Markdown("## Shortcuts\n\nPress **?** for help.")
	out := ansi.Strip(s.Render(40, "").Content)
	if !strings.Contains(out, "Shortcuts") {
		t.Errorf("markdown output missing heading: %q", out)
	}
	if again := ansi.Strip(s.Render(40, "").Content); again != out {
		t.Error("render at the same width should be stable")
	}
}

func TestWhenSection(t *testing.T) {
	show := false
	s := When(func() bool { return show }, Buttons(Btn("Retry", "retry")))

	if r := s.Render(40, ""); r.Content != "" || len(r.Focusables) != 0 {
		t.Errorf("hidden section rendered %+v", r)
	}
	show = true
	if r := s.Render(40, ""); len(r.Focusables) != 1 || r.Focusables[0] != "retry" {
		t.Errorf("visible section focusables: %v", r.Focusables)
	}
}
