package overlay

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sheetui/pkg/presence"
	"github.com/marcus/sheetui/pkg/presence/presencetest"
)

func TestOverlayLifecycle(t *testing.T) {
	sched := presencetest.New()
	o := New(sched, "modal", 100*time.Millisecond)
	defer o.Dispose()

	if o.Mounted() || o.Box("x", boxStyle) != "" {
		t.Fatal("new overlay must be unmounted and render nothing")
	}

	snap := o.SetOpen(true)
	if !snap.Mounted || snap.State != presence.StateClosed {
		t.Fatalf("after open: %+v", snap)
	}
	if !o.IsOpen() {
		t.Error("IsOpen should follow intent")
	}
	if o.Box("x", boxStyle) == "" {
		t.Error("mounted overlay should render")
	}

	sched.Frame()
	if o.State() != presence.StateOpen {
		t.Fatalf("after frame: state %q", o.State())
	}
	if !o.Animating() {
		t.Error("fade should start on open")
	}
	for o.Step(16 * time.Millisecond) {
	}
	if o.Progress() != 1 {
		t.Errorf("Progress after fade-in: got %v, want 1", o.Progress())
	}

	o.Toggle()
	if o.IsOpen() || !o.Mounted() || o.State() != presence.StateClosed {
		t.Fatalf("after toggle: open=%v snap=%+v", o.IsOpen(), o.Snapshot())
	}
	o.Step(50 * time.Millisecond)
	if p := o.Progress(); p <= 0 || p >= 1 {
		t.Errorf("Progress mid fade-out: got %v", p)
	}

	sched.Advance(100 * time.Millisecond)
	if o.Mounted() {
		t.Error("overlay should unmount after exit duration")
	}
}

func TestOverlayZeroExitSnapsFade(t *testing.T) {
	sched := presencetest.New()
	o := New(sched, "tooltip", 0)
	defer o.Dispose()

	o.SetOpen(true)
	sched.Frame()
	if o.Animating() || o.Progress() != 1 {
		t.Errorf("zero-length fade should jump: animating=%v progress=%v", o.Animating(), o.Progress())
	}
}

func TestOverlayDispose(t *testing.T) {
	sched := presencetest.New()
	o := New(sched, "popover", 50*time.Millisecond)
	o.SetOpen(true)
	o.Dispose()
	o.Dispose()

	sched.Tick()
	if o.State() != presence.StateClosed {
		t.Error("disposed overlay must not open")
	}
	if sched.PendingFrames() != 0 {
		t.Errorf("pending frames after dispose: %d", sched.PendingFrames())
	}
}

func TestBlend(t *testing.T) {
	if got := Blend("#000000", "#FFFFFF", 0); string(got) != "#000000" {
		t.Errorf("Blend t=0: got %s", got)
	}
	if got := Blend("#000000", "#FFFFFF", 1); string(got) != "#ffffff" {
		t.Errorf("Blend t=1: got %s", got)
	}
	if got := Blend("bogus", "#FFFFFF", 0.5); string(got) != "#FFFFFF" {
		t.Errorf("Blend invalid: got %s", got)
	}
}

func TestTooltipKeepsContentWhileExiting(t *testing.T) {
	sched := presencetest.New()
	tip := NewTooltip(sched, 120*time.Millisecond)
	defer tip.Dispose()

	tip.Show("Bold", "ctrl+b", 4, 1)
	sched.Frame()
	tip.Hide()

	if !strings.Contains(tip.View(), "Bold") {
		t.Errorf("exiting tooltip lost its label: %q", tip.View())
	}
	if x, y := tip.Pos(); x != 4 || y != 1 {
		t.Errorf("Pos: got (%d,%d)", x, y)
	}

	sched.Advance(120 * time.Millisecond)
	if tip.View() != "" {
		t.Error("tooltip should render nothing once unmounted")
	}
}

func TestDropdown(t *testing.T) {
	sched := presencetest.New()
	d := NewDropdown(sched, "Style", []string{"plain", "bold", "italic"}, 180*time.Millisecond)
	defer d.Dispose()

	if _, handled := d.HandleKey(key("down")); handled {
		t.Error("closed dropdown should not handle keys")
	}

	d.OpenAt(2, 3, "bold")
	if d.Selected() != "bold" {
		t.Errorf("Selected: got %q, want bold", d.Selected())
	}
	d.HandleKey(key("down"))
	d.HandleKey(key("down"))
	choice, handled := d.HandleKey(key("enter"))
	if !handled || choice != "italic" {
		t.Errorf("enter: got (%q, %v), want (italic, true)", choice, handled)
	}
	if d.IsOpen() {
		t.Error("enter should close the dropdown")
	}
	if !d.Mounted() {
		t.Error("dropdown should stay mounted while exiting")
	}
}

func TestContextMenu(t *testing.T) {
	sched := presencetest.New()
	items := []MenuItem{
		Separator(),
		{ID: "copy", Label: "Copy", Shortcut: "ctrl+c"},
		Separator(),
		{ID: "delete", Label: "Delete"},
	}
	m := NewContextMenu(sched, items, 240*time.Millisecond)
	defer m.Dispose()

	m.OpenAt(10, 5)
	if m.Active() != "copy" {
		t.Fatalf("first selectable item: got %q, want copy", m.Active())
	}
	m.HandleKey(key("up"))
	if m.Active() != "copy" {
		t.Errorf("up at top should stay on copy, got %q", m.Active())
	}
	m.HandleKey(key("down"))
	if m.Active() != "delete" {
		t.Errorf("down should skip separator, got %q", m.Active())
	}

	action, _ := m.HandleKey(key("enter"))
	if action != "delete" {
		t.Errorf("enter: got %q, want delete", action)
	}
	if x, y := m.Pos(); x != 10 || y != 5 {
		t.Errorf("position must be kept while exiting, got (%d,%d)", x, y)
	}
	if !strings.Contains(m.View(), "Delete") {
		t.Error("exiting menu should still render")
	}
}

func TestToasts(t *testing.T) {
	t.Run("auto dismiss and prune", func(t *testing.T) {
		sched := presencetest.New()
		ts := NewToasts(sched, 220*time.Millisecond, time.Second)
		defer ts.Dispose()

		id := ts.Show(ToneSuccess, "", "Saved")
		if id == "" || ts.Len() != 1 {
			t.Fatalf("Show: id=%q len=%d", id, ts.Len())
		}
		if ts.Items()[0].Title != "Done" {
			t.Errorf("default title: got %q", ts.Items()[0].Title)
		}
		sched.Frame()

		sched.Advance(time.Second)
		toast := ts.Items()[0]
		if toast.IsOpen() || !toast.Mounted() {
			t.Fatalf("after duration: open=%v mounted=%v", toast.IsOpen(), toast.Mounted())
		}

		sched.Advance(220 * time.Millisecond)
		ts.Prune()
		if ts.Len() != 0 {
			t.Errorf("Len after prune: got %d", ts.Len())
		}
		if ts.View() != "" {
			t.Error("empty stack should render nothing")
		}
	})

	t.Run("manual dismiss cancels timer", func(t *testing.T) {
		sched := presencetest.New()
		ts := NewToasts(sched, 0, time.Second)
		defer ts.Dispose()

		id := ts.Show(ToneDanger, "Oops", "failed")
		ts.Dismiss(id)
		ts.Dismiss("unknown")
		sched.Advance(0)
		ts.Prune()
		if ts.Len() != 0 {
			t.Fatalf("Len: got %d", ts.Len())
		}
		if n := sched.PendingTimers(); n != 0 {
			t.Errorf("pending timers: got %d", n)
		}
	})

	t.Run("stack limit", func(t *testing.T) {
		sched := presencetest.New()
		ts := NewToasts(sched, 100*time.Millisecond, time.Minute)
		defer ts.Dispose()

		for i := 0; i < maxToasts+2; i++ {
			ts.Show(ToneInfo, "", "msg")
		}
		open := 0
		for _, toast := range ts.Items() {
			if toast.IsOpen() {
				open++
			}
		}
		if open != maxToasts {
			t.Errorf("open toasts: got %d, want %d", open, maxToasts)
		}
		if ts.Items()[0].IsOpen() {
			t.Error("oldest toast should be dismissed first")
		}
	})

	t.Run("unknown tone falls back to info", func(t *testing.T) {
		sched := presencetest.New()
		ts := NewToasts(sched, 0, 0)
		defer ts.Dispose()

		ts.Show(Tone("loud"), "", "x")
		if got := ts.Items()[0].Tone; got != ToneInfo {
			t.Errorf("Tone: got %q", got)
		}
	})
}

func TestTeaScheduler(t *testing.T) {
	s := NewTeaScheduler(0)
	if s.FrameInterval() != presence.DefaultFrameInterval {
		t.Errorf("FrameInterval: got %v", s.FrameInterval())
	}
	if s.Cmd() != nil {
		t.Error("Cmd with nothing scheduled should be nil")
	}

	var fired []int
	s.NextFrame(func() { fired = append(fired, 1) })
	h := s.AfterFunc(time.Millisecond, func() { fired = append(fired, 2) })
	s.AfterFunc(0, func() { fired = append(fired, 3) })

	if s.Pending() != 3 {
		t.Fatalf("Pending: got %d", s.Pending())
	}
	if s.Cmd() == nil {
		t.Fatal("Cmd should batch scheduled ticks")
	}
	if s.Cmd() != nil {
		t.Error("Cmd should drain")
	}

	h.Cancel()
	for _, id := range []uint64{3, 2, 1, 1} {
		if !s.Handle(FireMsg{ID: id}) {
			t.Fatalf("FireMsg %d not recognised", id)
		}
	}
	if s.Handle(tea.KeyMsg{}) {
		t.Error("non-FireMsg should not be handled")
	}

	if len(fired) != 2 || fired[0] != 3 || fired[1] != 1 {
		t.Errorf("fired: got %v, want [3 1]", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending after fire: got %d", s.Pending())
	}
}

func TestTeaSchedulerDrivesController(t *testing.T) {
	s := NewTeaScheduler(time.Millisecond)
	o := New(s, "modal", 10*time.Millisecond)
	defer o.Dispose()

	o.SetOpen(true)
	s.Handle(FireMsg{ID: 1})
	if o.State() != presence.StateOpen {
		t.Fatalf("state after enter fire: %q", o.State())
	}

	o.SetOpen(false)
	o.SetOpen(true)
	// The superseded exit timer still delivers its message; it must be ignored.
	s.Handle(FireMsg{ID: 2})
	if !o.Mounted() || o.State() != presence.StateOpen {
		t.Errorf("stale exit fired: %+v", o.Snapshot())
	}
}

func TestPlace(t *testing.T) {
	bg := "..........\n..........\n.........."
	got := Place(3, 1, "AB\nCD", bg)
	want := "..........\n...AB.....\n...CD....."
	if got != want {
		t.Errorf("Place:\n%s\nwant:\n%s", got, want)
	}

	if Place(0, 0, "", bg) != bg {
		t.Error("empty fg should leave bg untouched")
	}

	got = Place(12, 0, "X", "ab")
	if got != "ab          X" {
		t.Errorf("Place beyond line: %q", got)
	}

	got = Center(10, 3, "XX", bg)
	if strings.Split(got, "\n")[1] != "....XX...." {
		t.Errorf("Center: %q", got)
	}
}

func TestClamp(t *testing.T) {
	x, y := Clamp(78, 20, 10, 5, 80, 24)
	if x != 70 || y != 19 {
		t.Errorf("Clamp: got (%d,%d), want (70,19)", x, y)
	}
	x, y = Clamp(-3, -1, 10, 5, 80, 24)
	if x != 0 || y != 0 {
		t.Errorf("Clamp negative: got (%d,%d)", x, y)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
