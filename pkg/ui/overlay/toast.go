package overlay

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/xid"

	"github.com/marcus/sheetui/pkg/presence"
)

// Tone selects a toast's accent and default title.
type Tone string

const (
	ToneInfo    Tone = "info"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

var toneDefaults = map[Tone]struct {
	title  string
	accent string
	icon   string
}{
	ToneInfo:    {"Notice", AccentInfo, "i"},
	ToneSuccess: {"Done", AccentSuccess, "✓"},
	ToneWarning: {"Warning", AccentWarning, "!"},
	ToneDanger:  {"Error", AccentDanger, "✗"},
}

const (
	// DefaultToastDuration is how long a toast stays before dismissing itself.
	DefaultToastDuration = 4500 * time.Millisecond
	toastWidth           = 40
	maxToasts            = 4
)

// Toast is one notification with its own presence.
type Toast struct {
	*Overlay
	ID      string
	Tone    Tone
	Title   string
	Message string

	dismiss presence.Handle
}

// Toasts is a stack of notifications, newest last.
type Toasts struct {
	sched    presence.Scheduler
	exit     time.Duration
	duration time.Duration
	items    []*Toast
}

// NewToasts creates an empty stack. duration <= 0 uses DefaultToastDuration.
func NewToasts(sched presence.Scheduler, exit, duration time.Duration) *Toasts {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return &Toasts{sched: sched, exit: exit, duration: duration}
}

// Show pushes a toast and returns its ID. An empty title uses the tone's
// default. The oldest toasts are dismissed beyond the stack limit.
func (t *Toasts) Show(tone Tone, title, message string) string {
	if _, ok := toneDefaults[tone]; !ok {
		tone = ToneInfo
	}
	if title == "" {
		title = toneDefaults[tone].title
	}

	toast := &Toast{
		Overlay: New(t.sched, "toast", t.exit),
		ID:      xid.New().String(),
		Tone:    tone,
		Title:   title,
		Message: message,
	}
	toast.SetOpen(true)
	id := toast.ID
	toast.dismiss = t.sched.AfterFunc(t.duration, func() { t.Dismiss(id) })
	t.items = append(t.items, toast)

	open := 0
	for i := len(t.items) - 1; i >= 0; i-- {
		if !t.items[i].IsOpen() {
			continue
		}
		open++
		if open > maxToasts {
			t.Dismiss(t.items[i].ID)
		}
	}
	return id
}

// Dismiss starts closing a toast. Unknown IDs are ignored.
func (t *Toasts) Dismiss(id string) {
	for _, toast := range t.items {
		if toast.ID != id {
			continue
		}
		if toast.dismiss != nil {
			toast.dismiss.Cancel()
			toast.dismiss = nil
		}
		toast.SetOpen(false)
		return
	}
}

// Prune disposes and removes toasts that have finished exiting.
func (t *Toasts) Prune() {
	kept := t.items[:0]
	for _, toast := range t.items {
		if toast.Mounted() {
			kept = append(kept, toast)
			continue
		}
		toast.Dispose()
	}
	for i := len(kept); i < len(t.items); i++ {
		t.items[i] = nil
	}
	t.items = kept
}

// Items returns the mounted toasts, oldest first.
func (t *Toasts) Items() []*Toast {
	return t.items
}

// Len counts mounted toasts.
func (t *Toasts) Len() int { return len(t.items) }

// Step advances every toast's fade and reports whether any is animating.
func (t *Toasts) Step(dt time.Duration) bool {
	active := false
	for _, toast := range t.items {
		if toast.Step(dt) {
			active = true
		}
	}
	return active
}

// Animating reports whether any toast is still fading.
func (t *Toasts) Animating() bool {
	for _, toast := range t.items {
		if toast.Animating() {
			return true
		}
	}
	return false
}

// View renders the stack, or "" when empty.
func (t *Toasts) View() string {
	var views []string
	for _, toast := range t.items {
		if v := toast.View(); v != "" {
			views = append(views, v)
		}
	}
	return strings.Join(views, "\n")
}

// Dispose releases every toast.
func (t *Toasts) Dispose() {
	for _, toast := range t.items {
		if toast.dismiss != nil {
			toast.dismiss.Cancel()
		}
		toast.Dispose()
	}
	t.items = nil
}

// View renders one toast, or "" when unmounted.
func (toast *Toast) View() string {
	if !toast.Mounted() {
		return ""
	}
	def := toneDefaults[toast.Tone]
	accent := toast.Accent(BorderDim, def.accent)

	icon := lipgloss.NewStyle().Foreground(accent).Bold(true).Render(def.icon)
	body := titleStyle.Render(toast.Title) + "\n" +
		mutedStyle.Width(toastWidth-4).Render(toast.Message)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderLeft(true).
		BorderForeground(accent).
		Width(toastWidth).
		Padding(0, 1)
	if toast.State() == presence.StateClosed {
		style = style.Faint(true)
	}
	return style.Render(lipgloss.JoinHorizontal(lipgloss.Top, icon, " ", body))
}
