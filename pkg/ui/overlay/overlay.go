// Package overlay hosts transient terminal surfaces. Every surface owns
// exactly one presence controller and renders only while it is mounted.
package overlay

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/marcus/sheetui/pkg/presence"
)

// Overlay binds a host's open/closed intent to a presence controller and a
// fade the renderer reads.
type Overlay struct {
	name     string
	intent   bool
	ctrl     *presence.Controller
	fade     Fade
	disposed bool
}

// New creates a closed overlay.
func New(sched presence.Scheduler, name string, exit time.Duration) *Overlay {
	o := &Overlay{name: name}
	o.fade.duration = exit
	o.ctrl = presence.New(sched, false,
		presence.WithExitDuration(exit),
		presence.WithName(name),
		presence.WithLogger(slog.Default()),
		presence.WithOnChange(o.fade.retarget),
	)
	return o
}

// Name returns the overlay's label.
func (o *Overlay) Name() string { return o.name }

// SetOpen feeds the host's intent to the controller.
func (o *Overlay) SetOpen(open bool) presence.Snapshot {
	o.intent = open
	return o.ctrl.Evaluate(open)
}

// Toggle flips the intent.
func (o *Overlay) Toggle() presence.Snapshot {
	return o.SetOpen(!o.intent)
}

// IsOpen reports the host's current intent, not the mount status.
func (o *Overlay) IsOpen() bool { return o.intent }

// Snapshot returns the controller projection.
func (o *Overlay) Snapshot() presence.Snapshot { return o.ctrl.Snapshot() }

// Mounted reports whether the surface should be rendered.
func (o *Overlay) Mounted() bool { return o.ctrl.Snapshot().Mounted }

// State returns the visual state attached to the rendered surface.
func (o *Overlay) State() presence.State { return o.ctrl.Snapshot().State }

// Step advances the fade by dt and reports whether it is still animating.
func (o *Overlay) Step(dt time.Duration) bool { return o.fade.Step(dt) }

// Animating reports whether the fade has not reached its target.
func (o *Overlay) Animating() bool { return o.fade.Active() }

// Progress returns the fade value in [0, 1].
func (o *Overlay) Progress() float64 { return o.fade.Value() }

// Accent blends from dim toward full by the fade progress.
func (o *Overlay) Accent(dim, full string) lipgloss.Color {
	return Blend(dim, full, o.fade.Value())
}

// Box renders content in a bordered box whose border follows the fade, or
// returns "" while unmounted.
func (o *Overlay) Box(content string, style lipgloss.Style) string {
	if !o.Mounted() {
		return ""
	}
	style = style.BorderForeground(o.Accent(BorderDim, BorderOpen))
	if o.State() == presence.StateClosed {
		style = style.Faint(true)
	}
	return style.Render(content)
}

// Dispose releases the controller. Later calls are no-ops.
func (o *Overlay) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.ctrl.Dispose()
}

// Fade tweens a value toward 1 while a surface is open and toward 0 while it
// is closed, over the surface's transition length.
type Fade struct {
	duration time.Duration
	value    float32
	target   float32
	tween    *gween.Tween
}

func (f *Fade) retarget(s presence.Snapshot) {
	var target float32
	if s.Mounted && s.State == presence.StateOpen {
		target = 1
	}
	if target == f.target && (f.tween != nil || f.value == target) {
		return
	}
	f.target = target
	if f.duration <= 0 {
		f.value = target
		f.tween = nil
		return
	}
	f.tween = gween.New(f.value, target, float32(f.duration.Seconds()), ease.OutCubic)
}

// Step advances the tween by dt and reports whether it is still running.
func (f *Fade) Step(dt time.Duration) bool {
	if f.tween == nil {
		return false
	}
	v, done := f.tween.Update(float32(dt.Seconds()))
	f.value = v
	if done {
		f.value = f.target
		f.tween = nil
	}
	return !done
}

// Active reports whether a tween is running.
func (f *Fade) Active() bool { return f.tween != nil }

// Value returns the current fade value.
func (f *Fade) Value() float64 { return float64(f.value) }

// Blend mixes two hex colors in Lab space. Unparseable input yields full.
func Blend(dim, full string, t float64) lipgloss.Color {
	a, err := colorful.Hex(dim)
	if err != nil {
		return lipgloss.Color(full)
	}
	b, err := colorful.Hex(full)
	if err != nil {
		return lipgloss.Color(full)
	}
	t = min(max(t, 0), 1)
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}
