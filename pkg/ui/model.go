// Package ui is the sheetui terminal front-end. Every transient surface it
// shows is an overlay driven by a presence controller scheduled on the
// bubbletea event loop.
package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sheetui/internal/config"
	"github.com/marcus/sheetui/internal/sheet"
	"github.com/marcus/sheetui/pkg/ui/colorpicker"
	"github.com/marcus/sheetui/pkg/ui/modal"
	"github.com/marcus/sheetui/pkg/ui/overlay"
	"github.com/marcus/sheetui/pkg/ui/palette"
)

// Dialog kinds, in render order.
const (
	dlgEdit      = "edit"
	dlgDelete    = "delete"
	dlgTemplate  = "template"
	dlgOverwrite = "overwrite"
	dlgFind      = "find"
	dlgHelp      = "help"
)

var dialogOrder = []string{dlgEdit, dlgDelete, dlgTemplate, dlgOverwrite, dlgFind, dlgHelp}

// dialog pairs a long-lived overlay with the modal built each time it opens.
type dialog struct {
	ov    *overlay.Overlay
	modal *modal.Modal
}

// animTickMsg advances overlay fades by one frame.
type animTickMsg time.Time

// Finder matches and rewrites cell text for the find dialog.
type Finder interface {
	// Find returns matching cells in row-major order.
	Find(s *sheet.Sheet, query string) []sheet.Pos
	// Replace rewrites every match and returns how many cells changed.
	Replace(s *sheet.Sheet, query, replacement string) int
}

// Options configures a Model.
type Options struct {
	Config  *config.Config
	Sheet   *sheet.Sheet
	Recents colorpicker.Recents
	Finder  Finder // nil uses sheet.TextFinder
}

// Model is the root bubbletea model.
type Model struct {
	cfg   *config.Config
	sched *overlay.TeaScheduler
	sheet *sheet.Sheet

	cursor    sheet.Pos
	top, left int
	width     int
	height    int

	toolbarFocus int

	tooltip   *overlay.Tooltip
	styleMenu *overlay.Dropdown
	ctxMenu   *overlay.ContextMenu
	toasts    *overlay.Toasts
	palette   *palette.Palette
	colors    *colorpicker.Picker

	dialogs         map[string]*dialog
	active          string
	editInput       textinput.Model
	findInput       textinput.Model
	replaceInput    textinput.Model
	finder          Finder
	templateIdx     int
	pendingTemplate string

	animating bool
	quitting  bool
}

// New builds the model. A nil Config uses defaults; a nil Sheet starts blank.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	sh := opts.Sheet
	if sh == nil {
		blank, _ := sheet.FindTemplate("blank")
		sh = sheet.FromTemplate(blank)
	}

	sched := overlay.NewTeaScheduler(cfg.FrameInterval())
	m := &Model{
		cfg:          cfg,
		sched:        sched,
		sheet:        sh,
		toolbarFocus: -1,
		tooltip:      overlay.NewTooltip(sched, cfg.ExitDuration(config.KindTooltip)),
		styleMenu:    overlay.NewDropdown(sched, "Cell style", styleNames(), cfg.ExitDuration(config.KindDropdown)),
		ctxMenu:      overlay.NewContextMenu(sched, contextMenuItems, cfg.ExitDuration(config.KindContextMenu)),
		toasts:       overlay.NewToasts(sched, cfg.ExitDuration(config.KindToast), cfg.ToastDuration()),
		palette:      palette.New(sched, cfg.ExitDuration(config.KindPalette), nil),
		dialogs:      make(map[string]*dialog),
		finder:       opts.Finder,
	}
	if m.finder == nil {
		m.finder = sheet.TextFinder{}
	}
	m.colors = colorpicker.New(
		overlay.NewPopover(sched, "fill_color", cfg.ExitDuration(config.KindPopover)),
		"Fill color", "No fill", overlay.Surface, opts.Recents,
	)

	exits := map[string]string{
		dlgEdit:      config.KindModal,
		dlgDelete:    config.KindModal,
		dlgTemplate:  config.KindTemplate,
		dlgOverwrite: config.KindConfirm,
		dlgFind:      config.KindModal,
		dlgHelp:      config.KindModal,
	}
	for _, kind := range dialogOrder {
		m.dialogs[kind] = &dialog{ov: overlay.New(sched, kind, cfg.ExitDuration(exits[kind]))}
	}

	m.editInput = textinput.New()
	m.editInput.CharLimit = 256
	m.findInput = textinput.New()
	m.findInput.Placeholder = "Find"
	m.replaceInput = textinput.New()
	m.replaceInput.Placeholder = "Replace with"
	return m
}

func styleNames() []string {
	names := make([]string, len(sheet.Styles))
	for i, s := range sheet.Styles {
		names[i] = string(s)
	}
	return names
}

// Sheet returns the sheet being edited.
func (m *Model) Sheet() *sheet.Sheet { return m.sheet }

// Cursor returns the selected cell.
func (m *Model) Cursor() sheet.Pos { return m.cursor }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.toasts.Show(overlay.ToneInfo, "", "Press ? for help, ctrl+k for commands")
	return tea.Batch(m.sched.Cmd(), m.animate())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.sched.Handle(msg) {
		m.toasts.Prune()
		return m, tea.Batch(m.sched.Cmd(), m.animate())
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scrollToCursor()

	case animTickMsg:
		m.animating = false
		m.step(m.sched.FrameInterval())

	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	}

	if m.quitting {
		return m, tea.Quit
	}
	return m, tea.Batch(cmd, m.sched.Cmd(), m.animate())
}

// steppers returns every overlay with a fade.
func (m *Model) steppers() []interface {
	Step(time.Duration) bool
	Animating() bool
} {
	out := []interface {
		Step(time.Duration) bool
		Animating() bool
	}{m.tooltip, m.styleMenu, m.ctxMenu, m.toasts, m.palette, m.colors}
	for _, kind := range dialogOrder {
		out = append(out, m.dialogs[kind].ov)
	}
	return out
}

func (m *Model) step(dt time.Duration) {
	for _, s := range m.steppers() {
		s.Step(dt)
	}
}

// animate starts the fade tick loop if any overlay is mid-fade and no tick
// is already in flight.
func (m *Model) animate() tea.Cmd {
	if m.animating {
		return nil
	}
	for _, s := range m.steppers() {
		if s.Animating() {
			m.animating = true
			return tea.Tick(m.sched.FrameInterval(), func(t time.Time) tea.Msg {
				return animTickMsg(t)
			})
		}
	}
	return nil
}

// Close releases every overlay controller.
func (m *Model) Close() {
	m.tooltip.Dispose()
	m.styleMenu.Dispose()
	m.ctxMenu.Dispose()
	m.toasts.Dispose()
	m.palette.Dispose()
	m.colors.Dispose()
	for _, d := range m.dialogs {
		d.ov.Dispose()
	}
	slog.Debug("ui closed")
}

// toast shows a notification and logs it.
func (m *Model) toast(tone overlay.Tone, title, msg string) {
	slog.Info("toast", "tone", string(tone), "title", title, "msg", msg)
	m.toasts.Show(tone, title, msg)
}
