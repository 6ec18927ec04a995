package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/sheetui/pkg/presence"
	"github.com/marcus/sheetui/pkg/ui/overlay"
)

// Variant selects the modal's border accent.
type Variant int

const (
	VariantDefault Variant = iota
	VariantDanger
	VariantWarning
	VariantInfo
)

func (v Variant) accent() string {
	switch v {
	case VariantDanger:
		return accentDanger
	case VariantWarning:
		return accentWarning
	case VariantInfo:
		return accentInfo
	default:
		return accentDefault
	}
}

// Section is one vertical block of a modal.
type Section interface {
	// Render draws the section at contentWidth. focusID is the focused
	// element's ID.
	Render(contentWidth int, focusID string) RenderedSection
	// Update handles a message while focusID is focused and may return an
	// action ID.
	Update(msg tea.Msg, focusID string) (string, tea.Cmd)
}

// RenderedSection is a section's output plus the focusable elements it drew.
type RenderedSection struct {
	Content    string
	Focusables []string
}

// Modal is a titled dialog built from sections.
type Modal struct {
	title         string
	ov            *overlay.Overlay
	sections      []Section
	width         int
	variant       Variant
	showHints     bool
	primaryAction string

	focusIDs []string
	focusIdx int
}

// Option is a functional option for New.
type Option func(*Modal)

// WithWidth sets the modal width.
func WithWidth(w int) Option {
	return func(m *Modal) {
		if w > 10 {
			m.width = w
		}
	}
}

// WithVariant sets the border accent.
func WithVariant(v Variant) Option {
	return func(m *Modal) { m.variant = v }
}

// WithHints toggles the keyboard hint line.
func WithHints(show bool) Option {
	return func(m *Modal) { m.showHints = show }
}

// WithPrimaryAction sets the action returned by Enter when the focused
// element does not produce one.
func WithPrimaryAction(actionID string) Option {
	return func(m *Modal) { m.primaryAction = actionID }
}

// New creates a modal whose visibility follows ov.
func New(title string, ov *overlay.Overlay, opts ...Option) *Modal {
	m := &Modal{
		title:     title,
		ov:        ov,
		width:     50,
		showHints: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddSection appends a section and returns the modal for chaining.
func (m *Modal) AddSection(s Section) *Modal {
	m.sections = append(m.sections, s)
	m.focusIDs = nil
	return m
}

// Overlay returns the presence host backing the modal.
func (m *Modal) Overlay() *overlay.Overlay { return m.ov }

// Open resets focus and opens the modal.
func (m *Modal) Open() {
	m.focusIDs = nil
	m.focusIdx = 0
	m.ov.SetOpen(true)
}

// Close closes the modal. It keeps rendering until its exit finishes.
func (m *Modal) Close() {
	m.ov.SetOpen(false)
}

// IsOpen reports whether the modal is meant to be visible.
func (m *Modal) IsOpen() bool { return m.ov.IsOpen() }

// FocusedID returns the focused element's ID.
func (m *Modal) FocusedID() string {
	m.ensureFocus()
	if len(m.focusIDs) == 0 {
		return ""
	}
	return m.focusIDs[m.focusIdx]
}

// SetFocus focuses the element with id, if present.
func (m *Modal) SetFocus(id string) {
	m.ensureFocus()
	for i, f := range m.focusIDs {
		if f == id {
			m.focusIdx = i
			return
		}
	}
}

func (m *Modal) contentWidth() int {
	return m.width - 4
}

func (m *Modal) ensureFocus() {
	if m.focusIDs == nil {
		m.renderBody("")
	}
}

// renderBody renders every section and records the focus order.
func (m *Modal) renderBody(focusID string) string {
	var parts []string
	var ids []string
	for _, s := range m.sections {
		r := s.Render(m.contentWidth(), focusID)
		ids = append(ids, r.Focusables...)
		if r.Content != "" || len(r.Focusables) > 0 {
			parts = append(parts, r.Content)
		}
	}
	m.focusIDs = ids
	if m.focusIdx >= len(ids) {
		m.focusIdx = max(len(ids)-1, 0)
	}
	return strings.Join(parts, "\n")
}

// Render draws the modal, or returns "" while its overlay is unmounted.
// The screen size caps the modal width.
func (m *Modal) Render(screenW, screenH int) string {
	if !m.ov.Mounted() {
		return ""
	}
	if screenW > 0 && m.width > screenW-2 {
		m.width = max(screenW-2, 20)
	}

	body := m.renderBody(m.FocusedID())
	header := ModalTitle.Render(m.title)
	content := header + "\n\n" + body
	if m.showHints {
		content += "\n\n" + Hint.Render("tab focus · enter select · esc close")
	}

	style := frame.
		Width(m.width).
		BorderForeground(m.ov.Accent(overlay.BorderDim, m.variant.accent()))
	if m.ov.State() == presence.StateClosed {
		style = style.Faint(true)
	}
	out := style.Render(content)
	if screenH > 0 && lipgloss.Height(out) > screenH {
		lines := strings.Split(out, "\n")
		out = strings.Join(lines[:screenH], "\n")
	}
	return out
}

// HandleKey processes a key while the modal is open. It returns an action
// ID when one is triggered: a button ID, a list item ID, the primary action,
// or "cancel" for esc.
func (m *Modal) HandleKey(msg tea.KeyMsg) (string, tea.Cmd) {
	if !m.ov.IsOpen() {
		return "", nil
	}
	m.ensureFocus()

	switch msg.String() {
	case "tab":
		if len(m.focusIDs) > 0 {
			m.focusIdx = (m.focusIdx + 1) % len(m.focusIDs)
		}
		return "", nil
	case "shift+tab":
		if len(m.focusIDs) > 0 {
			m.focusIdx = (m.focusIdx - 1 + len(m.focusIDs)) % len(m.focusIDs)
		}
		return "", nil
	case "esc":
		return "cancel", nil
	}

	focusID := m.FocusedID()
	var cmds []tea.Cmd
	for _, s := range m.sections {
		action, cmd := s.Update(msg, focusID)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if action != "" {
			return action, tea.Batch(cmds...)
		}
	}

	if msg.String() == "enter" && m.primaryAction != "" {
		return m.primaryAction, tea.Batch(cmds...)
	}
	return "", tea.Batch(cmds...)
}
