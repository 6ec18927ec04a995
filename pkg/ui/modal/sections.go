package modal

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

type textSection struct {
	text string
}

// Text creates a static, wrapped text section.
func Text(s string) Section {
	return &textSection{text: s}
}

func (s *textSection) Render(contentWidth int, _ string) RenderedSection {
	return RenderedSection{Content: Body.Width(contentWidth).Render(s.text)}
}

func (s *textSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

type spacerSection struct{}

// Spacer creates a blank line.
func Spacer() Section { return spacerSection{} }

func (spacerSection) Render(int, string) RenderedSection {
	return RenderedSection{Content: " "}
}

func (spacerSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

// ButtonDef describes one button in a Buttons row.
type ButtonDef struct {
	Label  string
	ID     string
	danger bool
}

// ButtonOption configures a ButtonDef.
type ButtonOption func(*ButtonDef)

// BtnDanger styles the button as destructive.
func BtnDanger() ButtonOption {
	return func(b *ButtonDef) { b.danger = true }
}

// Btn creates a button definition.
func Btn(label, id string, opts ...ButtonOption) ButtonDef {
	b := ButtonDef{Label: label, ID: id}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

type buttonsSection struct {
	buttons []ButtonDef
}

// Buttons creates a row of focusable buttons. Enter on a focused button
// returns its ID.
func Buttons(btns ...ButtonDef) Section {
	return &buttonsSection{buttons: btns}
}

func (s *buttonsSection) Render(_ int, focusID string) RenderedSection {
	var parts []string
	var ids []string
	for _, b := range s.buttons {
		style := Button
		switch {
		case b.danger && b.ID == focusID:
			style = ButtonDangerFocused
		case b.danger:
			style = ButtonDanger
		case b.ID == focusID:
			style = ButtonFocused
		}
		parts = append(parts, style.Render(b.Label))
		ids = append(ids, b.ID)
	}
	return RenderedSection{Content: strings.Join(parts, "  "), Focusables: ids}
}

func (s *buttonsSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || key.String() != "enter" {
		return "", nil
	}
	for _, b := range s.buttons {
		if b.ID == focusID {
			return b.ID, nil
		}
	}
	return "", nil
}

// InputOption configures an Input section.
type InputOption func(*inputSection)

// WithSubmitAction makes Enter in the input return actionID.
func WithSubmitAction(actionID string) InputOption {
	return func(s *inputSection) { s.submit = actionID }
}

// WithLabel adds a label line above the input.
func WithLabel(label string) InputOption {
	return func(s *inputSection) { s.label = label }
}

type inputSection struct {
	id     string
	model  *textinput.Model
	label  string
	submit string
}

// Input creates a single-line text input bound to model.
func Input(id string, model *textinput.Model, opts ...InputOption) Section {
	s := &inputSection{id: id, model: model}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *inputSection) Render(contentWidth int, focusID string) RenderedSection {
	s.model.Width = max(contentWidth-4, 1)
	if focusID == s.id {
		s.model.Focus()
	} else {
		s.model.Blur()
	}
	content := s.model.View()
	if s.label != "" {
		content = MutedText.Render(s.label) + "\n" + content
	}
	return RenderedSection{Content: content, Focusables: []string{s.id}}
}

func (s *inputSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id {
		return "", nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		return s.submit, nil
	}
	// Focus may not have been applied by a render yet.
	s.model.Focus()
	var cmd tea.Cmd
	*s.model, cmd = s.model.Update(msg)
	return "", cmd
}

type markdownSection struct {
	md       string
	width    int
	rendered string
}

// Markdown creates a section rendering md with glamour. Rendering is cached
// per width; on failure the raw markdown is shown.
func Markdown(md string) Section {
	return &markdownSection{md: md}
}

func (s *markdownSection) Render(contentWidth int, _ string) RenderedSection {
	if s.rendered == "" || s.width != contentWidth {
		s.width = contentWidth
		s.rendered = renderMarkdown(s.md, contentWidth)
	}
	return RenderedSection{Content: s.rendered}
}

func (s *markdownSection) Update(tea.Msg, string) (string, tea.Cmd) { return "", nil }

func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

type whenSection struct {
	cond    func() bool
	section Section
}

// When renders section only while cond returns true.
func When(cond func() bool, section Section) Section {
	return &whenSection{cond: cond, section: section}
}

func (s *whenSection) Render(contentWidth int, focusID string) RenderedSection {
	if !s.cond() {
		return RenderedSection{}
	}
	return s.section.Render(contentWidth, focusID)
}

func (s *whenSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if !s.cond() {
		return "", nil
	}
	return s.section.Update(msg, focusID)
}
