// Package colorpicker implements the swatch popover used for text and fill
// colors.
package colorpicker

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/marcus/sheetui/pkg/ui/overlay"
)

// DefaultExitDuration is the popover transition length.
const DefaultExitDuration = 240 * time.Millisecond

// Swatches is the fixed 7x10 color grid.
var Swatches = [][]string{
	{"#000000", "#434343", "#666666", "#999999", "#B7B7B7", "#CCCCCC", "#D9D9D9", "#EFEFEF", "#F3F3F3", "#FFFFFF"},
	{"#980000", "#FF0000", "#FF9900", "#FFFF00", "#00FF00", "#00FFFF", "#4A86E8", "#0000FF", "#9900FF", "#FF00FF"},
	{"#E6B8AF", "#F4CCCC", "#FCE5CD", "#FFF2CC", "#D9EAD3", "#D0E0E3", "#C9DAF8", "#CFE2F3", "#D9D2E9", "#EAD1DC"},
	{"#DD7E6B", "#EA9999", "#F9CB9C", "#FFE599", "#B6D7A8", "#A2C4C9", "#A4C2F4", "#9FC5E8", "#B4A7D6", "#D5A6BD"},
	{"#CC4125", "#E06666", "#F6B26B", "#FFD966", "#93C47D", "#76A5AF", "#6D9EEB", "#6FA8DC", "#8E7CC3", "#C27BA0"},
	{"#A61C00", "#CC0000", "#E69138", "#F1C232", "#6AA84F", "#45818E", "#3C78D8", "#3D85C6", "#674EA7", "#A64D79"},
	{"#85200C", "#990000", "#B45F06", "#BF9000", "#38761D", "#134F5C", "#1155CC", "#0B5394", "#351C75", "#741B47"},
}

// Recents persists recently picked colors.
type Recents interface {
	Read() []string
	Push(color string) error
	Validate(color string) bool
}

// NormalizeHex accepts "#abc", "abc", "#aabbcc" or "aabbcc" and returns the
// upper-case "#RRGGBB" form.
func NormalizeHex(s string) (string, bool) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(raw) {
	case 3:
		var b strings.Builder
		for _, ch := range raw {
			b.WriteRune(ch)
			b.WriteRune(ch)
		}
		raw = b.String()
	case 6:
	default:
		return "", false
	}
	for _, ch := range raw {
		if !isHexDigit(ch) {
			return "", false
		}
	}
	return "#" + strings.ToUpper(raw), true
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

type area int

const (
	areaGrid area = iota
	areaRecent
	areaHex
	areaDefault
)

// Picker is a color popover. An empty picked value means "reset to default".
type Picker struct {
	*overlay.Popover
	title         string
	defaultLabel  string
	defaultSwatch string
	recents       Recents

	recent   []string
	selected string
	input    textinput.Model
	focus    area
	row, col int
	recentAt int
}

// New creates a closed picker. recents may be nil.
func New(popover *overlay.Popover, title, defaultLabel, defaultSwatch string, recents Recents) *Picker {
	ti := textinput.New()
	ti.Prompt = "# "
	ti.Placeholder = "RRGGBB"
	ti.CharLimit = 7
	ti.Width = 10
	return &Picker{
		Popover:       popover,
		title:         title,
		defaultLabel:  defaultLabel,
		defaultSwatch: defaultSwatch,
		recents:       recents,
		input:         ti,
	}
}

// OpenAt opens the picker anchored at (x, y) with value as the current color.
func (p *Picker) OpenAt(x, y int, value string) {
	p.selected, _ = NormalizeHex(value)
	if p.recents != nil {
		p.recent = p.recents.Read()
	}
	p.input.SetValue(strings.TrimPrefix(p.selected, "#"))
	p.input.Blur()
	p.focus = areaGrid
	p.row, p.col, p.recentAt = 0, 0, 0
	for r, row := range Swatches {
		for c, sw := range row {
			if sw == p.selected {
				p.row, p.col = r, c
			}
		}
	}
	p.Popover.OpenAt(x, y)
}

// Recent returns the recent colors loaded when the picker opened.
func (p *Picker) Recent() []string { return p.recent }

// Cursor returns the highlighted grid swatch.
func (p *Picker) Cursor() string { return Swatches[p.row][p.col] }

func (p *Picker) pick(color string) (string, bool) {
	if color != "" && p.recents != nil {
		if err := p.recents.Push(color); err != nil {
			slog.Warn("push recent color", "color", color, "err", err)
		}
	}
	p.Close()
	return color, true
}

func (p *Picker) cycleFocus(delta int) {
	order := []area{areaGrid}
	if len(p.recent) > 0 {
		order = append(order, areaRecent)
	}
	order = append(order, areaHex, areaDefault)

	idx := 0
	for i, a := range order {
		if a == p.focus {
			idx = i
		}
	}
	p.focus = order[(idx+delta+len(order))%len(order)]
	if p.focus == areaHex {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

// HandleKey processes a key while open. picked reports that a color was
// chosen and the picker closed; color is "" for the default.
func (p *Picker) HandleKey(msg tea.KeyMsg) (color string, picked bool, cmd tea.Cmd) {
	if !p.IsOpen() {
		return "", false, nil
	}
	key := msg.String()
	switch key {
	case "esc":
		p.Close()
		return "", false, nil
	case "tab":
		p.cycleFocus(1)
		return "", false, nil
	case "shift+tab":
		p.cycleFocus(-1)
		return "", false, nil
	}

	switch p.focus {
	case areaGrid:
		switch key {
		case "up", "k":
			p.row = max(p.row-1, 0)
		case "down", "j":
			p.row = min(p.row+1, len(Swatches)-1)
		case "left", "h":
			p.col = max(p.col-1, 0)
		case "right", "l":
			p.col = min(p.col+1, len(Swatches[p.row])-1)
		case "enter", " ":
			color, picked = p.pick(p.Cursor())
		}
	case areaRecent:
		switch key {
		case "left", "h":
			p.recentAt = max(p.recentAt-1, 0)
		case "right", "l":
			p.recentAt = min(p.recentAt+1, len(p.recent)-1)
		case "enter", " ":
			if p.recentAt < len(p.recent) {
				color, picked = p.pick(p.recent[p.recentAt])
			}
		}
	case areaHex:
		if key == "enter" {
			if hex, ok := NormalizeHex(p.input.Value()); ok {
				color, picked = p.pick(hex)
			}
			return color, picked, nil
		}
		p.input, cmd = p.input.Update(msg)
	case areaDefault:
		if key == "enter" || key == " " {
			color, picked = p.pick("")
		}
	}
	return color, picked, cmd
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Muted))
	focusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.BorderOpen)).Bold(true)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// swatch draws one color cell. mark is shown on the cursor or current value
// in a color that contrasts with the swatch.
func swatch(hex, mark string) string {
	style := lipgloss.NewStyle().Background(lipgloss.Color(hex))
	if c, err := colorful.Hex(hex); err == nil {
		l, _, _ := c.Lab()
		if l > 0.6 {
			style = style.Foreground(lipgloss.Color("#000000"))
		} else {
			style = style.Foreground(lipgloss.Color("#FFFFFF"))
		}
	}
	if mark == "" {
		mark = "  "
	}
	return style.Render(mark)
}

func (p *Picker) mark(hex string, cursor bool) string {
	switch {
	case cursor:
		return "[]"
	case hex == p.selected:
		return "••"
	}
	return ""
}

// View renders the picker body inside the popover frame.
func (p *Picker) View() string {
	if !p.Mounted() {
		return ""
	}
	label := func(s string, a area) string {
		if p.focus == a {
			return focusStyle.Render(s)
		}
		return labelStyle.Render(s)
	}

	var lines []string
	lines = append(lines, titleStyle.Render(p.title))

	def := swatch(p.defaultSwatch, "") + " " + p.defaultLabel
	if p.focus == areaDefault {
		def = focusStyle.Render("> ") + def
	}
	lines = append(lines, def)

	if len(p.recent) > 0 {
		lines = append(lines, label("Recent", areaRecent))
		var cells []string
		for i, c := range p.recent {
			cells = append(cells, swatch(c, p.mark(c, p.focus == areaRecent && i == p.recentAt)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	lines = append(lines, label("Colors", areaGrid))
	for r, row := range Swatches {
		var cells []string
		for c, sw := range row {
			cells = append(cells, swatch(sw, p.mark(sw, p.focus == areaGrid && r == p.row && c == p.col)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	lines = append(lines, label("Custom", areaHex), p.input.View())
	return p.Box(strings.Join(lines, "\n"), boxStyle)
}
