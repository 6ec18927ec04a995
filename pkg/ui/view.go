package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sheetui/internal/sheet"
	"github.com/marcus/sheetui/pkg/ui/overlay"
)

const (
	toolbarRow = 1
	gridTop    = 3 // column header row
	rowLabelW  = 5
	colW       = 12
	chromeRows = 5 // title, toolbar, blank, header, status
)

var (
	titleBar     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(overlay.BorderOpen))
	toolStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Text)).Padding(0, 1)
	toolFocused  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color(overlay.Highlight)).Bold(true).Padding(0, 1)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Muted)).Bold(true)
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.Muted))
	refStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(overlay.BorderOpen)).Bold(true)
	cellStyleFor = map[sheet.CellStyle]lipgloss.Style{
		sheet.StyleBold:      lipgloss.NewStyle().Bold(true),
		sheet.StyleItalic:    lipgloss.NewStyle().Italic(true),
		sheet.StyleUnderline: lipgloss.NewStyle().Underline(true),
	}
)

func (m *Model) visibleRows() int {
	return max(m.height-chromeRows, 1)
}

func (m *Model) visibleCols() int {
	return max((m.width-rowLabelW)/(colW+1), 1)
}

// cellPos returns the screen position of a cell's top-left corner.
func (m *Model) cellPos(p sheet.Pos) (int, int) {
	return rowLabelW + (p.Col-m.left)*(colW+1), gridTop + 1 + (p.Row - m.top)
}

// toolPos returns the screen position of toolbar item i.
func (m *Model) toolPos(i int) (int, int) {
	x := 0
	for j := 0; j < i; j++ {
		x += lipgloss.Width(toolStyle.Render(toolbar[j].label)) + 1
	}
	return x, toolbarRow
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	lines := make([]string, 0, m.height)
	lines = append(lines, titleBar.Render("sheetui")+"  "+statusStyle.Render(m.sheet.Name))
	lines = append(lines, m.renderToolbar(), "")
	lines = append(lines, m.renderGrid()...)
	for len(lines) < m.height-1 {
		lines = append(lines, "")
	}
	lines = append(lines[:m.height-1], m.renderStatus())
	view := strings.Join(lines, "\n")

	return m.composite(view)
}

func (m *Model) renderToolbar() string {
	parts := make([]string, len(toolbar))
	for i, item := range toolbar {
		if i == m.toolbarFocus {
			parts[i] = toolFocused.Render(item.label)
		} else {
			parts[i] = toolStyle.Render(item.label)
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderGrid() []string {
	rows, cols := m.sheet.Dims()
	lastCol := min(m.left+m.visibleCols(), cols)
	lastRow := min(m.top+m.visibleRows(), rows)

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", rowLabelW))
	for c := m.left; c < lastCol; c++ {
		header.WriteString(headerStyle.Render(padCell(sheet.ColumnName(c))))
		header.WriteString(" ")
	}
	out := []string{header.String()}

	for r := m.top; r < lastRow; r++ {
		var line strings.Builder
		line.WriteString(headerStyle.Render(fmt.Sprintf("%4d ", r+1)))
		for c := m.left; c < lastCol; c++ {
			line.WriteString(m.renderCell(sheet.Pos{Row: r, Col: c}))
			line.WriteString(" ")
		}
		out = append(out, line.String())
	}
	return out
}

func padCell(s string) string {
	s = ansi.Truncate(s, colW, "…")
	return s + strings.Repeat(" ", max(colW-ansi.StringWidth(s), 0))
}

func (m *Model) renderCell(p sheet.Pos) string {
	style := lipgloss.NewStyle()
	if s, ok := cellStyleFor[m.sheet.Styles[p]]; ok {
		style = s
	}
	if c, ok := m.sheet.Colors[p]; ok {
		style = style.Background(lipgloss.Color(c))
	}
	if p == m.cursor {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(padCell(m.sheet.Cell(p)))
}

func (m *Model) renderStatus() string {
	value := m.sheet.Cell(m.cursor)
	hint := "ctrl+k commands · ? help · q quit"
	left := refStyle.Render(m.cursor.Ref()) + " " + value
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(hint)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "…")
	}
	return left + strings.Repeat(" ", gap) + statusStyle.Render(hint)
}

// composite layers mounted overlays onto the base view, bottom to top.
func (m *Model) composite(view string) string {
	place := func(x, y int, fg string) {
		if fg == "" {
			return
		}
		x, y = overlay.Clamp(x, y, lipgloss.Width(fg), lipgloss.Height(fg), m.width, m.height)
		view = overlay.Place(x, y, fg, view)
	}

	if tip := m.tooltip.View(); tip != "" {
		x, y := m.tooltip.Pos()
		place(x, y, tip)
	}
	if v := m.styleMenu.View(); v != "" {
		x, y := m.styleMenu.Pos()
		place(x, y, v)
	}
	if v := m.ctxMenu.View(); v != "" {
		x, y := m.ctxMenu.Pos()
		place(x, y, v)
	}
	if v := m.colors.View(); v != "" {
		x, y := m.colors.Pos()
		place(x, y, v)
	}
	if v := m.palette.View(); v != "" {
		place((m.width-lipgloss.Width(v))/2, 2, v)
	}
	for _, kind := range dialogOrder {
		d := m.dialogs[kind]
		if d.modal == nil {
			continue
		}
		view = overlay.Center(m.width, m.height, d.modal.Render(m.width, m.height), view)
	}
	if v := m.toasts.View(); v != "" {
		place(m.width-lipgloss.Width(v)-1, m.height-lipgloss.Height(v)-1, v)
	}
	return view
}
