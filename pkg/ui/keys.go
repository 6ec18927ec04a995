package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sheetui/internal/sheet"
)

type toolItem struct {
	id       string
	label    string
	shortcut string
}

var toolbar = []toolItem{
	{"style", "Cell style", "s"},
	{"fill", "Fill color", "c"},
	{"sort_asc", "Sort A to Z", "o"},
	{"template", "New from template", "n"},
	{"palette", "Command palette", "ctrl+k"},
	{"help", "Help", "?"},
}

// handleKey routes a key to the topmost open surface.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return nil
	}

	switch {
	case m.active != "" && m.dialogs[m.active].modal != nil && m.dialogs[m.active].modal.IsOpen():
		return m.handleDialogKey(msg)
	case m.palette.IsOpen():
		id, cmd := m.palette.HandleKey(msg)
		if id != "" {
			return tea.Batch(cmd, m.run(id))
		}
		return cmd
	case m.colors.IsOpen():
		color, picked, cmd := m.colors.HandleKey(msg)
		if picked {
			m.applyFill(color)
		}
		return cmd
	case m.ctxMenu.IsOpen():
		if action, _ := m.ctxMenu.HandleKey(msg); action != "" {
			return m.run(action)
		}
		return nil
	case m.styleMenu.IsOpen():
		if choice, _ := m.styleMenu.HandleKey(msg); choice != "" {
			m.applyStyle(sheet.CellStyle(choice))
		}
		return nil
	case m.toolbarFocus >= 0:
		return m.handleToolbarKey(msg)
	}
	return m.handleGridKey(msg)
}

func (m *Model) handleToolbarKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "left", "h", "shift+tab":
		m.focusTool(max(m.toolbarFocus-1, 0))
	case "right", "l", "tab":
		m.focusTool(min(m.toolbarFocus+1, len(toolbar)-1))
	case "esc":
		m.blurToolbar()
	case "enter", " ":
		id := toolbar[m.toolbarFocus].id
		m.blurToolbar()
		return m.run(id)
	case "q":
		m.quitting = true
	}
	return nil
}

func (m *Model) focusTool(i int) {
	m.toolbarFocus = i
	item := toolbar[i]
	x, y := m.toolPos(i)
	m.tooltip.Show(item.label, item.shortcut, x, y+1)
}

func (m *Model) blurToolbar() {
	m.toolbarFocus = -1
	m.tooltip.Hide()
}

func (m *Model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	rows, cols := m.sheet.Dims()
	switch msg.String() {
	case "q":
		m.quitting = true
	case "up", "k":
		m.cursor.Row = max(m.cursor.Row-1, 0)
	case "down", "j":
		m.cursor.Row = min(m.cursor.Row+1, rows-1)
	case "left", "h":
		m.cursor.Col = max(m.cursor.Col-1, 0)
	case "right", "l":
		m.cursor.Col = min(m.cursor.Col+1, cols-1)
	case "home":
		m.cursor.Col = 0
	case "end":
		m.cursor.Col = cols - 1
	case "tab":
		m.focusTool(0)
		return nil
	case "enter", "e":
		return m.run("edit")
	case "backspace", "delete":
		return m.run("clear")
	case "x":
		return m.run("delete_row")
	case "s":
		return m.run("style")
	case "c":
		return m.run("fill")
	case "m":
		return m.run("menu")
	case "n":
		return m.run("template")
	case "o":
		return m.run("sort_asc")
	case "O":
		return m.run("sort_desc")
	case "y":
		return m.run("copy")
	case "p":
		return m.run("paste")
	case "ctrl+f":
		return m.run("find")
	case ":", "ctrl+k", "ctrl+p":
		return m.run("palette")
	case "?":
		return m.run("help")
	}
	m.scrollToCursor()
	return nil
}

func (m *Model) handleDialogKey(msg tea.KeyMsg) tea.Cmd {
	kind := m.active
	d := m.dialogs[kind]
	action, cmd := d.modal.HandleKey(msg)
	if action == "" {
		return cmd
	}

	switch kind {
	case dlgEdit:
		if action == "save" {
			m.sheet.Set(m.cursor, m.editInput.Value())
		}
		m.closeDialog()
	case dlgDelete:
		if action == "delete" {
			m.deleteRow()
		}
		m.closeDialog()
	case dlgTemplate:
		m.closeDialog()
		if action != "cancel" {
			m.chooseTemplate(action)
		}
	case dlgOverwrite:
		m.closeDialog()
		if action == "overwrite" {
			m.applyTemplate(m.pendingTemplate)
		}
		m.pendingTemplate = ""
	case dlgFind:
		switch action {
		case "find":
			if m.findNext() {
				m.closeDialog()
			}
		case "replace":
			if m.replaceAll() {
				m.closeDialog()
			}
		default:
			m.closeDialog()
		}
	case dlgHelp:
		m.closeDialog()
	}
	return cmd
}

// scrollToCursor keeps the cursor inside the visible grid.
func (m *Model) scrollToCursor() {
	visRows, visCols := m.visibleRows(), m.visibleCols()
	if m.cursor.Row < m.top {
		m.top = m.cursor.Row
	} else if m.cursor.Row >= m.top+visRows {
		m.top = m.cursor.Row - visRows + 1
	}
	if m.cursor.Col < m.left {
		m.left = m.cursor.Col
	} else if m.cursor.Col >= m.left+visCols {
		m.left = m.cursor.Col - visCols + 1
	}
}
