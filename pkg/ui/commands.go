package ui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sheetui/internal/sheet"
	"github.com/marcus/sheetui/pkg/ui/modal"
	"github.com/marcus/sheetui/pkg/ui/overlay"
	"github.com/marcus/sheetui/pkg/ui/palette"
)

var contextMenuItems = []overlay.MenuItem{
	{ID: "copy", Label: "Copy", Shortcut: "y"},
	{ID: "cut", Label: "Cut"},
	{ID: "paste", Label: "Paste", Shortcut: "p"},
	{ID: "clear", Label: "Clear cell", Shortcut: "del"},
	overlay.Separator(),
	{ID: "insert_above", Label: "Insert row above"},
	{ID: "insert_below", Label: "Insert row below"},
	{ID: "delete_row", Label: "Delete row", Shortcut: "x"},
	overlay.Separator(),
	{ID: "sort_asc", Label: "Sort A to Z", Shortcut: "o"},
	{ID: "sort_desc", Label: "Sort Z to A", Shortcut: "O"},
	overlay.Separator(),
	{ID: "fill", Label: "Fill color", Shortcut: "c"},
	{ID: "style", Label: "Cell style", Shortcut: "s"},
}

// commands lists the palette entries for the current state.
func (m *Model) commands() []palette.Command {
	rows, _ := m.sheet.Dims()
	return []palette.Command{
		{ID: "edit", Label: "Edit cell", Shortcut: "enter", Group: "Edit", Keywords: "change value type"},
		{ID: "copy", Label: "Copy cell", Shortcut: "y", Group: "Edit", Keywords: "clipboard"},
		{ID: "cut", Label: "Cut cell", Group: "Edit", Keywords: "clipboard"},
		{ID: "paste", Label: "Paste", Shortcut: "p", Group: "Edit", Keywords: "clipboard"},
		{ID: "clear", Label: "Clear cell", Shortcut: "del", Group: "Edit", Keywords: "erase empty"},
		{ID: "find", Label: "Find", Shortcut: "ctrl+f", Group: "Edit", Keywords: "search locate"},
		{ID: "replace", Label: "Find and replace", Group: "Edit", Keywords: "search substitute"},
		{ID: "insert_above", Label: "Insert row above", Group: "Rows", Keywords: "add"},
		{ID: "insert_below", Label: "Insert row below", Group: "Rows", Keywords: "add"},
		{ID: "delete_row", Label: "Delete row", Shortcut: "x", Group: "Rows", Keywords: "remove", Disabled: rows <= 1},
		{ID: "sort_asc", Label: "Sort column A to Z", Shortcut: "o", Group: "Data", Keywords: "order ascending"},
		{ID: "sort_desc", Label: "Sort column Z to A", Shortcut: "O", Group: "Data", Keywords: "order descending"},
		{ID: "fill", Label: "Fill color", Shortcut: "c", Group: "Format", Keywords: "background colour"},
		{ID: "style", Label: "Cell style", Shortcut: "s", Group: "Format", Keywords: "bold italic underline"},
		{ID: "template", Label: "New from template", Shortcut: "n", Group: "File", Keywords: "open budget invoice"},
		{ID: "help", Label: "Keyboard shortcuts", Shortcut: "?", Group: "Help"},
		{ID: "quit", Label: "Quit", Shortcut: "q", Group: "App", Keywords: "exit close"},
	}
}

// run executes a command by ID from the grid, toolbar, context menu or
// palette.
func (m *Model) run(id string) tea.Cmd {
	slog.Debug("run command", "id", id, "cell", m.cursor.Ref())
	switch id {
	case "edit":
		return m.openEdit()
	case "find", "replace":
		return m.openFind(id == "replace")
	case "copy":
		m.copyCell(false)
	case "cut":
		m.copyCell(true)
	case "paste":
		m.paste()
	case "clear":
		m.sheet.ClearCell(m.cursor)
	case "insert_above":
		m.sheet.InsertRow(m.cursor.Row)
	case "insert_below":
		m.sheet.InsertRow(m.cursor.Row + 1)
		m.cursor.Row++
	case "delete_row":
		m.openDelete()
	case "sort_asc", "sort_desc":
		m.sheet.SortColumn(m.cursor.Col, id == "sort_asc")
		m.toast(overlay.ToneSuccess, "", fmt.Sprintf("Sorted column %s", sheet.ColumnName(m.cursor.Col)))
	case "fill":
		x, y := m.cellPos(m.cursor)
		m.colors.OpenAt(x, y+1, m.sheet.Colors[m.cursor])
	case "style":
		x, y := m.cellPos(m.cursor)
		current := m.sheet.Styles[m.cursor]
		if current == "" {
			current = sheet.StylePlain
		}
		m.styleMenu.OpenAt(x, y+1, string(current))
	case "menu":
		x, y := m.cellPos(m.cursor)
		m.ctxMenu.OpenAt(x+2, y+1)
	case "template":
		m.openTemplates()
	case "palette":
		m.palette.SetCommands(m.commands())
		return m.palette.Open()
	case "help":
		m.openHelp()
	case "quit":
		m.quitting = true
	default:
		slog.Warn("unknown command", "id", id)
	}
	m.scrollToCursor()
	return nil
}

func (m *Model) applyStyle(style sheet.CellStyle) {
	if style == sheet.StylePlain {
		delete(m.sheet.Styles, m.cursor)
		return
	}
	m.sheet.Styles[m.cursor] = style
}

func (m *Model) applyFill(color string) {
	if color == "" {
		delete(m.sheet.Colors, m.cursor)
		return
	}
	m.sheet.Colors[m.cursor] = color
}

func (m *Model) deleteRow() {
	row := m.cursor.Row
	m.sheet.DeleteRow(row)
	rows, _ := m.sheet.Dims()
	m.cursor.Row = min(m.cursor.Row, rows-1)
	m.toast(overlay.ToneSuccess, "", fmt.Sprintf("Row %d deleted", row+1))
}

func (m *Model) chooseTemplate(id string) {
	if m.sheet.HasData() {
		m.pendingTemplate = id
		m.openOverwrite(id)
		return
	}
	m.applyTemplate(id)
}

func (m *Model) applyTemplate(id string) {
	t, ok := sheet.FindTemplate(id)
	if !ok {
		m.toast(overlay.ToneDanger, "", fmt.Sprintf("Unknown template %q", id))
		return
	}
	m.sheet = sheet.FromTemplate(t)
	m.cursor = sheet.Pos{}
	m.top, m.left = 0, 0
	m.toast(overlay.ToneSuccess, "", fmt.Sprintf("Created %q", t.FileName))
}

// openDialog builds a fresh modal over the kind's overlay and opens it.
func (m *Model) openDialog(kind string, md *modal.Modal) {
	m.dialogs[kind].modal = md
	m.active = kind
	md.Open()
}

func (m *Model) closeDialog() {
	if m.active == "" {
		return
	}
	if d := m.dialogs[m.active]; d.modal != nil {
		d.modal.Close()
	}
	m.active = ""
}

func (m *Model) openEdit() tea.Cmd {
	m.editInput.SetValue(m.sheet.Cell(m.cursor))
	m.editInput.CursorEnd()
	md := modal.New("Edit "+m.cursor.Ref(), m.dialogs[dlgEdit].ov, modal.WithWidth(44)).
		AddSection(modal.Input("value", &m.editInput, modal.WithSubmitAction("save"))).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(modal.Btn(" Save ", "save"), modal.Btn(" Cancel ", "cancel")))
	m.openDialog(dlgEdit, md)
	return m.editInput.Focus()
}

func (m *Model) openDelete() {
	rows, _ := m.sheet.Dims()
	if rows <= 1 {
		m.toast(overlay.ToneWarning, "", "The last row cannot be deleted")
		return
	}
	md := modal.New(fmt.Sprintf("Delete row %d?", m.cursor.Row+1), m.dialogs[dlgDelete].ov,
		modal.WithVariant(modal.VariantDanger), modal.WithWidth(44)).
		AddSection(modal.Text("The row and its colors and styles will be removed.")).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Delete ", "delete", modal.BtnDanger()),
			modal.Btn(" Cancel ", "cancel"),
		))
	m.openDialog(dlgDelete, md)
}

func (m *Model) openTemplates() {
	var items []modal.ListItem
	for _, t := range sheet.Templates() {
		items = append(items, modal.ListItem{ID: t.ID, Label: t.Title, Detail: t.Description})
	}
	m.templateIdx = 0
	md := modal.New("New from template", m.dialogs[dlgTemplate].ov, modal.WithWidth(60)).
		AddSection(modal.List("templates", items, &m.templateIdx, modal.WithMaxVisible(6))).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(modal.Btn(" Cancel ", "cancel")))
	m.openDialog(dlgTemplate, md)
}

func (m *Model) openOverwrite(id string) {
	t, _ := sheet.FindTemplate(id)
	md := modal.New("Replace current sheet?", m.dialogs[dlgOverwrite].ov,
		modal.WithVariant(modal.VariantWarning), modal.WithWidth(48)).
		AddSection(modal.Text(fmt.Sprintf("The sheet has data. Creating %q will discard it.", t.Title))).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Replace ", "overwrite", modal.BtnDanger()),
			modal.Btn(" Cancel ", "cancel"),
		))
	m.openDialog(dlgOverwrite, md)
}

// openFind opens the find dialog, focusing the replace field when replacing.
// The inputs keep their text between openings.
func (m *Model) openFind(replace bool) tea.Cmd {
	md := modal.New("Find and replace", m.dialogs[dlgFind].ov, modal.WithWidth(52)).
		AddSection(modal.Input("find", &m.findInput, modal.WithLabel("Find"), modal.WithSubmitAction("find"))).
		AddSection(modal.Input("replace", &m.replaceInput, modal.WithLabel("Replace with"), modal.WithSubmitAction("replace"))).
		AddSection(modal.Spacer()).
		AddSection(modal.Buttons(
			modal.Btn(" Find next ", "find"),
			modal.Btn(" Replace all ", "replace"),
			modal.Btn(" Cancel ", "cancel"),
		))
	m.openDialog(dlgFind, md)
	if replace {
		md.SetFocus("replace")
		return m.replaceInput.Focus()
	}
	m.findInput.CursorEnd()
	return m.findInput.Focus()
}

// findNext moves the cursor to the first match after it, wrapping around.
// It reports false when the dialog should stay open.
func (m *Model) findNext() bool {
	query := m.findInput.Value()
	if query == "" {
		m.toast(overlay.ToneWarning, "", "Type something to find")
		return false
	}
	matches := m.finder.Find(m.sheet, query)
	if len(matches) == 0 {
		m.toast(overlay.ToneWarning, "", fmt.Sprintf("No matches for %q", query))
		return false
	}
	i := 0
	for j, p := range matches {
		if p.Row > m.cursor.Row || (p.Row == m.cursor.Row && p.Col > m.cursor.Col) {
			i = j
			break
		}
	}
	m.cursor = matches[i]
	m.scrollToCursor()
	m.toast(overlay.ToneInfo, "", fmt.Sprintf("Match %d of %d", i+1, len(matches)))
	return true
}

func (m *Model) replaceAll() bool {
	query := m.findInput.Value()
	if query == "" {
		m.toast(overlay.ToneWarning, "", "Type something to find")
		return false
	}
	n := m.finder.Replace(m.sheet, query, m.replaceInput.Value())
	slog.Info("replace", "query", query, "cells", n)
	if n == 0 {
		m.toast(overlay.ToneWarning, "", fmt.Sprintf("No matches for %q", query))
		return false
	}
	m.toast(overlay.ToneSuccess, "", fmt.Sprintf("Replaced %d cells", n))
	return true
}

const helpMarkdown = `## Navigation

| Key | Action |
|---|---|
| arrows / hjkl | move |
| tab | toolbar |
| enter | edit cell |

## Actions

| Key | Action |
|---|---|
| ctrl+k | command palette |
| ctrl+f | find and replace |
| m | context menu |
| c | fill color |
| s | cell style |
| o / O | sort column |
| x | delete row |
| n | new from template |
| y / p | copy / paste |
| q | quit |
`

func (m *Model) openHelp() {
	md := modal.New("Keyboard shortcuts", m.dialogs[dlgHelp].ov,
		modal.WithVariant(modal.VariantInfo), modal.WithWidth(56), modal.WithPrimaryAction("close")).
		AddSection(modal.Markdown(helpMarkdown)).
		AddSection(modal.Buttons(modal.Btn(" Close ", "close")))
	m.openDialog(dlgHelp, md)
}
