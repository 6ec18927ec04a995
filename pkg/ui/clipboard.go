package ui

import (
	"log/slog"

	"github.com/atotto/clipboard"

	"github.com/marcus/sheetui/pkg/ui/overlay"
)

// Clipboard access, replaceable in tests.
var (
	writeClipboard = clipboard.WriteAll
	readClipboard  = clipboard.ReadAll
)

// copyCell copies the cursor cell, clearing it when cut is set.
func (m *Model) copyCell(cut bool) {
	value := m.sheet.Cell(m.cursor)
	if err := writeClipboard(value); err != nil {
		slog.Error("copy to clipboard", "err", err)
		m.toast(overlay.ToneDanger, "Copy failed", err.Error())
		return
	}
	verb := "Copied"
	if cut {
		m.sheet.ClearCell(m.cursor)
		verb = "Cut"
	}
	m.toast(overlay.ToneSuccess, "", verb+" "+m.cursor.Ref())
}

func (m *Model) paste() {
	value, err := readClipboard()
	if err != nil {
		slog.Error("read clipboard", "err", err)
		m.toast(overlay.ToneDanger, "Paste failed", err.Error())
		return
	}
	m.sheet.Set(m.cursor, value)
}
