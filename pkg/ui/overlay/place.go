package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Place writes fg on top of bg with its top-left corner at column x, row y.
// Both may contain ANSI styling. Lines of fg outside bg are dropped.
func Place(x, y int, fg, bg string) string {
	if fg == "" {
		return bg
	}
	x = max(x, 0)
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for i, fgLine := range fgLines {
		row := y + i
		if row < 0 || row >= len(bgLines) {
			continue
		}
		bgLine := bgLines[row]
		fgW := ansi.StringWidth(fgLine)
		bgW := ansi.StringWidth(bgLine)

		if x >= bgW {
			bgLines[row] = bgLine + strings.Repeat(" ", x-bgW) + fgLine
			continue
		}

		left := ansi.Cut(bgLine, 0, x)
		var right string
		if x+fgW < bgW {
			right = ansi.Cut(bgLine, x+fgW, bgW)
		}
		bgLines[row] = left + fgLine + right
	}
	return strings.Join(bgLines, "\n")
}

// Center places fg in the middle of a width x height background.
func Center(width, height int, fg, bg string) string {
	if fg == "" {
		return bg
	}
	x := (width - lipgloss.Width(fg)) / 2
	y := (height - lipgloss.Height(fg)) / 2
	return Place(x, max(y, 0), fg, bg)
}

// Clamp keeps a w x h box at (x, y) inside a width x height screen.
func Clamp(x, y, w, h, width, height int) (int, int) {
	if x+w > width {
		x = width - w
	}
	if y+h > height {
		y = height - h
	}
	return max(x, 0), max(y, 0)
}
