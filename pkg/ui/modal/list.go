package modal

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ListItem represents an item in a list section.
type ListItem struct {
	ID     string // returned as the action on enter
	Label  string
	Detail string // optional muted second column
}

// ListOption is a functional option for List sections.
type ListOption func(*listSection)

type listSection struct {
	id           string
	items        []ListItem
	selectedIdx  *int
	maxVisible   int
	scrollOffset int
}

// List creates a list section with selectable items. selectedIdx is owned
// by the caller so it can read the selection outside the modal.
func List(id string, items []ListItem, selectedIdx *int, opts ...ListOption) Section {
	s := &listSection{
		id:          id,
		items:       items,
		selectedIdx: selectedIdx,
		maxVisible:  5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithMaxVisible sets the maximum number of visible items.
func WithMaxVisible(n int) ListOption {
	return func(s *listSection) {
		if n > 0 {
			s.maxVisible = n
		}
	}
}

func (s *listSection) selected() int {
	if s.selectedIdx == nil {
		return 0
	}
	return *s.selectedIdx
}

func (s *listSection) Render(contentWidth int, focusID string) RenderedSection {
	if len(s.items) == 0 {
		return RenderedSection{Content: MutedText.Render("(no items)")}
	}

	visible := min(s.maxVisible, len(s.items))
	sel := s.selected()

	// Keep the selection inside the window.
	if sel < s.scrollOffset {
		s.scrollOffset = sel
	} else if sel >= s.scrollOffset+visible {
		s.scrollOffset = sel - visible + 1
	}
	s.scrollOffset = min(max(s.scrollOffset, 0), len(s.items)-visible)

	focused := focusID == s.id
	var lines []string
	if s.scrollOffset > 0 {
		lines = append(lines, MutedText.Render("↑ more above"))
	}
	for i := s.scrollOffset; i < s.scrollOffset+visible; i++ {
		item := s.items[i]
		style := ListItemNormal
		cursor := "  "
		if i == sel {
			cursor = ListCursor.Render("> ")
			style = ListItemSelected
			if focused {
				style = ListItemFocused
			}
		}
		line := cursor + style.Render(item.Label)
		if item.Detail != "" {
			line += "  " + MutedText.Render(item.Detail)
		}
		lines = append(lines, line)
	}
	if s.scrollOffset+visible < len(s.items) {
		lines = append(lines, MutedText.Render("↓ more below"))
	}

	// The list is one focus stop; arrows move within it.
	return RenderedSection{
		Content:    strings.Join(lines, "\n"),
		Focusables: []string{s.id},
	}
}

func (s *listSection) Update(msg tea.Msg, focusID string) (string, tea.Cmd) {
	if focusID != s.id || s.selectedIdx == nil {
		return "", nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return "", nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if *s.selectedIdx > 0 {
			*s.selectedIdx--
		}
	case "down", "j":
		if *s.selectedIdx < len(s.items)-1 {
			*s.selectedIdx++
		}
	case "home":
		*s.selectedIdx = 0
	case "end":
		*s.selectedIdx = len(s.items) - 1
	case "enter":
		if *s.selectedIdx >= 0 && *s.selectedIdx < len(s.items) {
			return s.items[*s.selectedIdx].ID, nil
		}
	}
	return "", nil
}
