// Package modal provides declarative modal dialogs whose visibility is driven
// by an overlay.Overlay, so every dialog gets the same enter and exit timing.
//
// # Quick Start
//
//	ov := overlay.New(sched, "delete", 240*time.Millisecond)
//	m := modal.New("Delete file?", ov, modal.WithVariant(modal.VariantDanger)).
//	    AddSection(modal.Text("This cannot be undone.")).
//	    AddSection(modal.Spacer()).
//	    AddSection(modal.Buttons(
//	        modal.Btn(" Delete ", "delete", modal.BtnDanger()),
//	        modal.Btn(" Cancel ", "cancel"),
//	    ))
//
//	// In View():
//	view = overlay.Center(w, h, m.Render(w, h), view)
//
//	// In Update():
//	if action, cmd := m.HandleKey(keyMsg); action != "" {
//	    switch action {
//	    case "delete":
//	        ...
//	    case "cancel":
//	        m.Close()
//	    }
//	}
//
// # Built-in Sections
//
//   - Text(s string) - static text, auto-wrapped
//   - Spacer() - blank line
//   - Buttons(btns ...ButtonDef) - button row with focus styling
//   - Input(id string, model *textinput.Model) - text input
//   - List(id string, items []ListItem, selectedIdx *int, opts...) - scrollable list
//   - Markdown(md string) - glamour-rendered markdown
//   - When(condition func() bool, section) - conditional rendering
//
// # Options
//
//   - WithWidth(w int) - set modal width (default: 50)
//   - WithVariant(v Variant) - set border accent (Default, Danger, Warning, Info)
//   - WithHints(show bool) - show/hide keyboard hints at bottom
//   - WithPrimaryAction(actionID string) - action for implicit Enter submit
package modal
