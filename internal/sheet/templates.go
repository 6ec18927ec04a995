package sheet

// Template is a starting layout offered by the template picker.
type Template struct {
	ID          string
	Title       string
	Description string
	FileName    string
	Rows        [][]string
}

const (
	minRows = 20
	minCols = 8
)

// Templates returns the built-in templates, blank first.
func Templates() []Template {
	return []Template{
		{
			ID:          "blank",
			Title:       "Blank sheet",
			Description: "Empty grid",
			FileName:    "Untitled",
		},
		{
			ID:          "budget",
			Title:       "Monthly budget",
			Description: "Planned vs actual income and spending",
			FileName:    "Monthly budget",
			Rows: [][]string{
				{"Category", "Planned", "Actual", "Diff"},
				{"Salary", "0", "0", "=B2-C2"},
				{"Rent", "0", "0", "=B3-C3"},
				{"Utilities", "0", "0", "=B4-C4"},
				{"Groceries", "0", "0", "=B5-C5"},
				{"Transport", "0", "0", "=B6-C6"},
				{"Other", "0", "0", "=B7-C7"},
				{"Total", "=SUM(B2:B7)", "=SUM(C2:C7)", "=B8-C8"},
			},
		},
		{
			ID:          "invoice",
			Title:       "Invoice",
			Description: "Line items with qty x price",
			FileName:    "Invoice",
			Rows: [][]string{
				{"Invoice", "#INV-001", "", ""},
				{"Date", "2025-01-01", "", ""},
				{"Client", "", "", ""},
				{"", "", "", ""},
				{"Item", "Qty", "Unit Price", "Amount"},
				{"Service 1", "1", "0", "=B6*C6"},
				{"Service 2", "1", "0", "=B7*C7"},
				{"Service 3", "1", "0", "=B8*C8"},
				{"", "", "Total", "=SUM(D6:D8)"},
			},
		},
		{
			ID:          "todo",
			Title:       "To-do list",
			Description: "Tasks with owner, due date and status",
			FileName:    "To-do",
			Rows: [][]string{
				{"Task", "Owner", "Due", "Status"},
				{"", "", "", "todo"},
				{"", "", "", "todo"},
				{"", "", "", "todo"},
			},
		},
	}
}

// FindTemplate returns the template with id.
func FindTemplate(id string) (Template, bool) {
	for _, t := range Templates() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// FromTemplate builds a sheet from t, padded to a minimum working size.
func FromTemplate(t Template) *Sheet {
	cols := minCols
	for _, row := range t.Rows {
		cols = max(cols, len(row))
	}
	s := New(t.FileName, max(minRows, len(t.Rows)), cols)
	for r, row := range t.Rows {
		copy(s.Rows[r], row)
	}
	return s
}
