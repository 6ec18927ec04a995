package sheet

import "strings"

// TextFinder matches cells containing a substring. It is the default matcher
// behind the find dialog.
type TextFinder struct {
	MatchCase bool
}

func (f TextFinder) fold(s string) string {
	if f.MatchCase {
		return s
	}
	return strings.ToLower(s)
}

// Find returns the cells containing query in row-major order.
func (f TextFinder) Find(s *Sheet, query string) []Pos {
	if query == "" {
		return nil
	}
	q := f.fold(query)
	var out []Pos
	for r, row := range s.Rows {
		for c, v := range row {
			if strings.Contains(f.fold(v), q) {
				out = append(out, Pos{Row: r, Col: c})
			}
		}
	}
	return out
}

// Replace rewrites every occurrence of query and returns how many cells
// changed.
func (f TextFinder) Replace(s *Sheet, query, replacement string) int {
	n := 0
	for _, p := range f.Find(s, query) {
		v := s.Cell(p)
		var next string
		if f.MatchCase {
			next = strings.ReplaceAll(v, query, replacement)
		} else {
			next = replaceFold(v, query, replacement)
		}
		if next != v {
			s.Set(p, next)
			n++
		}
	}
	return n
}

// replaceFold replaces query in v ignoring case. It only uses lowered indexes
// when lowering keeps byte lengths, which holds for ASCII queries.
func replaceFold(v, query, replacement string) string {
	lv, lq := strings.ToLower(v), strings.ToLower(query)
	if len(lv) != len(v) || len(lq) != len(query) {
		return strings.ReplaceAll(v, query, replacement)
	}
	var b strings.Builder
	for {
		i := strings.Index(lv, lq)
		if i < 0 {
			b.WriteString(v)
			return b.String()
		}
		b.WriteString(v[:i])
		b.WriteString(replacement)
		v, lv = v[i+len(query):], lv[i+len(query):]
	}
}
