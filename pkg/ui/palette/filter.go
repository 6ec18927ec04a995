package palette

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Command is one palette entry. The palette reports the chosen ID; running
// the command is up to the host.
type Command struct {
	ID       string
	Label    string
	Shortcut string
	Group    string
	Keywords string
	Disabled bool
}

func (c Command) haystack() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Label, c.Keywords, c.Group} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return normalize(strings.Join(parts, " "))
}

// normalize lower-cases s and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Filter returns the commands matching query. An empty query returns cmds
// unchanged. Substring matches come first in their original order, followed
// by fuzzy-only matches ranked by score.
func Filter(query string, cmds []Command) []Command {
	q := normalize(query)
	if q == "" {
		return cmds
	}

	hay := make([]string, len(cmds))
	var out []Command
	seen := make(map[int]bool)
	for i, c := range cmds {
		hay[i] = c.haystack()
		if strings.Contains(hay[i], q) {
			out = append(out, c)
			seen[i] = true
		}
	}

	for _, m := range fuzzy.Find(q, hay) {
		if !seen[m.Index] {
			out = append(out, cmds[m.Index])
			seen[m.Index] = true
		}
	}
	return out
}
