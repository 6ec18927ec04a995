package prefs

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RecentColorsKey is the preference key holding the recent colors list.
const RecentColorsKey = "recent-colors-v1"

// DefaultRecentColors is the list length when none is configured.
const DefaultRecentColors = 8

// RecentColors is an ordered, most-recent-first list of #RRGGBB colors.
type RecentColors struct {
	store *Store
	max   int
}

// NewRecentColors binds the list to store. max <= 0 uses DefaultRecentColors.
func NewRecentColors(store *Store, max int) *RecentColors {
	if max <= 0 {
		max = DefaultRecentColors
	}
	return &RecentColors{store: store, max: max}
}

// Validate reports whether value is a #RRGGBB color.
func (r *RecentColors) Validate(value string) bool {
	return ValidColor(value)
}

// ValidColor reports whether value is a #RRGGBB color.
func ValidColor(value string) bool {
	if len(value) != 7 || value[0] != '#' {
		return false
	}
	_, err := colorful.Hex(value)
	return err == nil
}

// Read returns the stored colors, dropping invalid entries. Storage errors
// and corrupt data read as an empty list.
func (r *RecentColors) Read() []string {
	raw, ok, err := r.store.Get(RecentColorsKey)
	if err != nil {
		slog.Warn("read recent colors", "err", err)
		return nil
	}
	if !ok {
		return nil
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		slog.Warn("decode recent colors", "err", err)
		return nil
	}

	out := make([]string, 0, len(stored))
	for _, c := range stored {
		if ValidColor(c) {
			out = append(out, c)
		}
		if len(out) == r.max {
			break
		}
	}
	return out
}

// Push moves value to the front of the list, upper-cased and de-duplicated.
// Invalid colors are ignored.
func (r *RecentColors) Push(value string) error {
	if !ValidColor(value) {
		return nil
	}
	value = strings.ToUpper(value)

	next := []string{value}
	for _, c := range r.Read() {
		if strings.ToUpper(c) != value {
			next = append(next, c)
		}
	}
	if len(next) > r.max {
		next = next[:r.max]
	}

	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	return r.store.Set(RecentColorsKey, string(data))
}

// Clear removes every recent color.
func (r *RecentColors) Clear() error {
	return r.store.Delete(RecentColorsKey)
}
