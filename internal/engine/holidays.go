package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
)

// Holiday is a named set of Hebrew dates.
// Dates are non-empty and sorted by day within a month, so the last entry
// is the final day of observance.
type Holiday struct {
	ID    string    `json:"id"`
	Label string    `json:"label"`
	Emoji string    `json:"emoji,omitempty"`
	Dates []DateKey `json:"dates"`

	// Pilgrimage marks the festivals that gain an extra day outside Israel.
	Pilgrimage bool `json:"pilgrimage"`
}

// DisplayName prefixes the label with its emoji.
func (h Holiday) DisplayName() string {
	if h.Emoji == "" {
		return h.Label
	}
	return h.Emoji + " " + h.Label
}

// First returns the first day of the holiday.
func (h Holiday) First() DateKey { return h.Dates[0] }

// Last returns the last day of the holiday.
func (h Holiday) Last() DateKey { return h.Dates[len(h.Dates)-1] }

func span(month, from, to int) []DateKey {
	keys := make([]DateKey, 0, to-from+1)
	for d := from; d <= to; d++ {
		keys = append(keys, DateKey{Month: month, Day: d})
	}
	return keys
}

// DefaultHolidays returns the built-in holiday definitions.
func DefaultHolidays() []Holiday {
	return []Holiday{
		{ID: "purim", Label: "Purim", Emoji: "🎭", Dates: []DateKey{{calendar.Adar, 14}, {calendar.AdarII, 14}}},
		{ID: "yom-haatzmaut", Label: "Yom Ha'atzmaut", Emoji: "🇮🇱", Dates: []DateKey{{calendar.Iyyar, 5}}},
		{ID: "yom-yerushalayim", Label: "Yom Yerushalayim", Emoji: "🕍", Dates: []DateKey{{calendar.Iyyar, 28}}},
		{ID: "shavuot", Label: "Shavuot", Emoji: "📜", Dates: []DateKey{{calendar.Sivan, 6}}, Pilgrimage: true},
		{ID: "tu-bishvat", Label: "Tu BiShvat", Emoji: "🌳", Dates: []DateKey{{calendar.Shevat, 15}}},
		{ID: "rosh-hashanah", Label: "Rosh Hashanah", Emoji: "📯", Dates: []DateKey{{calendar.Tishrei, 1}, {calendar.Tishrei, 2}}},
		{ID: "yom-kippur", Label: "Yom Kippur", Emoji: "🤍", Dates: []DateKey{{calendar.Tishrei, 10}}},
		{ID: "sukkot", Label: "Sukkot", Emoji: "🛖", Dates: span(calendar.Tishrei, 15, 21), Pilgrimage: true},
		{ID: "passover", Label: "Passover", Emoji: "🐸", Dates: span(calendar.Nisan, 15, 21), Pilgrimage: true},
		{ID: "yom-hazikaron", Label: "Yom HaZikaron", Emoji: "🎖️", Dates: []DateKey{{calendar.Iyyar, 4}}},
	}
}

// HolidayTable is a read-only registry of holidays, built once at startup.
type HolidayTable struct {
	holidays []Holiday
	byName   map[string]int
}

// NewHolidayTable validates the definitions and indexes them by ID, label,
// and display name (case-insensitive).
func NewHolidayTable(defs []Holiday) (*HolidayTable, error) {
	t := &HolidayTable{byName: make(map[string]int)}
	for i, h := range defs {
		if err := checkHoliday(h); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrHolidayTable, err)
		}
		h.Dates = append([]DateKey(nil), h.Dates...)
		t.holidays = append(t.holidays, h)
		for _, name := range []string{h.ID, h.Label, h.DisplayName()} {
			if name == "" {
				continue
			}
			t.byName[normalizeName(name)] = i
		}
	}
	return t, nil
}

// DefaultTable builds the table of DefaultHolidays.
func DefaultTable() *HolidayTable {
	t, err := NewHolidayTable(DefaultHolidays())
	if err != nil {
		panic(err)
	}
	return t
}

func checkHoliday(h Holiday) error {
	if h.ID == "" || h.Label == "" {
		return errors.New("holiday needs an id and a label")
	}
	if len(h.Dates) == 0 {
		return fmt.Errorf("holiday %q has no dates", h.ID)
	}
	for i, k := range h.Dates {
		if err := k.Validate(); err != nil {
			return fmt.Errorf("holiday %q: %w", h.ID, err)
		}
		if i > 0 && h.Dates[i-1].Month == k.Month && h.Dates[i-1].Day >= k.Day {
			return fmt.Errorf("holiday %q: dates not sorted by day", h.ID)
		}
	}
	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup finds a holiday by ID, label, or display name. Unknown names yield
// an *InvalidTargetError wrapping ErrUnknownHoliday.
func (t *HolidayTable) Lookup(name string) (Holiday, error) {
	i, ok := t.byName[normalizeName(name)]
	if !ok {
		return Holiday{}, &InvalidTargetError{Target: name, Err: ErrUnknownHoliday}
	}
	return t.holidays[i], nil
}

// All returns the holidays in definition order.
func (t *HolidayTable) All() []Holiday {
	out := make([]Holiday, len(t.holidays))
	copy(out, t.holidays)
	return out
}
