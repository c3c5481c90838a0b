package engine

import (
	"fmt"

	"github.com/tartampluch/go-chailights/internal/config"
)

// Report is the answer to a date or holiday lookup over an index.
type Report struct {
	Label       string        `json:"label"`
	Targets     []DateKey     `json:"targets"`
	Matches     []PhotoRecord `json:"matches"`
	Suggestions []Suggestion  `json:"suggestions,omitempty"`
	Popular     []DateCount   `json:"popular"`
}

// DateReport matches a single Hebrew day, plus its eve when withEve is set.
// Suggestions are filled only when nothing matched. An empty label
// defaults to the key's name.
func (e *Expander) DateReport(idx DateIndex, key DateKey, label string, withEve bool, flags Flags) Report {
	if label == "" {
		label = key.String()
	}
	targets := []DateKey{key}
	if withEve {
		targets = append(targets, e.Eve(key, 0))
	}

	r := newReport(idx, label, targets)
	if len(r.Matches) == 0 {
		r.Suggestions = e.Suggest(key, flags, 0)
	}
	return r
}

// TodayReport is DateReport for the clock's Hebrew date.
func (e *Expander) TodayReport(idx DateIndex, withEve bool, flags Flags) (Report, error) {
	today, err := e.Today()
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", config.ErrToday, err)
	}
	key := KeyOf(today)
	label := fmt.Sprintf(config.FormatTodayLabel, key, config.LabelToday)
	return e.DateReport(idx, key, label, withEve, flags), nil
}

// HolidayReport matches every effective date of the named holiday in the
// given Hebrew year (current year when <= 0).
func (e *Expander) HolidayReport(idx DateIndex, name string, flags Flags, refYear int) (Report, error) {
	set, err := e.Expand(name, flags, refYear)
	if err != nil {
		return Report{}, err
	}
	h, err := e.Holidays.Lookup(name)
	if err != nil {
		return Report{}, err
	}
	return newReport(idx, h.DisplayName(), set.Keys()), nil
}

func newReport(idx DateIndex, label string, targets []DateKey) Report {
	r := Report{
		Label:   label,
		Targets: targets,
		Matches: Match(idx, targets...),
		Popular: PopularDates(idx, targets, config.PopularDatesLimit),
	}
	SortByDateDesc(r.Matches)
	return r
}
