package engine

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
)

// HolidayDateSet is the effective set of keys matched for a holiday once the
// eve and diaspora augmentations are applied.
type HolidayDateSet struct {
	Label string
	Dates map[DateKey]struct{}
}

func newHolidayDateSet(label string, base []DateKey) HolidayDateSet {
	s := HolidayDateSet{Label: label, Dates: make(map[DateKey]struct{}, len(base)+2)}
	for _, k := range base {
		s.Dates[k] = struct{}{}
	}
	return s
}

// Contains reports whether k belongs to the set.
func (s HolidayDateSet) Contains(k DateKey) bool {
	_, ok := s.Dates[k]
	return ok
}

// Keys returns the keys ordered by month, then day.
func (s HolidayDateSet) Keys() []DateKey {
	keys := make([]DateKey, 0, len(s.Dates))
	for k := range s.Dates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Expander computes effective holiday dates against a holiday table.
// Calendar-dependent steps are resolved in a reference Hebrew year; a year
// <= 0 means the current Hebrew year according to Clock.
type Expander struct {
	Converter calendar.Converter
	Holidays  *HolidayTable
	Clock     Clock
}

// NewExpander wires an expander with the real clock.
func NewExpander(conv calendar.Converter, holidays *HolidayTable) *Expander {
	return &Expander{Converter: conv, Holidays: holidays, Clock: RealClock{}}
}

// Expand returns the effective date set of the named holiday.
// Only an unknown name is an error; converter failures degrade the
// augmentation and are logged.
func (e *Expander) Expand(name string, flags Flags, refYear int) (HolidayDateSet, error) {
	h, err := e.Holidays.Lookup(name)
	if err != nil {
		return HolidayDateSet{}, err
	}
	return e.expand(h, flags, e.ResolveYear(refYear)), nil
}

func (e *Expander) expand(h Holiday, flags Flags, year int) HolidayDateSet {
	set := newHolidayDateSet(h.Label, h.Dates)

	// The extra diaspora day is the real next calendar day, which may fall
	// in the following month.
	if flags.OutsideIsrael && h.Pilgrimage {
		next, err := e.shift(h.Last(), year, 1)
		if err != nil {
			e.warn(&HolidayExtensionError{Holiday: h.Label, Step: StepDiaspora, Err: err})
		} else {
			set.Dates[next] = struct{}{}
		}
	}

	if flags.IncludeErev {
		for _, k := range h.Dates {
			set.Dates[e.eve(h.Label, k, year)] = struct{}{}
		}
	}
	return set
}

// Eve returns the day before k in the reference year.
func (e *Expander) Eve(k DateKey, refYear int) DateKey {
	return e.eve(config.LabelEve, k, e.ResolveYear(refYear))
}

// eve asks the converter for the previous day. When the key does not exist
// in that year it falls back to approxEve and logs the approximation.
func (e *Expander) eve(label string, k DateKey, year int) DateKey {
	prev, err := e.shift(k, year, -1)
	if err == nil {
		return prev
	}
	approx := approxEve(k)
	slog.Debug(config.MsgEveApprox,
		config.LogKeyComponent, config.CompExpander,
		config.LogKeyHoliday, label,
		config.LogKeyMonth, approx.Month,
		config.LogKeyDay, approx.Day,
		config.LogKeyError, &HolidayExtensionError{Holiday: label, Step: StepErev, Err: err})
	return approx
}

// approxEve steps back one day without consulting the calendar: day 1 rolls
// back to day 30 of the previous month, and Nisan rolls back to Adar II.
// It can name a day 30 that does not exist in 29-day months.
func approxEve(k DateKey) DateKey {
	if k.Day > 1 {
		return DateKey{Month: k.Month, Day: k.Day - 1}
	}
	month := k.Month - 1
	if month < calendar.Nisan {
		month = calendar.AdarII
	}
	return DateKey{Month: month, Day: 30}
}

// shift moves k by delta real days within the reference year.
func (e *Expander) shift(k DateKey, year, delta int) (DateKey, error) {
	if e.Converter == nil {
		return DateKey{}, errors.New(config.ErrConverterMissing)
	}
	g, err := e.Converter.ToGregorian(HebrewDate{Year: year, Month: k.Month, Day: k.Day})
	if err != nil {
		return DateKey{}, err
	}
	g = g.AddDate(0, 0, delta)
	hd, err := e.Converter.ToHebrew(g.Year(), g.Month(), g.Day())
	if err != nil {
		return DateKey{}, err
	}
	return KeyOf(hd), nil
}

// ResolveYear returns refYear, or the current Hebrew year when refYear <= 0.
// It returns 0 when today cannot be converted; later conversions then fail
// and the augmentations degrade.
func (e *Expander) ResolveYear(refYear int) int {
	if refYear > 0 {
		return refYear
	}
	today, err := e.Today()
	if err != nil {
		slog.Warn(config.ErrToday, config.LogKeyComponent, config.CompExpander, config.LogKeyError, err)
		return 0
	}
	return today.Year
}

// Today converts the clock's local date.
func (e *Expander) Today() (HebrewDate, error) {
	if e.Converter == nil {
		return HebrewDate{}, errors.New(config.ErrConverterMissing)
	}
	clock := e.Clock
	if clock == nil {
		clock = RealClock{}
	}
	y, m, d := clock.Now().Date()
	return e.Converter.ToHebrew(y, m, d)
}

func (e *Expander) warn(err *HolidayExtensionError) {
	slog.Warn(config.MsgExtensionSkipped,
		config.LogKeyComponent, config.CompExpander,
		config.LogKeyHoliday, err.Holiday,
		config.LogKeyStep, err.Step,
		config.LogKeyError, err)
}
