package engine

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
)

// SummaryFunc renders an event title from a holiday label and the number of
// photos taken on that Hebrew date.
type SummaryFunc func(label string, count int) string

// DefaultSummary is the untranslated event title.
func DefaultSummary(label string, count int) string {
	if count == 0 {
		return fmt.Sprintf(config.FormatEventSummaryZero, label)
	}
	return fmt.Sprintf(config.FormatEventSummary, label, count)
}

// BuildHolidayCalendar renders one all-day event per effective holiday date
// of hebrewYear. Dates missing from that year (Adar II in a common year, for
// instance) are skipped.
func BuildHolidayCalendar(exp *Expander, flags Flags, hebrewYear int, idx DateIndex, summary SummaryFunc) ([]byte, error) {
	if summary == nil {
		summary = DefaultSummary
	}
	year := exp.ResolveYear(hebrewYear)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	clock := exp.Clock
	if clock == nil {
		clock = RealClock{}
	}
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(clock.Now().UTC())

	seen := make(map[string]struct{})
	for _, h := range exp.Holidays.All() {
		for _, k := range exp.expand(h, flags, year).Keys() {
			uid := fmt.Sprintf(config.FormatUID, h.ID, year, k.Month, k.Day, config.ICalDomain)
			if _, dup := seen[uid]; dup {
				continue
			}

			date, err := exp.Converter.ToGregorian(HebrewDate{Year: year, Month: k.Month, Day: k.Day})
			if err != nil {
				slog.Debug(config.MsgSkippedEvent,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyHoliday, h.Label,
					config.LogKeyYear, year,
					config.LogKeyMonth, k.Month,
					config.LogKeyDay, k.Day,
					config.LogKeyError, err)
				continue
			}
			seen[uid] = struct{}{}

			event := ical.NewEvent()
			event.Props.SetText(config.PropUID, uid)
			event.Props.SetText(config.PropSummary, summary(h.DisplayName(), len(idx[k])))
			event.Props.SetText(config.PropDescription,
				fmt.Sprintf(config.FormatEventDescription, k.Day, calendar.MonthName(k.Month), year))

			dtStartProp := ical.NewProp(config.PropDTStart)
			dtStartProp.SetDate(date)
			event.Props.Set(dtStartProp)
			event.Props.Set(dtStampProp)

			cal.Children = append(cal.Children, event.Component)
		}
	}

	// An empty VCALENDAR still has to be valid for subscribers.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}
