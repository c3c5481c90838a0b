package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/engine"
)

func reportLibrary() engine.DateIndex {
	dated := func(id, greg string, year, month, day int) engine.PhotoRecord {
		r := record(id, year, month, day)
		r.GregorianDate = greg
		return r
	}
	return engine.BuildIndex([]engine.PhotoRecord{
		dated("seder-2022", "2022-04-16", 5782, calendar.Nisan, 15),
		dated("seder-2023", "2023-04-06", 5783, calendar.Nisan, 15),
		dated("prep-2023", "2023-04-05", 5783, calendar.Nisan, 14),
		dated("chol-2023", "2023-04-08", 5783, calendar.Nisan, 17),
		dated("kippur", "2022-10-05", 5783, calendar.Tishrei, 10),
	})
}

func TestDateReport_MatchesNewestFirst(t *testing.T) {
	exp := newExpander(calendar.Hebcal{})
	key := engine.DateKey{Month: calendar.Nisan, Day: 15}

	r := exp.DateReport(reportLibrary(), key, "", false, engine.Flags{})

	assert.Equal(t, "15 Nisan", r.Label)
	assert.Equal(t, []engine.DateKey{key}, r.Targets)
	assert.Equal(t, []string{"seder-2023", "seder-2022"}, ids(r.Matches))
	assert.Empty(t, r.Suggestions)
	for _, p := range r.Popular {
		assert.NotEqual(t, key, p.Key, "targets are not listed as popular")
	}
}

func TestDateReport_WithEve(t *testing.T) {
	exp := newExpander(calendar.Hebcal{})

	r := exp.DateReport(reportLibrary(), engine.DateKey{Month: calendar.Nisan, Day: 15}, "Seder", true, engine.Flags{})

	assert.Equal(t, "Seder", r.Label)
	assert.Equal(t, []engine.DateKey{
		{Month: calendar.Nisan, Day: 15},
		{Month: calendar.Nisan, Day: 14},
	}, r.Targets)
	assert.ElementsMatch(t, []string{"seder-2023", "seder-2022", "prep-2023"}, ids(r.Matches))
}

func TestDateReport_SuggestsWhenEmpty(t *testing.T) {
	exp := newExpander(calendar.Hebcal{})

	r := exp.DateReport(reportLibrary(), engine.DateKey{Month: calendar.Tishrei, Day: 16}, "", false, engine.Flags{})

	assert.Empty(t, r.Matches)
	assert.Contains(t, r.Suggestions, engine.Suggestion{Key: engine.DateKey{Month: calendar.Tishrei, Day: 15}, Label: "Sukkot"})
	if assert.NotEmpty(t, r.Popular) {
		assert.Equal(t, engine.DateKey{Month: calendar.Nisan, Day: 15}, r.Popular[0].Key)
		assert.Equal(t, 2, r.Popular[0].Count)
	}
}

func TestTodayReport(t *testing.T) {
	exp := newExpander(calendar.Hebcal{})

	r, err := exp.TodayReport(reportLibrary(), false, engine.Flags{})

	require.NoError(t, err)
	assert.Equal(t, "15 Nisan (Today)", r.Label)
	assert.Equal(t, []string{"seder-2023", "seder-2022"}, ids(r.Matches))
}

func TestTodayReport_ConverterFailure(t *testing.T) {
	exp := newExpander(failingConverter{})

	_, err := exp.TodayReport(reportLibrary(), false, engine.Flags{})
	assert.ErrorIs(t, err, errConverterDown)
}

func TestHolidayReport(t *testing.T) {
	exp := newExpander(calendar.Hebcal{})

	r, err := exp.HolidayReport(reportLibrary(), "passover", engine.Flags{IncludeErev: true}, leapYear)

	require.NoError(t, err)
	assert.Equal(t, "🐸 Passover", r.Label)
	assert.Len(t, r.Targets, 8)
	assert.Equal(t, []string{"chol-2023", "seder-2023", "prep-2023", "seder-2022"}, ids(r.Matches))
	assert.Equal(t, []engine.DateCount{{Key: engine.DateKey{Month: calendar.Tishrei, Day: 10}, Count: 1}}, r.Popular)
}

func TestHolidayReport_Unknown(t *testing.T) {
	exp := newExpander(calendar.Hebcal{})

	_, err := exp.HolidayReport(reportLibrary(), "festivus", engine.Flags{}, leapYear)
	assert.ErrorIs(t, err, engine.ErrUnknownHoliday)
}
