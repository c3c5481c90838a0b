package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/engine"
)

var purim = engine.DateKey{Month: calendar.Adar, Day: 14}

// Scenario from the product brief: two photos a year apart that convert to
// the same Hebrew day must both match it.
func TestMatch_SameHebrewDayAcrossYears(t *testing.T) {
	conv := stubConverter{
		"2021-03-17": {Year: 5781, Month: calendar.Adar, Day: 14},
		"2022-03-07": {Year: 5782, Month: calendar.Adar, Day: 14},
		"2022-03-08": {Year: 5782, Month: calendar.Adar, Day: 15},
	}
	records := engine.Normalize(conv, []engine.RawPhoto{
		raw("p2021", "2021-03-17T12:00:00Z"),
		raw("p2022", "2022-03-07T09:00:00Z"),
		raw("shushan", "2022-03-08T09:00:00Z"),
		raw("bad", "not-a-date"),
	})
	idx := engine.BuildIndex(records)

	assert.Equal(t, 3, idx.Len(), "malformed record must not be indexed")
	assert.ElementsMatch(t, []string{"p2021", "p2022"}, ids(engine.Match(idx, purim)))
}

func TestMatch_OnlyRequestedKeys(t *testing.T) {
	idx := engine.BuildIndex([]engine.PhotoRecord{
		record("a", 5780, calendar.Tishrei, 1),
		record("b", 5781, calendar.Tishrei, 1),
		record("c", 5781, calendar.Tishrei, 2),
		record("d", 5782, calendar.Nisan, 1),
	})

	got := engine.Match(idx, engine.DateKey{Month: calendar.Tishrei, Day: 1})

	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, engine.DateKey{Month: calendar.Tishrei, Day: 1}, r.Key())
	}
}

func TestMatch_Idempotent(t *testing.T) {
	idx := engine.BuildIndex([]engine.PhotoRecord{
		record("a", 5780, calendar.Sivan, 6),
		record("b", 5781, calendar.Sivan, 6),
	})
	k := engine.DateKey{Month: calendar.Sivan, Day: 6}

	assert.Equal(t, engine.Match(idx, k), engine.Match(idx, k))
}

func TestMatch_MultipleKeysDeduplicated(t *testing.T) {
	dup := record("a", 5780, calendar.Sivan, 6)
	idx := engine.BuildIndex([]engine.PhotoRecord{
		dup,
		record("b", 5781, calendar.Sivan, 5),
		dup,
	})
	k6 := engine.DateKey{Month: calendar.Sivan, Day: 6}
	k5 := engine.DateKey{Month: calendar.Sivan, Day: 5}

	assert.Equal(t, []string{"a", "b"}, ids(engine.Match(idx, k6, k5, k6)))
	assert.Len(t, idx[k6], 2, "the index keeps duplicates")
}

func TestMatch_EmptyIndex(t *testing.T) {
	assert.Empty(t, engine.Match(engine.BuildIndex(nil), purim))
}

func TestMatchRecords_EquivalentToIndex(t *testing.T) {
	records := []engine.PhotoRecord{
		record("a", 5780, calendar.Adar, 14),
		record("b", 5782, calendar.AdarII, 14),
		record("c", 5783, calendar.Adar, 14),
	}
	adarII := engine.DateKey{Month: calendar.AdarII, Day: 14}

	assert.ElementsMatch(t,
		ids(engine.Match(engine.BuildIndex(records), purim, adarII)),
		ids(engine.MatchRecords(records, purim, adarII)))
}

func TestSortByDateDesc(t *testing.T) {
	records := []engine.PhotoRecord{
		{ID: "old", GregorianDate: "2019-01-01"},
		{ID: "new", GregorianDate: "2024-01-01"},
		{ID: "mid", GregorianDate: "2021-06-15"},
	}
	engine.SortByDateDesc(records)
	assert.Equal(t, []string{"new", "mid", "old"}, ids(records))
}

func TestDateIndex_KeysOrdered(t *testing.T) {
	idx := engine.BuildIndex([]engine.PhotoRecord{
		record("a", 5780, calendar.Tishrei, 10),
		record("b", 5780, calendar.Nisan, 15),
		record("c", 5780, calendar.Tishrei, 1),
	})

	assert.Equal(t, []engine.DateKey{
		{Month: calendar.Nisan, Day: 15},
		{Month: calendar.Tishrei, Day: 1},
		{Month: calendar.Tishrei, Day: 10},
	}, idx.Keys())
}

func TestPopularDates(t *testing.T) {
	idx := engine.BuildIndex([]engine.PhotoRecord{
		record("a", 5780, calendar.Tishrei, 1),
		record("b", 5781, calendar.Tishrei, 1),
		record("c", 5782, calendar.Tishrei, 1),
		record("d", 5780, calendar.Nisan, 15),
		record("e", 5781, calendar.Nisan, 15),
		record("f", 5780, calendar.Kislev, 25),
		record("g", 5781, calendar.Kislev, 25),
		record("h", 5780, calendar.Sivan, 6),
	})
	tishrei1 := engine.DateKey{Month: calendar.Tishrei, Day: 1}

	t.Run("OrderedByCountThenCalendar", func(t *testing.T) {
		got := engine.PopularDates(idx, nil, 0)
		require.Len(t, got, 4)
		assert.Equal(t, engine.DateCount{Key: tishrei1, Count: 3}, got[0])
		assert.Equal(t, engine.DateKey{Month: calendar.Nisan, Day: 15}, got[1].Key)
		assert.Equal(t, engine.DateKey{Month: calendar.Kislev, Day: 25}, got[2].Key)
		assert.Equal(t, 1, got[3].Count)
	})

	t.Run("ExcludesTargets", func(t *testing.T) {
		got := engine.PopularDates(idx, []engine.DateKey{tishrei1}, 0)
		for _, dc := range got {
			assert.NotEqual(t, tishrei1, dc.Key)
		}
	})

	t.Run("Limit", func(t *testing.T) {
		assert.Len(t, engine.PopularDates(idx, nil, 2), 2)
	})
}

func TestNewDateKey_Validation(t *testing.T) {
	tests := []struct {
		name       string
		month, day int
		valid      bool
	}{
		{"Nisan", 0, 1, true},
		{"AdarII30", 12, 30, true},
		{"NegativeMonth", -1, 1, false},
		{"MonthTooLarge", 13, 1, false},
		{"DayZero", 6, 0, false},
		{"DayTooLarge", 6, 31, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := engine.NewDateKey(tt.month, tt.day)
			if !tt.valid {
				var target *engine.InvalidTargetError
				assert.ErrorAs(t, err, &target)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, engine.DateKey{Month: tt.month, Day: tt.day}, k)
		})
	}
}

func TestDateKey_String(t *testing.T) {
	assert.Equal(t, "15 Tishrei", engine.DateKey{Month: calendar.Tishrei, Day: 15}.String())
}
