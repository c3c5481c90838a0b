package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-chailights/internal/calendar"
)

func TestHebcal_ToHebrew_KnownDates(t *testing.T) {
	conv := calendar.Hebcal{}

	tests := []struct {
		name     string
		date     time.Time
		expected calendar.HebrewDate
	}{
		{"Rosh Hashanah 5784", time.Date(2023, 9, 16, 0, 0, 0, 0, time.UTC), calendar.HebrewDate{Year: 5784, Month: calendar.Tishrei, Day: 1}},
		{"Sukkot 5784", time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC), calendar.HebrewDate{Year: 5784, Month: calendar.Tishrei, Day: 15}},
		{"Passover 5784", time.Date(2024, 4, 23, 0, 0, 0, 0, time.UTC), calendar.HebrewDate{Year: 5784, Month: calendar.Nisan, Day: 15}},
		{"Purim common year", time.Date(2021, 2, 26, 0, 0, 0, 0, time.UTC), calendar.HebrewDate{Year: 5781, Month: calendar.Adar, Day: 14}},
		{"Purim leap year", time.Date(2022, 3, 17, 0, 0, 0, 0, time.UTC), calendar.HebrewDate{Year: 5782, Month: calendar.AdarII, Day: 14}},
		{"Nisan after common Adar", time.Date(2021, 3, 17, 0, 0, 0, 0, time.UTC), calendar.HebrewDate{Year: 5781, Month: calendar.Nisan, Day: 4}},
		{"Shavuot 5784", time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), calendar.HebrewDate{Year: 5784, Month: calendar.Sivan, Day: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := conv.ToHebrew(tt.date.Year(), tt.date.Month(), tt.date.Day())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

// TestHebcal_RoundTrip walks every day of three decades through both directions.
func TestHebcal_RoundTrip(t *testing.T) {
	conv := calendar.Hebcal{}
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		h, err := conv.ToHebrew(d.Year(), d.Month(), d.Day())
		require.NoError(t, err)

		back, err := conv.ToGregorian(h)
		require.NoError(t, err)
		if !assert.True(t, back.Equal(d), "round trip of %s gave %s via %s", d.Format("2006-01-02"), back.Format("2006-01-02"), h) {
			return
		}
	}
}

func TestHebcal_ToHebrew_Invalid(t *testing.T) {
	conv := calendar.Hebcal{}

	_, err := conv.ToHebrew(2023, time.February, 30)
	var convErr *calendar.ConversionError
	require.ErrorAs(t, err, &convErr)

	_, err = conv.ToHebrew(2023, time.Month(13), 1)
	assert.Error(t, err)

	_, err = conv.ToHebrew(0, time.January, 1)
	assert.Error(t, err)
}

func TestHebcal_ToGregorian_Invalid(t *testing.T) {
	conv := calendar.Hebcal{}

	tests := []struct {
		name string
		date calendar.HebrewDate
	}{
		{"Adar II in a common year", calendar.HebrewDate{Year: 5783, Month: calendar.AdarII, Day: 14}},
		{"Tevet has 29 days", calendar.HebrewDate{Year: 5784, Month: calendar.Tevet, Day: 30}},
		{"Negative month", calendar.HebrewDate{Year: 5784, Month: -1, Day: 1}},
		{"Day zero", calendar.HebrewDate{Year: 5784, Month: calendar.Nisan, Day: 0}},
		{"Year zero", calendar.HebrewDate{Year: 0, Month: calendar.Nisan, Day: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := conv.ToGregorian(tt.date)
			var convErr *calendar.ConversionError
			assert.ErrorAs(t, err, &convErr)
		})
	}
}

func TestHebcal_ToGregorian_LeapAdar(t *testing.T) {
	conv := calendar.Hebcal{}

	require.True(t, calendar.IsLeapYear(5782))
	got, err := conv.ToGregorian(calendar.HebrewDate{Year: 5782, Month: calendar.AdarII, Day: 14})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 3, 17, 0, 0, 0, 0, time.UTC), got)
}

func TestMonthName(t *testing.T) {
	assert.Equal(t, "Nisan", calendar.MonthName(calendar.Nisan))
	assert.Equal(t, "Tishrei", calendar.MonthName(calendar.Tishrei))
	assert.Equal(t, "Adar II", calendar.MonthName(calendar.AdarII))
	assert.Equal(t, "month 13", calendar.MonthName(13))

	d := calendar.HebrewDate{Year: 5784, Month: calendar.Tishrei, Day: 15}
	assert.Equal(t, "15 Tishrei 5784", d.String())
}
