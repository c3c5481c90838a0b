// Package calendar converts dates between the Gregorian and Hebrew calendars.
//
// Hebrew months are numbered from 0 (Nisan) to 12 (Adar II), so Tishrei is 6
// and Adar (Adar I in a leap year) is 11. Month 12 only exists in leap years.
package calendar

import (
	"fmt"
	"time"

	"github.com/hebcal/hdate"
	"github.com/tartampluch/go-chailights/internal/config"
)

// Hebrew month numbers.
const (
	Nisan = iota
	Iyyar
	Sivan
	Tammuz
	Av
	Elul
	Tishrei
	Cheshvan
	Kislev
	Tevet
	Shevat
	Adar
	AdarII

	// MonthCount is the number of months in a leap year.
	MonthCount = 13
)

var monthNames = [MonthCount]string{
	"Nisan", "Iyyar", "Sivan", "Tammuz", "Av", "Elul", "Tishrei",
	"Cheshvan", "Kislev", "Tevet", "Shevat", "Adar", "Adar II",
}

// MonthName returns the transliterated name of a Hebrew month.
func MonthName(month int) string {
	if month < 0 || month >= MonthCount {
		return fmt.Sprintf("month %d", month)
	}
	return monthNames[month]
}

// HebrewDate is a day in the Hebrew calendar.
type HebrewDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String renders the date as "15 Tishrei 5784".
func (d HebrewDate) String() string {
	return fmt.Sprintf("%d %s %d", d.Day, MonthName(d.Month), d.Year)
}

// Converter maps calendar days between the two calendars.
// Implementations must round-trip: ToGregorian(ToHebrew(d)) == d.
type Converter interface {
	ToHebrew(year int, month time.Month, day int) (HebrewDate, error)
	ToGregorian(d HebrewDate) (time.Time, error)
}

// ConversionError reports an input the converter cannot map.
type ConversionError struct {
	Input  string
	Reason string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", config.ErrConversion, e.Reason, e.Input)
}

// Hebcal is the Converter backed by the hebcal hdate library.
type Hebcal struct{}

// ToHebrew converts a Gregorian day. The input must be a real calendar day.
func (Hebcal) ToHebrew(year int, month time.Month, day int) (HebrewDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if year < 1 || t.Year() != year || t.Month() != month || t.Day() != day {
		return HebrewDate{}, &ConversionError{
			Input:  fmt.Sprintf("%04d-%02d-%02d", year, int(month), day),
			Reason: config.ErrInvalidGregorian,
		}
	}

	hd := hdate.FromGregorian(year, month, day)
	return HebrewDate{Year: hd.Year(), Month: int(hd.Month()) - 1, Day: hd.Day()}, nil
}

// ToGregorian converts a Hebrew day, rejecting months absent from that year
// (Adar II in a common year) and days past the end of the month.
func (Hebcal) ToGregorian(d HebrewDate) (time.Time, error) {
	invalid := func() error {
		return &ConversionError{Input: d.String(), Reason: config.ErrInvalidHebrew}
	}
	if d.Year < 1 || d.Month < 0 || d.Month >= hdate.MonthsInYear(d.Year) {
		return time.Time{}, invalid()
	}

	hm := hdate.HMonth(d.Month + 1)
	if d.Day < 1 || d.Day > hdate.DaysInMonth(hm, d.Year) {
		return time.Time{}, invalid()
	}

	g := hdate.New(d.Year, hm, d.Day).Gregorian()
	return time.Date(g.Year(), g.Month(), g.Day(), 0, 0, 0, 0, time.UTC), nil
}

// IsLeapYear reports whether the Hebrew year has thirteen months.
func IsLeapYear(year int) bool {
	return hdate.IsLeapYear(year)
}
