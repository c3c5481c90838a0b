package engine

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
)

// HebrewDate is a fully qualified day of the Hebrew calendar.
type HebrewDate = calendar.HebrewDate

// DateKey identifies a recurring Hebrew calendar day regardless of year.
type DateKey struct {
	Month int `json:"month" validate:"min=0,max=12"`
	Day   int `json:"day" validate:"min=1,max=30"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewDateKey builds a validated key, returning an *InvalidTargetError when the
// month or day is outside the Hebrew calendar ranges.
func NewDateKey(month, day int) (DateKey, error) {
	k := DateKey{Month: month, Day: day}
	if err := k.Validate(); err != nil {
		return DateKey{}, err
	}
	return k, nil
}

// Validate checks the key against the Hebrew calendar ranges.
func (k DateKey) Validate() error {
	if err := validate.Struct(k); err != nil {
		return &InvalidTargetError{Target: k.target(), Err: err}
	}
	return nil
}

// KeyOf drops the year from a Hebrew date.
func KeyOf(d HebrewDate) DateKey {
	return DateKey{Month: d.Month, Day: d.Day}
}

// Less orders keys by month, then day.
func (k DateKey) Less(other DateKey) bool {
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}

// String renders the key as "15 Tishrei".
func (k DateKey) String() string {
	return fmt.Sprintf(config.FormatHebrewDate, k.Day, calendar.MonthName(k.Month))
}

func (k DateKey) target() string {
	return fmt.Sprintf(config.FormatDateTarget, k.Month, k.Day)
}

// PhotoRecord is a photo tagged with the Hebrew date it was taken on.
// Records are only produced by Normalize and are never modified afterwards.
type PhotoRecord struct {
	ID            string     `json:"id"`
	ImageURL      string     `json:"url"`
	GregorianDate string     `json:"date"`
	HebrewDate    HebrewDate `json:"hebrew_date"`
}

// Key returns the year-agnostic key of the record.
func (r PhotoRecord) Key() DateKey {
	return KeyOf(r.HebrewDate)
}

// MediaMetadata carries the capture timestamp of a raw photo.
type MediaMetadata struct {
	CreationTime string `json:"creationTime"`
}

// RawPhoto is a photo as listed by the source, before normalization.
type RawPhoto struct {
	ID            string        `json:"id"`
	BaseURL       string        `json:"baseUrl"`
	Filename      string        `json:"filename,omitempty"`
	MediaMetadata MediaMetadata `json:"mediaMetadata"`
}

// Page is one page of a photo listing.
type Page struct {
	Items         []RawPhoto `json:"mediaItems"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

// Flags select the optional holiday augmentations.
type Flags struct {
	IncludeErev   bool `json:"include_erev"`
	OutsideIsrael bool `json:"outside_israel"`
}

// Suggestion is an alternate date proposed when a target has no photos.
type Suggestion struct {
	Key   DateKey `json:"key"`
	Label string  `json:"label"`
}
