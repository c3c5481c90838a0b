package engine_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the network layer for unit tests using `testify/mock`.
type MockFetcher struct {
	mock.Mock
}

// FetchPage implements the engine.PhotoFetcher interface.
func (m *MockFetcher) FetchPage(ctx context.Context, baseURL, token, pageToken string) (engine.Page, error) {
	args := m.Called(ctx, baseURL, token, pageToken)
	return args.Get(0).(engine.Page), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// stubConverter maps fixed Gregorian days to Hebrew dates. Anything else fails.
type stubConverter map[string]calendar.HebrewDate

func (s stubConverter) ToHebrew(year int, month time.Month, day int) (calendar.HebrewDate, error) {
	key := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if hd, ok := s[key]; ok {
		return hd, nil
	}
	return calendar.HebrewDate{}, &calendar.ConversionError{Input: key, Reason: "not in stub"}
}

func (s stubConverter) ToGregorian(d calendar.HebrewDate) (time.Time, error) {
	for key, hd := range s {
		if hd == d {
			return time.Parse("2006-01-02", key)
		}
	}
	return time.Time{}, &calendar.ConversionError{Input: d.String(), Reason: "not in stub"}
}

// failingConverter rejects every conversion.
type failingConverter struct{}

var errConverterDown = errors.New("converter down")

func (failingConverter) ToHebrew(int, time.Month, int) (calendar.HebrewDate, error) {
	return calendar.HebrewDate{}, errConverterDown
}

func (failingConverter) ToGregorian(calendar.HebrewDate) (time.Time, error) {
	return time.Time{}, errConverterDown
}

// pageSource serves canned pages keyed by page token.
type pageSource struct {
	pages map[string]engine.Page
	errs  map[string]error
	calls []string
}

func (s *pageSource) ListPage(ctx context.Context, token string) (engine.Page, error) {
	s.calls = append(s.calls, token)
	if err := s.errs[token]; err != nil {
		return engine.Page{}, err
	}
	return s.pages[token], nil
}

func raw(id, created string) engine.RawPhoto {
	return engine.RawPhoto{
		ID:            id,
		BaseURL:       "https://lh3.example.com/" + id,
		MediaMetadata: engine.MediaMetadata{CreationTime: created},
	}
}

func record(id string, year, month, day int) engine.PhotoRecord {
	return engine.PhotoRecord{
		ID:         id,
		HebrewDate: calendar.HebrewDate{Year: year, Month: month, Day: day},
	}
}

func ids(records []engine.PhotoRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
