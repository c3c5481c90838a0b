package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
)

// SyncConfig contains all parameters required to perform a synchronization.
type SyncConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to a JSON export of the library
	WebURL    string // Base URL of the photo library API
	Token     string // OAuth bearer token
	MaxItems  int    // Listing cap, <= 0 for unbounded
	Flags     Flags  // Holiday augmentations applied to the feed
}

// SyncResult is the outcome of one synchronization.
type SyncResult struct {
	Records  []PhotoRecord
	Today    HebrewDate
	TodayKey DateKey
	Matches  []PhotoRecord // photos taken on today's Hebrew date, newest first
	Calendar []byte        // holiday feed of the current Hebrew year
}

// Generator is the core service: it lists photos, tags them with Hebrew dates,
// and derives today's memories and the holiday feed.
type Generator struct {
	Clock     Clock
	Converter calendar.Converter
	Holidays  *HolidayTable
	Fetcher   PhotoFetcher // Used in web mode.

	// FormatSummary allows the UI to inject localized strings into the logic layer.
	FormatSummary SummaryFunc
}

// RunSync executes the listing, normalization, and generation pipeline.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) (SyncResult, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	if g.Converter == nil {
		return SyncResult{}, errors.New(config.ErrConverterMissing)
	}

	src, err := g.acquireSource(cfg)
	if err != nil {
		return SyncResult{}, err
	}

	raws, err := Collect(ctx, src, cfg.MaxItems)
	if err != nil {
		if ctx.Err() != nil {
			return SyncResult{}, ctx.Err()
		}
		return SyncResult{}, fmt.Errorf("%s: %w", config.ErrPhotoFetch, err)
	}

	if err := ctx.Err(); err != nil {
		return SyncResult{}, err
	}

	records := Normalize(g.Converter, raws)

	exp := g.expander()
	today, err := exp.Today()
	if err != nil {
		return SyncResult{}, fmt.Errorf("%s: %w", config.ErrToday, err)
	}

	todayKey := KeyOf(today)
	matches := MatchRecords(records, todayKey)
	SortByDateDesc(matches)

	ics, err := BuildHolidayCalendar(exp, cfg.Flags, today.Year, BuildIndex(records), g.FormatSummary)
	if err != nil {
		return SyncResult{}, err
	}

	if len(matches) > 0 {
		log.Info(config.MsgMemoriesToday,
			config.LogKeyMonth, todayKey.Month,
			config.LogKeyDay, todayKey.Day,
			config.LogKeyCount, len(matches))
	}
	log.Info(config.MsgGenSuccess,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, len(raws)),
			slog.Int(config.LogKeyIndexed, len(records)),
			slog.Int(config.LogKeyToday, len(matches)),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)

	return SyncResult{
		Records:  records,
		Today:    today,
		TodayKey: todayKey,
		Matches:  matches,
		Calendar: ics,
	}, nil
}

// acquireSource picks the photo source based on configuration.
func (g *Generator) acquireSource(cfg SyncConfig) (PhotoSource, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return &FileSource{Path: cfg.LocalPath}, nil
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return &webSource{fetcher: g.Fetcher, baseURL: cfg.WebURL, token: cfg.Token}, nil
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func (g *Generator) expander() *Expander {
	holidays := g.Holidays
	if holidays == nil {
		holidays = DefaultTable()
	}
	clock := g.Clock
	if clock == nil {
		clock = RealClock{}
	}
	return &Expander{Converter: g.Converter, Holidays: holidays, Clock: clock}
}
