package engine

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
)

// Normalize tags every raw photo with its Hebrew capture date.
// Photos whose timestamp cannot be parsed or converted are logged and skipped;
// one bad record never stops the rest of the batch.
func Normalize(conv calendar.Converter, raws []RawPhoto) []PhotoRecord {
	records := make([]PhotoRecord, 0, len(raws))
	for _, raw := range raws {
		rec, err := normalizeOne(conv, raw)
		if err != nil {
			slog.Warn(config.MsgSkippedPhoto,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyPhotoID, raw.ID,
				config.LogKeyError, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func normalizeOne(conv calendar.Converter, raw RawPhoto) (PhotoRecord, error) {
	ts := raw.MediaMetadata.CreationTime
	fail := func(err error) (PhotoRecord, error) {
		return PhotoRecord{}, &RecordConversionError{PhotoID: raw.ID, Value: ts, Err: err}
	}

	// Only the date prefix matters: the capture day is taken as recorded.
	if len(ts) < len(config.DateFormatDay) {
		return fail(errors.New(config.ErrDateParse))
	}
	day, err := time.Parse(config.DateFormatDay, ts[:len(config.DateFormatDay)])
	if err != nil {
		return fail(errors.Join(errors.New(config.ErrDateParse), err))
	}

	hd, err := conv.ToHebrew(day.Year(), day.Month(), day.Day())
	if err != nil {
		return fail(err)
	}

	return PhotoRecord{
		ID:            recordID(raw),
		ImageURL:      imageURL(raw.BaseURL),
		GregorianDate: day.Format(config.DateFormatDay),
		HebrewDate:    hd,
	}, nil
}

// recordID keeps the source identity, deriving a stable one when the source
// does not provide it.
func recordID(raw RawPhoto) string {
	if raw.ID != "" {
		return raw.ID
	}
	name := config.UIDNamespace + raw.BaseURL + "|" + raw.MediaMetadata.CreationTime
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// imageURL appends the thumbnail size to remote base URLs that carry no
// size parameters yet. Local references are returned unchanged.
func imageURL(base string) string {
	remote := strings.HasPrefix(base, config.SchemeHTTP+"://") || strings.HasPrefix(base, config.SchemeHTTPS+"://")
	if !remote || strings.Contains(base, "=") {
		return base
	}
	return base + config.ImageSizeSuffix
}
