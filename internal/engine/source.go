package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/tartampluch/go-chailights/internal/config"
)

// PhotoSource lists photos one page at a time. An empty page token requests
// the first page; an empty NextPageToken ends the listing.
type PhotoSource interface {
	ListPage(ctx context.Context, pageToken string) (Page, error)
}

// Collect walks the listing sequentially until it runs out of pages or holds
// maxItems photos (maxItems <= 0 means unbounded).
// A failure on the first page is returned. A later failure truncates the
// listing: the photos collected so far are returned without error.
func Collect(ctx context.Context, src PhotoSource, maxItems int) ([]RawPhoto, error) {
	log := slog.With(config.LogKeyComponent, config.CompSource)

	var photos []RawPhoto
	token := ""
	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p, err := src.ListPage(ctx, token)
		if err != nil {
			if page == 0 || ctx.Err() != nil {
				return nil, err
			}
			log.Warn(config.MsgSourceTruncated,
				config.LogKeyCount, len(photos),
				config.LogKeyError, err)
			return photos, nil
		}

		photos = append(photos, p.Items...)
		log.Debug(config.MsgPageFetched,
			config.LogKeyCount, len(p.Items),
			config.LogKeyTotal, len(photos))

		if maxItems > 0 && len(photos) >= maxItems {
			return photos[:maxItems], nil
		}
		if p.NextPageToken == "" {
			return photos, nil
		}
		if p.NextPageToken == token {
			log.Warn(config.MsgTokenRepeated, config.LogKeyValue, token)
			return photos, nil
		}
		token = p.NextPageToken
	}
}

// FileSource reads a photo listing exported to a JSON file
// ({"mediaItems": [...]}). The whole file is a single page.
type FileSource struct {
	Path string
}

// ListPage reads and decodes the export.
func (s *FileSource) ListPage(ctx context.Context, _ string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", config.ErrReadFile, err)
	}

	var p Page
	if err := json.Unmarshal(data, &p); err != nil {
		return Page{}, fmt.Errorf("%s: %w", config.ErrDecodePage, err)
	}
	p.NextPageToken = ""
	return p, nil
}

// webSource binds a PhotoFetcher to one library endpoint and token.
type webSource struct {
	fetcher PhotoFetcher
	baseURL string
	token   string
}

func (s *webSource) ListPage(ctx context.Context, pageToken string) (Page, error) {
	return s.fetcher.FetchPage(ctx, s.baseURL, s.token, pageToken)
}
