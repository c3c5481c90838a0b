package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tartampluch/go-chailights/internal/config"
)

// PhotoFetcher defines the contract for retrieving one page of a remote
// photo library. It allows mocking in tests and decouples the network layer.
type PhotoFetcher interface {
	FetchPage(ctx context.Context, baseURL, token, pageToken string) (Page, error)
}

// HTTPFetcher implements PhotoFetcher against a mediaItems REST listing.
type HTTPFetcher struct {
	Client     *http.Client
	PageSize   int
	MaxRetries int
	RetryBase  time.Duration
}

// NewHTTPFetcher creates a new instance of HTTPFetcher with configured timeouts.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Timeout: config.HTTPTimeout,
		},
		PageSize:   config.DefaultPageSize,
		MaxRetries: config.MaxRetries,
		RetryBase:  config.RetryBaseDelay,
	}
}

// FetchPage retrieves one page of the listing.
// Rate limiting and transient gateway errors are retried with exponential
// backoff; other non-200 statuses fail immediately.
func (f *HTTPFetcher) FetchPage(ctx context.Context, baseURL, token, pageToken string) (Page, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}
	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return Page{}, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	u = u.JoinPath(config.MediaItemsPath)
	// Strip the query before logging: the page token is opaque user data.
	safeURL := u.Scheme + "://" + u.Host + u.Path

	q := u.Query()
	q.Set(config.QueryPageSize, strconv.Itoa(f.PageSize))
	if pageToken != "" {
		q.Set(config.QueryPageToken, pageToken)
	}
	u.RawQuery = q.Encode()

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompFetcher),
		slog.String(config.LogKeyURL, safeURL),
	)

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return Page{}, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set(config.HeaderUserAgent, config.UserAgent)
		req.Header.Set(config.HeaderAccept, config.MimeJSON)
		if token != "" {
			req.Header.Set(config.HeaderAuthorization, config.AuthBearer+token)
		}

		resp, err := f.Client.Do(req)
		if err != nil {
			if ctx.Err() != nil || attempt >= f.MaxRetries {
				return Page{}, fmt.Errorf("%s: %w", config.ErrNetwork, err)
			}
			if werr := f.wait(ctx, log, attempt); werr != nil {
				return Page{}, werr
			}
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			return decodePage(resp)

		case http.StatusTooManyRequests, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if attempt >= f.MaxRetries {
				return Page{}, fmt.Errorf("%s: %d %s", config.ErrServerStatus, resp.StatusCode, resp.Status)
			}
			log.Warn(config.MsgRetrying, slog.Int(config.LogKeyStatus, resp.StatusCode))
			if werr := f.wait(ctx, log, attempt); werr != nil {
				return Page{}, werr
			}

		default:
			_ = resp.Body.Close()
			log.Warn("Server returned error status",
				slog.Int(config.LogKeyStatus, resp.StatusCode),
			)
			return Page{}, fmt.Errorf("%s: %d %s", config.ErrServerStatus, resp.StatusCode, resp.Status)
		}
	}
}

// wait sleeps for the backoff of the given attempt, or until ctx is done.
func (f *HTTPFetcher) wait(ctx context.Context, log *slog.Logger, attempt int) error {
	d := f.backoff(attempt)
	log.Debug(config.MsgRetrying, config.LogKeyAttempt, attempt, config.LogKeyRetryIn, d)

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (f *HTTPFetcher) backoff(attempt int) time.Duration {
	d := f.RetryBase << uint(attempt)
	if d <= 0 || d > config.MaxRetryDelay {
		return config.MaxRetryDelay
	}
	return d
}

func decodePage(resp *http.Response) (Page, error) {
	defer func() { _ = resp.Body.Close() }()

	var p Page
	dec := json.NewDecoder(io.LimitReader(resp.Body, config.MaxHTTPResponseSize))
	if err := dec.Decode(&p); err != nil {
		return Page{}, fmt.Errorf("%s: %w", config.ErrDecodePage, err)
	}
	return p, nil
}

func drainAndClose(body io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 64<<10))
	return body.Close()
}
