package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/tartampluch/go-chailights/internal/engine"
)

// snapshot is the last synchronized library and its rendered holiday feed.
type snapshot struct {
	records      []engine.PhotoRecord
	ics          []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// MemoryServer exposes the photo index over a local HTTP API.
type MemoryServer struct {
	// snap uses atomic.Pointer for lock-free reads: requests are frequent,
	// updates only happen on sync.
	snap atomic.Pointer[snapshot]

	Port     string
	Expander *engine.Expander
}

// NewMemoryServer creates a new instance of the server.
func NewMemoryServer(port string, exp *engine.Expander) *MemoryServer {
	return &MemoryServer{
		Port:     port,
		Expander: exp,
	}
}

// Routes builds the router. Only GET and HEAD are served.
func (s *MemoryServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.GetHead)

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
	})

	r.Get(config.RoutePhotos, s.handlePhotos)
	r.Get(config.RouteHoliday, s.handleHoliday)
	r.Get(config.RouteHolidays, s.handleHolidays)
	r.Get(config.RouteCalendar, s.handleCalendar)
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *MemoryServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Routes(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served library and feed.
func (s *MemoryServer) Update(records []engine.PhotoRecord, ics []byte) {
	hash := sha256.Sum256(ics)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	s.snap.Store(&snapshot{
		records:      records,
		ics:          ics,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyIndexed, len(records),
		config.LogKeySizeBytes, len(ics),
		config.LogKeyETag, etag,
	)
}

type errorResponse struct {
	Error string `json:"error"`
}

// handlePhotos matches the requested Hebrew date, or today's when the
// query names none.
func (s *MemoryServer) handlePhotos(w http.ResponseWriter, r *http.Request) {
	snap := s.ready(w)
	if snap == nil {
		return
	}

	q := r.URL.Query()
	flags := parseFlags(r)
	withEve := q.Get(config.ParamRange) == config.ParamOn
	idx := engine.BuildIndex(snap.records)

	dayStr, monthStr := q.Get(config.ParamDay), q.Get(config.ParamMonth)
	switch {
	case dayStr == "" && monthStr == "":
		report, err := s.Expander.TodayReport(idx, withEve, flags)
		if err != nil {
			slog.Error(config.ErrToday, config.LogKeyComponent, config.CompServer, config.LogKeyError, err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: config.HTTPMsgInternalErr})
			return
		}
		writeJSON(w, http.StatusOK, report)

	case dayStr == "" || monthStr == "":
		reject(w, r, http.StatusBadRequest, errors.New(config.ErrPartialTarget))

	default:
		day, derr := strconv.Atoi(dayStr)
		month, merr := strconv.Atoi(monthStr)
		if err := errors.Join(derr, merr); err != nil {
			reject(w, r, http.StatusBadRequest, fmt.Errorf("%s: %w", config.ErrBadQuery, err))
			return
		}
		key, err := engine.NewDateKey(month, day)
		if err != nil {
			reject(w, r, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Expander.DateReport(idx, key, "", withEve, flags))
	}
}

// handleHoliday matches every effective date of the named holiday.
func (s *MemoryServer) handleHoliday(w http.ResponseWriter, r *http.Request) {
	snap := s.ready(w)
	if snap == nil {
		return
	}

	name := r.URL.Query().Get(config.ParamName)
	if name == "" {
		reject(w, r, http.StatusBadRequest, errors.New(config.HTTPMsgMissingName))
		return
	}

	report, err := s.Expander.HolidayReport(engine.BuildIndex(snap.records), name, parseFlags(r), 0)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, engine.ErrUnknownHoliday) {
			status = http.StatusNotFound
		}
		reject(w, r, status, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// handleHolidays lists the holiday table. It does not need a sync.
func (s *MemoryServer) handleHolidays(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.Expander.Holidays.All())
}

// handleCalendar serves the holiday feed with HTTP caching support.
func (s *MemoryServer) handleCalendar(w http.ResponseWriter, r *http.Request) {
	snap := s.ready(w)
	if snap == nil {
		return
	}

	w.Header().Set(config.HeaderContentType, config.MimeTextCalendar)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, snap.etag)
	w.Header().Set(config.HeaderLastModified, snap.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == snap.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, snap.lastModified); err == nil {
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(snap.ics)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}

// ready returns the current snapshot, or answers 503 when no sync completed yet.
func (s *MemoryServer) ready(w http.ResponseWriter) *snapshot {
	snap := s.snap.Load()
	if snap == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
	}
	return snap
}

func parseFlags(r *http.Request) engine.Flags {
	q := r.URL.Query()
	return engine.Flags{
		IncludeErev:   q.Get(config.ParamErev) == config.ParamOn,
		OutsideIsrael: q.Get(config.ParamOutside) == config.ParamOn,
	}
}

func reject(w http.ResponseWriter, r *http.Request, status int, err error) {
	slog.Debug(config.MsgRequestRejected,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyPath, r.URL.Path,
		config.LogKeyStatus, status,
		config.LogKeyError, err,
	)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
