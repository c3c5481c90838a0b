package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-ChaiLights/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go ChaiLights"
	AppID             = "com.github.tartampluch.go-chailights"
	CLIName           = "chailights"
	KeyringService    = "com.github.tartampluch.go-chailights"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "Icon.png"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	// chailights command line
	FlagPhotos     = "photos"
	FlagURL        = "url"
	FlagToken      = "token"
	FlagFormat     = "format"
	FlagMaxItems   = "max-items"
	FlagDay        = "day"
	FlagMonth      = "month"
	FlagRange      = "range"
	FlagErev       = "erev"
	FlagOutside    = "outside"
	FlagHebrewYear = "year"

	EnvPhotos = "CHAILIGHTS_PHOTOS"
	EnvURL    = "CHAILIGHTS_URL"
	EnvToken  = "CHAILIGHTS_TOKEN"

	FormatJSON = "json"
	FormatText = "text"

	ErrNoSource     = "no photo source: set --photos or --url"
	ErrOutputFormat = "unsupported output format"
	ErrWriteOutput  = "failed to write output"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600

	// Preference Keys
	PrefPhotosURL     = "photos_url"
	PrefAccount       = "account"
	PrefLanguage      = "language"
	PrefInterval      = "refresh_interval_min"
	PrefServerPort    = "server_port"
	PrefSourceMode    = "source_mode"
	PrefLocalPath     = "local_path"
	PrefMaxItems      = "max_items"
	PrefIncludeErev   = "include_erev"
	PrefOutsideIsrael = "outside_israel"
	PrefLastRun       = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "he"}

// -----------------------------------------------------------------------------
// UI Memories Window Constants
// -----------------------------------------------------------------------------

const (
	MemoriesWinWidth  = 700
	MemoriesWinHeight = 420

	// Table Column IDs
	ColIDDate   = 0
	ColIDHebrew = 1
	ColIDImage  = 2

	ColWidthDate   = 120
	ColWidthHebrew = 180
	ColWidthImage  = 380

	TablePlaceholder = "Cell Content"
	LogMsgOpenWin    = "Opening memories window"
	LogMsgSorted     = "Memories sorted"

	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinMemories    = "win_memories_title"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyMenuSettings   = "menu_settings"
	TKeyMenuBrowser    = "menu_open_browser"
	TKeyTrayStatus     = "tray_status"      // Requires Count > 0
	TKeyTrayStatusZero = "tray_status_zero" // Explicit key for 0
	TKeyNotifStart     = "notif_sync_start"
	TKeyNotifSuccess   = "notif_sync_success"
	TKeyNotifError     = "notif_err_sync"
	TKeyModeWeb        = "mode_web"
	TKeyModeLocal      = "mode_local"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblMinutes     = "lbl_minutes_suffix"
	TKeyLblRefresh     = "lbl_refresh_interval"
	TKeyHelpInterval   = "help_interval"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblMaxItems    = "lbl_max_items"
	TKeyHelpMaxItems   = "help_max_items"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblMatching    = "lbl_matching"
	TKeyLblErev        = "lbl_include_erev"
	TKeyLblOutside     = "lbl_outside_israel"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"
	TKeyBtnBrowse      = "btn_browse"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_photos_url"
	TKeyLblAccount     = "lbl_account"
	TKeyLblToken       = "lbl_token"
	TKeyLblSource      = "lbl_source"
	TKeyEvtSummary     = "event_summary"      // Requires Label, Count
	TKeyEvtSummaryZero = "event_summary_zero" // Requires Label

	// Column Headers
	TKeyColDate   = "col_date"
	TKeyColHebrew = "col_hebrew_date"
	TKeyColImage  = "col_image"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	DefaultMaxItems   = 2000
	DefaultPageSize   = 100
	DefaultPhotosURL  = "https://photoslibrary.googleapis.com"
	PopularDatesLimit = 5
	DisabledInterval  = 0

	// ImageSizeSuffix requests a thumbnail from the photo CDN.
	ImageSizeSuffix = "=w400-h400"

	LabelEve   = "Eve"
	LabelToday = "Today"

	// UIDNamespace seeds deterministic record identities for sources without ids.
	UIDNamespace = "go-chailights-v1|"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go ChaiLights//Engine//EN"
	ICalCalName = "Hebrew Date Memories"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gochailights"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropDescription = "DESCRIPTION"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 12 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// DateFormatDay is the capture date prefix layout (first 10 characters).
	DateFormatDay = "2006-01-02"

	MinPort = 1
	MaxPort = 65535

	FormatUID              = "%s-%d-%02d-%02d@%s"
	FormatEventSummary     = "%s (%d photos)"
	FormatEventSummaryZero = "%s"
	FormatEventDescription = "%d %s %d"
	FormatHebrewDate       = "%d %s"
	FormatDateTarget       = "month=%d day=%d"
	FormatTodayLabel       = "%s (%s)"

	ExtJSON = ".json"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB per page
	MaxRetries          = 3
	RetryBaseDelay      = 500 * time.Millisecond
	MaxRetryDelay       = 30 * time.Second
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	MediaItemsPath = "v1/mediaItems"
	QueryPageSize  = "pageSize"
	QueryPageToken = "pageToken"
	AuthBearer     = "Bearer "

	// Routes
	RoutePhotos   = "/photos"
	RouteHoliday  = "/holiday"
	RouteHolidays = "/holidays"
	RouteCalendar = "/calendar.ics"

	// Query parameters
	ParamDay     = "day"
	ParamMonth   = "month"
	ParamRange   = "range"
	ParamName    = "name"
	ParamErev    = "erev"
	ParamOutside = "outside"
	ParamOn      = "1"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAuthorization   = "Authorization"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrConverterMissing = "internal error: calendar converter is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrNetwork          = "network error during fetch"
	ErrServerStatus     = "server returned unexpected status"
	ErrDecodePage       = "failed to decode photo listing"
	ErrReadFile         = "failed to read photo export"
	ErrPhotoFetch       = "failed to fetch photo listing"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse capture date"
	ErrConversion       = "calendar conversion failed"
	ErrInvalidGregorian = "invalid Gregorian date"
	ErrInvalidHebrew    = "invalid Hebrew date"
	ErrInvalidTarget    = "invalid target date"
	ErrUnknownHoliday   = "unknown holiday"
	ErrHolidayTable     = "invalid holiday table"
	ErrHolidayExtension = "holiday extension skipped"
	ErrToday            = "unable to determine today's Hebrew date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrBadQuery         = "invalid query parameter"
	ErrPartialTarget    = "both day and month are required"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Photo library initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgMissingName  = "holiday name is required"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackTrayError   = "Go ChaiLights: Sync Error"
	FallbackTrayDefault = "Go ChaiLights (%d today)"
	FallbackTrayLabel   = "Go ChaiLights"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Sync Error"

	MsgPortBusy         = "Port %s is busy or unavailable."
	MsgSyncStarted      = "Synchronization started..."
	MsgSyncFailed       = "Synchronization failed. Check logs."
	MsgSyncReq          = "Sync requested"
	MsgWorkerStart      = "Background worker started"
	MsgWorkerStop       = "Worker stopping due to context cancellation"
	MsgUpdateSync       = "Updating sync interval"
	MsgAppStop          = "Application stopped gracefully"
	MsgCtxCancel        = "Context cancelled, shutting down UI"
	MsgSkippedPhoto     = "Skipping photo with unusable capture date"
	MsgSkippedEvent     = "Skipping holiday date absent from this year"
	MsgExtensionSkipped = "Holiday extension skipped, using base dates"
	MsgEveApprox        = "Eve computed by approximation"
	MsgPageFetched      = "Photo page fetched"
	MsgSourceTruncated  = "Photo listing truncated after upstream failure"
	MsgTokenRepeated    = "Photo listing returned a repeated page token"
	MsgRetrying         = "Photo listing transient error, retrying"
	MsgGenSuccess       = "Memories generation successful"
	MsgMemoriesToday    = "Memories found today"
	MsgAppStarting      = "Starting application"
	MsgServerListen     = "HTTP server listening"
	MsgServerStop       = "Shutting down HTTP server..."
	MsgCacheUpdated     = "Photo snapshot updated"
	MsgRequestRejected  = "Request rejected"
	MsgLocaleBadName    = "Skipping malformed locale filename"
	MsgLocaleLoaded     = "Locale loaded successfully"
	MsgTransMissing     = "Missing translation key"
	MsgTokenFail        = "Token retrieval failed (might be empty)"
	MsgBrowserFail      = "Failed to open browser"
	MsgSettingsOpen     = "Opening settings window"
	MsgPrefsSaving      = "Saving preferences"
	MsgKeyringSaveFail  = "Failed to save token to keyring"
	MsgAutoRefreshOff   = "Auto-refresh disabled via settings"
	MsgLogWarning       = "Warning: %s at %s: %v\n"

	PlaceholderURL = "https://..."
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyAccount   = "account"
	LogKeyTotal     = "total_photos"
	LogKeyIndexed   = "photos_indexed"
	LogKeyToday     = "memories_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyPhotoID   = "photo_id"
	LogKeyHoliday   = "holiday"
	LogKeyStep      = "step"
	LogKeyMonth     = "month"
	LogKeyDay       = "day"
	LogKeyYear      = "hebrew_year"
	LogKeyAttempt   = "attempt"
	LogKeyRetryIn   = "retry_in"
	LogKeyPath      = "path"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyDate    = "build_date"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompEngine   = "engine"
	CompExpander = "expander"
	CompSource   = "source"
	CompServer   = "server"
	CompFetcher  = "fetcher"
	CompWorker   = "worker"
	CompMain     = "main"
	CompCLI      = "cli"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
