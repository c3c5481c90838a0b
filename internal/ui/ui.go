package ui

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/tartampluch/go-chailights/internal/engine"
	"github.com/tartampluch/go-chailights/internal/server"
	"github.com/zalando/go-keyring"
)

//go:embed Icon.png
var appIconData []byte

// ChaiLightsApp encapsulates the UI state, preferences, and background logic.
type ChaiLightsApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server    *server.MemoryServer
	Fetcher   engine.PhotoFetcher
	Converter calendar.Converter
	Holidays  *engine.HolidayTable
	Clock     engine.Clock // Injected clock for testability

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TrayBrowserItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Memories of today's Hebrew date, newest first.
	MemoriesMut    sync.RWMutex
	Memories       []engine.PhotoRecord
	Today          engine.HebrewDate
	memoriesWindow fyne.Window
}

// NewChaiLightsApp constructs the application and wires dependencies.
func NewChaiLightsApp(a fyne.App, ctx context.Context, srv *server.MemoryServer, fetcher engine.PhotoFetcher) *ChaiLightsApp {
	a.SetIcon(fyne.NewStaticResource(config.IconFile, appIconData))

	app := &ChaiLightsApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Converter:          calendar.Hebcal{},
		Holidays:           engine.DefaultTable(),
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
	if srv != nil && srv.Expander != nil {
		app.Holidays = srv.Expander.Holidays
	}
	return app
}

// Run launches the application services and the main UI loop.
func (app *ChaiLightsApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *ChaiLightsApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

// setupTrayMenu constructs the system tray menu.
func (app *ChaiLightsApp) setupTrayMenu() {
	// The status line opens today's memories.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowMemoriesWindow()
	})

	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})

	app.TrayBrowserItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuBrowser), func() {
		app.openInBrowser()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TrayBrowserItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *ChaiLightsApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TrayBrowserItem.Label = app.GetMsg(config.TKeyMenuBrowser)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// browserURL is the local page listing today's memories.
func (app *ChaiLightsApp) browserURL() *url.URL {
	port := app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort)
	return &url.URL{
		Scheme: config.SchemeHTTP,
		Host:   config.LocalhostBindAddr + config.AddrSeparator + port,
		Path:   config.RoutePhotos,
	}
}

func (app *ChaiLightsApp) openInBrowser() {
	u := app.browserURL()
	if err := app.App.OpenURL(u); err != nil {
		slog.Error(config.MsgBrowserFail,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, u.String(),
			config.LogKeyError, err)
	}
}

// backgroundWorker manages the periodic synchronization schedule.
func (app *ChaiLightsApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)

	getInterval := func() time.Duration {
		val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
		if val <= 0 {
			val = config.DefaultRefreshMin
		}
		return time.Duration(val) * time.Minute
	}

	currentDuration := getInterval()
	ticker := time.NewTicker(currentDuration)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, currentDuration)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			newDuration := getInterval()
			if newDuration != currentDuration {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, currentDuration, config.LogKeyNew, newDuration)
				currentDuration = newDuration
				ticker.Reset(currentDuration)
			}

		case <-ticker.C:
			app.performSync(false)
		}
	}
}

// performSync executes the pipeline (List -> Normalize -> Match -> Feed).
func (app *ChaiLightsApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	gen := &engine.Generator{
		Clock:         app.Clock,
		Converter:     app.Converter,
		Holidays:      app.Holidays,
		Fetcher:       app.Fetcher,
		FormatSummary: app.buildSummaryFormatter(),
	}

	res, err := gen.RunSync(app.Ctx, app.loadSyncConfig())
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(-1)
		return
	}

	app.MemoriesMut.Lock()
	app.Memories = res.Matches
	app.Today = res.Today
	app.MemoriesMut.Unlock()

	if app.Server != nil {
		app.Server.Update(res.Records, res.Calendar)
	}
	app.updateTrayStatus(len(res.Matches))

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// updateTrayStatus shows how many photos were taken on today's Hebrew date.
func (app *ChaiLightsApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	var label string
	switch {
	case count < 0:
		label = config.FallbackTrayError
	case count == 0:
		label = app.GetMsg(config.TKeyTrayStatusZero)
		if label == config.TKeyTrayStatusZero {
			label = fmt.Sprintf(config.FallbackTrayDefault, 0)
		}
	default:
		if app.Localizer != nil {
			msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{
				MessageID:    config.TKeyTrayStatus,
				TemplateData: map[string]interface{}{"Count": count},
				PluralCount:  count,
			})
			if err == nil {
				label = msg
			}
		}
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// loadSyncConfig assembles the engine configuration from UI preferences and Keyring.
func (app *ChaiLightsApp) loadSyncConfig() engine.SyncConfig {
	cfg := engine.SyncConfig{
		Mode:      app.Preferences.StringWithFallback(config.PrefSourceMode, config.SourceModeWeb),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.StringWithFallback(config.PrefPhotosURL, config.DefaultPhotosURL),
		MaxItems:  app.Preferences.IntWithFallback(config.PrefMaxItems, config.DefaultMaxItems),
		Flags: engine.Flags{
			IncludeErev:   app.Preferences.Bool(config.PrefIncludeErev),
			OutsideIsrael: app.Preferences.Bool(config.PrefOutsideIsrael),
		},
	}

	if account := app.Preferences.String(config.PrefAccount); account != "" {
		if tok, err := keyring.Get(config.KeyringService, account); err == nil {
			cfg.Token = tok
		} else {
			slog.Debug(config.MsgTokenFail,
				config.LogKeyAccount, account,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}

	return cfg
}

// buildSummaryFormatter returns a closure that localizes the event summary.
func (app *ChaiLightsApp) buildSummaryFormatter() engine.SummaryFunc {
	return func(label string, count int) string {
		if app.Localizer == nil {
			return engine.DefaultSummary(label, count)
		}

		lc := &i18n.LocalizeConfig{
			MessageID:    config.TKeyEvtSummary,
			TemplateData: map[string]interface{}{"Label": label, "Count": count},
			PluralCount:  count,
		}
		if count == 0 {
			lc = &i18n.LocalizeConfig{
				MessageID:    config.TKeyEvtSummaryZero,
				TemplateData: map[string]interface{}{"Label": label},
			}
		}

		msg, err := app.Localizer.Localize(lc)
		if err != nil || msg == "" {
			return engine.DefaultSummary(label, count)
		}
		return msg
	}
}
