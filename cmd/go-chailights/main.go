package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/tartampluch/go-chailights/internal/engine"
	"github.com/tartampluch/go-chailights/internal/logging"
	"github.com/tartampluch/go-chailights/internal/server"
	"github.com/tartampluch/go-chailights/internal/ui"
)

// main delegates to runMain so deferred calls run before os.Exit.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	debugMode := flag.Bool(config.FlagDebug, false, config.FlagDescDebug)
	flag.Parse()

	if *showVersion {
		fmt.Printf(config.MsgVersionOutput, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
		return config.ExitCodeSuccess
	}

	logCloser := logging.Setup(logging.Options{
		Out:   os.Stdout,
		JSON:  true,
		Debug: *debugMode,
		File:  true,
	})
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logging.StartupInfo(config.CompMain)

	if err := run(ctx); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run wires the tray application and blocks until it quits.
func run(ctx context.Context) error {
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	exp := engine.NewExpander(calendar.Hebcal{}, engine.DefaultTable())
	srv := server.NewMemoryServer(port, exp)

	gui := ui.NewChaiLightsApp(a, ctx, srv, engine.NewHTTPFetcher())

	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()
	return nil
}
