// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tartampluch/go-chailights/internal/config"
)

// Options selects where and how much the default logger writes.
type Options struct {
	// Out receives every record. Nil discards.
	Out io.Writer

	// JSON selects the JSON handler; otherwise records are text.
	JSON bool

	// Debug lowers the level to Debug and adds source locations.
	Debug bool

	// Quiet raises the level to Warn. Debug wins when both are set.
	Quiet bool

	// File also writes to <cache>/<AppID>/app.log, truncated on start.
	File bool
}

// Setup installs the default logger and returns the log file to close, if any.
func Setup(opts Options) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if opts.Out != nil {
		writers = append(writers, opts.Out)
	}

	if opts.File {
		if logPath, err := FilePath(); err == nil {
			f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
			if err == nil {
				writers = append(writers, f)
				logFile = f
			} else {
				fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
			}
		}
	}

	level := slog.LevelInfo
	switch {
	case opts.Debug:
		level = slog.LevelDebug
	case opts.Quiet:
		level = slog.LevelWarn
	}
	hopts := &slog.HandlerOptions{
		Level:     level,
		AddSource: opts.Debug,
	}

	w := io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, hopts)
	} else {
		handler = slog.NewTextHandler(w, hopts)
	}
	slog.SetDefault(slog.New(handler))

	if logFile == nil {
		return nil
	}
	return logFile
}

// FilePath returns the platform-specific log file location, creating its
// directory with owner-only permissions.
func FilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}

// StartupInfo logs build and environment details.
func StartupInfo(component string) {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, component,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyDate, config.Date),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}
