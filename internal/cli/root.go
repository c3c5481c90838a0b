// Package cli implements the chailights command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-chailights/internal/calendar"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/tartampluch/go-chailights/internal/engine"
	"github.com/tartampluch/go-chailights/internal/logging"
)

// deps are the collaborators shared by every command.
type deps struct {
	clock     engine.Clock
	converter calendar.Converter
	fetcher   engine.PhotoFetcher
	holidays  *engine.HolidayTable
}

// options holds the persistent flags once parsed.
type options struct {
	deps

	photos   string
	url      string
	token    string
	format   string
	maxItems int
	erev     bool
	outside  bool
	debug    bool
}

// RootCmd is the top-level command.
var RootCmd = NewRootCmd()

// NewRootCmd builds the command tree with the real calendar and network.
func NewRootCmd() *cobra.Command {
	return newRootCmd(deps{
		clock:     engine.RealClock{},
		converter: calendar.Hebcal{},
		fetcher:   engine.NewHTTPFetcher(),
		holidays:  engine.DefaultTable(),
	})
}

func newRootCmd(d deps) *cobra.Command {
	o := &options{deps: d}

	cmd := &cobra.Command{
		Use:   config.CLIName,
		Short: "Find photos taken on a Hebrew date",
		Long: "Match a photo library against the Hebrew calendar: today's date in past years, " +
			"any Hebrew day, or every date of a holiday.",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if o.format != config.FormatJSON && o.format != config.FormatText {
				return fmt.Errorf("%s: %q", config.ErrOutputFormat, o.format)
			}
			o.applyEnv()
			logging.Setup(logging.Options{Out: cmd.ErrOrStderr(), Debug: o.debug, Quiet: !o.debug})
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&o.photos, config.FlagPhotos, "p", "", "Photo export JSON file (default: $"+config.EnvPhotos+")")
	pf.StringVar(&o.url, config.FlagURL, "", "Photo library base URL (default: $"+config.EnvURL+")")
	pf.StringVar(&o.token, config.FlagToken, "", "Access token for --url (default: $"+config.EnvToken+")")
	pf.StringVarP(&o.format, config.FlagFormat, "f", config.FormatJSON, "Output format: json or text")
	pf.IntVar(&o.maxItems, config.FlagMaxItems, config.DefaultMaxItems, "Maximum number of photos to read")
	pf.BoolVar(&o.erev, config.FlagErev, false, "Include the eve of each holiday")
	pf.BoolVar(&o.outside, config.FlagOutside, false, "Add the second festival day observed outside Israel")
	pf.BoolVar(&o.debug, config.FlagDebug, false, "Enable debug logging to stderr")

	cmd.AddCommand(
		newTodayCmd(o),
		newMatchCmd(o),
		newHolidayCmd(o),
		newHolidaysCmd(o),
		newICSCmd(o),
	)
	return cmd
}

// applyEnv fills unset source flags from the environment.
func (o *options) applyEnv() {
	if o.photos == "" {
		o.photos = os.Getenv(config.EnvPhotos)
	}
	if o.url == "" {
		o.url = os.Getenv(config.EnvURL)
	}
	if o.token == "" {
		o.token = os.Getenv(config.EnvToken)
	}
}

func (o *options) flags() engine.Flags {
	return engine.Flags{IncludeErev: o.erev, OutsideIsrael: o.outside}
}

func (o *options) expander() *engine.Expander {
	return &engine.Expander{Converter: o.converter, Holidays: o.holidays, Clock: o.clock}
}

// syncConfig prefers a local export over the web library.
func (o *options) syncConfig() (engine.SyncConfig, error) {
	cfg := engine.SyncConfig{MaxItems: o.maxItems, Flags: o.flags()}
	switch {
	case o.photos != "":
		cfg.Mode = config.SourceModeLocal
		cfg.LocalPath = o.photos
	case o.url != "":
		cfg.Mode = config.SourceModeWeb
		cfg.WebURL = o.url
		cfg.Token = o.token
	default:
		return cfg, errors.New(config.ErrNoSource)
	}
	return cfg, nil
}

// sync lists and tags the library.
func (o *options) sync(ctx context.Context) (engine.SyncResult, error) {
	cfg, err := o.syncConfig()
	if err != nil {
		return engine.SyncResult{}, err
	}
	gen := &engine.Generator{
		Clock:     o.clock,
		Converter: o.converter,
		Holidays:  o.holidays,
		Fetcher:   o.fetcher,
	}
	return gen.RunSync(ctx, cfg)
}

// library returns the index of the synced records.
func (o *options) library(ctx context.Context) (engine.DateIndex, engine.SyncResult, error) {
	res, err := o.sync(ctx)
	if err != nil {
		return nil, res, err
	}
	return engine.BuildIndex(res.Records), res, nil
}
