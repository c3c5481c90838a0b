package ui

import (
	"embed"
	"encoding/json"
	"log/slog"
	"path"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-chailights/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const (
	localeDir    = "locales"
	localePrefix = "active."
	localeExt    = ".json"
)

// localeCode extracts "he" from "active.he.json".
func localeCode(name string) (string, bool) {
	if !strings.HasPrefix(name, localePrefix) || !strings.HasSuffix(name, localeExt) {
		return "", false
	}
	code := strings.TrimSuffix(strings.TrimPrefix(name, localePrefix), localeExt)
	if code == "" {
		return "", false
	}
	if _, err := language.Parse(code); err != nil {
		return "", false
	}
	return code, true
}

// SetupI18n loads the embedded message files and records the languages found.
func (app *ChaiLightsApp) SetupI18n() {
	log := slog.With(config.LogKeyComponent, config.CompI18n)

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(localeDir)
	if err != nil {
		log.Error(config.ErrLocalesAccess, config.LogKeyError, err)
		return
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		code, ok := localeCode(name)
		if !ok {
			log.Warn(config.MsgLocaleBadName, config.LogKeyFile, name)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, path.Join(localeDir, name)); err != nil {
			log.Error(config.ErrLocaleLoad, config.LogKeyFile, name, config.LogKeyError, err)
			continue
		}
		langs = append(langs, code)
		log.Debug(config.MsgLocaleLoaded, config.LogKeyLang, code)
	}

	app.SupportedLanguages = langs
	app.I18nBundle = bundle
	app.UpdateLocalizer()
}

// UpdateLocalizer follows the language preference.
func (app *ChaiLightsApp) UpdateLocalizer() {
	if app.I18nBundle == nil {
		return
	}
	lang := app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage)
	app.Localizer = i18n.NewLocalizer(app.I18nBundle, lang, config.DefaultLanguage)
}

// GetMsg translates a key, returning the key itself when no message exists.
func (app *ChaiLightsApp) GetMsg(key string) string {
	if app.Localizer == nil {
		return key
	}
	msg, err := app.Localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
