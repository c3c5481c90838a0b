package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to the form controls read back on save.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	accountEntry  *widget.Entry
	tokenEntry    *widget.Entry
	pathEntry     *widget.Entry
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
	entryMaxItems *NumericalEntry
	checkErev     *widget.Check
	checkOutside  *widget.Check
}

// validatePort checks the server port entry.
func (app *ChaiLightsApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// newSettingsWidgets builds the controls pre-filled from preferences.
func (app *ChaiLightsApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeWeb),
		app.GetMsg(config.TKeyModeLocal),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(app.Preferences.StringWithFallback(config.PrefPhotosURL, config.DefaultPhotosURL))
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.accountEntry = widget.NewEntry()
	sw.accountEntry.SetText(app.Preferences.String(config.PrefAccount))

	sw.tokenEntry = widget.NewPasswordEntry()
	if account := sw.accountEntry.Text; account != "" {
		if tok, err := keyring.Get(config.KeyringService, account); err == nil {
			sw.tokenEntry.SetText(tok)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(app.Preferences.String(config.PrefLocalPath))

	sw.entryInterval = NewNumericalEntry()
	sw.entryInterval.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.entryMaxItems = NewNumericalEntry()
	sw.entryMaxItems.SetText(strconv.Itoa(app.Preferences.IntWithFallback(config.PrefMaxItems, config.DefaultMaxItems)))

	sw.checkErev = widget.NewCheck(app.GetMsg(config.TKeyLblErev), nil)
	sw.checkErev.Checked = app.Preferences.Bool(config.PrefIncludeErev)

	sw.checkOutside = widget.NewCheck(app.GetMsg(config.TKeyLblOutside), nil)
	sw.checkOutside.Checked = app.Preferences.Bool(config.PrefOutsideIsrael)

	return sw
}

// ShowSettingsWindow displays the configuration dialog.
func (app *ChaiLightsApp) ShowSettingsWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	sw := app.newSettingsWidgets()

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	sourceCard := app.buildSourceCard(w, sw, onLayoutChange)

	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	widInterval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)
	itemInterval := widget.NewFormItem(app.GetMsg(config.TKeyLblRefresh), widInterval)
	itemInterval.HintText = app.GetMsg(config.TKeyHelpInterval)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	itemMax := widget.NewFormItem(app.GetMsg(config.TKeyLblMaxItems), sw.entryMaxItems)
	itemMax.HintText = app.GetMsg(config.TKeyHelpMaxItems)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "",
		widget.NewForm(itemLang, itemInterval, itemPort, itemMax))

	matchingCard := widget.NewCard(app.GetMsg(config.TKeyLblMatching), "",
		container.NewVBox(sw.checkErev, sw.checkOutside))

	saveAction := func() {
		// Only the port blocks saving.
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
		go app.performSync(true)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		sourceCard,
		generalCard,
		matchingCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		content.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	}

	w.SetContent(content)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })

	refreshLayout()
	w.Show()
}

// buildSourceCard switches between the web library form and a local export.
func (app *ChaiLightsApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtJSON}))
		d.Show()
	})

	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)

	webForm := widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblAccount), sw.accountEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblToken), sw.tokenEntry),
	)
	localForm := container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)

	applyMode := func(mode string) {
		if mode == app.GetMsg(config.TKeyModeLocal) {
			webForm.Hide()
			localForm.Show()
		} else {
			webForm.Show()
			localForm.Hide()
		}
	}

	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeLocal))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeWeb))
	}
	applyMode(sw.modeSelect.Selected)

	sw.modeSelect.OnChanged = func(mode string) {
		applyMode(mode)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, webForm, localForm))
}

// saveSettings persists the form and refreshes the localized labels.
// Empty or zero numeric fields fall back to their disabled or default values.
func (app *ChaiLightsApp) saveSettings(sw *settingsWidgets) {
	log := slog.With(config.LogKeyComponent, config.CompUISet)
	log.Info(config.MsgPrefsSaving)

	mode := config.SourceModeWeb
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeLocal) {
		mode = config.SourceModeLocal
	}

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefSourceMode, mode)
	app.Preferences.SetString(config.PrefPhotosURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefAccount, sw.accountEntry.Text)
	app.Preferences.SetString(config.PrefLocalPath, sw.pathEntry.Text)
	app.Preferences.SetBool(config.PrefIncludeErev, sw.checkErev.Checked)
	app.Preferences.SetBool(config.PrefOutsideIsrael, sw.checkOutside.Checked)

	// The token never touches the preferences file.
	if sw.accountEntry.Text != "" && sw.tokenEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.accountEntry.Text, sw.tokenEntry.Text); err != nil {
			log.Error(config.MsgKeyringSaveFail, config.LogKeyError, err)
		}
	}

	if i, err := strconv.Atoi(sw.entryInterval.Text); err == nil && i > 0 {
		app.Preferences.SetInt(config.PrefInterval, i)
	} else {
		app.Preferences.SetInt(config.PrefInterval, config.DisabledInterval)
		log.Info(config.MsgAutoRefreshOff)
	}

	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	if n, err := strconv.Atoi(sw.entryMaxItems.Text); err == nil && n > 0 {
		app.Preferences.SetInt(config.PrefMaxItems, n)
	} else {
		app.Preferences.SetInt(config.PrefMaxItems, config.DefaultMaxItems)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
}
