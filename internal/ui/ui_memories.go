package ui

import (
	"log/slog"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-chailights/internal/config"
	"github.com/tartampluch/go-chailights/internal/engine"
)

// sortMemories orders records by the selected column.
// Date sorts by Gregorian capture day, Hebrew by Hebrew year, image by URL.
func sortMemories(records []engine.PhotoRecord, col int, asc bool) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		var less bool
		switch col {
		case config.ColIDHebrew:
			less = a.HebrewDate.Year < b.HebrewDate.Year
		case config.ColIDImage:
			less = a.ImageURL < b.ImageURL
		default:
			less = a.GregorianDate < b.GregorianDate
		}
		if !asc {
			return !less && !equalMemories(a, b, col)
		}
		return less
	})
}

func equalMemories(a, b engine.PhotoRecord, col int) bool {
	switch col {
	case config.ColIDHebrew:
		return a.HebrewDate.Year == b.HebrewDate.Year
	case config.ColIDImage:
		return a.ImageURL == b.ImageURL
	default:
		return a.GregorianDate == b.GregorianDate
	}
}

// memoryCell renders one table cell.
func memoryCell(r engine.PhotoRecord, col int) string {
	switch col {
	case config.ColIDHebrew:
		return r.HebrewDate.String()
	case config.ColIDImage:
		return r.ImageURL
	default:
		return r.GregorianDate
	}
}

// ShowMemoriesWindow lists the photos taken on today's Hebrew date in past years.
// Only one window is open at a time; headers sort the table.
func (app *ChaiLightsApp) ShowMemoriesWindow() {
	if app.memoriesWindow != nil {
		app.memoriesWindow.RequestFocus()
		return
	}

	app.MemoriesMut.RLock()
	rows := make([]engine.PhotoRecord, len(app.Memories))
	copy(rows, app.Memories)
	today := app.Today
	app.MemoriesMut.RUnlock()

	title := app.GetMsg(config.TKeyWinMemories)
	if today.Year > 0 {
		title += " · " + engine.KeyOf(today).String()
	}
	w := app.App.NewWindow(title)
	app.memoriesWindow = w
	w.Resize(fyne.NewSize(config.MemoriesWinWidth, config.MemoriesWinHeight))

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(rows))

	sortCol := config.ColIDDate
	sortAsc := false
	sortMemories(rows, sortCol, sortAsc)

	table := widget.NewTable(
		func() (int, int) { return len(rows), 3 },
		func() fyne.CanvasObject { return widget.NewLabel(config.TablePlaceholder) },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			if id.Row < len(rows) {
				o.(*widget.Label).SetText(memoryCell(rows[id.Row], id.Col))
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		titleKey := config.TKeyColDate
		switch id.Col {
		case config.ColIDHebrew:
			titleKey = config.TKeyColHebrew
		case config.ColIDImage:
			titleKey = config.TKeyColImage
		}

		text := app.GetMsg(titleKey)
		if id.Col == sortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if sortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				sortCol, sortAsc = id.Col, true
			}
			sortMemories(rows, sortCol, sortAsc)
			slog.Debug(config.LogMsgSorted,
				config.LogKeyComponent, config.CompUI,
				config.LogKeySortCol, sortCol,
				config.LogKeySortAsc, sortAsc)
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDHebrew, config.ColWidthHebrew)
	table.SetColumnWidth(config.ColIDImage, config.ColWidthImage)

	w.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	w.SetOnClosed(func() { app.memoriesWindow = nil })
	w.Show()
}
