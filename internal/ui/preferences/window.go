package preferences

import (
	"fmt"
	"strconv"

	"focustimer/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window  fyne.Window
	entries map[model.Mode]*widget.Entry
	muted   *widget.Check
	onSave  func(Input)
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Input)) *Window {
	window := app.NewWindow("Focus Timer Settings")

	entries := make(map[model.Mode]*widget.Entry, len(model.Modes))
	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, mode := range model.Modes {
		entry := widget.NewEntry()
		entry.Validator = boundsValidator(mode)
		entries[mode] = entry

		bounds := model.Bounds(mode)
		unit := widget.NewLabel(fmt.Sprintf("min (%d-%d)", bounds.Min, bounds.Max))
		form.Add(container.NewHBox(widget.NewLabel(mode.Label()), entry, unit))
	}

	muted := widget.NewCheck("Mute sounds", nil)
	form.Add(muted)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(360, 260))

	prefs := &Window{
		window:  window,
		entries: entries,
		muted:   muted,
		onSave:  onSave,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = window.Hide
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	for mode, entry := range prefs.entries {
		entry.SetText(fmt.Sprintf("%d", settings.Durations.Minutes(mode)))
	}
	prefs.muted.SetChecked(settings.Muted)
}

func (prefs *Window) handleSave() {
	input := Input{
		Durations: make(map[model.Mode]string, len(prefs.entries)),
		Muted:     prefs.muted.Checked,
	}
	for mode, entry := range prefs.entries {
		input.Durations[mode] = clampEntry(mode, entry.Text)
	}

	if prefs.onSave != nil {
		prefs.onSave(input)
	}
	prefs.window.Hide()
}

// clampEntry applies the widget bounds to parseable input. Anything else
// is passed through untouched so the controller can substitute the default.
func clampEntry(mode model.Mode, text string) string {
	minutes, ok := model.ParseMinutes(text)
	if !ok {
		return text
	}
	bounds := model.Bounds(mode)
	if minutes < bounds.Min {
		minutes = bounds.Min
	}
	if minutes > bounds.Max {
		minutes = bounds.Max
	}
	return strconv.Itoa(minutes)
}

func boundsValidator(mode model.Mode) fyne.StringValidator {
	bounds := model.Bounds(mode)
	return func(text string) error {
		minutes, ok := model.ParseMinutes(text)
		if !ok || !bounds.Contains(minutes) {
			return fmt.Errorf("enter %d-%d minutes", bounds.Min, bounds.Max)
		}
		return nil
	}
}
