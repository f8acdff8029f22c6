// Package timerview renders the focus timer window and turns pointer and
// keyboard input into controller calls.
package timerview

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/trigger"
	"focustimer/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Controller is the input surface the window drives.
type Controller interface {
	Toggle()
	Reset()
	SwitchMode(mode model.Mode)
	KeyPress(key trigger.Key)
	HotspotClick()
	PrimaryControlActivate()
	ToggleMute() bool
	Muted() bool
	Session() model.SessionState
	Progress() float64
}

// Window manages the main timer UI.
type Window struct {
	window        fyne.Window
	controller    Controller
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	timerLabel    *canvas.Text
	bannerLabel   *canvas.Text
	heartsLabel   *canvas.Text
	sparkleLabel  *canvas.Text
	countLabel    *widget.Label
	progress      *widget.ProgressBar
	primary       *hoverButton
	resetButton   *widget.Button
	muteButton    *widget.Button
	modeButtons   map[model.Mode]*widget.Button
	hotspot       *hotspot
	hearts        *animation.Engine
	sparkles      *animation.Engine
	onPreferences func()

	mu          sync.Mutex
	mode        model.Mode
	alternate   bool
	bannerTimer *time.Timer
	bannerSeq   uint64
}

// New creates the timer window.
func New(app fyne.App, controller Controller, onPreferences func()) *Window {
	window := app.NewWindow("Focus Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:        window,
		controller:    controller,
		onPreferences: onPreferences,
		modeButtons:   make(map[model.Mode]*widget.Button, len(model.Modes)),
		mode:          model.ModeFocus,
	}

	view.background = canvas.NewRectangle(backgroundFor(model.ModeFocus, false))

	view.titleLabel = canvas.NewText("Focus Timer", color.White)
	view.titleLabel.Alignment = fyne.TextAlignCenter
	view.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	view.titleLabel.TextSize = 22
	view.hotspot = newHotspot(controller.HotspotClick)

	view.timerLabel = canvas.NewText("--:--", color.White)
	view.timerLabel.Alignment = fyne.TextAlignCenter
	view.timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.timerLabel.TextSize = 56

	view.bannerLabel = canvas.NewText("", color.White)
	view.bannerLabel.Alignment = fyne.TextAlignCenter
	view.bannerLabel.TextSize = 16

	view.heartsLabel = canvas.NewText("", color.NRGBA{R: 0xff, G: 0x4d, B: 0x6d, A: 0xff})
	view.heartsLabel.TextSize = 24
	view.sparkleLabel = canvas.NewText("", color.NRGBA{R: 0xff, G: 0xe0, B: 0x66, A: 0xff})
	view.sparkleLabel.TextSize = 20

	view.hearts = animation.New(animation.DefaultConfig(), func(frame string) {
		fyne.Do(func() { setText(view.heartsLabel, frame) })
	})
	view.sparkles = animation.New(animation.DefaultConfig(), func(frame string) {
		fyne.Do(func() { setText(view.sparkleLabel, frame) })
	})

	view.countLabel = widget.NewLabel("")
	view.countLabel.Alignment = fyne.TextAlignCenter
	view.progress = widget.NewProgressBar()
	view.progress.TextFormatter = func() string { return "" }

	modes := make([]fyne.CanvasObject, 0, len(model.Modes))
	for _, mode := range model.Modes {
		mode := mode
		button := widget.NewButton(mode.Label(), func() {
			controller.SwitchMode(mode)
		})
		view.modeButtons[mode] = button
		modes = append(modes, button)
	}

	view.primary = newHoverButton(theme.MediaPlayIcon(), controller.Toggle, controller.PrimaryControlActivate)
	view.resetButton = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), controller.Reset)
	view.muteButton = widget.NewButtonWithIcon("", muteIcon(controller.Muted()), func() {
		view.SetMuted(controller.ToggleMute())
	})
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if view.onPreferences != nil {
			view.onPreferences()
		}
	})

	content := container.NewVBox(
		container.NewStack(view.titleLabel, view.hotspot),
		container.NewGridWithColumns(len(modes), modes...),
		container.NewCenter(view.timerLabel),
		view.progress,
		container.NewCenter(container.NewHBox(view.primary, view.resetButton)),
		container.NewCenter(container.NewHBox(view.heartsLabel, view.sparkleLabel)),
		view.countLabel,
		container.NewCenter(view.bannerLabel),
		container.NewHBox(layout.NewSpacer(), view.muteButton, settingsButton),
	)
	window.SetContent(container.NewStack(view.background, container.NewPadded(content)))
	window.Canvas().SetOnTypedKey(view.handleTypedKey)
	window.Resize(fyne.NewSize(380, 460))

	view.render(controller.Session(), controller.Progress())
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Window returns the underlying Fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// SetSession redraws the countdown from a session snapshot.
func (view *Window) SetSession(state model.SessionState, progress float64) {
	fyne.Do(func() {
		view.render(state, progress)
	})
}

// SetMuted updates the mute button icon.
func (view *Window) SetMuted(muted bool) {
	fyne.Do(func() {
		view.muteButton.SetIcon(muteIcon(muted))
	})
}

// ShowMessage displays text in the banner for duration. A newer message
// replaces the current one.
func (view *Window) ShowMessage(text string, duration time.Duration) {
	view.mu.Lock()
	view.bannerSeq++
	seq := view.bannerSeq
	if view.bannerTimer != nil {
		view.bannerTimer.Stop()
	}
	view.bannerTimer = time.AfterFunc(duration, func() {
		view.clearBanner(seq)
	})
	view.mu.Unlock()

	fyne.Do(func() { setText(view.bannerLabel, text) })
}

// SetEffect turns a cosmetic effect on or off.
func (view *Window) SetEffect(kind trigger.Kind, active bool) {
	switch kind {
	case trigger.KindCelebration:
		if active {
			view.hearts.Play(context.Background(), animation.Hearts)
		} else {
			view.hearts.Stop()
		}
	case trigger.KindSparkles:
		if active {
			view.sparkles.Play(context.Background(), animation.Sparkles)
		} else {
			view.sparkles.Stop()
		}
	case trigger.KindAlternatePalette:
		fyne.Do(func() { view.applyPalette(active) })
	}
}

// Close stops running animations.
func (view *Window) Close() {
	view.hearts.Stop()
	view.sparkles.Stop()
	view.mu.Lock()
	if view.bannerTimer != nil {
		view.bannerTimer.Stop()
	}
	view.mu.Unlock()
}

func (view *Window) clearBanner(seq uint64) {
	view.mu.Lock()
	current := view.bannerSeq == seq
	if current {
		view.bannerTimer = nil
	}
	view.mu.Unlock()
	if current {
		fyne.Do(func() { setText(view.bannerLabel, "") })
	}
}

func (view *Window) handleTypedKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		view.controller.Toggle()
	}
	view.controller.KeyPress(keyFromFyne(event.Name))
}

func (view *Window) render(state model.SessionState, progress float64) {
	view.timerLabel.Text = formatSeconds(state.RemainingSeconds)
	view.timerLabel.Refresh()
	view.progress.SetValue(progress)
	view.countLabel.SetText(fmt.Sprintf("Completed focus sessions: %d", state.CompletedFocusCount))

	if state.Running {
		view.primary.SetIcon(theme.MediaPauseIcon())
	} else {
		view.primary.SetIcon(theme.MediaPlayIcon())
	}

	for mode, button := range view.modeButtons {
		importance := widget.MediumImportance
		if mode == state.Mode {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}

	view.mu.Lock()
	changed := view.mode != state.Mode
	view.mode = state.Mode
	alternate := view.alternate
	view.mu.Unlock()
	if changed {
		view.setBackground(state.Mode, alternate)
	}
}

func (view *Window) applyPalette(alternate bool) {
	view.mu.Lock()
	view.alternate = alternate
	mode := view.mode
	view.mu.Unlock()
	view.setBackground(mode, alternate)
}

func (view *Window) setBackground(mode model.Mode, alternate bool) {
	view.background.FillColor = backgroundFor(mode, alternate)
	view.background.Refresh()
}

func setText(label *canvas.Text, text string) {
	label.Text = text
	label.Refresh()
}

func muteIcon(muted bool) fyne.Resource {
	if muted {
		return theme.VolumeMuteIcon()
	}
	return theme.VolumeUpIcon()
}
