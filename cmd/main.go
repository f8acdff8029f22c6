package main

import (
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"focustimer/internal/audio"
	"focustimer/internal/config"
	"focustimer/internal/core/controller"
	"focustimer/internal/core/notify"
	"focustimer/internal/core/timekeeper"
	"focustimer/internal/core/trigger"
	"focustimer/internal/platform"
	"focustimer/internal/storage"
	"focustimer/internal/ui/preferences"
	"focustimer/internal/ui/timerview"
	"focustimer/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName     = "FocusTimer"
	eventBuffer = 64
)

// bannerRelay forwards messages to the timer window once it exists.
type bannerRelay struct {
	view atomic.Pointer[timerview.Window]
}

func (relay *bannerRelay) ShowMessage(text string, duration time.Duration) {
	if view := relay.view.Load(); view != nil {
		view.ShowMessage(text, duration)
	}
}

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn("Failed to load .env", "error", err)
	}
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	guard, err := platform.AcquireSingleInstance(appName, logger)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("Focus timer already running")
			return
		}
		logger.Error("Failed to acquire instance lock", "error", err)
		os.Exit(1)
	}
	defer func() {
		if releaseErr := guard.Release(); releaseErr != nil {
			logger.Warn("Failed to release instance lock", "error", releaseErr)
		}
	}()

	settings, err := storage.LoadSettings(appName, cfg.SettingsPath)
	if err != nil {
		logger.Warn("Using default settings", "error", err)
		settings = preferences.DefaultSettings()
	}
	if cfg.MutedSet {
		settings.Muted = cfg.Muted
	}

	player, err := audio.NewPlayer(logger)
	if err != nil {
		logger.Warn("Audio unavailable, tones disabled", "error", err)
	}

	relay := &bannerRelay{}
	timer := controller.New(notify.Fanout{Tones: player, Messages: relay}, controller.Options{
		Durations:    settings.Durations,
		Muted:        settings.Muted,
		TickInterval: cfg.TickInterval,
		Logger:       logger,
	})
	defer timer.Close()

	fyneApp := app.NewWithID("com.focustimer.app")

	var prefsWindow *preferences.Window
	view := timerview.New(fyneApp, timer, func() {
		prefsWindow.UpdateSettings(preferences.Settings{Durations: timer.Durations(), Muted: timer.Muted()})
		prefsWindow.Show()
	})
	defer view.Close()
	relay.view.Store(view)
	view.SetMuted(settings.Muted)

	var trayManager *tray.Manager
	applyMuted := func(muted bool) {
		view.SetMuted(muted)
		if trayManager != nil {
			fyne.Do(func() { trayManager.SetMuted(muted) })
		}
	}

	prefsWindow = preferences.New(fyneApp, settings, func(input preferences.Input) {
		for mode, text := range input.Durations {
			timer.SetDurationInput(mode, text)
		}
		timer.SetMuted(input.Muted)
		applyMuted(input.Muted)
		durations := timer.Durations()
		logger.Info("Settings applied",
			"focus", durations.Focus,
			"short_break", durations.ShortBreak,
			"long_break", durations.LongBreak,
			"muted", input.Muted)
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        view.Show,
			OnToggle:      timer.Toggle,
			OnReset:       timer.Reset,
			OnSwitchMode:  timer.SwitchMode,
			OnToggleMute:  func() { applyMuted(timer.ToggleMute()) },
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.SetMuted(settings.Muted)
		trayManager.SetSession(timer.Session())
	} else {
		logger.Debug("System tray unsupported on this platform")
	}

	guard.OnActivate(func() {
		fyne.Do(view.Show)
	})

	sessionEvents := timer.SubscribeSession(eventBuffer)
	go func() {
		for event := range sessionEvents {
			view.SetSession(event.State, event.Progress)
			if trayManager != nil {
				state := event.State
				fyne.Do(func() { trayManager.SetSession(state) })
			}
			if event.Type == timekeeper.EventComplete {
				logger.Info("Session complete", "mode", event.State.Mode, "completed_focus", event.State.CompletedFocusCount)
			}
		}
	}()

	effectEvents := timer.SubscribeEffects(eventBuffer)
	go func() {
		for event := range effectEvents {
			view.SetEffect(event.Kind, event.Type == trigger.EventRaised)
			logger.Debug("Effect", "kind", event.Kind, "type", event.Type)
		}
	}()

	view.Window().SetMaster()
	view.Show()
	fyneApp.Run()
}
