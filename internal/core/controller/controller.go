// Package controller owns the session state machine and the trigger
// engine and exposes the single input surface the UI talks to.
package controller

import (
	"log/slog"
	"math/rand"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/notify"
	"focustimer/internal/core/schedule"
	"focustimer/internal/core/timekeeper"
	"focustimer/internal/core/trigger"
)

// Options configures a Controller.
type Options struct {
	Durations    model.Durations
	Muted        bool
	TickInterval time.Duration
	Scheduler    schedule.Scheduler
	Rand         *rand.Rand
	Logger       *slog.Logger
}

// State is the serializable state of both machines.
type State struct {
	Session   model.SessionState `yaml:"session" json:"session"`
	Triggers  model.TriggerState `yaml:"triggers" json:"triggers"`
	Durations model.Durations    `yaml:"durations" json:"durations"`
	Muted     bool               `yaml:"muted" json:"muted"`
}

// Controller routes user input to the timer and the trigger engine.
type Controller struct {
	keeper   *timekeeper.TimeKeeper
	triggers *trigger.Engine
	gate     *notify.Gate
	logger   *slog.Logger
}

// New wires a controller around port.
func New(port notify.Port, options Options) *Controller {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Scheduler == nil {
		options.Scheduler = schedule.Real{}
	}
	gate := notify.NewGate(port, options.Muted)
	return &Controller{
		keeper: timekeeper.New(options.Durations, gate, timekeeper.Config{
			TickInterval: options.TickInterval,
			Scheduler:    options.Scheduler,
		}),
		triggers: trigger.New(gate, trigger.Config{
			Scheduler: options.Scheduler,
			Rand:      options.Rand,
		}),
		gate:   gate,
		logger: options.Logger,
	}
}

// Start runs the timer and counts the start toward the celebration.
func (controller *Controller) Start() {
	controller.keeper.Start()
	controller.triggers.RecordStart()
	controller.logger.Debug("timer started", "state", controller.keeper.Snapshot())
}

// Pause stops the countdown.
func (controller *Controller) Pause() {
	controller.keeper.Pause()
	controller.logger.Debug("timer paused", "remaining", controller.keeper.Snapshot().RemainingSeconds)
}

// Toggle starts a stopped timer and pauses a running one.
func (controller *Controller) Toggle() {
	if controller.keeper.Snapshot().Running {
		controller.Pause()
		return
	}
	controller.Start()
}

// Reset refills the current mode.
func (controller *Controller) Reset() {
	controller.keeper.Reset()
	controller.logger.Debug("timer reset", "mode", controller.keeper.Snapshot().Mode)
}

// SwitchMode stops the timer and loads mode.
func (controller *Controller) SwitchMode(mode model.Mode) {
	if !mode.Valid() {
		controller.logger.Warn("ignoring unknown mode", "mode", mode)
		return
	}
	controller.keeper.SwitchMode(mode)
	controller.logger.Debug("mode switched", "mode", mode)
}

// KeyPress feeds a key into the trigger engine.
func (controller *Controller) KeyPress(key trigger.Key) {
	controller.triggers.KeyPress(key)
}

// HotspotClick counts a hidden hotspot click.
func (controller *Controller) HotspotClick() {
	controller.triggers.HotspotClick()
}

// PrimaryControlActivate handles hovering the primary control.
func (controller *Controller) PrimaryControlActivate() {
	controller.triggers.PrimaryActivate()
}

// SetDuration stores minutes for mode. Non-positive values fall back to
// the mode default.
func (controller *Controller) SetDuration(mode model.Mode, minutes int) {
	if !mode.Valid() {
		controller.logger.Warn("ignoring duration for unknown mode", "mode", mode)
		return
	}
	if minutes <= 0 {
		controller.logger.Info("invalid duration replaced by default", "mode", mode, "minutes", minutes, "default", model.DefaultMinutes(mode))
	}
	durations := controller.keeper.Durations()
	durations.Set(mode, minutes)
	controller.keeper.UpdateDurations(durations)
}

// SetDurationInput parses raw user text for mode.
func (controller *Controller) SetDurationInput(mode model.Mode, text string) {
	minutes, ok := model.ParseMinutes(text)
	if !ok {
		controller.logger.Info("unparseable duration replaced by default", "mode", mode, "input", text)
		minutes = 0
	}
	controller.SetDuration(mode, minutes)
}

// Durations returns the configured durations.
func (controller *Controller) Durations() model.Durations {
	return controller.keeper.Durations()
}

// SetMuted updates the global mute flag.
func (controller *Controller) SetMuted(muted bool) {
	controller.gate.SetMuted(muted)
	controller.logger.Debug("mute changed", "muted", muted)
}

// ToggleMute flips the mute flag and returns the new value.
func (controller *Controller) ToggleMute() bool {
	muted := !controller.gate.Muted()
	controller.SetMuted(muted)
	return muted
}

// Muted reports the mute flag.
func (controller *Controller) Muted() bool {
	return controller.gate.Muted()
}

// Progress returns the elapsed fraction of the current mode.
func (controller *Controller) Progress() float64 {
	return controller.keeper.Progress()
}

// Session returns the session state.
func (controller *Controller) Session() model.SessionState {
	return controller.keeper.Snapshot()
}

// Snapshot returns the combined state.
func (controller *Controller) Snapshot() State {
	return State{
		Session:   controller.keeper.Snapshot(),
		Triggers:  controller.triggers.Snapshot(),
		Durations: controller.keeper.Durations(),
		Muted:     controller.gate.Muted(),
	}
}

// EffectActive reports whether a cosmetic effect is on.
func (controller *Controller) EffectActive(kind trigger.Kind) bool {
	return controller.triggers.Active(kind)
}

// SubscribeSession registers a session observer.
func (controller *Controller) SubscribeSession(buffer int) <-chan timekeeper.Event {
	return controller.keeper.Subscribe(buffer)
}

// SubscribeEffects registers a cosmetic effect observer.
func (controller *Controller) SubscribeEffects(buffer int) <-chan trigger.Event {
	return controller.triggers.Subscribe(buffer)
}

// Close stops all pending callbacks and closes observers.
func (controller *Controller) Close() {
	controller.keeper.Close()
	controller.triggers.Close()
}
