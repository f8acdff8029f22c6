package controller

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/notify"
	"focustimer/internal/core/schedule"
	"focustimer/internal/core/trigger"
)

func newTestController(muted bool) (*Controller, *notify.Recorder, *schedule.Manual) {
	recorder := &notify.Recorder{}
	clock := schedule.NewManual(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	controller := New(recorder, Options{
		Durations: model.DefaultDurations(),
		Muted:     muted,
		Scheduler: clock,
		Rand:      rand.New(rand.NewSource(7)),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return controller, recorder, clock
}

func TestDefaultFocusScenario(t *testing.T) {
	controller, recorder, clock := newTestController(false)

	controller.Start()
	for i := 0; i < 1500; i++ {
		clock.Advance(time.Second)
	}

	session := controller.Session()
	if session.RemainingSeconds != 0 || session.Running || session.CompletedFocusCount != 1 {
		t.Errorf("Expected completed focus session, got %+v", session)
	}
	if recorder.CompletionTones() != 1 {
		t.Errorf("Expected completion tone once, got %d", recorder.CompletionTones())
	}
}

func TestTenStartsRaiseOneCelebration(t *testing.T) {
	controller, _, _ := newTestController(false)
	effects := controller.SubscribeEffects(64)

	for i := 1; i <= 10; i++ {
		controller.Start()
		celebrations := 0
	drain:
		for {
			select {
			case event := <-effects:
				if event.Kind == trigger.KindCelebration && event.Type == trigger.EventRaised {
					celebrations++
				}
			default:
				break drain
			}
		}
		if i < 10 && celebrations != 0 {
			t.Fatalf("Expected no celebration at start %d", i)
		}
		if i == 10 && celebrations != 1 {
			t.Fatalf("Expected celebration at the 10th start, got %d", celebrations)
		}
		controller.Pause()
	}

	if got := controller.Snapshot().Triggers.InteractionCount; got != 10 {
		t.Errorf("Expected 10 interactions, got %d", got)
	}
}

func TestSetDurationNegativeKeepsDefault(t *testing.T) {
	controller, _, _ := newTestController(false)
	controller.SetDuration(model.ModeFocus, -5)
	if got := controller.Durations().Focus; got != 25 {
		t.Errorf("Expected focus to stay 25, got %d", got)
	}
}

func TestSetDurationInput(t *testing.T) {
	controller, _, _ := newTestController(false)

	controller.SetDurationInput(model.ModeShortBreak, "12")
	if got := controller.Durations().ShortBreak; got != 12 {
		t.Fatalf("Expected 12, got %d", got)
	}
	controller.SetDurationInput(model.ModeShortBreak, "twelve")
	if got := controller.Durations().ShortBreak; got != model.DefaultShortBreakMinutes {
		t.Errorf("Expected default short break, got %d", got)
	}

	controller.SetDuration(model.Mode("nap"), 10)
	if controller.Durations() != (model.Durations{Focus: 25, ShortBreak: 5, LongBreak: 15}) {
		t.Errorf("Expected unknown mode ignored, got %+v", controller.Durations())
	}
}

func TestSetDurationAppliesOnNextSwitch(t *testing.T) {
	controller, _, clock := newTestController(false)
	controller.Start()
	clock.Advance(3 * time.Second)

	controller.SetDuration(model.ModeFocus, 50)
	controller.SetDurationInput(model.ModeLongBreak, "20")
	if got := controller.Session().RemainingSeconds; got != 1497 {
		t.Errorf("Expected running session untouched, got %d", got)
	}

	controller.SwitchMode(model.ModeLongBreak)
	if got := controller.Session().RemainingSeconds; got != 1200 {
		t.Errorf("Expected 1200 seconds for long break, got %d", got)
	}
	if got := controller.Progress(); got != 0 {
		t.Errorf("Expected zero progress after switch, got %v", got)
	}
}

func TestMuteSkipsTonesOnly(t *testing.T) {
	controller, recorder, clock := newTestController(true)
	controller.SetDuration(model.ModeFocus, 1)
	controller.Reset()

	controller.Start()
	clock.Advance(time.Minute)

	if recorder.StartTones() != 0 || recorder.CompletionTones() != 0 {
		t.Errorf("Expected no tones while muted")
	}
	if got := len(recorder.Messages()); got != 1 {
		t.Errorf("Expected completion message while muted, got %d", got)
	}

	if controller.ToggleMute() {
		t.Fatal("Expected toggle to unmute")
	}
	controller.Start()
	if recorder.StartTones() != 1 {
		t.Errorf("Expected start tone after unmute, got %d", recorder.StartTones())
	}
}

func TestToggle(t *testing.T) {
	controller, _, _ := newTestController(false)
	controller.Toggle()
	if !controller.Session().Running {
		t.Fatal("Expected toggle to start")
	}
	controller.Toggle()
	if controller.Session().Running {
		t.Fatal("Expected toggle to pause")
	}
	if got := controller.Snapshot().Triggers.InteractionCount; got != 1 {
		t.Errorf("Expected pause not to count as a start, got %d", got)
	}
}

func TestKeyPressAndHotspotRouting(t *testing.T) {
	controller, recorder, _ := newTestController(false)

	for _, key := range trigger.SecretSequence {
		controller.KeyPress(key)
	}
	if !controller.EffectActive(trigger.KindSecretFound) {
		t.Error("Expected secret effect")
	}
	if len(recorder.Messages()) != 1 {
		t.Errorf("Expected secret message, got %v", recorder.Messages())
	}

	for i := 0; i < trigger.HotspotThreshold; i++ {
		controller.HotspotClick()
	}
	if !controller.EffectActive(trigger.KindAlternatePalette) {
		t.Error("Expected alternate palette after 21 clicks")
	}

	controller.PrimaryControlActivate()
	if !controller.EffectActive(trigger.KindSparkles) {
		t.Error("Expected sparkles after activation")
	}
}

func TestSnapshotIsIndependentOfTriggers(t *testing.T) {
	controller, _, _ := newTestController(false)
	controller.SwitchMode(model.ModeShortBreak)
	controller.HotspotClick()
	controller.KeyPress("Space")

	state := controller.Snapshot()
	if state.Session.Mode != model.ModeShortBreak || state.Session.RemainingSeconds != 300 {
		t.Errorf("Unexpected session state %+v", state.Session)
	}
	if state.Triggers.HotspotClicks != 1 || len(state.Triggers.KeySequence) != 1 {
		t.Errorf("Unexpected trigger state %+v", state.Triggers)
	}
	if state.Muted {
		t.Error("Expected unmuted")
	}
}

func TestCloseStopsScheduling(t *testing.T) {
	controller, _, clock := newTestController(false)
	controller.Start()
	controller.PrimaryControlActivate()
	controller.Close()

	if clock.Pending() != 0 {
		t.Errorf("Expected no pending callbacks after close, got %d", clock.Pending())
	}
}
