package trigger

import (
	"math/rand"
	"testing"
	"time"

	"focustimer/internal/core/notify"
	"focustimer/internal/core/schedule"
)

// fixedSource always yields the same value, which pins Float64 and Intn.
type fixedSource struct {
	value int64
}

func (source fixedSource) Int63() int64 { return source.value }
func (fixedSource) Seed(int64)          {}

func newTestEngine(source rand.Source) (*Engine, *notify.Recorder, *schedule.Manual) {
	recorder := &notify.Recorder{}
	clock := schedule.NewManual(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	if source == nil {
		source = fixedSource{value: 1 << 62}
	}
	engine := New(recorder, Config{Scheduler: clock, Rand: rand.New(source)})
	return engine, recorder, clock
}

func drain(events <-chan Event) []Event {
	var out []Event
	for {
		select {
		case event := <-events:
			out = append(out, event)
		default:
			return out
		}
	}
}

func countRaised(events []Event, kind Kind) int {
	count := 0
	for _, event := range events {
		if event.Kind == kind && event.Type == EventRaised {
			count++
		}
	}
	return count
}

func TestCelebrationOnTenthStart(t *testing.T) {
	engine, _, clock := newTestEngine(nil)
	events := engine.Subscribe(64)

	for i := 1; i <= 9; i++ {
		engine.RecordStart()
	}
	if got := countRaised(drain(events), KindCelebration); got != 0 {
		t.Fatalf("Expected no celebration before the 10th start, got %d", got)
	}

	engine.RecordStart()
	if got := countRaised(drain(events), KindCelebration); got != 1 {
		t.Fatalf("Expected celebration on the 10th start, got %d", got)
	}
	if !engine.Active(KindCelebration) {
		t.Error("Expected celebration active")
	}

	clock.Advance(CelebrationDuration)
	if engine.Active(KindCelebration) {
		t.Error("Expected celebration cleared after 2 seconds")
	}

	for i := 0; i < 50; i++ {
		engine.RecordStart()
	}
	if got := countRaised(drain(events), KindCelebration); got != 0 {
		t.Errorf("Expected celebration never again, got %d", got)
	}
	if got := engine.Snapshot().InteractionCount; got != 60 {
		t.Errorf("Expected 60 interactions, got %d", got)
	}
}

func TestSecretSequence(t *testing.T) {
	t.Run("exact pattern", func(t *testing.T) {
		engine, recorder, _ := newTestEngine(nil)
		events := engine.Subscribe(64)
		for _, key := range SecretSequence {
			engine.KeyPress(key)
		}
		if got := countRaised(drain(events), KindSecretFound); got != 1 {
			t.Errorf("Expected one secret event, got %d", got)
		}
		messages := recorder.Messages()
		if len(messages) != 1 || messages[0].Text != SecretMessage || messages[0].Duration != SecretDuration {
			t.Errorf("Expected secret message for 3s, got %v", messages)
		}
	})

	t.Run("one substitution", func(t *testing.T) {
		for position := range SecretSequence {
			engine, _, _ := newTestEngine(nil)
			events := engine.Subscribe(64)
			for i, key := range SecretSequence {
				if i == position {
					key = Key("KeyX")
				}
				engine.KeyPress(key)
			}
			if got := countRaised(drain(events), KindSecretFound); got != 0 {
				t.Errorf("position %d: expected no secret event, got %d", position, got)
			}
		}
	})

	t.Run("pattern twice in a row", func(t *testing.T) {
		engine, recorder, _ := newTestEngine(nil)
		events := engine.Subscribe(64)
		for round := 0; round < 2; round++ {
			for i, key := range SecretSequence {
				engine.KeyPress(key)
				raised := countRaised(drain(events), KindSecretFound)
				last := i == len(SecretSequence)-1
				if !last && raised != 0 {
					t.Fatalf("round %d: expected no secret event at key %d, got %d", round, i, raised)
				}
				if last && raised != 1 {
					t.Fatalf("round %d: expected one secret event on the last key, got %d", round, raised)
				}
			}
		}
		if got := len(recorder.Messages()); got != 2 {
			t.Errorf("Expected 2 secret messages, got %d", got)
		}
	})

	t.Run("pattern after noise", func(t *testing.T) {
		engine, _, _ := newTestEngine(nil)
		events := engine.Subscribe(64)
		noise := []Key{KeyArrowUp, KeyA, KeyB, "Space", KeyArrowLeft, "Enter", KeyArrowDown, KeyArrowUp, KeyArrowUp, KeyArrowDown}
		for _, key := range noise {
			engine.KeyPress(key)
		}
		if got := countRaised(drain(events), KindSecretFound); got != 0 {
			t.Fatalf("Expected no secret event during noise, got %d", got)
		}
		for i, key := range SecretSequence {
			engine.KeyPress(key)
			raised := countRaised(drain(events), KindSecretFound)
			if i < len(SecretSequence)-1 && raised != 0 {
				t.Fatalf("Expected no secret event at key %d, got %d", i, raised)
			}
			if i == len(SecretSequence)-1 && raised != 1 {
				t.Fatalf("Expected secret event on the last key, got %d", raised)
			}
		}
	})

	t.Run("sliding window", func(t *testing.T) {
		engine, _, _ := newTestEngine(nil)
		events := engine.Subscribe(64)
		engine.KeyPress(KeyArrowUp)
		for _, key := range SecretSequence {
			engine.KeyPress(key)
		}
		if got := countRaised(drain(events), KindSecretFound); got != 1 {
			t.Errorf("Expected secret event with a leading extra key, got %d", got)
		}
		if got := len(engine.Snapshot().KeySequence); got != len(SecretSequence) {
			t.Errorf("Expected buffer capped at %d, got %d", len(SecretSequence), got)
		}
	})
}

func TestSecretExpiresAndLatches(t *testing.T) {
	engine, _, clock := newTestEngine(nil)
	for _, key := range SecretSequence {
		engine.KeyPress(key)
	}
	clock.Advance(SecretDuration - time.Millisecond)
	if !engine.Active(KindSecretFound) {
		t.Fatal("Expected secret still active before 3 seconds")
	}
	clock.Advance(time.Millisecond)
	state := engine.Snapshot()
	if state.SecretFound {
		t.Error("Expected secret cleared after 3 seconds")
	}
	if !state.SecretEverFound {
		t.Error("Expected secret latch to stay set")
	}
}

func TestRaiseRestartsExpiry(t *testing.T) {
	engine, _, clock := newTestEngine(nil)
	events := engine.Subscribe(64)

	engine.PrimaryActivate()
	clock.Advance(800 * time.Millisecond)
	engine.PrimaryActivate()
	clock.Advance(800 * time.Millisecond)

	if !engine.Active(KindSparkles) {
		t.Fatal("Expected re-raised sparkles to still be active")
	}
	clock.Advance(200 * time.Millisecond)
	if engine.Active(KindSparkles) {
		t.Error("Expected sparkles cleared one second after the last raise")
	}

	cleared := 0
	for _, event := range drain(events) {
		if event.Kind == KindSparkles && event.Type == EventCleared {
			cleared++
		}
	}
	if cleared != 1 {
		t.Errorf("Expected exactly one clear, got %d", cleared)
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected no pending expiries, got %d", clock.Pending())
	}
}

func TestFlavorMessageDeterministic(t *testing.T) {
	engine, recorder, clock := newTestEngine(fixedSource{value: 0})
	engine.PrimaryActivate()

	messages := recorder.Messages()
	if len(messages) != 1 {
		t.Fatalf("Expected a flavor message, got %v", messages)
	}
	if messages[0].Text != FlavorMessages[0] || messages[0].Duration != FlavorDuration {
		t.Errorf("Expected %q for 2.5s, got %+v", FlavorMessages[0], messages[0])
	}
	if !engine.Active(KindFlavorMessage) {
		t.Error("Expected flavor effect active")
	}
	clock.Advance(FlavorDuration)
	if engine.Active(KindFlavorMessage) {
		t.Error("Expected flavor effect cleared after 2.5 seconds")
	}
}

func TestFlavorMessageSkipped(t *testing.T) {
	engine, recorder, _ := newTestEngine(fixedSource{value: 1 << 62})
	engine.PrimaryActivate()

	if got := len(recorder.Messages()); got != 0 {
		t.Errorf("Expected no flavor message, got %d", got)
	}
	if !engine.Active(KindSparkles) {
		t.Error("Expected sparkles on every activation")
	}
}

func TestFlavorMessageRate(t *testing.T) {
	engine, recorder, _ := newTestEngine(rand.NewSource(42))
	const activations = 10000
	for i := 0; i < activations; i++ {
		engine.PrimaryActivate()
	}

	messages := recorder.Messages()
	if len(messages) < 1200 || len(messages) > 1800 {
		t.Errorf("Expected roughly 15%% flavor messages, got %d of %d", len(messages), activations)
	}
	known := make(map[string]bool)
	for _, text := range FlavorMessages {
		known[text] = true
	}
	seen := make(map[string]bool)
	for _, message := range messages {
		if !known[message.Text] {
			t.Fatalf("Unexpected flavor message %q", message.Text)
		}
		seen[message.Text] = true
	}
	if len(seen) != len(FlavorMessages) {
		t.Errorf("Expected all %d messages to appear, saw %d", len(FlavorMessages), len(seen))
	}
}

func TestHotspotPalette(t *testing.T) {
	engine, _, clock := newTestEngine(nil)

	for i := 1; i <= 20; i++ {
		engine.HotspotClick()
	}
	if engine.Active(KindAlternatePalette) {
		t.Fatal("Expected palette off before the 21st click")
	}

	engine.HotspotClick()
	if !engine.Active(KindAlternatePalette) {
		t.Fatal("Expected palette on at the 21st click")
	}
	clock.Advance(time.Hour)
	if !engine.Active(KindAlternatePalette) {
		t.Fatal("Expected palette to persist without expiry")
	}

	engine.HotspotClick()
	if engine.Active(KindAlternatePalette) {
		t.Error("Expected palette to flip off at the 22nd click")
	}
	engine.HotspotClick()
	if !engine.Active(KindAlternatePalette) {
		t.Error("Expected palette to flip on at the 23rd click")
	}
	if got := engine.Snapshot().HotspotClicks; got != 23 {
		t.Errorf("Expected 23 hotspot clicks, got %d", got)
	}
	if got := engine.Snapshot().InteractionCount; got != 23 {
		t.Errorf("Expected hotspot clicks in the interaction count, got %d", got)
	}
	if engine.Active(KindCelebration) {
		t.Error("Expected hotspot clicks not to raise the celebration")
	}
}

func TestHotspotAndStartsShareCount(t *testing.T) {
	t.Run("mixed count", func(t *testing.T) {
		engine, _, _ := newTestEngine(nil)
		for i := 0; i < 5; i++ {
			engine.HotspotClick()
		}
		engine.RecordStart()
		state := engine.Snapshot()
		if state.InteractionCount != 6 {
			t.Errorf("Expected interaction count 6, got %d", state.InteractionCount)
		}
		if state.HotspotClicks != 5 {
			t.Errorf("Expected 5 hotspot clicks, got %d", state.HotspotClicks)
		}
	})

	t.Run("start reaching ten celebrates", func(t *testing.T) {
		engine, _, _ := newTestEngine(nil)
		events := engine.Subscribe(64)
		for i := 0; i < 5; i++ {
			engine.HotspotClick()
		}
		for i := 0; i < 4; i++ {
			engine.RecordStart()
		}
		if got := countRaised(drain(events), KindCelebration); got != 0 {
			t.Fatalf("Expected no celebration at count 9, got %d", got)
		}
		engine.RecordStart()
		if got := countRaised(drain(events), KindCelebration); got != 1 {
			t.Errorf("Expected celebration when a start reaches 10, got %d", got)
		}
	})

	t.Run("hotspot reaching ten does not celebrate", func(t *testing.T) {
		engine, _, _ := newTestEngine(nil)
		events := engine.Subscribe(64)
		for i := 0; i < 9; i++ {
			engine.RecordStart()
		}
		engine.HotspotClick()
		engine.RecordStart()
		if got := countRaised(drain(events), KindCelebration); got != 0 {
			t.Errorf("Expected no celebration, got %d", got)
		}
		if got := engine.Snapshot().InteractionCount; got != 11 {
			t.Errorf("Expected interaction count 11, got %d", got)
		}
	})

	t.Run("starts bring palette threshold closer", func(t *testing.T) {
		engine, _, _ := newTestEngine(nil)
		for i := 0; i < 15; i++ {
			engine.RecordStart()
		}
		for i := 0; i < 5; i++ {
			engine.HotspotClick()
		}
		if engine.Active(KindAlternatePalette) {
			t.Fatal("Expected palette off at interaction count 20")
		}
		engine.HotspotClick()
		if !engine.Active(KindAlternatePalette) {
			t.Error("Expected palette on when a hotspot click reaches 21")
		}
		engine.RecordStart()
		if !engine.Active(KindAlternatePalette) {
			t.Error("Expected starts not to flip the palette")
		}
	})
}

func TestCloseStopsExpiries(t *testing.T) {
	engine, _, clock := newTestEngine(nil)
	events := engine.Subscribe(8)
	engine.PrimaryActivate()
	engine.Close()
	engine.Close()

	if clock.Pending() != 0 {
		t.Errorf("Expected expiries cancelled, got %d pending", clock.Pending())
	}
	for range events {
	}
	if _, ok := <-engine.Subscribe(1); ok {
		t.Error("Expected closed channel after Close")
	}
}
