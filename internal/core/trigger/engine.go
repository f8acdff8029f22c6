// Package trigger turns interaction counts and key sequences into
// cosmetic effects. Effects expire on the shared scheduler; the engine
// never touches timer state.
package trigger

import (
	"math/rand"
	"sync"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/notify"
	"focustimer/internal/core/schedule"
)

// Config contains runtime options for Engine.
type Config struct {
	Scheduler schedule.Scheduler
	Rand      *rand.Rand
}

type effect struct {
	active     bool
	timer      schedule.Timer
	generation uint64
}

// Engine evaluates the trigger rules on every interaction.
type Engine struct {
	mu              sync.Mutex
	options         Config
	notifier        notify.Port
	interactions    int
	hotspotClicks   int
	keys            *keyWindow
	effects         map[Kind]*effect
	palette         bool
	secretEverFound bool
	events          []chan Event
	closed          bool
}

// New creates an Engine with all counters at zero.
func New(notifier notify.Port, options Config) *Engine {
	if options.Scheduler == nil {
		options.Scheduler = schedule.Real{}
	}
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Engine{
		options:  options,
		notifier: notifier,
		keys:     newKeyWindow(len(SecretSequence)),
		effects: map[Kind]*effect{
			KindCelebration:   {},
			KindSecretFound:   {},
			KindFlavorMessage: {},
			KindSparkles:      {},
		},
	}
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// RecordStart counts a start action. The start that moves the interaction
// count from 9 to 10 raises the celebration.
func (engine *Engine) RecordStart() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.interactions++
	if engine.interactions == CelebrationThreshold {
		engine.raiseLocked(KindCelebration, CelebrationDuration, "")
	}
}

// KeyPress feeds one key into the sliding window and checks the pattern.
func (engine *Engine) KeyPress(key Key) {
	engine.mu.Lock()
	engine.keys.push(key)
	matched := engine.keys.matches(SecretSequence)
	if matched {
		engine.secretEverFound = true
		engine.raiseLocked(KindSecretFound, SecretDuration, SecretMessage)
	}
	engine.mu.Unlock()

	if matched {
		engine.notifier.ShowMessage(SecretMessage, SecretDuration)
	}
}

// PrimaryActivate handles hovering or activating the primary control:
// sparkles every time, and occasionally a flavor message.
func (engine *Engine) PrimaryActivate() {
	engine.mu.Lock()
	engine.raiseLocked(KindSparkles, SparklesDuration, "")
	message := ""
	if engine.options.Rand.Float64() < FlavorChance {
		message = FlavorMessages[engine.options.Rand.Intn(len(FlavorMessages))]
		engine.raiseLocked(KindFlavorMessage, FlavorDuration, message)
	}
	engine.mu.Unlock()

	if message != "" {
		engine.notifier.ShowMessage(message, FlavorDuration)
	}
}

// HotspotClick counts a hidden hotspot click toward the shared
// interaction count. Once that count reaches 21, every click flips the
// alternate palette. Only starts can raise the celebration.
func (engine *Engine) HotspotClick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.hotspotClicks++
	engine.interactions++
	if engine.interactions < HotspotThreshold {
		return
	}
	engine.palette = !engine.palette
	eventType := EventCleared
	if engine.palette {
		eventType = EventRaised
	}
	engine.emitLocked(Event{Type: eventType, Kind: KindAlternatePalette})
}

// Active reports whether the effect of kind is currently on.
func (engine *Engine) Active(kind Kind) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if kind == KindAlternatePalette {
		return engine.palette
	}
	current, ok := engine.effects[kind]
	return ok && current.active
}

// Snapshot returns the current trigger state.
func (engine *Engine) Snapshot() model.TriggerState {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return model.TriggerState{
		InteractionCount: engine.interactions,
		HotspotClicks:    engine.hotspotClicks,
		KeySequence:      engine.keys.strings(),
		Celebration:      engine.effects[KindCelebration].active,
		SecretFound:      engine.effects[KindSecretFound].active,
		FlavorMessage:    engine.effects[KindFlavorMessage].active,
		Sparkles:         engine.effects[KindSparkles].active,
		AlternatePalette: engine.palette,
		SecretEverFound:  engine.secretEverFound,
	}
}

// Close cancels pending expiries and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	for _, current := range engine.effects {
		current.generation++
		if current.timer != nil {
			current.timer.Stop()
			current.timer = nil
		}
	}
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// raiseLocked turns the effect on, restarting its expiry if it was
// already active.
func (engine *Engine) raiseLocked(kind Kind, duration time.Duration, message string) {
	current := engine.effects[kind]
	if current.timer != nil {
		current.timer.Stop()
		current.timer = nil
	}
	current.generation++
	current.active = true
	if !engine.closed {
		generation := current.generation
		current.timer = engine.options.Scheduler.AfterFunc(duration, func() {
			engine.expire(kind, generation)
		})
	}
	engine.emitLocked(Event{Type: EventRaised, Kind: kind, Message: message})
}

func (engine *Engine) expire(kind Kind, generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	current := engine.effects[kind]
	if engine.closed || current.generation != generation {
		return
	}
	current.active = false
	current.timer = nil
	engine.emitLocked(Event{Type: EventCleared, Kind: kind})
}

func (engine *Engine) emitLocked(event Event) {
	event.At = engine.options.Scheduler.Now()
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
