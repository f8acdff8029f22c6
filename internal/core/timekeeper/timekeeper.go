package timekeeper

import (
	"sync"
	"time"

	"focustimer/internal/core/model"
	"focustimer/internal/core/notify"
	"focustimer/internal/core/schedule"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Scheduler    schedule.Scheduler
}

// TimeKeeper is the focus/break session state machine. The countdown moves
// only through Tick; the scheduler decides when a tick happens.
type TimeKeeper struct {
	mu         sync.Mutex
	durations  model.Durations
	options    Config
	notifier   notify.Port
	mode       model.Mode
	remaining  int
	running    bool
	completed  int
	pending    schedule.Timer
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates a TimeKeeper in focus mode, stopped, with a full focus
// countdown.
func New(durations model.Durations, notifier notify.Port, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = schedule.Real{}
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	durations.Normalize()

	keeper := &TimeKeeper{
		durations: durations,
		options:   options,
		notifier:  notifier,
		mode:      model.ModeFocus,
	}
	keeper.remaining = durations.Seconds(model.ModeFocus)
	return keeper
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Start sets the timer running and plays the start tone. It is callable in
// any state, including with nothing left on the clock.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	keeper.running = true
	keeper.scheduleTickLocked()
	keeper.emitLocked(EventStateChange, "")
	keeper.mu.Unlock()

	keeper.notifier.PlayStartTone()
}

// Pause freezes the timer and drops the pending tick.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.running = false
	keeper.cancelPendingLocked()
	keeper.emitLocked(EventStateChange, "")
}

// Reset stops the timer and refills the current mode's countdown.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.running = false
	keeper.cancelPendingLocked()
	keeper.remaining = keeper.durations.Seconds(keeper.mode)
	keeper.emitLocked(EventStateChange, "")
}

// SwitchMode stops the timer and loads the full countdown of mode.
// Unknown modes are ignored.
func (keeper *TimeKeeper) SwitchMode(mode model.Mode) {
	if !mode.Valid() {
		return
	}
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.running = false
	keeper.cancelPendingLocked()
	keeper.mode = mode
	keeper.remaining = keeper.durations.Seconds(mode)
	keeper.emitLocked(EventStateChange, "")
}

// Tick advances the countdown by one second if the timer is running.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	finished, ok := keeper.tickLocked()
	keeper.mu.Unlock()

	if ok {
		keeper.notifyCompletion(finished)
	}
}

// UpdateDurations replaces the configured durations. The remaining time of
// the current session is left alone until the next reset or mode switch.
func (keeper *TimeKeeper) UpdateDurations(durations model.Durations) {
	durations.Normalize()
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.durations = durations
}

// Durations returns the configured durations.
func (keeper *TimeKeeper) Durations() model.Durations {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.durations
}

// Snapshot returns the current session state.
func (keeper *TimeKeeper) Snapshot() model.SessionState {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshotLocked()
}

// Progress returns the elapsed fraction of the current mode in [0, 1].
func (keeper *TimeKeeper) Progress() float64 {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.progressLocked()
}

// Close cancels the pending tick and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.running = false
	keeper.cancelPendingLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) tickLocked() (model.Mode, bool) {
	if !keeper.running || keeper.remaining <= 0 {
		return "", false
	}

	keeper.remaining--
	if keeper.remaining > 0 {
		keeper.emitLocked(EventTick, "")
		return "", false
	}

	keeper.running = false
	keeper.cancelPendingLocked()
	if keeper.mode == model.ModeFocus {
		keeper.completed++
	}
	keeper.emitLocked(EventComplete, CompletionMessage(keeper.mode))
	return keeper.mode, true
}

func (keeper *TimeKeeper) onScheduledTick(generation uint64) {
	keeper.mu.Lock()
	if keeper.closed || generation != keeper.generation {
		keeper.mu.Unlock()
		return
	}
	keeper.pending = nil
	finished, ok := keeper.tickLocked()
	keeper.scheduleTickLocked()
	keeper.mu.Unlock()

	if ok {
		keeper.notifyCompletion(finished)
	}
}

func (keeper *TimeKeeper) scheduleTickLocked() {
	if keeper.closed || keeper.pending != nil || !keeper.running || keeper.remaining <= 0 {
		return
	}
	generation := keeper.generation
	keeper.pending = keeper.options.Scheduler.AfterFunc(keeper.options.TickInterval, func() {
		keeper.onScheduledTick(generation)
	})
}

func (keeper *TimeKeeper) cancelPendingLocked() {
	keeper.generation++
	if keeper.pending != nil {
		keeper.pending.Stop()
		keeper.pending = nil
	}
}

func (keeper *TimeKeeper) notifyCompletion(mode model.Mode) {
	keeper.notifier.PlayCompletionTone()
	keeper.notifier.ShowMessage(CompletionMessage(mode), CompletionMessageDuration)
}

func (keeper *TimeKeeper) snapshotLocked() model.SessionState {
	return model.SessionState{
		Mode:                keeper.mode,
		RemainingSeconds:    keeper.remaining,
		Running:             keeper.running,
		CompletedFocusCount: keeper.completed,
	}
}

func (keeper *TimeKeeper) progressLocked() float64 {
	total := keeper.durations.Seconds(keeper.mode)
	if total <= 0 {
		return 0
	}
	progress := float64(total-keeper.remaining) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (keeper *TimeKeeper) emitLocked(eventType EventType, message string) {
	event := Event{
		Type:     eventType,
		State:    keeper.snapshotLocked(),
		Progress: keeper.progressLocked(),
		Message:  message,
		At:       keeper.options.Scheduler.Now(),
	}
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
