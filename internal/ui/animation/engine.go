package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	FrameInterval Range
}

// DefaultConfig returns a lively frame rate for cosmetic effects.
func DefaultConfig() Config {
	return Config{
		FrameInterval: Range{
			Min: 120 * time.Millisecond,
			Max: 200 * time.Millisecond,
		},
	}
}

// Sequence is a list of text frames.
type Sequence struct {
	Frames []string
	Loop   bool
}

var (
	// Hearts is shown while the celebration effect is active.
	Hearts = Sequence{
		Frames: []string{"♥", "♥ ♥", "♥ ♥ ♥", "♥ ♥", "♥"},
		Loop:   true,
	}
	// Sparkles is shown after hovering the primary control.
	Sparkles = Sequence{
		Frames: []string{"*", "* +", "+ * +", "* + *", "+"},
		Loop:   true,
	}
)

// Engine cycles text frames into a label.
type Engine struct {
	mu          sync.Mutex
	config      Config
	updateFrame func(string)
	cancel      context.CancelFunc
	done        chan struct{}
	rng         *rand.Rand
}

// New creates a new animation engine.
func New(config Config, updateFrame func(string)) *Engine {
	return &Engine{
		config:      config,
		updateFrame: updateFrame,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Play starts a sequence, replacing any running one. The label is
// cleared when the sequence ends or is stopped.
func (engine *Engine) Play(ctx context.Context, sequence Sequence) {
	if len(sequence.Frames) == 0 {
		return
	}
	engine.mu.Lock()
	engine.stopLocked()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	engine.cancel = cancel
	engine.done = done
	interval := make([]time.Duration, len(sequence.Frames))
	for i := range interval {
		interval[i] = engine.config.FrameInterval.Random(engine.rng)
	}
	engine.mu.Unlock()

	go func() {
		defer close(done)
		defer engine.updateFrame("")
		for {
			for i, frame := range sequence.Frames {
				engine.updateFrame(frame)
				if !sleepWithContext(runCtx, interval[i]) {
					return
				}
			}
			if !sequence.Loop {
				return
			}
		}
	}()
}

// Stop terminates any active animation and waits for it to clear.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.stopLocked()
}

func (engine *Engine) stopLocked() {
	if engine.cancel == nil {
		return
	}
	engine.cancel()
	<-engine.done
	engine.cancel = nil
	engine.done = nil
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
