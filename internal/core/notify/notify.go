// Package notify defines the port the timer core uses to reach audio and
// on-screen messages.
package notify

import (
	"sync/atomic"
	"time"
)

// Port receives fire-and-forget notifications from the core.
// Implementations must swallow their own failures.
type Port interface {
	PlayStartTone()
	PlayCompletionTone()
	ShowMessage(text string, duration time.Duration)
}

// TonePlayer plays the two audio cues.
type TonePlayer interface {
	PlayStartTone()
	PlayCompletionTone()
}

// MessageDisplay shows ephemeral banners.
type MessageDisplay interface {
	ShowMessage(text string, duration time.Duration)
}

// Nop discards every notification.
type Nop struct{}

func (Nop) PlayStartTone()                    {}
func (Nop) PlayCompletionTone()               {}
func (Nop) ShowMessage(string, time.Duration) {}

// Fanout routes tones and messages to separate implementations.
// Nil members are skipped.
type Fanout struct {
	Tones    TonePlayer
	Messages MessageDisplay
}

// PlayStartTone implements Port.
func (fanout Fanout) PlayStartTone() {
	if fanout.Tones != nil {
		fanout.Tones.PlayStartTone()
	}
}

// PlayCompletionTone implements Port.
func (fanout Fanout) PlayCompletionTone() {
	if fanout.Tones != nil {
		fanout.Tones.PlayCompletionTone()
	}
}

// ShowMessage implements Port.
func (fanout Fanout) ShowMessage(text string, duration time.Duration) {
	if fanout.Messages != nil {
		fanout.Messages.ShowMessage(text, duration)
	}
}

// Gate wraps a Port with the global mute flag. Tones are skipped while
// muted; messages always pass through.
type Gate struct {
	port  Port
	muted atomic.Bool
}

// NewGate wraps port. A nil port behaves like Nop.
func NewGate(port Port, muted bool) *Gate {
	if port == nil {
		port = Nop{}
	}
	gate := &Gate{port: port}
	gate.muted.Store(muted)
	return gate
}

// SetMuted updates the mute flag.
func (gate *Gate) SetMuted(muted bool) {
	gate.muted.Store(muted)
}

// Muted reports the mute flag.
func (gate *Gate) Muted() bool {
	return gate.muted.Load()
}

// PlayStartTone implements Port.
func (gate *Gate) PlayStartTone() {
	if gate.muted.Load() {
		return
	}
	gate.port.PlayStartTone()
}

// PlayCompletionTone implements Port.
func (gate *Gate) PlayCompletionTone() {
	if gate.muted.Load() {
		return
	}
	gate.port.PlayCompletionTone()
}

// ShowMessage implements Port.
func (gate *Gate) ShowMessage(text string, duration time.Duration) {
	gate.port.ShowMessage(text, duration)
}
