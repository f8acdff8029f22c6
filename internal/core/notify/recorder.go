package notify

import (
	"sync"
	"time"
)

// Message is a recorded ShowMessage call.
type Message struct {
	Text     string
	Duration time.Duration
}

// Recorder is a Port that records every call. It is used by tests across
// the core packages.
type Recorder struct {
	mu              sync.Mutex
	startTones      int
	completionTones int
	messages        []Message
}

// PlayStartTone implements Port.
func (recorder *Recorder) PlayStartTone() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.startTones++
}

// PlayCompletionTone implements Port.
func (recorder *Recorder) PlayCompletionTone() {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.completionTones++
}

// ShowMessage implements Port.
func (recorder *Recorder) ShowMessage(text string, duration time.Duration) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.messages = append(recorder.messages, Message{Text: text, Duration: duration})
}

// StartTones returns the number of start tones played.
func (recorder *Recorder) StartTones() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.startTones
}

// CompletionTones returns the number of completion tones played.
func (recorder *Recorder) CompletionTones() int {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return recorder.completionTones
}

// Messages returns a copy of the recorded messages.
func (recorder *Recorder) Messages() []Message {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]Message(nil), recorder.messages...)
}
