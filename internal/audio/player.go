// Package audio plays the start and completion cues through the system
// speaker.
package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is the speaker sample rate.
const DefaultSampleRate beep.SampleRate = 44100

// Player synthesizes chimes on demand. A player whose speaker failed to
// initialize stays silent.
type Player struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
	ready      bool
	logger     *slog.Logger
}

// NewPlayer initializes the speaker. On failure it still returns a usable
// silent player together with the error.
func NewPlayer(logger *slog.Logger) (*Player, error) {
	if logger == nil {
		logger = slog.Default()
	}
	player := &Player{sampleRate: DefaultSampleRate, logger: logger}
	if err := speaker.Init(player.sampleRate, player.sampleRate.N(100*time.Millisecond)); err != nil {
		return player, fmt.Errorf("init speaker: %w", err)
	}
	player.ready = true
	return player, nil
}

// PlayStartTone plays StartChime.
func (player *Player) PlayStartTone() {
	player.play("start", StartChime)
}

// PlayCompletionTone plays CompletionChime.
func (player *Player) PlayCompletionTone() {
	player.play("completion", CompletionChime)
}

// Ready reports whether the speaker is available.
func (player *Player) Ready() bool {
	player.mu.Lock()
	defer player.mu.Unlock()
	return player.ready
}

func (player *Player) play(name string, chime Chime) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if !player.ready {
		player.logger.Debug("audio disabled, skipping tone", "tone", name)
		return
	}
	speaker.Play(chime.Streamer(player.sampleRate))
}
