package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Ramp is an exponential frequency glide.
type Ramp struct {
	From   float64
	To     float64
	Length time.Duration
}

// Voice is one sine oscillator inside a chime. After its last ramp the
// voice holds the final frequency until Stop.
type Voice struct {
	Start time.Duration
	Stop  time.Duration
	Ramps []Ramp
}

// Chime is a short cue built from overlapping voices under a shared
// exponential fade.
type Chime struct {
	Voices []Voice
	Gain   float64
	Floor  float64
	Length time.Duration
}

// StartChime is the rising-then-falling chirp played on start.
var StartChime = Chime{
	Voices: []Voice{{
		Stop: 300 * time.Millisecond,
		Ramps: []Ramp{
			{From: 800, To: 1200, Length: 100 * time.Millisecond},
			{From: 1200, To: 600, Length: 100 * time.Millisecond},
		},
	}},
	Gain:   0.3,
	Floor:  0.01,
	Length: 300 * time.Millisecond,
}

// CompletionChime is the two-note chime played when a session ends.
var CompletionChime = Chime{
	Voices: []Voice{
		{
			Stop:  300 * time.Millisecond,
			Ramps: []Ramp{{From: 1000, To: 1200, Length: 100 * time.Millisecond}},
		},
		{
			Start: 100 * time.Millisecond,
			Stop:  400 * time.Millisecond,
			Ramps: []Ramp{{From: 800, To: 600, Length: 100 * time.Millisecond}},
		},
	},
	Gain:   0.4,
	Floor:  0.01,
	Length: 400 * time.Millisecond,
}

// Streamer renders the chime at sampleRate.
func (chime Chime) Streamer(sampleRate beep.SampleRate) beep.Streamer {
	total := sampleRate.N(chime.Length)
	phases := make([]float64, len(chime.Voices))
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		n := 0
		for n < len(samples) && position < total {
			value := chime.sample(sampleRate, position, phases)
			samples[n][0] = value
			samples[n][1] = value
			n++
			position++
		}
		return n, true
	})
}

func (chime Chime) sample(sampleRate beep.SampleRate, position int, phases []float64) float64 {
	at := sampleRate.D(position)
	sum := 0.0
	for i, voice := range chime.Voices {
		if at < voice.Start || at >= voice.Stop {
			continue
		}
		frequency := voice.FrequencyAt(at - voice.Start)
		phases[i] += 2 * math.Pi * frequency / float64(sampleRate)
		sum += math.Sin(phases[i])
	}
	return sum * chime.GainAt(at)
}

// GainAt returns the fade envelope at offset.
func (chime Chime) GainAt(offset time.Duration) float64 {
	if chime.Length <= 0 || chime.Gain <= 0 {
		return 0
	}
	floor := chime.Floor
	if floor <= 0 || floor > chime.Gain {
		floor = chime.Gain
	}
	fraction := float64(offset) / float64(chime.Length)
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return chime.Gain * math.Pow(floor/chime.Gain, fraction)
}

// FrequencyAt returns the voice frequency offset after the voice starts.
func (voice Voice) FrequencyAt(offset time.Duration) float64 {
	if len(voice.Ramps) == 0 {
		return 0
	}
	elapsed := offset
	for _, ramp := range voice.Ramps {
		if ramp.Length > 0 && elapsed < ramp.Length && ramp.From > 0 && ramp.To > 0 {
			fraction := float64(elapsed) / float64(ramp.Length)
			return ramp.From * math.Pow(ramp.To/ramp.From, fraction)
		}
		elapsed -= ramp.Length
	}
	return voice.Ramps[len(voice.Ramps)-1].To
}
