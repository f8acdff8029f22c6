package model

import (
	"strconv"
	"strings"
)

// Mode is one of the three timer modes.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeFocus, ModeShortBreak, ModeLongBreak}

// Valid reports whether mode is a known mode.
func (mode Mode) Valid() bool {
	switch mode {
	case ModeFocus, ModeShortBreak, ModeLongBreak:
		return true
	}
	return false
}

// Label returns a human readable mode name.
func (mode Mode) Label() string {
	switch mode {
	case ModeFocus:
		return "Focus"
	case ModeShortBreak:
		return "Short Break"
	case ModeLongBreak:
		return "Long Break"
	}
	return string(mode)
}

const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
)

// Range is an inclusive minute range used by input widgets.
type Range struct {
	Min int
	Max int
}

// Contains reports whether minutes lies inside the range.
func (value Range) Contains(minutes int) bool {
	return minutes >= value.Min && minutes <= value.Max
}

// Bounds returns the input widget range for mode.
func Bounds(mode Mode) Range {
	switch mode {
	case ModeShortBreak:
		return Range{Min: 1, Max: 30}
	case ModeFocus, ModeLongBreak:
		return Range{Min: 1, Max: 60}
	}
	return Range{}
}

// DefaultMinutes returns the default duration of mode in minutes.
func DefaultMinutes(mode Mode) int {
	switch mode {
	case ModeFocus:
		return DefaultFocusMinutes
	case ModeShortBreak:
		return DefaultShortBreakMinutes
	case ModeLongBreak:
		return DefaultLongBreakMinutes
	}
	return 0
}

// Durations holds the configured length of each mode in minutes.
type Durations struct {
	Focus      int `yaml:"focus_minutes" json:"focus_minutes"`
	ShortBreak int `yaml:"short_break_minutes" json:"short_break_minutes"`
	LongBreak  int `yaml:"long_break_minutes" json:"long_break_minutes"`
}

// DefaultDurations returns the 25/5/15 configuration.
func DefaultDurations() Durations {
	return Durations{
		Focus:      DefaultFocusMinutes,
		ShortBreak: DefaultShortBreakMinutes,
		LongBreak:  DefaultLongBreakMinutes,
	}
}

// Minutes returns the configured minutes for mode.
func (durations Durations) Minutes(mode Mode) int {
	switch mode {
	case ModeFocus:
		return durations.Focus
	case ModeShortBreak:
		return durations.ShortBreak
	case ModeLongBreak:
		return durations.LongBreak
	}
	return 0
}

// Seconds returns the configured length of mode in whole seconds.
func (durations Durations) Seconds(mode Mode) int {
	return durations.Minutes(mode) * 60
}


// Set stores minutes for mode. Non-positive values are replaced by the
// mode's default; positive values are stored without clamping.
func (durations *Durations) Set(mode Mode, minutes int) {
	if minutes <= 0 {
		minutes = DefaultMinutes(mode)
	}
	switch mode {
	case ModeFocus:
		durations.Focus = minutes
	case ModeShortBreak:
		durations.ShortBreak = minutes
	case ModeLongBreak:
		durations.LongBreak = minutes
	}
}

// Normalize replaces every non-positive value with its default.
func (durations *Durations) Normalize() {
	for _, mode := range Modes {
		durations.Set(mode, durations.Minutes(mode))
	}
}

// ParseMinutes parses user supplied minutes. It reports false for
// non-numeric or non-positive input.
func ParseMinutes(text string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
