package preferences

import (
	"focustimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	Durations model.Durations
	Muted     bool
}

// DefaultSettings returns default settings for the focus timer.
func DefaultSettings() Settings {
	return Settings{
		Durations: model.DefaultDurations(),
		Muted:     false,
	}
}

// Input is what the user submitted: raw duration text per mode after the
// widget bounds are applied, and the mute choice.
type Input struct {
	Durations map[model.Mode]string
	Muted     bool
}
