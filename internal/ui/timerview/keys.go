package timerview

import (
	"fmt"

	"focustimer/internal/core/trigger"

	"fyne.io/fyne/v2"
)

var fyneKeys = map[fyne.KeyName]trigger.Key{
	fyne.KeyUp:    trigger.KeyArrowUp,
	fyne.KeyDown:  trigger.KeyArrowDown,
	fyne.KeyLeft:  trigger.KeyArrowLeft,
	fyne.KeyRight: trigger.KeyArrowRight,
	fyne.KeyB:     trigger.KeyB,
	fyne.KeyA:     trigger.KeyA,
}

// keyFromFyne maps a Fyne key to a trigger key. Unrecognized keys keep
// their Fyne name so they still shift through the sequence buffer.
func keyFromFyne(name fyne.KeyName) trigger.Key {
	if key, ok := fyneKeys[name]; ok {
		return key
	}
	return trigger.Key(name)
}

// formatSeconds renders a countdown as mm:ss.
func formatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
