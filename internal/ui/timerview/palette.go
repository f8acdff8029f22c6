package timerview

import (
	"image/color"

	"focustimer/internal/core/model"
)

type palette map[model.Mode]color.NRGBA

var (
	standardPalette = palette{
		model.ModeFocus:      {R: 0xe8, G: 0x6a, B: 0x6a, A: 0xff},
		model.ModeShortBreak: {R: 0x4c, G: 0xb0, B: 0x9b, A: 0xff},
		model.ModeLongBreak:  {R: 0x5b, G: 0x7f, B: 0xd6, A: 0xff},
	}
	alternatePalette = palette{
		model.ModeFocus:      {R: 0xb3, G: 0x5c, B: 0xe0, A: 0xff},
		model.ModeShortBreak: {R: 0xf2, G: 0xa6, B: 0x3b, A: 0xff},
		model.ModeLongBreak:  {R: 0xe0, G: 0x5c, B: 0xa8, A: 0xff},
	}
)

func backgroundFor(mode model.Mode, alternate bool) color.NRGBA {
	colors := standardPalette
	if alternate {
		colors = alternatePalette
	}
	if value, ok := colors[mode]; ok {
		return value
	}
	return colors[model.ModeFocus]
}
