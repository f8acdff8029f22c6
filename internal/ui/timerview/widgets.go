package timerview

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// hotspot is an invisible tap target.
type hotspot struct {
	widget.BaseWidget
	onTapped func()
}

func newHotspot(onTapped func()) *hotspot {
	spot := &hotspot{onTapped: onTapped}
	spot.ExtendBaseWidget(spot)
	return spot
}

func (spot *hotspot) Tapped(*fyne.PointEvent) {
	if spot.onTapped != nil {
		spot.onTapped()
	}
}

func (spot *hotspot) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Transparent))
}

// hoverButton is a button that also reports the pointer entering it.
type hoverButton struct {
	widget.Button
	onHover func()
}

func newHoverButton(icon fyne.Resource, onTapped, onHover func()) *hoverButton {
	button := &hoverButton{onHover: onHover}
	button.Icon = icon
	button.OnTapped = onTapped
	button.Importance = widget.HighImportance
	button.ExtendBaseWidget(button)
	return button
}

func (button *hoverButton) MouseIn(event *desktop.MouseEvent) {
	button.Button.MouseIn(event)
	if button.onHover != nil {
		button.onHover()
	}
}
