package tray

import (
	"fmt"

	"focustimer/internal/core/model"

	"fyne.io/fyne/v2"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnSwitchMode  func(model.Mode)
	OnToggleMute  func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state. The menu is built once; state
// changes mutate its items and push it to the host only when something
// visible changed.
type Manager struct {
	host       Host
	callbacks  Callbacks
	menu       *fyne.Menu
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	muteItem   *fyne.MenuItem
	modeItems  map[model.Mode]*fyne.MenuItem
	running    bool
	mode       model.Mode
	status     string
}

// New creates a tray manager with the provided callbacks.
func New(host Host, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
		modeItems: make(map[model.Mode]*fyne.MenuItem, len(model.Modes)),
		status:    "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		call(manager.callbacks.OnToggle)
	})
	manager.muteItem = fyne.NewMenuItem("Mute sounds", func() {
		call(manager.callbacks.OnToggleMute)
	})

	for _, mode := range model.Modes {
		mode := mode
		manager.modeItems[mode] = fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnSwitchMode != nil {
				manager.callbacks.OnSwitchMode(mode)
			}
		})
	}

	manager.menu = manager.buildMenu()
	manager.statusItem.Label = manager.statusLabel()
	manager.push()
	return manager
}

// SetSession reflects a session snapshot in the menu. Ticks only change
// the status line, and only once per displayed minute.
func (manager *Manager) SetSession(state model.SessionState) {
	changed := false
	if state.Running != manager.running || state.Mode != manager.mode {
		manager.running = state.Running
		manager.mode = state.Mode
		if state.Running {
			manager.toggleItem.Label = "Pause"
		} else {
			manager.toggleItem.Label = "Start"
		}
		for mode, item := range manager.modeItems {
			item.Checked = mode == state.Mode
		}
		changed = true
	}

	manager.status = formatStatus(state)
	if label := manager.statusLabel(); label != manager.statusItem.Label {
		manager.statusItem.Label = label
		changed = true
	}
	if changed {
		manager.push()
	}
}

// SetMuted updates the mute item.
func (manager *Manager) SetMuted(muted bool) {
	if manager.muteItem.Checked == muted {
		return
	}
	manager.muteItem.Checked = muted
	manager.push()
}

// Menu returns the tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

func (manager *Manager) buildMenu() *fyne.Menu {
	items := []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			call(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", func() {
			call(manager.callbacks.OnReset)
		}),
		fyne.NewMenuItemSeparator(),
	}
	for _, mode := range model.Modes {
		items = append(items, manager.modeItems[mode])
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		manager.muteItem,
		fyne.NewMenuItem("Preferences", func() {
			call(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	)
	return fyne.NewMenu("Focus Timer", items...)
}

func (manager *Manager) statusLabel() string {
	status := manager.status
	if !manager.running {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return fmt.Sprintf("Status: %s", status)
}

func (manager *Manager) push() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

// formatStatus rounds the remaining time up to whole minutes.
func formatStatus(state model.SessionState) string {
	minutes := (state.RemainingSeconds + 59) / 60
	return fmt.Sprintf("%s, %d min left", state.Mode.Label(), minutes)
}

func call(callback func()) {
	if callback != nil {
		callback()
	}
}
