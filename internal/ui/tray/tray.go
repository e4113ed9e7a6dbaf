package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"intervaltimer/internal/core/countdown"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnConfigure func()
	OnStart     func()
	OnStop      func()
	OnQuit      func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	stopItem   *fyne.MenuItem
	callbacks  Callbacks
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start timer", func() {
		if manager.callbacks.OnStart != nil {
			manager.callbacks.OnStart()
		}
	})

	manager.stopItem = fyne.NewMenuItem("Stop timer", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})
	manager.stopItem.Disabled = true

	manager.refreshMenu()
	return manager
}

// Update reflects a countdown snapshot in the menu.
func (manager *Manager) Update(state countdown.State) {
	manager.statusItem.Label = "Status: " + StatusLine(state)
	manager.startItem.Disabled = state.Phase.Active()
	manager.stopItem.Disabled = !state.Phase.Active()
	manager.refreshMenu()
}

// StatusLine renders a snapshot as "mm:ss repeat i/n".
func StatusLine(state countdown.State) string {
	switch state.Phase {
	case countdown.PhaseRunning:
		return fmt.Sprintf("%s  repeat %d/%d", countdown.FormatClock(state.RemainingSeconds), state.RepeatIndex+1, state.RepeatCount)
	case countdown.PhaseAwaitingReset:
		return fmt.Sprintf("time! repeat %d/%d", state.RepeatIndex+1, state.RepeatCount)
	case countdown.PhaseCompleted:
		return "finished"
	default:
		return "idle"
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("Interval Timer",
		manager.statusItem,
		fyne.NewMenuItem("Configure...", func() {
			if manager.callbacks.OnConfigure != nil {
				manager.callbacks.OnConfigure()
			}
		}),
		manager.startItem,
		manager.stopItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
