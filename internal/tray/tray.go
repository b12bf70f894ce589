// Package tray provides the system tray interface for the Shikari screen clicker.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onQuit   func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle    *systray.MenuItem
	menuLastClick *systray.MenuItem
}

// New creates a new Tray instance. Detection starts disabled; the user arms
// it from the menu or with the keyboard controls.
func New() *Tray {
	return &Tray{
		enabled: false,
	}
}

// OnToggle sets the callback function to be called when the enabled state is toggled.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	// Set the tray title and tooltip
	systray.SetTitle("Shikari")
	systray.SetTooltip("Shikari Screen Clicker")

	// Create menu items
	t.menuToggle = systray.AddMenuItem("○ Paused", "Toggle detection")
	systray.AddSeparator()

	t.menuLastClick = systray.AddMenuItem("Last click: none", "Last click position")
	t.menuLastClick.Disable()
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Shikari")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
// It performs cleanup tasks.
func (t *Tray) onExit() {
	// Cleanup resources if needed
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	t.applyToggleTitle(enabled)

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// applyToggleTitle updates the toggle menu item text. Caller holds the lock.
func (t *Tray) applyToggleTitle(enabled bool) {
	if t.menuToggle == nil {
		return
	}
	if enabled {
		t.menuToggle.SetTitle("● Running")
	} else {
		t.menuToggle.SetTitle("○ Paused")
	}
}

// SetEnabled updates the displayed state without firing the toggle callback.
// Used when the keyboard listener changes the state out from under the tray.
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = enabled
	t.applyToggleTitle(enabled)
}

// SetLastClick updates the last click display in the menu.
func (t *Tray) SetLastClick(x, y int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuLastClick != nil {
		t.menuLastClick.SetTitle(fmt.Sprintf("Last click: (%d, %d)", x, y))
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}
