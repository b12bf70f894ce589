// Package listener provides global keyboard controls for starting and pausing the bot.
package listener

import (
	"context"
	"log"
	"sync"

	hook "github.com/robotn/gohook"
)

// Listener watches for the global control keys: 's' starts detection,
// 'p' pauses it. Callbacks fire on the hook's event goroutine.
type Listener struct {
	onStart func()
	onPause func()
	mu      sync.RWMutex
	started bool
}

// New creates a new Listener with no callbacks registered.
func New() *Listener {
	return &Listener{}
}

// OnStart sets the callback fired when the start key is pressed.
func (l *Listener) OnStart(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onStart = fn
}

// OnPause sets the callback fired when the pause key is pressed.
func (l *Listener) OnPause(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onPause = fn
}

// Run installs the global keyboard hook and blocks until the context is
// cancelled. It is safe to call from its own goroutine; calling it twice
// is a no-op.
func (l *Listener) Run(ctx context.Context) {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.mu.Unlock()

	hook.Register(hook.KeyDown, []string{"s"}, func(e hook.Event) {
		l.handleStart()
	})

	hook.Register(hook.KeyDown, []string{"p"}, func(e hook.Event) {
		l.handlePause()
	})

	log.Println("Keyboard controls armed: 's' to start, 'p' to pause")

	events := hook.Start()
	defer hook.End()

	go func() {
		<-hook.Process(events)
	}()

	<-ctx.Done()
}

// handleStart handles a press of the start key.
func (l *Listener) handleStart() {
	l.mu.RLock()
	callback := l.onStart
	l.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handlePause handles a press of the pause key.
func (l *Listener) handlePause() {
	l.mu.RLock()
	callback := l.onPause
	l.mu.RUnlock()

	if callback != nil {
		callback()
	}
}
