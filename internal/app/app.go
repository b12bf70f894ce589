// Package app provides the main application logic for the Shikari screen clicker.
package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/shikari/internal/capture"
	"github.com/ayusman/shikari/internal/clicker"
	"github.com/ayusman/shikari/internal/detector"
	"github.com/ayusman/shikari/internal/store"
)

// DefaultInterval is the detection cycle period.
const DefaultInterval = 10 * time.Millisecond

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	Region   capture.Region
	Detector detector.Config
	Interval time.Duration
}

// Stats holds the counters for the current or most recent session.
type Stats struct {
	Cycles     int64
	Detections int64
	Clicks     int64
}

// App is the main application that orchestrates capture, detection and clicking.
type App struct {
	config      Config
	grabber     capture.Grabber
	detector    *detector.Detector
	sink        clicker.Sink
	onDetection func(detector.Detection)
	enabled     bool
	mu          sync.RWMutex
	stopCh      chan struct{}

	sessionID string
	stats     Stats
}

// New creates a new App instance with the given configuration.
// The real screen grabber and mouse sink are the defaults; tests swap them
// out with SetGrabber and SetSink.
func New(config Config) *App {
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}

	return &App{
		config:   config,
		grabber:  capture.NewScreenGrabber(),
		detector: detector.New(config.Detector),
		sink:     clicker.NewMouseSink(),
		enabled:  false,
		stopCh:   nil,
	}
}

// SetGrabber sets the screen grabber implementation to use.
func (a *App) SetGrabber(g capture.Grabber) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.grabber = g
}

// SetSink sets the click sink implementation to use.
func (a *App) SetSink(s clicker.Sink) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sink = s
}

// OnDetection sets a callback fired for every click performed. It runs on
// the pipeline goroutine and must return quickly.
func (a *App) OnDetection(fn func(detector.Detection)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onDetection = fn
}

// Region returns the capture region the app watches.
func (a *App) Region() capture.Region {
	return a.config.Region
}

// Detector returns the detector instance.
func (a *App) Detector() *detector.Detector {
	return a.detector
}

// SetEnabled enables or disables detection. Enabling opens a new session in
// the store; disabling closes it with the accumulated counters.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.enabled == enabled {
		return
	}
	a.enabled = enabled

	if enabled {
		a.beginSession()
		log.Println("Detection started")
	} else {
		a.finishSession()
		log.Println("Detection paused")
	}
}

// IsEnabled returns whether detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// Stats returns a snapshot of the current session counters.
func (a *App) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stats
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if !a.config.Region.Valid() {
		return capture.ErrInvalidRegion
	}

	// Create stop channel and start the pipeline
	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Printf("Detection pipeline started (region %dx%d at %d,%d, period %s)",
		a.config.Region.Width, a.config.Region.Height,
		a.config.Region.X, a.config.Region.Y, a.config.Interval)
	return nil
}

// Stop halts the detection pipeline and closes any open session.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Signal the pipeline to stop
	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.enabled {
		a.enabled = false
		a.finishSession()
	}

	log.Println("Detection pipeline stopped")
}

// beginSession opens a new session record. Caller holds the lock.
func (a *App) beginSession() {
	a.stats = Stats{}

	if a.config.Store == nil {
		return
	}

	a.sessionID = uuid.New().String()
	err := a.config.Store.Sessions().Begin(&store.Session{
		ID:        a.sessionID,
		StartedAt: time.Now(),
	})
	if err != nil {
		log.Printf("Failed to record session start: %v", err)
		a.sessionID = ""
	}
}

// finishSession closes the open session record. Caller holds the lock.
func (a *App) finishSession() {
	if a.config.Store == nil || a.sessionID == "" {
		return
	}

	err := a.config.Store.Sessions().Finish(
		a.sessionID, a.stats.Cycles, a.stats.Detections, a.stats.Clicks)
	if err != nil {
		log.Printf("Failed to record session end: %v", err)
	}
	a.sessionID = ""
}
