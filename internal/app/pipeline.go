package app

import (
	"log"
	"time"
)

// runPipeline is the main detection loop. An external ticker fires one full
// cycle (capture, mask, extract, select, click) per period; if a cycle takes
// longer than the period the ticker simply drops the missed ticks and cycles
// run back-to-back. No cycle overlaps another: each cycle owns its frame
// exclusively and discards it before the next tick is consumed.
//
// Cycle logic:
// 1. Skip entirely while detection is disabled
// 2. Capture the region; a failed capture logs, skips the cycle and the
//    next tick tries again
// 3. Run the detector on the frame
// 4. Click every detection in order
// 5. Update the session counters
func (a *App) runPipeline(stopCh chan struct{}) {
	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			a.runCycle()
		}
	}
}

// runCycle executes one capture-detect-click cycle.
func (a *App) runCycle() {
	a.mu.RLock()
	grabber := a.grabber
	sink := a.sink
	onDetection := a.onDetection
	a.mu.RUnlock()

	region := a.config.Region

	frame, err := grabber.Grab(region)
	if err != nil {
		log.Printf("Error capturing region: %v", err)
		a.bumpStats(1, 0, 0)
		return
	}

	result, err := a.detector.Detect(frame, region)
	frame.Close() // Done with the frame

	if err != nil {
		log.Printf("Error detecting objects: %v", err)
		a.bumpStats(1, 0, 0)
		return
	}

	var clicks int64
	for _, d := range result.Detections {
		if err := sink.Click(d.X, d.Y); err != nil {
			log.Printf("Error clicking at (%d, %d): %v", d.X, d.Y, err)
			continue
		}
		clicks++

		if onDetection != nil {
			onDetection(d)
		}
	}

	a.bumpStats(1, int64(len(result.Detections)), clicks)
}

// bumpStats adds to the session counters.
func (a *App) bumpStats(cycles, detections, clicks int64) {
	a.mu.Lock()
	a.stats.Cycles += cycles
	a.stats.Detections += detections
	a.stats.Clicks += clicks
	a.mu.Unlock()
}
