package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MockGrabber plays back pre-built frames for testing
type MockGrabber struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	err     error
	regions []Region
	mu      sync.Mutex
}

func NewMockGrabber(frames []*gocv.Mat, loop bool) *MockGrabber {
	return &MockGrabber{
		frames: frames,
		loop:   loop,
	}
}

// Grab returns a clone of the next preset frame, recording the requested region.
func (g *MockGrabber) Grab(region Region) (*gocv.Mat, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.regions = append(g.regions, region)

	if g.err != nil {
		return nil, g.err
	}

	if len(g.frames) == 0 {
		return nil, fmt.Errorf("no frames available")
	}

	if g.index >= len(g.frames) {
		if g.loop {
			g.index = 0
		} else {
			return nil, fmt.Errorf("no more frames")
		}
	}

	// Clone the frame so the original isn't modified
	frame := g.frames[g.index].Clone()
	g.index++

	return &frame, nil
}

// SetError makes subsequent Grab calls fail with err. Pass nil to clear.
func (g *MockGrabber) SetError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

// SetFrames replaces the frame sequence
func (g *MockGrabber) SetFrames(frames []*gocv.Mat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.frames = frames
	g.index = 0
}

// Regions returns the regions requested so far, in call order.
func (g *MockGrabber) Regions() []Region {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Region, len(g.regions))
	copy(out, g.regions)
	return out
}

// Reset restarts playback from the beginning
func (g *MockGrabber) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.index = 0
	g.regions = nil
}
