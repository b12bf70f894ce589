package app

import (
	"errors"
	"sync"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/shikari/internal/capture"
	"github.com/ayusman/shikari/internal/clicker"
	"github.com/ayusman/shikari/internal/detector"
	"github.com/ayusman/shikari/internal/testutil"
)

// newTestApp wires an App to a looping mock grabber playing the given frame
// and a recording mock sink, running at a fast cycle period.
func newTestApp(t *testing.T, frame *gocv.Mat, region capture.Region) (*App, *clicker.MockSink) {
	t.Helper()

	app := New(Config{
		Region:   region,
		Detector: detector.DefaultConfig(),
		Interval: 2 * time.Millisecond,
	})

	grabber := capture.NewMockGrabber([]*gocv.Mat{frame}, true)
	sink := clicker.NewMockSink()
	app.SetGrabber(grabber)
	app.SetSink(sink)

	return app, sink
}

func TestApp_ClicksDetectedTarget(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	region := capture.Region{X: 500, Y: 400, Width: 200, Height: 200}

	frame := testutil.NewFrame(region.Width, region.Height)
	defer frame.Close()
	testutil.DrawBlob(&frame, 20, 30, 10, 10, testutil.Pink)

	app, sink := newTestApp(t, &frame, region)

	if err := app.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer app.Stop()

	app.SetEnabled(true)
	time.Sleep(100 * time.Millisecond)
	app.SetEnabled(false)

	clicks := sink.Clicks()
	if len(clicks) == 0 {
		t.Fatal("Expected clicks to be recorded, got none")
	}

	// Blob center (25, 35) translated to screen space plus the vertical bias
	wantX, wantY := 525, 438
	for i, c := range clicks {
		if c.X != wantX || c.Y != wantY {
			t.Errorf("Click %d at (%d, %d), want (%d, %d)", i, c.X, c.Y, wantX, wantY)
		}
	}

	stats := app.Stats()
	if stats.Cycles == 0 {
		t.Error("Expected cycle counter to advance")
	}
	if stats.Clicks != int64(len(clicks)) {
		t.Errorf("Stats report %d clicks, sink recorded %d", stats.Clicks, len(clicks))
	}
}

func TestApp_DisabledDoesNotClick(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	region := capture.Region{X: 0, Y: 0, Width: 100, Height: 100}

	frame := testutil.NewFrame(region.Width, region.Height)
	defer frame.Close()
	testutil.DrawBlob(&frame, 40, 40, 10, 10, testutil.Pink)

	app, sink := newTestApp(t, &frame, region)

	if err := app.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer app.Stop()

	// Never enabled; the pipeline must idle
	time.Sleep(30 * time.Millisecond)

	if clicks := sink.Clicks(); len(clicks) != 0 {
		t.Errorf("Expected no clicks while disabled, got %d", len(clicks))
	}
	if stats := app.Stats(); stats.Cycles != 0 {
		t.Errorf("Expected no cycles while disabled, got %d", stats.Cycles)
	}
}

func TestApp_RecoversFromCaptureError(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	region := capture.Region{X: 0, Y: 0, Width: 100, Height: 100}

	frame := testutil.NewFrame(region.Width, region.Height)
	defer frame.Close()
	testutil.DrawBlob(&frame, 40, 40, 10, 10, testutil.Pink)

	grabber := capture.NewMockGrabber([]*gocv.Mat{&frame}, true)
	grabber.SetError(errors.New("capture failed"))

	app := New(Config{
		Region:   region,
		Detector: detector.DefaultConfig(),
		Interval: 2 * time.Millisecond,
	})
	sink := clicker.NewMockSink()
	app.SetGrabber(grabber)
	app.SetSink(sink)

	if err := app.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer app.Stop()

	app.SetEnabled(true)
	time.Sleep(30 * time.Millisecond)

	if clicks := sink.Clicks(); len(clicks) != 0 {
		t.Errorf("Expected no clicks while capture failing, got %d", len(clicks))
	}

	// Clear the fault and the pipeline must pick up again
	grabber.SetError(nil)
	time.Sleep(50 * time.Millisecond)
	app.SetEnabled(false)

	if clicks := sink.Clicks(); len(clicks) == 0 {
		t.Error("Expected clicks after capture recovered, got none")
	}
}

func TestApp_StartInvalidRegion(t *testing.T) {
	app := New(Config{Region: capture.Region{Width: 0, Height: 100}})

	if err := app.Start(); !errors.Is(err, capture.ErrInvalidRegion) {
		t.Errorf("Expected ErrInvalidRegion, got %v", err)
	}
}

func TestApp_OnDetectionCallback(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	region := capture.Region{X: 0, Y: 0, Width: 100, Height: 100}

	frame := testutil.NewFrame(region.Width, region.Height)
	defer frame.Close()
	testutil.DrawBlob(&frame, 40, 40, 10, 10, testutil.Pink)

	app, _ := newTestApp(t, &frame, region)

	var mu sync.Mutex
	var seen []detector.Detection
	app.OnDetection(func(d detector.Detection) {
		mu.Lock()
		seen = append(seen, d)
		mu.Unlock()
	})

	if err := app.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer app.Stop()

	app.SetEnabled(true)
	time.Sleep(50 * time.Millisecond)
	app.SetEnabled(false)

	mu.Lock()
	defer mu.Unlock()
	if len(seen) == 0 {
		t.Fatal("Expected detection callbacks, got none")
	}
	want := detector.Detection{X: 45, Y: 48}
	if seen[0] != want {
		t.Errorf("Callback got %+v, want %+v", seen[0], want)
	}
}
