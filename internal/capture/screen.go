package capture

import (
	"fmt"

	"github.com/kbinani/screenshot"
	"gocv.io/x/gocv"
)

// screenGrabber captures screen regions using the kbinani/screenshot library.
type screenGrabber struct{}

// NewScreenGrabber creates a Grabber backed by the operating system's
// screen capture facility.
func NewScreenGrabber() Grabber {
	return &screenGrabber{}
}

// Grab captures the region and converts it to a 3-channel BGR Mat.
// Each call returns a freshly allocated buffer; nothing is cached.
func (g *screenGrabber) Grab(region Region) (*gocv.Mat, error) {
	if !region.Valid() {
		return nil, ErrInvalidRegion
	}

	img, err := screenshot.CaptureRect(region.Bounds())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}

	// CaptureRect allocates an exact-size RGBA buffer, so Pix is densely
	// packed and can be handed to OpenCV directly.
	rgba, err := gocv.NewMatFromBytes(region.Height, region.Width, gocv.MatTypeCV8UC4, img.Pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCapture, err)
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)

	return &bgr, nil
}
