// Package capture provides screen region capture functionality using GoCV (OpenCV).
package capture

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// ErrInvalidRegion is returned when a region has zero or negative dimensions.
var ErrInvalidRegion = errors.New("region has invalid dimensions")

// ErrCapture is returned when the screen region could not be captured.
var ErrCapture = errors.New("screen capture failed")

// Region describes the screen rectangle the bot watches.
// X and Y are the screen coordinates of the top-left corner.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether the region has positive dimensions.
func (r Region) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Bounds returns the region as an image.Rectangle in screen coordinates.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Grabber defines the interface for screen capture implementations.
// Grab returns a fresh 3-channel BGR Mat of the region's current on-screen
// contents. The caller is responsible for closing the returned Mat.
type Grabber interface {
	Grab(region Region) (*gocv.Mat, error)
}
