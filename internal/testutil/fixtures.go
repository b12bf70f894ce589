// Package testutil provides synthetic frame builders for detection tests.
package testutil

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Colors whose HSV representation (after BGR to HSV conversion) falls
// squarely inside one of the detector's bands. The background of a fresh
// frame is black, whose value component is below every band's lower bound.
var (
	// Pink lands at H=165 S=255 V=255, inside the pink band.
	Pink = color.RGBA{R: 255, G: 0, B: 128, A: 255}

	// Green lands at H=60 S=255 V=255, inside the green band.
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}

	// Hazard is mid-gray: H=0 S=0 V=128, inside the hazard band.
	Hazard = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// NewFrame creates a black 3-channel BGR frame of the given size.
// The caller is responsible for closing it.
func NewFrame(width, height int) gocv.Mat {
	return gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
}

// DrawBlob fills an axis-aligned rectangle of the given color onto the frame.
// Blobs should be at least a few pixels across so the detector's erosion pass
// does not remove them outright.
func DrawBlob(frame *gocv.Mat, x, y, w, h int, c color.RGBA) {
	gocv.Rectangle(frame, image.Rect(x, y, x+w, y+h), c, -1)
}

// BlobCenter returns the mask-local center of a blob drawn with DrawBlob,
// using the same integer division the detector uses.
func BlobCenter(x, y, w, h int) image.Point {
	return image.Pt(x+w/2, y+h/2)
}
