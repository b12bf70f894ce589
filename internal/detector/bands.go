// Package detector provides HSV color-band object detection for the clicker pipeline.
package detector

import "gocv.io/x/gocv"

// Category identifies a clickable color band.
type Category string

const (
	// CategoryPink is the primary target band. Pink detections preempt green ones.
	CategoryPink Category = "pink"
	// CategoryGreen is the secondary target band, admitted only within the
	// middle vertical band of the region.
	CategoryGreen Category = "green"
	// CategoryNone marks an empty detection result.
	CategoryNone Category = ""
)

// ColorBand is a named closed interval in HSV space. Pixels whose HSV value
// falls inside the interval (inclusive, component-wise) belong to the band.
// Hue does not wrap; the interval is a plain closed range.
type ColorBand struct {
	Name         string
	Lower, Upper gocv.Scalar
}

// The three bands the bot knows about. Hue is in OpenCV's 0-180 range.
// Bounds are empirically tuned for the target application and are not
// meant to be adjusted at runtime.
var (
	// BandPink matches the primary targets (magenta-ish objects).
	BandPink = ColorBand{
		Name:  "pink",
		Lower: gocv.NewScalar(160, 20, 100, 0),
		Upper: gocv.NewScalar(180, 255, 255, 0),
	}

	// BandGreen matches the secondary targets.
	BandGreen = ColorBand{
		Name:  "green",
		Lower: gocv.NewScalar(40, 50, 50, 0),
		Upper: gocv.NewScalar(80, 255, 255, 0),
	}

	// BandHazard matches bomb-like objects: low saturation, mid value,
	// any hue. Targets near a hazard are never clicked.
	BandHazard = ColorBand{
		Name:  "bomb",
		Lower: gocv.NewScalar(0, 0, 50, 0),
		Upper: gocv.NewScalar(180, 50, 200, 0),
	}
)
