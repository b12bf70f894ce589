package detector

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

// ErrEmptyFrame is returned when a nil or empty frame is passed to the detector.
var ErrEmptyFrame = errors.New("frame is nil or empty")

// MorphKernelSize is the side length of the square structuring element used
// for mask denoising.
const MorphKernelSize = 3

// MaskSet holds the binary masks for one frame, one per color band.
// The caller must Close the set when done with it.
type MaskSet struct {
	Pink   gocv.Mat
	Green  gocv.Mat
	Hazard gocv.Mat
}

// BuildMasks converts the frame to HSV once and thresholds it into the three
// band masks, then denoises each with iterations of erosion followed by the
// same number of dilations. Erosion runs first so single-pixel noise is
// removed before dilation restores genuine blobs to their original size.
//
// The produced masks have the same dimensions as the frame. Building is
// deterministic: the same frame always yields the same masks.
func BuildMasks(frame *gocv.Mat, iterations int) (*MaskSet, error) {
	if frame == nil || frame.Empty() {
		return nil, ErrEmptyFrame
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(*frame, &hsv, gocv.ColorBGRToHSV)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(MorphKernelSize, MorphKernelSize))
	defer kernel.Close()

	m := &MaskSet{
		Pink:   gocv.NewMat(),
		Green:  gocv.NewMat(),
		Hazard: gocv.NewMat(),
	}

	threshold(hsv, BandPink, &m.Pink, kernel, iterations)
	threshold(hsv, BandGreen, &m.Green, kernel, iterations)
	threshold(hsv, BandHazard, &m.Hazard, kernel, iterations)

	return m, nil
}

// threshold applies the band's inclusive HSV bounds and the denoise pass.
func threshold(hsv gocv.Mat, band ColorBand, mask *gocv.Mat, kernel gocv.Mat, iterations int) {
	gocv.InRangeWithScalar(hsv, band.Lower, band.Upper, mask)

	for i := 0; i < iterations; i++ {
		gocv.Erode(*mask, mask, kernel)
	}
	for i := 0; i < iterations; i++ {
		gocv.Dilate(*mask, mask, kernel)
	}
}

// ByCategory returns the mask for the given clickable category.
func (m *MaskSet) ByCategory(c Category) *gocv.Mat {
	switch c {
	case CategoryPink:
		return &m.Pink
	case CategoryGreen:
		return &m.Green
	}
	return nil
}

// Close releases the Mats held by the set.
func (m *MaskSet) Close() {
	m.Pink.Close()
	m.Green.Close()
	m.Hazard.Close()
}
