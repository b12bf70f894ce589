package detector

import (
	"image"
	"math"

	"gocv.io/x/gocv"
)

// blobRects extracts the bounding boxes of the external contours in a binary
// mask. Nested contours are ignored; only outermost boundaries count as
// objects. The returned order is whatever the contour extraction yields and
// carries no spatial meaning.
func blobRects(mask *gocv.Mat) []image.Rectangle {
	contours := gocv.FindContours(*mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	if contours.Size() == 0 {
		return nil
	}

	rects := make([]image.Rectangle, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		rects = append(rects, gocv.BoundingRect(contours.At(i)))
	}
	return rects
}

// HazardCenters extracts the centers of all hazard blobs in the hazard mask.
// The centers are in mask-local coordinates. Extracting them once per frame
// and reusing them for every candidate is equivalent to re-extracting per
// candidate, since the mask does not change within a cycle.
func HazardCenters(mask *gocv.Mat) []image.Point {
	rects := blobRects(mask)
	if len(rects) == 0 {
		return nil
	}

	centers := make([]image.Point, 0, len(rects))
	for _, r := range rects {
		centers = append(centers, center(r))
	}
	return centers
}

// center returns the bounding box center using integer division, matching
// how click points are derived from blobs.
func center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

// hazardNear reports whether any hazard center lies strictly closer than
// radius to p. Hazard avoidance is absolute: a single nearby hazard vetoes
// the candidate outright.
func hazardNear(p image.Point, hazards []image.Point, radius float64) bool {
	for _, h := range hazards {
		if math.Hypot(float64(h.X-p.X), float64(h.Y-p.Y)) < radius {
			return true
		}
	}
	return false
}
