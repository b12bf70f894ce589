package detector

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"github.com/ayusman/shikari/internal/capture"
)

// ErrInvalidRegion is returned when the supplied region has zero or negative
// dimensions. Detection cannot proceed on a degenerate region.
var ErrInvalidRegion = errors.New("region has invalid dimensions")

// ErrFrameMismatch is returned when the frame dimensions do not match the region.
var ErrFrameMismatch = errors.New("frame dimensions do not match region")

// Config holds the detection tuning values. All of them are empirically
// calibrated for the target application's geometry; the defaults are the
// values the bot ships with.
type Config struct {
	// HazardRadius is the veto distance in pixels: a candidate whose center
	// is strictly closer than this to any hazard blob center is discarded.
	HazardRadius float64

	// ClickOffsetY is the fixed vertical bias in pixels added to every click
	// point, compensating for the systematic offset between a blob's visual
	// center and the actionable click point.
	ClickOffsetY int

	// EdgeBandRatio is the fraction of the region height that forms the top
	// and bottom exclusion bands for the green category. Green candidates
	// whose mask-local vertical center falls strictly inside either band are
	// discarded; pink candidates are never restricted.
	EdgeBandRatio float64

	// DenoiseIterations is the number of erosion passes (and matching
	// dilation passes) applied to each mask.
	DenoiseIterations int
}

// DefaultConfig returns a Config with the shipped tuning values.
func DefaultConfig() Config {
	return Config{
		HazardRadius:      100,
		ClickOffsetY:      3,
		EdgeBandRatio:     0.10,
		DenoiseIterations: 1,
	}
}

// Detection is a screen-absolute clickable point.
type Detection struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Result is the outcome of one detection cycle. Detections is always a
// sequence; when Category is CategoryPink it holds at most one element (the
// first pink object found, preempting green entirely), when CategoryGreen it
// holds every admitted green object in discovery order, and when CategoryNone
// it is empty. Consumers click each detection in order, which reproduces both
// the single-point and the sequence shape of the boundary contract.
type Result struct {
	Detections []Detection
	Category   Category
}

// Detector runs the color detection pipeline on captured frames.
// It holds no per-frame state: Detect is a pure function of the frame,
// the region and the configuration.
type Detector struct {
	cfg Config
}

// New creates a Detector with the given configuration. Zero or negative
// tuning values are replaced by their defaults.
func New(cfg Config) *Detector {
	def := DefaultConfig()
	if cfg.HazardRadius <= 0 {
		cfg.HazardRadius = def.HazardRadius
	}
	if cfg.EdgeBandRatio <= 0 {
		cfg.EdgeBandRatio = def.EdgeBandRatio
	}
	if cfg.DenoiseIterations <= 0 {
		cfg.DenoiseIterations = def.DenoiseIterations
	}
	return &Detector{cfg: cfg}
}

// Config returns the detector's effective configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect runs one full detection cycle on a captured frame: mask building,
// object extraction for both target bands, hazard filtering and the selection
// policy. The frame must be a 3-channel BGR Mat whose dimensions equal the
// region's; the frame is not modified and remains owned by the caller.
//
// Selection policy: if any pink object survives filtering, the result is the
// single first pink detection and green is never consulted. Otherwise the
// result is the full green sequence, which may be empty. An empty result is
// the normal no-op case, not an error.
func (d *Detector) Detect(frame *gocv.Mat, region capture.Region) (*Result, error) {
	if !region.Valid() {
		return nil, ErrInvalidRegion
	}
	if frame == nil || frame.Empty() {
		return nil, ErrEmptyFrame
	}
	if frame.Cols() != region.Width || frame.Rows() != region.Height {
		return nil, ErrFrameMismatch
	}

	masks, err := BuildMasks(frame, d.cfg.DenoiseIterations)
	if err != nil {
		return nil, err
	}
	defer masks.Close()

	hazards := HazardCenters(&masks.Hazard)

	pink := d.Objects(masks, hazards, CategoryPink, region)
	if len(pink) > 0 {
		return &Result{Detections: pink[:1], Category: CategoryPink}, nil
	}

	green := d.Objects(masks, hazards, CategoryGreen, region)
	if len(green) == 0 {
		return &Result{Category: CategoryNone}, nil
	}
	return &Result{Detections: green, Category: CategoryGreen}, nil
}

// Objects extracts the admitted detections for one category from its mask in
// the set. Candidates too close to a hazard are discarded; green candidates
// are additionally discarded when their mask-local vertical center falls
// strictly inside the top or bottom edge band. Surviving centers are
// translated to screen coordinates with the vertical click bias applied.
func (d *Detector) Objects(masks *MaskSet, hazards []image.Point, category Category, region capture.Region) []Detection {
	mask := masks.ByCategory(category)
	if mask == nil {
		return nil
	}

	var detections []Detection

	topLimit := int(float64(region.Height) * d.cfg.EdgeBandRatio)
	bottomLimit := region.Height - topLimit

	for _, rect := range blobRects(mask) {
		c := center(rect)

		if hazardNear(c, hazards, d.cfg.HazardRadius) {
			continue
		}

		// Centers exactly on a limit are admitted.
		if category == CategoryGreen && (c.Y < topLimit || c.Y > bottomLimit) {
			continue
		}

		detections = append(detections, Detection{
			X: c.X + region.X,
			Y: c.Y + region.Y + d.cfg.ClickOffsetY,
		})
	}

	return detections
}
