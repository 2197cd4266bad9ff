package pathsimp

import (
	"fmt"
	"math"
)

// ToleranceConfig bounds the deviation a simplification may introduce.
type ToleranceConfig struct {
	// Thresh is a distance, in path units, used for flatness, arc and
	// midpoint deviation checks. Callers usually scale it to the size of the
	// path, see [ThreshForBounds].
	Thresh float64
	// Tolerance is the maximum relative area deviation, in percent.
	Tolerance float64
}

// Validate checks that both values are positive finite numbers.
func (tc ToleranceConfig) Validate() error {
	if !isPositiveFinite(tc.Thresh) {
		return fmt.Errorf("%w: thresh must be a positive finite number, got %g", ErrInvalidConfig, tc.Thresh)
	}
	if !isPositiveFinite(tc.Tolerance) {
		return fmt.Errorf("%w: tolerance must be a positive finite number, got %g", ErrInvalidConfig, tc.Tolerance)
	}
	return nil
}

func isPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Options configures [Simplify].
type Options struct {
	ToleranceConfig

	// CornerAngle is the minimum angle, in radians, between the tangents
	// of two adjoining curves for their shared vertex to count as a corner.
	CornerAngle float64
	// ExtremeAngle is the angle threshold passed to [BezierHasExtreme] when
	// deciding whether a curve is tested for corners.
	ExtremeAngle float64
	// StrictClose selects how a ClosePath is recognized as drawing an
	// implicit line. If true, both coordinates of the current point must
	// differ from the subpath's start. If false, either differing suffices.
	StrictClose bool
	// Concurrency limits the number of subpaths simplified in parallel.
	// Zero means GOMAXPROCS.
	Concurrency int
	// SkipInvalid copies subpaths that fail validation to the output
	// instead of failing the whole path.
	SkipInvalid bool
	// Observer, if not nil, is notified of every simplification decision.
	// It may be called concurrently.
	Observer Observer
}

// DefaultOptions returns the options used by the command line tool when no
// configuration is given.
func DefaultOptions() Options {
	return Options{
		ToleranceConfig: ToleranceConfig{
			Thresh:    1,
			Tolerance: 5,
		},
		CornerAngle:  10 * math.Pi / 180,
		ExtremeAngle: 1 * math.Pi / 180,
		StrictClose:  true,
	}
}

// Validate validates the tolerance configuration and angle thresholds.
func (o Options) Validate() error {
	if err := o.ToleranceConfig.Validate(); err != nil {
		return err
	}
	if o.CornerAngle < 0 || o.CornerAngle > math.Pi || math.IsNaN(o.CornerAngle) {
		return fmt.Errorf("%w: corner angle must be in [0, π], got %g", ErrInvalidConfig, o.CornerAngle)
	}
	if o.ExtremeAngle < 0 || o.ExtremeAngle >= math.Pi/4 || math.IsNaN(o.ExtremeAngle) {
		return fmt.Errorf("%w: extreme angle must be in [0, π/4), got %g", ErrInvalidConfig, o.ExtremeAngle)
	}
	if o.Concurrency < 0 {
		return fmt.Errorf("%w: negative concurrency %d", ErrInvalidConfig, o.Concurrency)
	}
	return nil
}

// ThreshForBounds scales ratio by the larger dimension of r. It returns ratio
// itself for empty rectangles.
func ThreshForBounds(r Rect, ratio float64) float64 {
	size := max(r.Width(), r.Height())
	if size <= 0 {
		return ratio
	}
	return size * ratio
}
