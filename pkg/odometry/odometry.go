// Package odometry converts accumulated wheel-encoder tick deltas into
// rigid-body pose deltas using differential-drive kinematics.
package odometry

import (
	"fmt"
	"math"
)

// Geometry holds the fixed physical constants of the chassis.  Supplied
// once from config; never mutated after construction.
type Geometry struct {
	WheelRadiusM float64 `yaml:"wheel_radius_m"`
	AxleLengthM  float64 `yaml:"axle_length_m"`
	TicksPerRev  float64 `yaml:"ticks_per_rev"`

	// Encoder wiring may reverse polarity independently per wheel.
	InvertLeft  bool `yaml:"invert_left"`
	InvertRight bool `yaml:"invert_right"`
}

func (g Geometry) Validate() error {
	if g.WheelRadiusM <= 0 {
		return fmt.Errorf("wheel_radius_m must be > 0, got %v", g.WheelRadiusM)
	}
	if g.AxleLengthM <= 0 {
		return fmt.Errorf("axle_length_m must be > 0, got %v", g.AxleLengthM)
	}
	if g.TicksPerRev <= 0 {
		return fmt.Errorf("ticks_per_rev must be > 0, got %v", g.TicksPerRev)
	}
	return nil
}

// PoseDelta is one fixed timestep's worth of motion: translation along
// the vehicle's forward axis and rotation about the axle midpoint.
type PoseDelta struct {
	ForwardM float64
	YawRad   float64
}

type Integrator struct {
	geom Geometry
}

// NewIntegrator validates the geometry up front so the per-tick path can
// never divide by zero.
func NewIntegrator(g Geometry) (*Integrator, error) {
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("bad vehicle geometry: %w", err)
	}
	return &Integrator{geom: g}, nil
}

// Integrate maps one drain's worth of tick deltas to a pose delta.  The
// ok result is false when both deltas are zero: the vehicle didn't move,
// and the caller should emit no update at all rather than a zero-valued
// one.  Purely a function of the inputs and the geometry.
func (i *Integrator) Integrate(deltaLeft, deltaRight int32) (pd PoseDelta, ok bool) {
	if deltaLeft == 0 && deltaRight == 0 {
		return PoseDelta{}, false
	}
	leftM := i.wheelDistanceM(deltaLeft, i.geom.InvertLeft)
	rightM := i.wheelDistanceM(deltaRight, i.geom.InvertRight)
	return PoseDelta{
		ForwardM: (leftM + rightM) / 2,
		YawRad:   (rightM - leftM) / i.geom.AxleLengthM,
	}, true
}

func (i *Integrator) wheelDistanceM(ticks int32, invert bool) float64 {
	d := 2 * math.Pi * i.geom.WheelRadiusM * (float64(ticks) / i.geom.TicksPerRev)
	if invert {
		d = -d
	}
	return d
}

// WheelTurnsDegrees gives the visual rotation of each wheel for the same
// tick deltas.  Cosmetic only; inversion flags deliberately not applied
// since the model's wheels spin the way the encoder counts.
func (i *Integrator) WheelTurnsDegrees(deltaLeft, deltaRight int32) (left, right float64) {
	left = float64(deltaLeft) / i.geom.TicksPerRev * 360
	right = float64(deltaRight) / i.geom.TicksPerRev * 360
	return
}

// WrapDegrees shifts an angle of any magnitude into (-180, 180] for
// display.
func WrapDegrees(f float64) float64 {
	d := math.Mod(f, 360)
	if d <= -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return d
}
