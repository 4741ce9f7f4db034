// Package ramp estimates the slope under the vehicle from contact-surface
// normals and maps it to the motor effort needed to climb.
package ramp

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the global up reference the ramp angle is measured against.
var Up = r3.Vec{Z: 1}

// Config holds the static shaping constants for the angle-to-effort
// mapping.
type Config struct {
	// Angles with magnitude below DeadZoneDeg are treated as flat
	// ground; contact normals are noisy enough that small tilts are
	// meaningless.
	DeadZoneDeg float64 `yaml:"dead_zone_deg"`
	// Angles steeper than MaxAngleDeg are not a climbable ramp (most
	// likely a wall contact) and produce no drive.
	MaxAngleDeg float64 `yaml:"max_angle_deg"`
	// PWMFloor is the smallest drive the motors respond to without
	// stalling; the interpolation starts there rather than at zero.
	PWMFloor int `yaml:"pwm_floor"`
	PWMMax   int `yaml:"pwm_max"`
}

func DefaultConfig() Config {
	return Config{
		DeadZoneDeg: 2,
		MaxAngleDeg: 30,
		PWMFloor:    16,
		PWMMax:      255,
	}
}

// Estimate is the result for one contact batch.
type Estimate struct {
	// AngleDeg is the ramp angle rounded to 0.1 degree, positive when
	// the vehicle points uphill.
	AngleDeg float64
	// PWM follows the sign of the angle; zero on flat ground and on
	// slopes too steep to climb.
	PWM int
	// EffortPercent is |PWM| rescaled to 0..100 for display.
	EffortPercent int
}

type Estimator struct {
	cfg Config
}

func NewEstimator(cfg Config) *Estimator {
	return &Estimator{cfg: cfg}
}

// Estimate averages one batch of contact-surface unit normals and derives
// the signed ramp angle and motor effort.  ok is false when the batch is
// empty or degenerate, in which case the caller keeps its previous value.
// forward is the vehicle's forward direction projected on the ground; it
// only sets the sign convention (uphill positive).
func (e *Estimator) Estimate(normals []r3.Vec, forward r3.Vec) (est Estimate, ok bool) {
	if len(normals) == 0 {
		return Estimate{}, false
	}
	var sum r3.Vec
	for _, n := range normals {
		sum = r3.Add(sum, n)
	}
	if r3.Norm(sum) < 1e-9 {
		// Normals cancelled out; no usable surface orientation.
		return Estimate{}, false
	}
	mean := r3.Unit(sum)

	axis := r3.Cross(Up, forward)
	if r3.Norm(axis) < 1e-9 {
		return Estimate{}, false
	}
	axis = r3.Unit(axis)

	// Signed angle between the mean normal and up, about the pitch
	// axis.  The normal of an uphill surface leans away from forward,
	// which this ordering makes positive.
	angle := math.Atan2(r3.Dot(r3.Cross(mean, Up), axis), r3.Dot(mean, Up))
	deg := angle * 180 / math.Pi

	deg = math.Round(deg*10) / 10
	if math.Abs(deg) < e.cfg.DeadZoneDeg {
		deg = 0
	}

	est = Estimate{AngleDeg: deg}
	mag := math.Abs(deg)
	if deg == 0 || mag > e.cfg.MaxAngleDeg {
		return est, true
	}

	frac := (mag - e.cfg.DeadZoneDeg) / (e.cfg.MaxAngleDeg - e.cfg.DeadZoneDeg)
	pwm := float64(e.cfg.PWMFloor) + frac*float64(e.cfg.PWMMax-e.cfg.PWMFloor)
	est.EffortPercent = effortPercent(pwm)
	if deg < 0 {
		pwm = -pwm
	}
	est.PWM = int(math.Round(pwm))
	return est, true
}

func effortPercent(pwm float64) int {
	p := int(math.Round((pwm - 15) / 240 * 100))
	if p < 0 {
		p = 0
	} else if p > 100 {
		p = 100
	}
	return p
}
