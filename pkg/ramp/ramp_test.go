package ramp

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

var forward = r3.Vec{X: 1}

// normalAt builds the contact normal of a ramp the vehicle is pointing
// up: tilted away from forward by deg.
func normalAt(deg float64) r3.Vec {
	rad := deg * math.Pi / 180
	return r3.Vec{X: -math.Sin(rad), Z: math.Cos(rad)}
}

func estimateAt(t *testing.T, deg float64) Estimate {
	t.Helper()
	est, ok := NewEstimator(DefaultConfig()).Estimate([]r3.Vec{normalAt(deg)}, forward)
	if !ok {
		t.Fatalf("no estimate for %v degrees", deg)
	}
	return est
}

func TestEmptyBatch(t *testing.T) {
	if _, ok := NewEstimator(DefaultConfig()).Estimate(nil, forward); ok {
		t.Error("expected no estimate for an empty batch")
	}
}

func TestDeadZone(t *testing.T) {
	est := estimateAt(t, 1.5)
	if est.AngleDeg != 0 || est.PWM != 0 || est.EffortPercent != 0 {
		t.Errorf("1.5 degrees should be clamped flat, got %+v", est)
	}
}

func TestFullEffortAtMaxAngle(t *testing.T) {
	est := estimateAt(t, 30)
	if est.EffortPercent != 100 {
		t.Errorf("30 degrees should give 100%% effort, got %+v", est)
	}
	if est.PWM != 255 {
		t.Errorf("30 degrees should give full PWM, got %+v", est)
	}
}

func TestJustAboveDeadZone(t *testing.T) {
	est := estimateAt(t, 2.1)
	if est.AngleDeg != 2.1 {
		t.Errorf("angle = %v, expected 2.1", est.AngleDeg)
	}
	// Barely above the dead zone: PWM sits at the stall floor and the
	// displayed effort rounds to (almost) nothing.
	if est.PWM < 16 || est.PWM > 18 {
		t.Errorf("PWM = %v, expected the floor", est.PWM)
	}
	if est.EffortPercent > 1 {
		t.Errorf("effort = %v%%, expected ~0", est.EffortPercent)
	}
}

func TestTooSteepIsNotARamp(t *testing.T) {
	est := estimateAt(t, 35)
	if est.AngleDeg != 35 {
		t.Errorf("angle = %v, expected 35", est.AngleDeg)
	}
	if est.PWM != 0 || est.EffortPercent != 0 {
		t.Errorf("35 degrees should produce no drive, got %+v", est)
	}
}

func TestDownhillSign(t *testing.T) {
	up := estimateAt(t, 10)
	down := estimateAt(t, -10)
	if up.AngleDeg != 10 || down.AngleDeg != -10 {
		t.Errorf("angles = %v, %v; expected 10, -10", up.AngleDeg, down.AngleDeg)
	}
	if down.PWM != -up.PWM {
		t.Errorf("PWM = %v, %v; expected opposite signs", up.PWM, down.PWM)
	}
	if down.EffortPercent != up.EffortPercent {
		t.Errorf("effort should not depend on direction: %v vs %v",
			up.EffortPercent, down.EffortPercent)
	}
}

func TestAveragesNoisyBatch(t *testing.T) {
	batch := []r3.Vec{
		normalAt(9.0),
		normalAt(10.0),
		normalAt(11.0),
	}
	est, ok := NewEstimator(DefaultConfig()).Estimate(batch, forward)
	if !ok {
		t.Fatal("no estimate")
	}
	if math.Abs(est.AngleDeg-10) > 0.2 {
		t.Errorf("angle = %v, expected ~10", est.AngleDeg)
	}
}

func TestDegenerateInputs(t *testing.T) {
	e := NewEstimator(DefaultConfig())
	// Forward parallel to up gives no pitch axis.
	if _, ok := e.Estimate([]r3.Vec{normalAt(5)}, Up); ok {
		t.Error("expected no estimate with a degenerate forward reference")
	}
	// Normals that cancel out carry no orientation.
	opposed := []r3.Vec{{Z: 1}, {Z: -1}}
	if _, ok := e.Estimate(opposed, forward); ok {
		t.Error("expected no estimate for cancelling normals")
	}
}
