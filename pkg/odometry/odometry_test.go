package odometry

import (
	"math"
	"testing"
)

func testGeometry() Geometry {
	return Geometry{
		WheelRadiusM: 0.3,
		AxleLengthM:  0.5,
		TicksPerRev:  30,
	}
}

func TestStraightLine(t *testing.T) {
	integ, err := NewIntegrator(testGeometry())
	if err != nil {
		t.Fatal(err)
	}
	pd, ok := integ.Integrate(100, 100)
	if !ok {
		t.Fatal("expected an update")
	}
	expected := 2 * math.Pi * 0.3 * (100.0 / 30.0)
	if math.Abs(pd.ForwardM-expected) > 1e-9 {
		t.Errorf("forward = %v, expected %v", pd.ForwardM, expected)
	}
	if pd.YawRad != 0 {
		t.Errorf("yaw = %v, expected 0", pd.YawRad)
	}
}

func TestPureRotation(t *testing.T) {
	integ, err := NewIntegrator(testGeometry())
	if err != nil {
		t.Fatal(err)
	}
	pd, ok := integ.Integrate(-100, 100)
	if !ok {
		t.Fatal("expected an update")
	}
	if pd.ForwardM != 0 {
		t.Errorf("forward = %v, expected 0", pd.ForwardM)
	}
	// Right wheel forward, left backward: anticlockwise, positive yaw.
	if pd.YawRad <= 0 {
		t.Errorf("yaw = %v, expected > 0", pd.YawRad)
	}
}

func TestZeroDeltaSkipped(t *testing.T) {
	integ, err := NewIntegrator(testGeometry())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := integ.Integrate(0, 0); ok {
		t.Error("expected no update for zero deltas")
	}
}

func TestInversionFlags(t *testing.T) {
	g := testGeometry()
	g.InvertLeft = true
	g.InvertRight = true
	integ, err := NewIntegrator(g)
	if err != nil {
		t.Fatal(err)
	}
	pd, ok := integ.Integrate(100, 100)
	if !ok {
		t.Fatal("expected an update")
	}
	if pd.ForwardM >= 0 {
		t.Errorf("forward = %v, expected negative with both wheels inverted", pd.ForwardM)
	}
}

func TestBadGeometryRejected(t *testing.T) {
	for _, g := range []Geometry{
		{},
		{WheelRadiusM: 0.3, AxleLengthM: 0.5}, // no ticks per rev
		{WheelRadiusM: 0.3, TicksPerRev: 30},  // no axle length
		{AxleLengthM: 0.5, TicksPerRev: 30},   // no wheel radius
		{WheelRadiusM: 0.3, AxleLengthM: -1, TicksPerRev: 30},
	} {
		if _, err := NewIntegrator(g); err == nil {
			t.Errorf("NewIntegrator(%+v) succeeded, expected error", g)
		}
	}
}

func TestWheelTurnsDegrees(t *testing.T) {
	integ, err := NewIntegrator(testGeometry())
	if err != nil {
		t.Fatal(err)
	}
	l, r := integ.WheelTurnsDegrees(30, -15)
	if l != 360 || r != -180 {
		t.Errorf("WheelTurnsDegrees = %v, %v; expected 360, -180", l, r)
	}
}

func TestWrapDegrees(t *testing.T) {
	expectWrap(t, 0, 0)
	expectWrap(t, 179, 179)
	expectWrap(t, 180, 180)
	expectWrap(t, 181, -179)
	expectWrap(t, 360, 0)
	expectWrap(t, -180, 180)
	expectWrap(t, -540, 180)
	expectWrap(t, 725, 5)
}

func expectWrap(t *testing.T, in, expected float64) {
	t.Helper()
	if got := WrapDegrees(in); got != expected {
		t.Errorf("WrapDegrees(%v) = %v, expected %v", in, got, expected)
	}
}
