package encoder

import "testing"

func TestTrackerNoOpOnRepeat(t *testing.T) {
	var tr Tracker
	tr.Observe(Sample{Left: 10, Right: 20})
	tr.Drain()

	tr.Observe(Sample{Left: 10, Right: 20})
	tr.Observe(Sample{Left: 10, Right: 20})
	expectDrain(t, &tr, 0, 0)
}

func TestTrackerDeltaConservation(t *testing.T) {
	var tr Tracker
	tr.Observe(Sample{Left: 1, Right: -1})
	tr.Observe(Sample{Left: 4, Right: -3})
	tr.Observe(Sample{Left: 2, Right: 5})
	// Sum of the per-observe differences from zero.
	expectDrain(t, &tr, 2, 5)

	// Drain must have reset the accumulators, not the prev counts.
	expectDrain(t, &tr, 0, 0)
	tr.Observe(Sample{Left: 3, Right: 5})
	expectDrain(t, &tr, 1, 0)
}

func TestTrackerNegativeDeltas(t *testing.T) {
	var tr Tracker
	tr.Observe(Sample{Left: 100, Right: 100})
	tr.Drain()
	tr.Observe(Sample{Left: 97, Right: 103})
	expectDrain(t, &tr, -3, 3)
}

func TestTrackerUntouchedByFailedDecode(t *testing.T) {
	var tr Tracker
	tr.Observe(Sample{Left: 5, Right: 5})
	tr.Drain()

	if _, err := Decode("L: abc, R: 3"); err == nil {
		t.Fatal("expected decode failure")
	}
	// The failed record never reaches Observe, so nothing changes.
	expectDrain(t, &tr, 0, 0)
}

func expectDrain(t *testing.T, tr *Tracker, left, right int32) {
	t.Helper()
	l, r := tr.Drain()
	if l != left || r != right {
		t.Fatalf("Drain() = %d, %d; expected %d, %d", l, r, left, right)
	}
}
