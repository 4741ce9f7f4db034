package encoder

import "sync/atomic"

// Tracker turns the stream of absolute tick counters into accumulated
// per-wheel deltas.  Observe runs on the serial-reading goroutine and
// Drain on the fixed-rate odometry loop; the hand-off between the two
// rates is the pair of atomic accumulators, so every tick change is
// applied exactly once however many samples arrive between drains.
type Tracker struct {
	// prevLeft/prevRight are only touched by the observing goroutine.
	prevLeft  int32
	prevRight int32

	deltaLeft  atomic.Int32
	deltaRight atomic.Int32
}

// Observe folds one sample into the accumulators.  A sample identical to
// the previous one means the board had nothing new to report, so it is
// ignored entirely.
func (t *Tracker) Observe(s Sample) {
	if s.Left == t.prevLeft && s.Right == t.prevRight {
		return
	}
	t.deltaLeft.Add(s.Left - t.prevLeft)
	t.deltaRight.Add(s.Right - t.prevRight)
	t.prevLeft = s.Left
	t.prevRight = s.Right
}

// Drain returns the tick deltas accumulated since the last Drain and
// resets them to zero.
func (t *Tracker) Drain() (left, right int32) {
	return t.deltaLeft.Swap(0), t.deltaRight.Swap(0)
}
