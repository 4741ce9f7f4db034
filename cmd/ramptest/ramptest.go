package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/trackbot-team/trackbot/go-odometry/pkg/ramp"
)

// Sweeps synthetic contact batches through the ramp estimator so the
// dead zone and effort curve can be eyeballed.
func main() {
	est := ramp.NewEstimator(ramp.DefaultConfig())
	forward := r3.Vec{X: 1}

	fmt.Println("deg    batch-mean-angle  pwm  effort")
	for deg := -40.0; deg <= 40.0; deg += 2.5 {
		res, ok := est.Estimate(tiltedBatch(deg), forward)
		if !ok {
			fmt.Printf("%6.1f  (no estimate)\n", deg)
			continue
		}
		fmt.Printf("%6.1f  %6.1f  %4d  Motor Force: %d%%\n",
			deg, res.AngleDeg, res.PWM, res.EffortPercent)
	}
}

// tiltedBatch fakes a batch of contact normals for a ramp of the given
// angle, with a little jitter about the pitch axis like a real contact
// manifold produces.
func tiltedBatch(deg float64) []r3.Vec {
	var batch []r3.Vec
	for _, jitter := range []float64{-0.8, 0, 0.4, 0.8} {
		rad := (deg + jitter) * math.Pi / 180
		batch = append(batch, r3.Vec{X: -math.Sin(rad), Z: math.Cos(rad)})
	}
	return batch
}
