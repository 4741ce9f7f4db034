package main

import (
	"context"
	"math"
	"time"

	"github.com/trackbot-team/trackbot/go-odometry/pkg/odometry"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/screen"
)

// Drives the status screen with a fake circling pose so the layout can
// be checked without the rest of the robot.
func main() {
	ctx := context.Background()
	go screen.LoopUpdatingScreen(ctx)

	screen.Lock.Lock()
	screen.BusVoltages[0] = 8.4
	screen.BusVoltages[1] = 16.8
	screen.StreamOK = true
	screen.Lock.Unlock()

	var headingDeg float64
	for range time.NewTicker(100 * time.Millisecond).C {
		headingDeg += 5
		screen.Lock.Lock()
		screen.PoseXM = math.Cos(headingDeg * math.Pi / 180)
		screen.PoseYM = math.Sin(headingDeg * math.Pi / 180)
		screen.HeadingDeg = odometry.WrapDegrees(headingDeg)
		screen.MotorForcePercent = int(headingDeg) % 101
		screen.Lock.Unlock()
	}
}
