package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/trackbot-team/trackbot/go-odometry/pkg/encoder"
	"github.com/trackbot-team/trackbot/go-odometry/pkg/serialstream"
)

// Dumps decoded samples from the real serial port, plus the accumulated
// deltas drained once a second.
func main() {
	device := os.Getenv("ENCODER_DEVICE")
	if device == "" {
		device = "/dev/ttyAMA0"
	}
	fmt.Println("Encoder port test on", device)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := serialstream.New(device, 115200)
	lines := make(chan string)
	go stream.Loop(ctx, lines)

	var tracker encoder.Tracker
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			sample, err := encoder.Decode(line)
			if err != nil {
				fmt.Printf("Bad record %q: %v\n", line, err)
				continue
			}
			fmt.Printf("Sample: L=%d R=%d\n", sample.Left, sample.Right)
			tracker.Observe(sample)
		case <-ticker.C:
			dl, dr := tracker.Drain()
			fmt.Printf("Drained deltas: dl=%d dr=%d\n", dl, dr)
		}
	}
}
