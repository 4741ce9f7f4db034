// Package screen renders the odometry status to the little SPI TFT on
// /dev/fb1: current pose estimate, ramp motor force and battery charge.
package screen

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fogleman/gg"
)

// Shared state written by the controller loop, guarded by Lock.
var (
	Lock sync.Mutex

	PoseXM            float64
	PoseYM            float64
	HeadingDeg        float64
	MotorForcePercent int
	StreamOK          bool

	BusVoltages = make([]float64, 2)
)

const size = 128

func LoopUpdatingScreen(ctx context.Context) {
	f, err := os.OpenFile("/dev/fb1", os.O_RDWR, 0666)
	if err != nil {
		fmt.Println("Failed to open screen, ignoring")
		return
	}

	for range time.NewTicker(500 * time.Millisecond).C {
		if ctx.Err() != nil {
			// Blank the screen on the way out.
			var buf [size * size * 2]byte
			_, _ = f.Seek(0, 0)
			_, _ = f.Write(buf[:])
			return
		}

		dc := gg.NewContext(size, size)
		dc.SetRGBA(1, 0.9, 0, 1)

		Lock.Lock()
		x, y, heading := PoseXM, PoseYM, HeadingDeg
		force := MotorForcePercent
		streamOK := StreamOK
		v0, v1 := BusVoltages[0], BusVoltages[1]
		Lock.Unlock()

		dc.DrawString("TRACKBOT ODO", 5, 12)
		dc.DrawString(fmt.Sprintf("X %7.2fm", x), 5, 30)
		dc.DrawString(fmt.Sprintf("Y %7.2fm", y), 5, 42)
		dc.DrawString(fmt.Sprintf("H %6.1fdeg", heading), 5, 54)
		dc.DrawString(fmt.Sprintf("Motor Force: %d%%", force), 5, 72)

		if !streamOK {
			dc.Push()
			dc.Translate(112, 12)
			drawWarning(dc)
			dc.Pop()
			dc.SetRGBA(1, 0.9, 0, 1)
		}

		dc.Push()
		dc.Translate(28, 80)
		drawPowerBar(dc, v0)
		dc.Translate(34, 0)
		drawPowerBar(dc, v1)
		dc.Pop()

		if err := blitFrame(f, dc); err != nil {
			fmt.Println("Screen failure: ", err)
			return
		}
	}
}

// blitFrame converts the rendered context to the panel's RGB565 layout
// and writes it out a line at a time.
func blitFrame(f *os.File, dc *gg.Context) error {
	var buf [size * size * 2]byte
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := dc.Image().At(x, y).RGBA() // 16-bit pre-multiplied

			rb := byte(r >> (16 - 5))
			gb := byte(g >> (16 - 6)) // Green has 6 bits
			bb := byte(b >> (16 - 5))

			buf[(size-1-y)*2+x*size*2+1] = (rb << 3) | (gb >> 3)
			buf[(size-1-y)*2+x*size*2] = bb | (gb << 5)
		}
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	for i := 0; i < size; i++ {
		if _, err := f.Write(buf[i*256 : i*256+256]); err != nil {
			return err
		}
		time.Sleep(10 * time.Microsecond)
	}
	return nil
}

const (
	minCellVoltage = 3
	maxCellVoltage = 4.2
)

func drawPowerBar(dc *gg.Context, voltage float64) {
	var cellVoltage float64
	if voltage > 9 {
		// assume the 4-cell pack
		cellVoltage = voltage / 4
	} else {
		// assume the 2-cell pack
		cellVoltage = voltage / 2
	}
	charge := (cellVoltage - minCellVoltage) / (maxCellVoltage - minCellVoltage)

	if charge < 0.1 {
		dc.SetRGBA(1, 0.2, 0, 1)
	}
	dc.DrawRectangle(0, 30, 30, 6)
	for n := 0; n < 8; n++ {
		if charge >= (float64(n+1) / 8) {
			dc.DrawRectangle(2, 26-float64(n)*4, 26, 3)
		}
	}
	dc.Fill()
	dc.DrawString(fmt.Sprintf("%.1fv", voltage), -2, 46)
}

func drawWarning(dc *gg.Context) {
	dc.SetRGB(1, 0.2, 0)
	dc.DrawRegularPolygon(3, 0, 0, 14, 0)
	dc.Fill()
	dc.SetRGBA(0, 0, 0, 0.9)
	dc.DrawString("!", -3, 3)
}
