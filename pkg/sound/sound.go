// Package sound plays short wav alerts (startup chime, encoder stream
// lost).  If there's no speaker we just log what would have played.
package sound

import (
	"fmt"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
)

// InitAlerts starts the playback goroutine and returns the channel to
// send wav file paths on.  A new alert cuts off the previous one.
func InitAlerts() chan<- string {
	alerts := make(chan string)
	go func() {
		defer func() {
			recover()
			for a := range alerts {
				fmt.Println("Unable to play", a)
			}
		}()

		sampleRate := beep.SampleRate(44100)
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/5)); err != nil {
			fmt.Println("Failed to open speaker", err)
			for a := range alerts {
				fmt.Println("Unable to play", a)
			}
			return
		}

		var (
			current *beep.Ctrl
			stream  beep.StreamSeekCloser
		)
		for path := range alerts {
			if current != nil {
				speaker.Lock()
				current.Paused = true
				current.Streamer = nil
				speaker.Unlock()
				current = nil
			}
			if stream != nil {
				_ = stream.Close()
			}

			f, err := os.Open(path)
			if err != nil {
				fmt.Println("Failed to open sound", err)
				continue
			}
			stream, _, err = wav.Decode(f)
			if err != nil {
				fmt.Println("Failed to decode sound", err)
				continue
			}
			current = &beep.Ctrl{Streamer: stream}
			speaker.Play(current)
		}
	}()
	return alerts
}
