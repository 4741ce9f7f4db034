// Package serialstream reads newline-terminated encoder records from the
// drive board's serial port.  The port is reopened after hard failures;
// read timeouts just mean no data arrived this cycle.
package serialstream

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	readTimeout  = 250 * time.Millisecond
	reopenDelay  = 500 * time.Millisecond
	readBufBytes = 256
)

type Reader struct {
	device string
	mode   *serial.Mode

	mu   sync.Mutex
	port serial.Port
}

func New(device string, baudRate int) *Reader {
	return &Reader{
		device: device,
		mode:   &serial.Mode{BaudRate: baudRate},
	}
}

// Loop keeps the port open and delivers trimmed, non-empty records to
// lines until the context is cancelled.  Hard I/O errors are reported and
// followed by a reopen; they never escape to the consumer.
func (r *Reader) Loop(ctx context.Context, lines chan<- string) {
	defer close(lines)
	for ctx.Err() == nil {
		err := r.openAndRead(ctx, lines)
		if ctx.Err() != nil {
			return
		}
		fmt.Println("Encoder stream stopped; will retry:", err)
		time.Sleep(reopenDelay)
	}
}

func (r *Reader) openAndRead(ctx context.Context, lines chan<- string) error {
	port, err := serial.Open(r.device, r.mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", r.device, err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		_ = port.Close()
		return fmt.Errorf("failed to set read timeout: %w", err)
	}
	fmt.Println("Opened encoder serial port", r.device)

	r.setPort(port)
	defer func() {
		r.setPort(nil)
		_ = port.Close()
	}()

	var f framer
	buf := make([]byte, readBufBytes)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := port.Read(buf)
		if err != nil {
			return fmt.Errorf("failed to read from serial: %w", err)
		}
		if n == 0 {
			// Read timeout.  No data this cycle, not an error.
			continue
		}
		for _, line := range f.Feed(buf[:n]) {
			select {
			case lines <- line:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (r *Reader) setPort(port serial.Port) {
	r.mu.Lock()
	r.port = port
	r.mu.Unlock()
}

// SendStop writes a zero-velocity command downstream so the drive board
// stops the motors when we shut down.  Best effort: with the port closed
// or never opened there's nothing to do.
func (r *Reader) SendStop() {
	r.mu.Lock()
	port := r.port
	r.mu.Unlock()
	if port == nil {
		fmt.Println("No serial port open, skipping stop command")
		return
	}
	if _, err := port.Write([]byte("S:0\n")); err != nil {
		fmt.Println("Failed to send stop command:", err)
	}
}
