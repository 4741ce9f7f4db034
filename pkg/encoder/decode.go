// Package encoder decodes wheel-encoder records from the drive board's
// serial stream and accumulates tick deltas for the odometry loop.
package encoder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sample is the pair of absolute tick counters from one serial record.
type Sample struct {
	Left  int32
	Right int32
}

// ErrNoEncoderFields is returned for records that carry no recognizable
// encoder marker at all.  Expected for line noise and partial reads, so
// callers normally drop these without reporting.
var ErrNoEncoderFields = errors.New("no encoder fields in record")

// MalformedFieldError means a field had an encoder marker but the tick
// count after it didn't parse.  The whole record is rejected; we never
// feed a half-corrupted sample into the odometry.
type MalformedFieldError struct {
	Field string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed encoder field %q: %v", e.Field, e.Err)
}

func (e *MalformedFieldError) Unwrap() error {
	return e.Err
}

const (
	leftMarker  = "L:"
	rightMarker = "R:"
)

// Decode parses one comma-separated record of the form "L: <n>, R: <n>".
// Field order doesn't matter and unknown fields are ignored so the drive
// board can add fields without breaking us.  The markers are matched as
// case-sensitive prefixes.
func Decode(line string) (Sample, error) {
	var (
		s     Sample
		found bool
	)
	for _, field := range strings.Split(line, ",") {
		field = strings.TrimSpace(field)
		var marker string
		var dst *int32
		switch {
		case strings.HasPrefix(field, leftMarker):
			marker, dst = leftMarker, &s.Left
		case strings.HasPrefix(field, rightMarker):
			marker, dst = rightMarker, &s.Right
		default:
			continue
		}
		numStr := strings.TrimSpace(field[len(marker):])
		n, err := strconv.ParseInt(numStr, 10, 32)
		if err != nil {
			return Sample{}, &MalformedFieldError{Field: field, Err: err}
		}
		*dst = int32(n)
		found = true
	}
	if !found {
		return Sample{}, ErrNoEncoderFields
	}
	return s, nil
}
