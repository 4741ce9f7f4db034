package serialstream

import (
	"bytes"
	"strings"
)

// framer reassembles newline-terminated records from arbitrary read
// chunks.  A record split across reads stays buffered until its
// terminator arrives.
type framer struct {
	pending []byte
}

// Feed appends one read's worth of bytes and returns the complete
// records now available, trimmed of surrounding whitespace and CR.
// Blank records are dropped.
func (f *framer) Feed(p []byte) []string {
	f.pending = append(f.pending, p...)

	var lines []string
	for {
		idx := bytes.IndexByte(f.pending, '\n')
		if idx < 0 {
			return lines
		}
		line := strings.TrimSpace(string(f.pending[:idx]))
		f.pending = f.pending[idx+1:]
		if line != "" {
			lines = append(lines, line)
		}
	}
}
