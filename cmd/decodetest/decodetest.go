package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/trackbot-team/trackbot/go-odometry/pkg/encoder"
)

// Feed encoder records on stdin, one per line, to check what the decoder
// makes of them.
func main() {
	fmt.Println("Encoder decode test; reading records from stdin")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		sample, err := encoder.Decode(line)
		if err != nil {
			fmt.Printf("%-30q -> %v\n", line, err)
			continue
		}
		fmt.Printf("%-30q -> L=%d R=%d\n", line, sample.Left, sample.Right)
	}
	if err := scanner.Err(); err != nil {
		fmt.Println("Failed to read stdin:", err)
	}
}
