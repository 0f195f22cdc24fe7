package harness

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseTimings scans the driver's combined output line by line, pairing the
// first parseable number after the i-th run marker with run i. Everything
// else on the stream (compiler warnings, notes, linker chatter) is skipped,
// never treated as an error. Numbers are parsed with strconv, so the host
// locale cannot turn decimal points into commas.
//
// The scan runs until the stream reaches EOF; whether the driver actually
// succeeded is the caller's business, via the process exit code and the
// sample count.
func parseTimings(r io.Reader) ([]float64, error) {
	scanner := bufio.NewScanner(r)

	var samples []float64

	awaiting := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, runMarker) {
			awaiting = true

			continue
		}

		if !awaiting {
			continue
		}

		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			// Diagnostic line between the marker and its timing.
			continue
		}

		samples = append(samples, v)
		awaiting = false
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read driver output: %w", err)
	}

	return samples, nil
}
