// Package report renders benchmark results as CSV files, a markdown
// comparison table, and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/ccstress/ccstress/harness"
)

// Generate writes a markdown comparison table for the given results, with a
// slowdown column relative to the fastest average compile time.
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fastest := findFastest(results)

	fmt.Fprintln(w, "## Compile Time Results")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Scenario | Compiler | Opt | Mode | N "+
		"| Avg | Median | StdDev | Min | Max | Slowdown |")
	fmt.Fprintln(w, "|----------|----------|-----|------|---"+
		"|-----|--------|--------|-----|-----|----------|")

	for _, r := range results {
		slowdown := 1.0
		if fastest > 0 && r.Stats.Average > 0 {
			slowdown = r.Stats.Average / fastest
		}

		fmt.Fprintf(w,
			"| %s | %s | %s | %s | %d | %s | %s | %s | %s | %s | %.2fx |\n",
			r.Config.Pattern,
			r.Config.Compiler,
			r.Config.OptToken(),
			r.Config.Mode,
			r.Config.N,
			formatHuman(r.Stats.Average),
			formatHuman(r.Stats.Median),
			formatHuman(r.Stats.StdDev),
			formatHuman(r.Stats.Min),
			formatHuman(r.Stats.Max),
			slowdown,
		)
	}

	return nil
}

// row is the flattened JSON projection of one result.
type row struct {
	Scenario     string    `json:"scenario"`
	Compiler     string    `json:"compiler"`
	Optimization string    `json:"optimization"`
	Mode         string    `json:"mode"`
	N            int       `json:"n"`
	Average      float64   `json:"average_seconds"`
	Median       float64   `json:"median_seconds"`
	StdDev       float64   `json:"stddev_seconds"`
	Min          float64   `json:"min_seconds"`
	Max          float64   `json:"max_seconds"`
	Samples      []float64 `json:"samples"`
	CsvFile      string    `json:"csv_file"`
}

// GenerateJSON writes results as indented JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	rows := make([]row, len(results))

	for i, r := range results {
		rows[i] = row{
			Scenario:     r.Config.Pattern.String(),
			Compiler:     r.Config.Compiler,
			Optimization: r.Config.OptToken(),
			Mode:         r.Config.Mode.String(),
			N:            r.Config.N,
			Average:      r.Stats.Average,
			Median:       r.Stats.Median,
			StdDev:       r.Stats.StdDev,
			Min:          r.Stats.Min,
			Max:          r.Stats.Max,
			Samples:      r.Samples,
			CsvFile:      RunCSVName(r.Config),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(rows)
}

func findFastest(results []harness.Result) float64 {
	fastest := math.Inf(1)
	for _, r := range results {
		if r.Stats.Average > 0 && r.Stats.Average < fastest {
			fastest = r.Stats.Average
		}
	}

	if math.IsInf(fastest, 1) {
		return 0
	}

	return fastest
}

func formatHuman(seconds float64) string {
	if seconds < 1 {
		return fmt.Sprintf("%.0fms", seconds*1000)
	}

	return fmt.Sprintf("%.2fs", seconds)
}
