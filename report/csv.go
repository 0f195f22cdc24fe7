package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ccstress/ccstress/codegen"
	"github.com/ccstress/ccstress/harness"
)

// AllScenariosCSV is the fixed name of the combined comparison file an
// all-scenarios batch writes.
const AllScenariosCSV = "all_scenarios.csv"

// VariationsCSVName names the combined comparison file of an
// all-variations batch.
func VariationsCSVName(compiler string, pattern codegen.Pattern) string {
	return fmt.Sprintf("variations_%s_%s.csv", compiler, pattern)
}

// RunCSVName derives the per-configuration CSV file name from the full
// configuration. Identical parameters always map to the same name, so
// repeated runs overwrite instead of accumulating stale files; the language
// mode is part of the name because an all-variations batch holds pattern,
// compiler, and size constant across modes.
func RunCSVName(cfg harness.RunConfig) string {
	return fmt.Sprintf("%s_%s_%s_%s_n%d.csv",
		cfg.Pattern, cfg.Compiler, cfg.Mode.FileToken(), cfg.OptToken(), cfg.N)
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// WriteRunCSV persists one configuration's raw samples as
// "Run,Seconds" rows, 1-indexed, and returns the file name it wrote.
func WriteRunCSV(dir string, res harness.Result) (string, error) {
	name := RunCSVName(res.Config)

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{"Run", "Seconds"}); err != nil {
		f.Close()

		return "", fmt.Errorf("write %s header: %w", name, err)
	}

	for i, s := range res.Samples {
		row := []string{strconv.Itoa(i + 1), formatSeconds(s)}
		if err := w.Write(row); err != nil {
			f.Close()

			return "", fmt.Errorf("write %s row %d: %w", name, i+1, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()

		return "", fmt.Errorf("flush %s: %w", name, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return name, nil
}

var comparisonHeader = []string{
	"Scenario", "Compiler", "Optimization", "Mode", "N",
	"AverageSeconds", "MedianSeconds", "StdDevSeconds",
	"MinSeconds", "MaxSeconds", "CsvFile",
}

// WriteComparisonCSV persists one row per result, sorted by size ascending,
// then pattern name, then compiler name, regardless of production order.
func WriteComparisonCSV(dir, name string, results []harness.Result) error {
	sorted := make([]harness.Result, len(results))
	copy(sorted, results)

	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].Config, sorted[j].Config

		if a.N != b.N {
			return a.N < b.N
		}

		if a.Pattern.String() != b.Pattern.String() {
			return a.Pattern.String() < b.Pattern.String()
		}

		return a.Compiler < b.Compiler
	})

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write(comparisonHeader); err != nil {
		f.Close()

		return fmt.Errorf("write %s header: %w", name, err)
	}

	for _, res := range sorted {
		cfg := res.Config
		row := []string{
			cfg.Pattern.String(),
			cfg.Compiler,
			cfg.OptToken(),
			cfg.Mode.String(),
			strconv.Itoa(cfg.N),
			formatSeconds(res.Stats.Average),
			formatSeconds(res.Stats.Median),
			formatSeconds(res.Stats.StdDev),
			formatSeconds(res.Stats.Min),
			formatSeconds(res.Stats.Max),
			RunCSVName(cfg),
		}

		if err := w.Write(row); err != nil {
			f.Close()

			return fmt.Errorf("write %s row: %w", name, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		f.Close()

		return fmt.Errorf("flush %s: %w", name, err)
	}

	return f.Close()
}
