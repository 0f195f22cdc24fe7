// Package main provides the CLI entry point for ccstress, a compiler
// compile-time benchmarking tool.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccstress/ccstress/codegen"
	"github.com/ccstress/ccstress/config"
	"github.com/ccstress/ccstress/harness"
	"github.com/ccstress/ccstress/report"
)

func main() {
	root := newRootCmd(config.Load())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(defaults config.Defaults) *cobra.Command {
	root := &cobra.Command{
		Use:   "ccstress",
		Short: "Compiler compile-time benchmarking tool",
		Long: `ccstress synthesizes C/C++ sources that stress specific compiler
subsystems (call chains, overload sets, struct-by-value returns, ...),
compiles each one repeatedly with a host compiler, and reports wall-clock
compile-time statistics as CSV files and comparison tables.`,
		SilenceUsage: true,
	}

	root.AddCommand(newRunCmd(defaults))

	return root
}

type runOptions struct {
	sizes         []int
	scenario      string
	compiler      string
	runs          int
	o2            bool
	cpp           bool
	genOnly       bool
	quiet         bool
	allScenarios  bool
	allVariations bool
	outputJSON    bool
	outputDir     string
}

func newRunCmd(defaults config.Defaults) *cobra.Command {
	var (
		opts    runOptions
		nValues []int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Measure compile times for generated stress sources",
		Long: `Generate one stress source per configuration and time the host
compiler over repeated runs. Single mode measures one scenario;
--all-scenarios and --all-variations sweep a cross product of cells and
write a combined comparison CSV.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(nValues) > 0 {
				opts.sizes = nValues
			}

			return runBenchmark(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.IntSliceVarP(&opts.sizes, "n", "n", []int{1000},
		"Size or comma-separated list of sizes to test")
	flags.IntSliceVar(&nValues, "n-values", nil,
		"Size list; overrides -n")
	flags.StringVar(&opts.scenario, "scenario", "funcs",
		"Stress scenario: "+fmt.Sprint(codegen.Names()))
	flags.StringVar(&opts.compiler, "compiler", defaults.Compiler,
		"Compiler to benchmark (gcc, clang)")
	flags.IntVar(&opts.runs, "runs", defaults.Runs,
		"Repetitions per configuration")
	flags.BoolVar(&opts.o2, "o2", false,
		"Compile optimized (-O2) in single mode")
	flags.BoolVar(&opts.cpp, "cpp", false,
		"Compile as C++ in single mode")
	flags.BoolVar(&opts.genOnly, "genonly", false,
		"Generate the source into the current directory and exit")
	flags.BoolVar(&opts.quiet, "quiet", defaults.Quiet,
		"Suppress progress output")
	flags.BoolVar(&opts.allScenarios, "all-scenarios", false,
		"Benchmark every scenario for each size")
	flags.BoolVar(&opts.allVariations, "all-variations", false,
		"Benchmark every language/optimization variation of one scenario")
	flags.BoolVar(&opts.outputJSON, "json", false,
		"Print results as JSON instead of a table")
	flags.StringVar(&opts.outputDir, "output", defaults.OutputDir,
		"Directory for CSV reports")

	return cmd
}

func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelWarn
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func runBenchmark(ctx context.Context, opts runOptions) error {
	logger := newLogger(opts.quiet)

	pattern, err := codegen.ParsePattern(opts.scenario)
	if err != nil {
		return err
	}

	if opts.allScenarios && opts.allVariations {
		return fmt.Errorf(
			"--all-scenarios and --all-variations are mutually exclusive")
	}

	if len(opts.sizes) == 0 {
		return fmt.Errorf("at least one size is required")
	}

	if opts.runs < 1 {
		return fmt.Errorf("--runs must be positive, got %d", opts.runs)
	}

	for _, n := range opts.sizes {
		if n < 1 && pattern != codegen.Empty {
			return fmt.Errorf("sizes must be positive, got %d", n)
		}
	}

	if opts.genOnly {
		return generateOnly(pattern, opts)
	}

	mode := harness.ModeC
	if opts.cpp {
		mode = harness.ModeCpp
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	runner := harness.NewRunner(harness.ExecRunner{}, logger)

	logger.Info("starting benchmark",
		slog.String("scenario", pattern.String()),
		slog.String("compiler", opts.compiler),
		slog.Any("sizes", opts.sizes),
		slog.Int("runs", opts.runs),
	)

	switch {
	case opts.allScenarios:
		results := harness.RunAllScenarios(ctx, logger, runner, harness.BatchConfig{
			Sizes:    opts.sizes,
			Compiler: opts.compiler,
			Runs:     opts.runs,
			Optimize: opts.o2,
			Mode:     mode,
		})

		return writeReports(logger, opts, results, report.AllScenariosCSV)

	case opts.allVariations:
		results := harness.RunAllVariations(ctx, logger, runner, harness.BatchConfig{
			Sizes:    opts.sizes,
			Pattern:  pattern,
			Compiler: opts.compiler,
			Runs:     opts.runs,
		})

		return writeReports(logger, opts, results,
			report.VariationsCSVName(opts.compiler, pattern))

	default:
		// Single-configuration mode: any failure is fatal.
		results := make([]harness.Result, 0, len(opts.sizes))

		for _, n := range opts.sizes {
			res, err := runner.Run(ctx, harness.RunConfig{
				Pattern:  pattern,
				N:        n,
				Compiler: opts.compiler,
				Optimize: opts.o2,
				Mode:     mode,
				Runs:     opts.runs,
			})
			if err != nil {
				return err
			}

			results = append(results, *res)
		}

		return writeReports(logger, opts, results, "")
	}
}

// writeReports persists per-configuration CSVs, the combined comparison CSV
// for batch modes, and prints the summary to stdout.
func writeReports(
	logger *slog.Logger,
	opts runOptions,
	results []harness.Result,
	combinedCSV string,
) error {
	if len(results) == 0 {
		return fmt.Errorf("no configuration completed successfully")
	}

	for _, res := range results {
		name, err := report.WriteRunCSV(opts.outputDir, res)
		if err != nil {
			return fmt.Errorf("write samples CSV: %w", err)
		}

		logger.Info("wrote samples", slog.String("file", name))
	}

	if combinedCSV != "" {
		if err := report.WriteComparisonCSV(
			opts.outputDir, combinedCSV, results,
		); err != nil {
			return fmt.Errorf("write comparison CSV: %w", err)
		}

		logger.Info("wrote comparison", slog.String("file", combinedCSV))
	}

	if opts.outputJSON {
		return report.GenerateJSON(os.Stdout, results)
	}

	return report.Generate(os.Stdout, results)
}

// generateOnly writes the generated source for the first requested size
// into the current directory, skipping compilation entirely.
func generateOnly(pattern codegen.Pattern, opts runOptions) error {
	n := opts.sizes[0]

	src, err := codegen.Generate(pattern, n)
	if err != nil {
		return err
	}

	ext := ".c"
	if opts.cpp || pattern.RequiresCpp() {
		ext = ".cpp"
	}

	name := fmt.Sprintf("%s_n%d%s", pattern, n, ext)
	if err := os.WriteFile(name, []byte(src), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}

	fmt.Println(name)

	return nil
}
