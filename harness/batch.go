package harness

import (
	"context"
	"log/slog"

	"github.com/ccstress/ccstress/codegen"
)

// ConfigRunner is the single-configuration entry point the batch modes
// drive; *Runner satisfies it.
type ConfigRunner interface {
	Run(ctx context.Context, cfg RunConfig) (*Result, error)
}

// BatchConfig holds the settings shared by every cell of a batch.
type BatchConfig struct {
	Sizes    []int
	Pattern  codegen.Pattern // all-variations mode only
	Compiler string
	Runs     int
	Optimize bool // all-scenarios mode only
	Mode     Mode // all-scenarios mode only
}

// Variation is one fixed language/optimization combination of the
// all-variations batch mode.
type Variation struct {
	Mode     Mode
	Optimize bool
}

// Variations returns the variation set for a pattern: all four
// language/optimization combinations, or only the two C++ ones for
// patterns whose code cannot be compiled as C.
func Variations(p codegen.Pattern) []Variation {
	if p.RequiresCpp() {
		return []Variation{
			{Mode: ModeCpp, Optimize: false},
			{Mode: ModeCpp, Optimize: true},
		}
	}

	return []Variation{
		{Mode: ModeC, Optimize: false},
		{Mode: ModeC, Optimize: true},
		{Mode: ModeCpp, Optimize: false},
		{Mode: ModeCpp, Optimize: true},
	}
}

// RunAllScenarios measures every (size, pattern) cell with the batch's
// shared compiler, run count, optimization, and language settings. A
// failing cell is logged and skipped; the batch never aborts.
func RunAllScenarios(
	ctx context.Context,
	logger *slog.Logger,
	runner ConfigRunner,
	batch BatchConfig,
) []Result {
	var results []Result

	for _, n := range batch.Sizes {
		for _, pattern := range codegen.All() {
			if ctx.Err() != nil {
				return results
			}

			cfg := RunConfig{
				Pattern:  pattern,
				N:        n,
				Compiler: batch.Compiler,
				Optimize: batch.Optimize,
				Mode:     batch.Mode,
				Runs:     batch.Runs,
			}

			res := runCell(ctx, logger, runner, cfg)
			if res != nil {
				results = append(results, *res)
			}
		}
	}

	return results
}

// RunAllVariations measures every (size, variation) cell for the batch's
// pattern. Same failure isolation as RunAllScenarios.
func RunAllVariations(
	ctx context.Context,
	logger *slog.Logger,
	runner ConfigRunner,
	batch BatchConfig,
) []Result {
	var results []Result

	variations := Variations(batch.Pattern)

	for _, n := range batch.Sizes {
		for _, v := range variations {
			if ctx.Err() != nil {
				return results
			}

			cfg := RunConfig{
				Pattern:  batch.Pattern,
				N:        n,
				Compiler: batch.Compiler,
				Optimize: v.Optimize,
				Mode:     v.Mode,
				Runs:     batch.Runs,
			}

			res := runCell(ctx, logger, runner, cfg)
			if res != nil {
				results = append(results, *res)
			}
		}
	}

	return results
}

func runCell(
	ctx context.Context,
	logger *slog.Logger,
	runner ConfigRunner,
	cfg RunConfig,
) *Result {
	res, err := runner.Run(ctx, cfg)
	if err != nil {
		logger.Error("configuration failed, continuing batch",
			slog.String("config", cfg.String()),
			slog.String("error", err.Error()),
		)

		return nil
	}

	return res
}
