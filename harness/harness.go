package harness

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ccstress/ccstress/codegen"
	"github.com/ccstress/ccstress/stats"
)

// ResolveFunc locates a compiler invocation for a tag, optimization
// setting, and language mode. Production use is ResolveToolchain; tests
// substitute a canned resolver.
type ResolveFunc func(compiler string, optimize bool, mode Mode) (Invocation, error)

// Runner measures one configuration at a time. Each Run gets its own work
// directory, so a Runner could in principle be driven concurrently, though
// batches deliberately stay sequential to keep timings comparable.
type Runner struct {
	proc    ProcessRunner
	logger  *slog.Logger
	resolve ResolveFunc
}

// NewRunner creates a Runner spawning real processes via proc.
func NewRunner(proc ProcessRunner, logger *slog.Logger) *Runner {
	return &Runner{
		proc:    proc,
		logger:  logger,
		resolve: ResolveToolchain,
	}
}

// Run measures the given configuration: generate the source, resolve the
// toolchain, execute the R-iteration timing loop in an isolated directory,
// and summarize the samples. Any failed iteration fails the whole cell;
// there are no partial results. The work directory is removed on every
// exit path.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src, err := codegen.Generate(cfg.Pattern, cfg.N)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", cfg.Pattern, err)
	}

	inv, err := r.resolve(cfg.Compiler, cfg.Optimize, cfg.Mode)
	if err != nil {
		return nil, fmt.Errorf("resolve toolchain for %s: %w", cfg, err)
	}

	workDir, err := os.MkdirTemp("", "ccstress-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	srcPath := filepath.Join(workDir, cfg.Mode.SourceFile())
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		return nil, fmt.Errorf("write source: %w", err)
	}

	script := buildScript(inv, cfg.Runs)
	if err := os.WriteFile(
		filepath.Join(workDir, driverScript), []byte(script), 0o755,
	); err != nil {
		return nil, fmt.Errorf("write driver script: %w", err)
	}

	r.logger.Info("measuring configuration",
		slog.String("config", cfg.String()),
		slog.Int("runs", cfg.Runs),
		slog.String("work_dir", workDir),
	)

	proc, err := r.proc.Start(ctx, workDir, "sh", driverScript)
	if err != nil {
		return nil, fmt.Errorf("start driver for %s: %w", cfg, err)
	}

	samples, parseErr := parseTimings(proc.Output())

	exitCode, waitErr := proc.Wait()
	if waitErr != nil {
		return nil, fmt.Errorf("driver for %s: %w", cfg, waitErr)
	}

	if parseErr != nil {
		return nil, fmt.Errorf("driver output for %s: %w", cfg, parseErr)
	}

	if exitCode != 0 {
		return nil, fmt.Errorf(
			"compile loop for %s failed with exit status %d", cfg, exitCode)
	}

	if len(samples) != cfg.Runs {
		return nil, fmt.Errorf(
			"driver for %s produced %d timing samples, want %d",
			cfg, len(samples), cfg.Runs)
	}

	summary := stats.Compute(samples)

	r.logger.Info("configuration measured",
		slog.String("config", cfg.String()),
		slog.Float64("avg_seconds", summary.Average),
		slog.Float64("min_seconds", summary.Min),
		slog.Float64("max_seconds", summary.Max),
	)

	return &Result{
		Config:   cfg,
		Samples:  samples,
		Stats:    summary,
		Artifact: inv.Artifact,
	}, nil
}
