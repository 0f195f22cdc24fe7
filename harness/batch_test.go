package harness

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccstress/ccstress/codegen"
	"github.com/ccstress/ccstress/stats"
)

// stubRunner succeeds for every cell except those listed in fail, keyed by
// the config's String().
type stubRunner struct {
	fail  map[string]bool
	calls []RunConfig
}

func (s *stubRunner) Run(_ context.Context, cfg RunConfig) (*Result, error) {
	s.calls = append(s.calls, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if s.fail[cfg.String()] {
		return nil, fmt.Errorf("injected failure for %s", cfg)
	}

	samples := []float64{0.1, 0.2, 0.3}

	return &Result{
		Config:  cfg,
		Samples: samples,
		Stats:   stats.Compute(samples),
	}, nil
}

func TestRunAllScenariosCoversCrossProduct(t *testing.T) {
	stub := &stubRunner{}
	batch := BatchConfig{
		Sizes:    []int{10, 20},
		Compiler: "gcc",
		Runs:     3,
		Mode:     ModeCpp,
	}

	results := RunAllScenarios(context.Background(), testLogger(), stub, batch)

	wantCells := len(batch.Sizes) * len(codegen.All())
	assert.Len(t, stub.calls, wantCells)
	assert.Len(t, results, wantCells)

	// Outer loop over sizes, inner over the fixed pattern order.
	assert.Equal(t, codegen.Empty, stub.calls[0].Pattern)
	assert.Equal(t, 10, stub.calls[0].N)
	assert.Equal(t, 20, stub.calls[len(codegen.All())].N)
}

func TestRunAllScenariosSkipsFailedCells(t *testing.T) {
	failing := RunConfig{
		Pattern: codegen.Funcs, N: 10,
		Compiler: "gcc", Mode: ModeCpp, Runs: 3,
	}
	stub := &stubRunner{fail: map[string]bool{failing.String(): true}}

	batch := BatchConfig{
		Sizes:    []int{10},
		Compiler: "gcc",
		Runs:     3,
		Mode:     ModeCpp,
	}

	results := RunAllScenarios(context.Background(), testLogger(), stub, batch)

	assert.Len(t, results, len(codegen.All())-1,
		"the failed cell contributes no result")

	for _, r := range results {
		assert.NotEqual(t, failing, r.Config)
	}
}

func TestRunAllScenariosCppOnlyCellsFailUnderCMode(t *testing.T) {
	stub := &stubRunner{}
	batch := BatchConfig{
		Sizes:    []int{5},
		Compiler: "gcc",
		Runs:     2,
		Mode:     ModeC,
	}

	results := RunAllScenarios(context.Background(), testLogger(), stub, batch)

	// cppmember and cppoverload fail validation under C mode; the other six
	// cells survive.
	assert.Len(t, results, len(codegen.All())-2)
}

func TestRunAllVariationsFourVariations(t *testing.T) {
	stub := &stubRunner{}
	batch := BatchConfig{
		Sizes:    []int{10, 20},
		Pattern:  codegen.Funcs,
		Compiler: "clang",
		Runs:     2,
	}

	results := RunAllVariations(context.Background(), testLogger(), stub, batch)

	require.Len(t, results, 8, "2 sizes x 4 variations")

	// First size's variation order: C -O0, C -O2, C++ -O0, C++ -O2.
	assert.Equal(t, ModeC, results[0].Config.Mode)
	assert.False(t, results[0].Config.Optimize)
	assert.Equal(t, ModeC, results[1].Config.Mode)
	assert.True(t, results[1].Config.Optimize)
	assert.Equal(t, ModeCpp, results[2].Config.Mode)
	assert.Equal(t, ModeCpp, results[3].Config.Mode)
}

func TestRunAllVariationsCppOnlyPattern(t *testing.T) {
	stub := &stubRunner{}
	batch := BatchConfig{
		Sizes:    []int{10, 20, 30},
		Pattern:  codegen.CppOverload,
		Compiler: "gcc",
		Runs:     2,
	}

	results := RunAllVariations(context.Background(), testLogger(), stub, batch)

	require.Len(t, results, 6, "3 sizes x 2 C++ variations")

	for _, r := range results {
		assert.Equal(t, ModeCpp, r.Config.Mode)
	}
}

func TestRunAllVariationsFailureIsolation(t *testing.T) {
	failing := RunConfig{
		Pattern: codegen.Funcs, N: 10,
		Compiler: "gcc", Optimize: true, Mode: ModeC, Runs: 2,
	}
	stub := &stubRunner{fail: map[string]bool{failing.String(): true}}

	batch := BatchConfig{
		Sizes:    []int{10},
		Pattern:  codegen.Funcs,
		Compiler: "gcc",
		Runs:     2,
	}

	results := RunAllVariations(context.Background(), testLogger(), stub, batch)

	assert.Len(t, results, 3, "three of four variations survive")
	assert.Len(t, stub.calls, 4, "the failure does not abort the batch")
}

func TestBatchStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubRunner{}
	batch := BatchConfig{
		Sizes:    []int{10},
		Compiler: "gcc",
		Runs:     2,
		Mode:     ModeCpp,
	}

	results := RunAllScenarios(ctx, testLogger(), stub, batch)
	assert.Empty(t, results)
	assert.Empty(t, stub.calls)
}
