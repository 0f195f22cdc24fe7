// Package harness drives an external compiler through controlled,
// repeatable timing loops and collects one timing sample per run.
package harness

import (
	"fmt"

	"github.com/ccstress/ccstress/codegen"
	"github.com/ccstress/ccstress/stats"
)

// Mode selects the language the generated source is compiled as.
type Mode int

const (
	ModeC Mode = iota
	ModeCpp
)

// String returns the report token for the mode.
func (m Mode) String() string {
	if m == ModeCpp {
		return "C++"
	}

	return "C"
}

// FileToken returns the mode's file-name-safe token.
func (m Mode) FileToken() string {
	if m == ModeCpp {
		return "cpp"
	}

	return "c"
}

// SourceFile returns the name the generated source is written under.
func (m Mode) SourceFile() string {
	if m == ModeCpp {
		return "stress.cpp"
	}

	return "stress.c"
}

// RunConfig fully determines one benchmark cell. It is a plain value; two
// configs with equal fields are the same cell.
type RunConfig struct {
	Pattern  codegen.Pattern
	N        int
	Compiler string
	Optimize bool
	Mode     Mode
	Runs     int
}

// Validate rejects configs that could never produce a meaningful
// measurement, before any process is spawned.
func (c RunConfig) Validate() error {
	if c.Runs < 1 {
		return fmt.Errorf("runs must be positive, got %d", c.Runs)
	}

	if c.Compiler == "" {
		return fmt.Errorf("no compiler specified")
	}

	if c.Pattern != codegen.Empty && c.N < 1 {
		return fmt.Errorf("scenario %s requires a positive size, got %d",
			c.Pattern, c.N)
	}

	if c.Pattern.RequiresCpp() && c.Mode != ModeCpp {
		return fmt.Errorf("scenario %s requires C++ mode", c.Pattern)
	}

	return nil
}

// OptToken returns the report token for the optimization setting.
func (c RunConfig) OptToken() string {
	if c.Optimize {
		return "O2"
	}

	return "O0"
}

// String renders the cell for log and error messages.
func (c RunConfig) String() string {
	return fmt.Sprintf("%s %s -%s %s n=%d",
		c.Pattern, c.Compiler, c.OptToken(), c.Mode, c.N)
}

// Result holds the completed measurement for one cell: the raw samples in
// run order (always exactly Config.Runs of them), their summary statistics,
// and the build artifact the compiler produced. A cell that fails any run
// yields no Result at all.
type Result struct {
	Config   RunConfig
	Samples  []float64
	Stats    stats.Summary
	Artifact string
}
