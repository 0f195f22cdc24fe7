// Package codegen synthesizes C/C++ source files that stress a specific
// compiler subsystem (call resolution, overload resolution, struct-by-value
// codegen, ...). Generation is deterministic and side-effect-free: the same
// pattern and size always produce the same text.
package codegen

import (
	"fmt"
	"strings"
)

// Pattern identifies one code-shape template. The set is closed: every
// pattern has exactly one generation rule in Generate.
type Pattern int

const (
	Empty Pattern = iota
	Funcs
	CppMember
	FreeFunc
	CppOverload
	NoOverload
	ReturnByValue
	ReturnByPointer
)

var patternNames = map[Pattern]string{
	Empty:           "empty",
	Funcs:           "funcs",
	CppMember:       "cppmember",
	FreeFunc:        "freefunc",
	CppOverload:     "cppoverload",
	NoOverload:      "nooverload",
	ReturnByValue:   "returnbyvalue",
	ReturnByPointer: "returnbypointer",
}

// All returns every pattern in a fixed, stable order.
func All() []Pattern {
	return []Pattern{
		Empty, Funcs, CppMember, FreeFunc,
		CppOverload, NoOverload, ReturnByValue, ReturnByPointer,
	}
}

// String returns the CLI name of the pattern.
func (p Pattern) String() string {
	if name, ok := patternNames[p]; ok {
		return name
	}

	return fmt.Sprintf("pattern(%d)", int(p))
}

// RequiresCpp reports whether the pattern emits code that is only valid
// C++ (member functions, overloaded names). All other patterns emit
// C-compatible code that both language modes accept.
func (p Pattern) RequiresCpp() bool {
	return p == CppMember || p == CppOverload
}

// ParsePattern maps a scenario name to its Pattern, case-insensitively.
func ParsePattern(name string) (Pattern, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	for p, n := range patternNames {
		if n == lower {
			return p, nil
		}
	}

	return 0, fmt.Errorf("unknown scenario %q (valid: %s)",
		name, strings.Join(Names(), ", "))
}

// Names returns the CLI names of all patterns in the All() order.
func Names() []string {
	all := All()
	names := make([]string, len(all))

	for i, p := range all {
		names[i] = p.String()
	}

	return names
}
