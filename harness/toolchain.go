package harness

import (
	"fmt"
	"os/exec"
)

// artifactName is the object file every invocation compiles to. The driver
// loop deletes and re-checks it around every run.
const artifactName = "stress.o"

// Invocation is a fully resolved compiler command for one configuration.
type Invocation struct {
	CompilerPath string
	Args         []string
	Artifact     string
}

// KnownCompilers returns the supported compiler tags.
func KnownCompilers() []string {
	return []string{"gcc", "clang"}
}

// toolchainBinary maps a compiler tag and language mode to the driver
// binary name to look up.
func toolchainBinary(compiler string, mode Mode) (string, error) {
	switch compiler {
	case "gcc":
		if mode == ModeCpp {
			return "g++", nil
		}

		return "gcc", nil

	case "clang":
		if mode == ModeCpp {
			return "clang++", nil
		}

		return "clang", nil

	default:
		return "", fmt.Errorf("unknown compiler %q (valid: gcc, clang)", compiler)
	}
}

// compileArgs builds the argument list for one compile: object-only output,
// explicit optimization level either way so the compiler's default cannot
// drift between hosts.
func compileArgs(optimize bool, mode Mode) []string {
	opt := "-O0"
	if optimize {
		opt = "-O2"
	}

	return []string{opt, "-c", mode.SourceFile(), "-o", artifactName}
}

// ResolveToolchain locates the host compiler for the given tag,
// optimization setting, and language mode. It fails if the binary is not
// on PATH; nothing is spawned here.
func ResolveToolchain(compiler string, optimize bool, mode Mode) (Invocation, error) {
	binary, err := toolchainBinary(compiler, mode)
	if err != nil {
		return Invocation{}, err
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return Invocation{}, fmt.Errorf("compiler %s not found: %w", binary, err)
	}

	return Invocation{
		CompilerPath: path,
		Args:         compileArgs(optimize, mode),
		Artifact:     artifactName,
	}, nil
}
