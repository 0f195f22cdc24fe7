package harness

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"
)

// runMarker prefixes the line the driver script prints before every timed
// compile. The parser keys sample association off it.
const runMarker = "### RUN"

// driverScript is the file name the rendered loop is written under inside
// the work directory.
const driverScript = "driver.sh"

// buildScript renders the POSIX sh driver performing the controlled timing
// loop: every iteration announces itself, removes any stale artifact,
// brackets exactly one synchronous compiler invocation with nanosecond
// timestamps, verifies exit status and artifact existence, and prints the
// elapsed seconds with a decimal point. Any failed iteration aborts the
// whole loop with a non-zero status so no partial measurement escapes.
func buildScript(inv Invocation, runs int) string {
	compile := shellquote.Join(
		append([]string{inv.CompilerPath}, inv.Args...)...)
	artifact := shellquote.Join(inv.Artifact)

	var b strings.Builder

	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "i=1\nwhile [ \"$i\" -le %d ]; do\n", runs)
	fmt.Fprintf(&b, "    echo '%s' \"$i\"\n", runMarker)
	fmt.Fprintf(&b, "    rm -f %s\n", artifact)
	b.WriteString("    t0=$(date +%s%N)\n")
	fmt.Fprintf(&b, "    %s\n", compile)
	b.WriteString("    status=$?\n")
	b.WriteString("    t1=$(date +%s%N)\n")
	b.WriteString("    if [ \"$status\" -ne 0 ]; then\n")
	b.WriteString("        echo \"compile exited with status $status\" >&2\n")
	b.WriteString("        exit 1\n")
	b.WriteString("    fi\n")
	fmt.Fprintf(&b, "    if [ ! -f %s ]; then\n", artifact)
	fmt.Fprintf(&b, "        echo \"artifact %s missing after compile\" >&2\n",
		inv.Artifact)
	b.WriteString("        exit 1\n")
	b.WriteString("    fi\n")
	b.WriteString("    awk -v a=\"$t0\" -v b=\"$t1\" " +
		"'BEGIN { printf \"%.6f\\n\", (b - a) / 1e9 }'\n")
	b.WriteString("    i=$((i + 1))\ndone\n")

	return b.String()
}
