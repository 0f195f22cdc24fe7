package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ProcessRunner spawns the driver process for one configuration. It is the
// only seam between the timing loop and the host OS: tests swap in a fake
// emitting canned output.
type ProcessRunner interface {
	Start(ctx context.Context, dir, name string, args ...string) (Process, error)
}

// Process is a started driver process. Output is the combined
// stdout/stderr stream; it reaches EOF when the process exits, after which
// Wait yields the exit code.
type Process interface {
	Output() io.Reader
	Wait() (int, error)
}

// ExecRunner is the real ProcessRunner backed by os/exec.
type ExecRunner struct{}

func (ExecRunner) Start(
	ctx context.Context, dir, name string, args ...string,
) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create output pipe: %w", err)
	}

	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pr.Close()
		pw.Close()

		return nil, fmt.Errorf("start %s: %w", name, err)
	}

	// The child holds its own copy of the write end; closing ours makes the
	// read end hit EOF when the child exits.
	pw.Close()

	return &execProcess{cmd: cmd, out: pr}, nil
}

type execProcess struct {
	cmd *exec.Cmd
	out *os.File
}

func (p *execProcess) Output() io.Reader {
	return p.out
}

func (p *execProcess) Wait() (int, error) {
	defer p.out.Close()

	if err := p.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}

		return -1, fmt.Errorf("wait for driver: %w", err)
	}

	return 0, nil
}
