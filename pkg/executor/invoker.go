package executor

import (
	"context"
	"os/exec"

	"github.com/google/shlex"
	"github.com/pkg/errors"

	"github.com/serverlessresearch/mcadmin/pkg/shell"
)

// Output is what a finished child process left behind.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Invoker is the process-invocation strategy of an Executor. Invoke returns
// an error only when the process could not be run to completion; a non-zero
// exit is not an error. Payload picks the bytes handed to the normalizer.
type Invoker interface {
	Name() string
	Invoke(ctx context.Context, line string) (*Output, error)
	Payload(out *Output) []byte
}

// Blocking splits the command line into an argument vector and runs the
// program directly. On a non-zero exit the error stream becomes the payload,
// since mc reports failures there as JSON.
type Blocking struct{}

func (Blocking) Name() string { return "blocking" }

func (Blocking) Invoke(ctx context.Context, line string) (*Output, error) {
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, errors.Wrap(err, "split command line")
	}
	if len(argv) == 0 {
		return nil, errors.New("empty command line")
	}
	stdout, stderr, err := shell.Run(ctx, argv[0], argv[1:]...)
	return collect(stdout, stderr, err)
}

func (Blocking) Payload(out *Output) []byte {
	if out.ExitCode != 0 && len(out.Stderr) > 0 {
		return out.Stderr
	}
	return out.Stdout
}

// Shell hands the command line to /bin/sh. Only standard output becomes the
// payload, whatever the exit code.
type Shell struct{}

func (Shell) Name() string { return "shell" }

func (Shell) Invoke(ctx context.Context, line string) (*Output, error) {
	stdout, stderr, err := shell.RunShell(ctx, line)
	return collect(stdout, stderr, err)
}

func (Shell) Payload(out *Output) []byte {
	return out.Stdout
}

// InvokerByName maps a configured exec mode to its strategy.
func InvokerByName(name string) (Invoker, error) {
	switch name {
	case "", "blocking", "sync":
		return Blocking{}, nil
	case "shell", "concurrent", "async":
		return Shell{}, nil
	}
	return nil, errors.Errorf("unknown exec mode %q", name)
}

func collect(stdout, stderr []byte, err error) (*Output, error) {
	out := &Output{Stdout: stdout, Stderr: stderr}
	if err == nil {
		return out, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	}
	return out, err
}
