package shell

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/pkg/errors"
)

const (
	Shell = "/bin/sh"
	Exec  = "-c"
)

// Run executes exe with args and returns its standard output and standard
// error. A non-zero exit is reported as an *exec.ExitError alongside the
// captured streams. The child runs in its own process group and cancelling
// ctx kills the whole group, so forked grandchildren holding the pipes do not
// keep Run waiting.
func Run(ctx context.Context, exe string, args ...string) ([]byte, []byte, error) {

	cmd := exec.Command(exe, args...)
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		killProcessGroup(cmd)
		<-done
		return stdout.Bytes(), stderr.Bytes(), ctx.Err()
	case err := <-done:
		return stdout.Bytes(), stderr.Bytes(), err
	}
}

// RunShell hands line to the shell.
func RunShell(ctx context.Context, line string) ([]byte, []byte, error) {
	return Run(ctx, Shell, Exec, line)
}

// RunSimple returns standard output as a string and fails when the command
// fails or writes to standard error.
func RunSimple(ctx context.Context, exe string, args ...string) (string, error) {

	stdout, stderr, err := Run(ctx, exe, args...)
	if err != nil {
		if len(stderr) > 0 {
			return "", errors.Wrap(err, string(stderr))
		}
		return "", err
	}

	if len(stderr) > 0 {
		return "", errors.New(string(stderr))
	}

	return string(stdout), nil
}
