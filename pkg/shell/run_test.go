package shell_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/serverlessresearch/mcadmin/pkg/shell"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {

	message := "hello, world"

	stdout, stderr, err := shell.Run(context.Background(), shell.Shell, shell.Exec, "printf '"+message+"' | tee /dev/stderr")
	assert.Nil(t, err)

	assert.Equal(t, message, string(stdout))
	assert.Equal(t, message, string(stderr))
}

func TestRunExitCode(t *testing.T) {

	stdout, _, err := shell.RunShell(context.Background(), "echo out; exit 3")
	require.Error(t, err)

	exitErr, ok := err.(*exec.ExitError)
	require.True(t, ok)
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, "out\n", string(stdout))
}

func TestRunCancelled(t *testing.T) {

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err := shell.RunShell(ctx, "exec sleep 5")
	assert.Equal(t, context.DeadlineExceeded, err)
}

func TestRunSimple(t *testing.T) {

	out, err := shell.RunSimple(context.Background(), shell.Shell, shell.Exec, "echo ok")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	_, err = shell.RunSimple(context.Background(), shell.Shell, shell.Exec, "echo bad >&2")
	assert.EqualError(t, err, "bad\n")
}

func TestRunCancelledKillsGrandchildren(t *testing.T) {

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, _, err := shell.RunShell(ctx, "sleep 3; echo late")
	assert.Equal(t, context.DeadlineExceeded, err)
	assert.True(t, time.Since(start) < 2*time.Second, "took %v", time.Since(start))
}
