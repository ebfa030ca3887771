// Package executor runs rendered mc commands and turns their output into
// responses.
//
// There is one pipeline, render → invoke → normalize, and the way the child
// process is run is a pluggable Invoker. Execute blocks the caller. Start
// runs the same pipeline on its own goroutine and returns a Call to wait on,
// and RunAll fans a batch out with bounded concurrency.
package executor

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/serverlessresearch/mcadmin/pkg/binpath"
	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

type Executor struct {
	Invoker Invoker
	Codec   command.FlagCodec
	// Binaries maps a template program name (mc, minio) to the resolved
	// executable. An empty value marks a binary known to be missing.
	Binaries map[string]string
	// Timeout bounds every invocation unless the command opts out. Zero
	// disables it.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// New returns an executor using invoker, with no binary mapping and no timeout.
func New(invoker Invoker, logger logrus.FieldLogger) *Executor {
	if invoker == nil {
		invoker = Blocking{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Executor{
		Invoker:  invoker,
		Binaries: map[string]string{},
		Logger:   logger,
	}
}

// Render produces the command line that Execute would run.
func (e *Executor) Render(cmd *command.Command, args command.Args) (string, error) {
	line, err := cmd.Render(args, e.Codec)
	if err != nil {
		return "", err
	}
	program := cmd.Program()
	path, known := e.Binaries[program]
	if !known {
		return line, nil
	}
	if path == "" {
		return "", errors.Wrapf(binpath.ErrNotFound, "%s is required by %s", program, cmd.Name)
	}
	return command.Quote(path) + strings.TrimPrefix(line, program), nil
}

// Execute renders cmd with args, runs it and waits for the response.
// Rendering problems are returned before any process starts. A tool-level
// failure still yields a Response; use response.CheckError to enforce it.
func (e *Executor) Execute(ctx context.Context, cmd *command.Command, args command.Args) (*response.Response, error) {
	line, err := e.Render(cmd, args)
	if err != nil {
		return nil, err
	}
	return e.run(ctx, cmd, line)
}

func (e *Executor) run(ctx context.Context, cmd *command.Command, line string) (*response.Response, error) {
	if e.Timeout > 0 && !cmd.NoDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	log := e.Logger.WithFields(logrus.Fields{"op": cmd.Name, "invoker": e.Invoker.Name()})
	log.Debugf("exec %s", line)

	start := time.Now()
	out, err := e.Invoker.Invoke(ctx, line)
	if err != nil {
		log.Warnf("exec failed: %v", err)
		return nil, &IOError{Command: line, Err: err}
	}
	log.WithField("exit", out.ExitCode).Debugf("finished in %v", time.Since(start))

	return response.New(line, cmd.Name, e.Invoker.Payload(out))
}

// Call is an invocation started with Start.
type Call struct {
	Command string
	done    chan struct{}
	resp    *response.Response
	err     error
}

// Done is closed once the call has finished.
func (c *Call) Done() <-chan struct{} { return c.done }

// Wait blocks until the call finishes.
func (c *Call) Wait() (*response.Response, error) {
	<-c.done
	return c.resp, c.err
}

// Start renders cmd synchronously, so rendering failures are visible on the
// returned Call right away, and runs the process in the background.
func (e *Executor) Start(ctx context.Context, cmd *command.Command, args command.Args) *Call {
	line, err := e.Render(cmd, args)
	if err != nil {
		return Failed(err)
	}
	call := &Call{Command: line, done: make(chan struct{})}
	go func() {
		defer close(call.done)
		call.resp, call.err = e.run(ctx, cmd, line)
	}()
	return call
}

// Job is one command of a batch.
type Job struct {
	Command *command.Command
	Args    command.Args
}

// RunAll executes jobs with at most limit processes in flight and returns
// the responses in job order. The first render, I/O or decode failure
// cancels the jobs that have not started yet.
func (e *Executor) RunAll(ctx context.Context, jobs []Job, limit int) ([]*response.Response, error) {
	lines := make([]string, len(jobs))
	for i, job := range jobs {
		line, err := e.Render(job.Command, job.Args)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}

	if limit <= 0 {
		limit = len(jobs)
	}
	sem := semaphore.NewWeighted(int64(limit))
	results := make([]*response.Response, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i := range jobs {
		i := i
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			resp, err := e.run(gctx, jobs[i].Command, lines[i])
			if err != nil {
				return errors.Wrapf(err, "job %d (%s)", i, jobs[i].Command.Name)
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed returns a finished Call carrying err.
func Failed(err error) *Call {
	call := &Call{done: make(chan struct{}), err: err}
	close(call.done)
	return call
}
