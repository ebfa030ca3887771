// Package admin exposes the mc and minio administrative commands as named
// operations.
//
// Every operation is a builder that turns caller arguments into a templated
// command. The Client runs them through an executor, either blocking (Do)
// or in the background (Go). Tool-reported failures come back inside the
// Response; wrap a call with Checked to turn them into errors.
package admin

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/executor"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrConflictingArgs  = errors.New("conflicting arguments")
)

// Builder prepares the command for one call. It may rewrite args (join
// lists, fill optional slots) and returns the arguments to render with.
type Builder func(args command.Args) (*command.Command, command.Args, error)

// Operation is a named administrative command.
type Operation struct {
	Name  string
	Usage string
	Build Builder
}

var registry = map[string]*Operation{}

func register(name, usage string, build Builder) {
	registry[name] = &Operation{Name: name, Usage: usage, Build: build}
}

// fixed registers an operation whose template never changes.
func fixed(name, usage, tmpl string) {
	register(name, usage, func(args command.Args) (*command.Command, command.Args, error) {
		return command.New(name, tmpl), args, nil
	})
}

// Lookup returns the operation called name.
func Lookup(name string) (*Operation, error) {
	op, ok := registry[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownOperation, name)
	}
	return op, nil
}

// Operations lists every registered operation sorted by name.
func Operations() []*Operation {
	ops := make([]*Operation, 0, len(registry))
	for _, op := range registry {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Build looks up name and prepares its command.
func Build(name string, args command.Args) (*command.Command, command.Args, error) {
	op, err := Lookup(name)
	if err != nil {
		return nil, nil, err
	}
	return op.Build(args.Clone())
}

type Client struct {
	exec *executor.Executor
}

func NewClient(exec *executor.Executor) *Client {
	return &Client{exec: exec}
}

// Do runs operation name and waits for its response.
func (c *Client) Do(ctx context.Context, name string, args command.Args) (*response.Response, error) {
	cmd, args, err := Build(name, args)
	if err != nil {
		return nil, err
	}
	return c.exec.Execute(ctx, cmd, args)
}

// Go starts operation name in the background.
func (c *Client) Go(ctx context.Context, name string, args command.Args) *executor.Call {
	cmd, args, err := Build(name, args)
	if err != nil {
		return executor.Failed(err)
	}
	return c.exec.Start(ctx, cmd, args)
}

// Render returns the command line operation name would run.
func (c *Client) Render(name string, args command.Args) (string, error) {
	cmd, args, err := Build(name, args)
	if err != nil {
		return "", err
	}
	return c.exec.Render(cmd, args)
}

// Request is one entry of a batch.
type Request struct {
	Operation string
	Args      command.Args
}

// DoAll runs a batch with at most limit processes at once. Responses are in
// request order.
func (c *Client) DoAll(ctx context.Context, reqs []Request, limit int) ([]*response.Response, error) {
	jobs := make([]executor.Job, len(reqs))
	for i, req := range reqs {
		cmd, args, err := Build(req.Operation, req.Args)
		if err != nil {
			return nil, errors.Wrapf(err, "request %d", i)
		}
		jobs[i] = executor.Job{Command: cmd, Args: args}
	}
	return c.exec.RunAll(ctx, jobs, limit)
}

// Checked passes resp through unless err is set or the tool reported an
// error, in which case the *response.OperationError is returned.
func Checked(resp *response.Response, err error) (*response.Response, error) {
	if err != nil {
		return nil, err
	}
	if err := response.CheckError(resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// subcommandFlags appends "--flag {name}" for every optional argument
// present in args, so the flag lands after the subcommand instead of in the
// global {flags} slot. Boolean arguments are removed from args and become a
// bare flag only when true, whatever the executor's FlagCodec.OmitFalse says:
// a false --force or --dangerous is never passed on.
func subcommandFlags(tmpl string, args command.Args, names ...string) string {
	for _, name := range names {
		v, ok := args[name]
		if !ok {
			continue
		}
		if b, isBool := v.(bool); isBool {
			delete(args, name)
			if b {
				tmpl += " " + command.FlagName(name)
			}
			continue
		}
		tmpl += " " + command.FlagName(name) + " {" + name + "}"
	}
	return tmpl
}
