package admin

import (
	"context"

	"github.com/pkg/errors"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

const (
	OpPolicyAdd    = "admin-policy-add"
	OpPolicyRemove = "admin-policy-remove"
	OpPolicyList   = "admin-policy-list"
	OpPolicyInfo   = "admin-policy-info"
	OpPolicySet    = "admin-policy-set"
)

const policyCommand = "mc {flags} admin policy "

func init() {
	fixed(OpPolicyAdd, "add a canned policy from a file: target, name, file", policyCommand+"add {target} {name} {file}")
	fixed(OpPolicyRemove, "remove a canned policy: target, name", policyCommand+"remove {target} {name}")
	fixed(OpPolicyList, "list canned policies: target", policyCommand+"list {target}")
	fixed(OpPolicyInfo, "show a canned policy: target, name", policyCommand+"info {target} {name}")

	register(OpPolicySet, "attach a policy to a user or a group: target, name, user|group",
		func(args command.Args) (*command.Command, command.Args, error) {
			if args.Has("user") && args.Has("group") {
				return nil, nil, errors.Wrap(ErrConflictingArgs, "only one of user or group can be set")
			}
			if args.Has("group") {
				return command.New(OpPolicySet, policyCommand+"set {target} {name} group={group}"), args, nil
			}
			return command.New(OpPolicySet, policyCommand+"set {target} {name} user={user}"), args, nil
		})
}

func (c *Client) PolicyAdd(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpPolicyAdd, args)
}

func (c *Client) PolicyRemove(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpPolicyRemove, args)
}

func (c *Client) PolicyList(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpPolicyList, args)
}

func (c *Client) PolicyInfo(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpPolicyInfo, args)
}

// PolicySet attaches policy name to exactly one of "user" or "group".
func (c *Client) PolicySet(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpPolicySet, args)
}
