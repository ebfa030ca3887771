package admin

import (
	"context"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

const (
	OpSvcacctAdd     = "admin-user-svcacct-add"
	OpSvcacctRemove  = "admin-user-svcacct-remove"
	OpSvcacctEnable  = "admin-user-svcacct-enable"
	OpSvcacctDisable = "admin-user-svcacct-disable"
	OpSvcacctList    = "admin-user-svcacct-list"
	OpSvcacctEdit    = "admin-user-svcacct-edit"
)

const svcacctCommand = "mc {flags} admin user svcacct "

func init() {
	register(OpSvcacctAdd, "add a service account: target, username [access_key, secret_key, policy]",
		func(args command.Args) (*command.Command, command.Args, error) {
			tmpl := subcommandFlags(svcacctCommand+"add", args, "access_key", "secret_key", "policy")
			return command.New(OpSvcacctAdd, tmpl+" {target} {username}"), args, nil
		})
	register(OpSvcacctEdit, "edit a service account: target, name [secret_key, policy]",
		func(args command.Args) (*command.Command, command.Args, error) {
			tmpl := subcommandFlags(svcacctCommand+"edit", args, "secret_key", "policy")
			return command.New(OpSvcacctEdit, tmpl+" {target} {name}"), args, nil
		})

	fixed(OpSvcacctRemove, "remove a service account: target, name", svcacctCommand+"remove {target} {name}")
	fixed(OpSvcacctEnable, "enable a service account: target, name", svcacctCommand+"enable {target} {name}")
	fixed(OpSvcacctDisable, "disable a service account: target, name", svcacctCommand+"disable {target} {name}")
	fixed(OpSvcacctList, "list service accounts: target", svcacctCommand+"list {target}")
}

// SvcacctAdd creates a service account for username. The optional
// access_key, secret_key and policy (a policy file path) arguments are
// passed as flags of the add subcommand.
func (c *Client) SvcacctAdd(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpSvcacctAdd, args)
}

func (c *Client) SvcacctRemove(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpSvcacctRemove, args)
}

func (c *Client) SvcacctEnable(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpSvcacctEnable, args)
}

func (c *Client) SvcacctDisable(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpSvcacctDisable, args)
}

func (c *Client) SvcacctList(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpSvcacctList, args)
}

// SvcacctEdit changes the secret key or policy of the service account name.
func (c *Client) SvcacctEdit(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpSvcacctEdit, args)
}
