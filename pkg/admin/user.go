package admin

import (
	"context"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

const (
	OpUserAdd     = "admin-user-add"
	OpUserRemove  = "admin-user-remove"
	OpUserEnable  = "admin-user-enable"
	OpUserDisable = "admin-user-disable"
	OpUserList    = "admin-user-list"
	OpUserInfo    = "admin-user-info"
)

const userCommand = "mc {flags} admin user "

func init() {
	fixed(OpUserAdd, "add a user: target, username, password", userCommand+"add {target} {username} {password}")
	fixed(OpUserRemove, "remove a user: target, username", userCommand+"remove {target} {username}")
	fixed(OpUserEnable, "enable a user: target, username", userCommand+"enable {target} {username}")
	fixed(OpUserDisable, "disable a user: target, username", userCommand+"disable {target} {username}")
	fixed(OpUserList, "list users: target", userCommand+"list {target}")
	fixed(OpUserInfo, "show a user: target, username", userCommand+"info {target} {username}")
}

func (c *Client) UserAdd(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpUserAdd, args)
}

func (c *Client) UserRemove(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpUserRemove, args)
}

func (c *Client) UserEnable(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpUserEnable, args)
}

func (c *Client) UserDisable(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpUserDisable, args)
}

// UserList returns one record per user on target.
func (c *Client) UserList(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpUserList, args)
}

func (c *Client) UserInfo(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpUserInfo, args)
}
