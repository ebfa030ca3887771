package admin

import (
	"context"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

const (
	OpGroupAdd     = "admin-group-add"
	OpGroupRemove  = "admin-group-remove"
	OpGroupInfo    = "admin-group-info"
	OpGroupList    = "admin-group-list"
	OpGroupEnable  = "admin-group-enable"
	OpGroupDisable = "admin-group-disable"
)

const groupCommand = "mc {flags} admin group "

func init() {
	register(OpGroupAdd, "add members to a new or existing group: target, group, members",
		func(args command.Args) (*command.Command, command.Args, error) {
			args.JoinList("members")
			return command.New(OpGroupAdd, groupCommand+"add {target} {group} {members}"), args, nil
		})
	register(OpGroupRemove, "remove a group, or only members from it: target, group [members]",
		func(args command.Args) (*command.Command, command.Args, error) {
			args.SetDefault("members", "")
			args.JoinList("members")
			return command.New(OpGroupRemove, groupCommand+"remove {target} {group} {members}"), args, nil
		})

	fixed(OpGroupInfo, "show a group: target, group", groupCommand+"info {target} {group}")
	fixed(OpGroupList, "list groups: target", groupCommand+"list {target}")
	fixed(OpGroupEnable, "enable a group: target, group", groupCommand+"enable {target} {group}")
	fixed(OpGroupDisable, "disable a group: target, group", groupCommand+"disable {target} {group}")
}

// GroupAdd adds members ([]string or a space separated string) to group.
//
//	r, err := c.GroupAdd(ctx, command.Args{
//		"target": "myminio", "group": "admins",
//		"members": []string{"rockstar", "test"},
//	})
func (c *Client) GroupAdd(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpGroupAdd, args)
}

// GroupRemove removes members from group, or the whole group when no members
// are given.
func (c *Client) GroupRemove(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpGroupRemove, args)
}

func (c *Client) GroupInfo(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpGroupInfo, args)
}

func (c *Client) GroupList(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpGroupList, args)
}

func (c *Client) GroupEnable(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpGroupEnable, args)
}

func (c *Client) GroupDisable(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpGroupDisable, args)
}
