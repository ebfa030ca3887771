package admin

import (
	"context"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

const (
	OpHostAdd  = "config-host-add"
	OpHostList = "config-host-list"
)

func init() {
	fixed(OpHostAdd, "add an alias for a storage host: alias, url, username, password",
		"mc {flags} config host add {alias} {url} {username} {password}")

	register(OpHostList, "list host aliases, optionally only alias",
		func(args command.Args) (*command.Command, command.Args, error) {
			args.SetDefault("alias", "")
			return command.New(OpHostList, "mc {flags} config host list {alias}"), args, nil
		})
}

// HostAdd registers alias for the storage host at url.
//
//	r, err := c.HostAdd(ctx, command.Args{
//		"alias": "myminio", "url": "http://localhost:9000",
//		"username": "minioadmin", "password": "minioadmin",
//	})
func (c *Client) HostAdd(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpHostAdd, args)
}

// HostList lists all aliases, or only the one named by "alias".
func (c *Client) HostList(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpHostList, args)
}
