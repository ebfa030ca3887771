package admin

import (
	"context"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

const (
	OpServer         = "server"
	OpServiceRestart = "admin-service-restart"
	OpServiceStop    = "admin-service-stop"
)

func init() {
	register(OpServer, "run a storage server in the foreground: dir [address, console_address]",
		func(args command.Args) (*command.Command, command.Args, error) {
			tmpl := subcommandFlags("minio {flags} server", args, "address", "console_address")
			cmd := command.New(OpServer, tmpl+" {dir}")
			cmd.NoDeadline = true
			return cmd, args, nil
		})

	fixed(OpServiceRestart, "restart all servers behind target", "mc {flags} admin service restart {target}")
	fixed(OpServiceStop, "stop all servers behind target", "mc {flags} admin service stop {target}")
}

// Server runs minio in the foreground on dir and returns once it exits or
// ctx is cancelled. The executor timeout does not apply.
func (c *Client) Server(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpServer, args)
}

func (c *Client) ServiceRestart(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpServiceRestart, args)
}

func (c *Client) ServiceStop(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpServiceStop, args)
}
