package admin

import (
	"context"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

const (
	OpList         = "ls"
	OpMakeBucket   = "mb"
	OpRemoveBucket = "rb"
	OpCopy         = "cp"
)

func init() {
	register(OpList, "list buckets and objects: target [recursive, versions]",
		func(args command.Args) (*command.Command, command.Args, error) {
			tmpl := subcommandFlags("mc {flags} ls", args, "recursive", "versions")
			return command.New(OpList, tmpl+" {target}"), args, nil
		})
	register(OpMakeBucket, "make a bucket: target [region, ignore_existing, with_lock]",
		func(args command.Args) (*command.Command, command.Args, error) {
			tmpl := subcommandFlags("mc {flags} mb", args, "region", "ignore_existing", "with_lock")
			return command.New(OpMakeBucket, tmpl+" {target}"), args, nil
		})
	register(OpRemoveBucket, "remove a bucket: target [force, dangerous]",
		func(args command.Args) (*command.Command, command.Args, error) {
			tmpl := subcommandFlags("mc {flags} rb", args, "force", "dangerous")
			return command.New(OpRemoveBucket, tmpl+" {target}"), args, nil
		})
	register(OpCopy, "copy objects: source, target [recursive]",
		func(args command.Args) (*command.Command, command.Args, error) {
			tmpl := subcommandFlags("mc {flags} cp", args, "recursive")
			return command.New(OpCopy, tmpl+" {source} {target}"), args, nil
		})
}

func (c *Client) List(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpList, args)
}

func (c *Client) MakeBucket(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpMakeBucket, args)
}

func (c *Client) RemoveBucket(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpRemoveBucket, args)
}

// Copy copies source to target; both may be local paths or alias/bucket/prefix.
func (c *Client) Copy(ctx context.Context, args command.Args) (*response.Response, error) {
	return c.Do(ctx, OpCopy, args)
}
