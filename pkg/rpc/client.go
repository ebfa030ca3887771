package rpc

import (
	"context"

	structpb "github.com/golang/protobuf/ptypes/struct"
	"github.com/pkg/errors"
	"google.golang.org/grpc"

	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

// Client calls a remote mcadmin.Admin service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to address without transport security.
func Dial(ctx context.Context, address string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithInsecure()}, opts...)
	conn, err := grpc.DialContext(ctx, address, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", address)
	}
	return &Client{conn: conn}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Invoke runs operation on the remote host. With check set, a tool-reported
// failure comes back as a codes.Aborted error instead of a Response.
func (c *Client) Invoke(ctx context.Context, operation string, args command.Args, check bool) (*response.Response, error) {
	rawArgs := make(map[string]interface{}, len(args))
	for k, v := range args {
		rawArgs[k] = v
	}
	in, err := toStruct(map[string]interface{}{
		"operation": operation,
		"args":      rawArgs,
		"check":     check,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/Invoke", in, out); err != nil {
		return nil, err
	}

	fields := fromStruct(out)
	resp := &response.Response{Content: fields["content"]}
	resp.Command, _ = fields["command"].(string)
	resp.Name, _ = fields["name"].(string)
	resp.JSON, _ = fields["json"].(string)
	resp.Status, _ = fields["status"].(string)
	if output, ok := fields["output"].(string); ok {
		resp.Output = []byte(output)
	}
	return resp, nil
}

// Operations lists the operations the remote side knows, name to usage.
func (c *Client) Operations(ctx context.Context) (map[string]string, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/Operations", &structpb.Struct{}, out); err != nil {
		return nil, err
	}
	ops := map[string]string{}
	list, _ := fromStruct(out)["operations"].([]interface{})
	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		usage, _ := entry["usage"].(string)
		ops[name] = usage
	}
	return ops, nil
}
