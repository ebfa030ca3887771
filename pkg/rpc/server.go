// Package rpc serves the operation façade over gRPC so that hosts without
// the mc client can drive a machine that has it.
//
// There is no generated code: the service is registered by hand and every
// message is a google.protobuf.Struct.
//
//	Invoke     {operation, args, check} -> {command, name, output, json, content, status}
//	Operations {}                       -> {operations: [{name, usage}]}
package rpc

import (
	"context"
	"net"

	structpb "github.com/golang/protobuf/ptypes/struct"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/serverlessresearch/mcadmin/pkg/admin"
	"github.com/serverlessresearch/mcadmin/pkg/binpath"
	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/executor"
	"github.com/serverlessresearch/mcadmin/pkg/normalize"
	"github.com/serverlessresearch/mcadmin/pkg/response"
)

const ServiceName = "mcadmin.Admin"

// AdminServer is the server side of the service.
type AdminServer interface {
	Invoke(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Operations(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Invoke", Handler: unary("Invoke", AdminServer.Invoke)},
		{MethodName: "Operations", Handler: unary("Operations", AdminServer.Operations)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mcadmin.proto",
}

type method func(AdminServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, m method) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return m(srv.(AdminServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return m(srv.(AdminServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// Register adds srv to s.
func Register(s *grpc.Server, srv AdminServer) {
	s.RegisterService(&serviceDesc, srv)
}

// Server implements AdminServer on top of an operation client.
type Server struct {
	client *admin.Client
	log    logrus.FieldLogger
}

func NewServer(client *admin.Client, logger logrus.FieldLogger) *Server {
	return &Server{client: client, log: logger}
}

func (s *Server) Invoke(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := fromStruct(in)
	op, _ := req["operation"].(string)
	if op == "" {
		return nil, status.Error(codes.InvalidArgument, "operation is required")
	}
	args := command.Args{}
	if raw, ok := req["args"].(map[string]interface{}); ok {
		for k, v := range raw {
			args[k] = argValue(v)
		}
	}

	log := s.log.WithField("operation", op)
	log.Debugf("invoke with args %v", sortedKeys(args))

	resp, err := s.client.Do(ctx, op, args)
	if err != nil {
		log.Warnf("invoke failed: %v", err)
		return nil, statusOf(err)
	}
	if check, _ := req["check"].(bool); check {
		if err := response.CheckError(resp); err != nil {
			return nil, status.Error(codes.Aborted, err.Error())
		}
	}
	return encodeResponse(resp)
}

func (s *Server) Operations(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	ops := admin.Operations()
	list := make([]interface{}, 0, len(ops))
	for _, op := range ops {
		list = append(list, map[string]interface{}{"name": op.Name, "usage": op.Usage})
	}
	out, err := toStruct(map[string]interface{}{"operations": list})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

func encodeResponse(resp *response.Response) (*structpb.Struct, error) {
	out, err := toStruct(map[string]interface{}{
		"command": resp.Command,
		"name":    resp.Name,
		"output":  string(resp.Output),
		"json":    resp.JSON,
		"content": resp.Content,
		"status":  resp.Status,
	})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// statusOf maps pipeline errors onto gRPC codes.
func statusOf(err error) error {
	cause := errors.Cause(err)
	switch cause.(type) {
	case *command.RenderError:
		return status.Error(codes.InvalidArgument, err.Error())
	case *normalize.DecodeError:
		return status.Error(codes.DataLoss, err.Error())
	}
	switch {
	case cause == admin.ErrUnknownOperation:
		return status.Error(codes.NotFound, err.Error())
	case cause == admin.ErrConflictingArgs:
		return status.Error(codes.InvalidArgument, err.Error())
	case cause == binpath.ErrNotFound:
		return status.Error(codes.FailedPrecondition, err.Error())
	case executor.IsTimeout(err):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if _, ok := err.(*executor.IOError); ok {
		return status.Error(codes.Unavailable, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// Serve listens on address until ctx is cancelled.
func Serve(ctx context.Context, address string, srv AdminServer, logger logrus.FieldLogger) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", address)
	}

	grpcServer := grpc.NewServer()
	Register(grpcServer, srv)

	go func() {
		<-ctx.Done()
		grpcServer.GracefulStop()
	}()

	logger.Infof("serving %s on %s", ServiceName, listener.Addr())
	if err := grpcServer.Serve(listener); err != nil {
		return errors.Wrap(err, "serve")
	}
	return nil
}
