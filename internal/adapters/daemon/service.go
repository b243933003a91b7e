package daemon

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified name of the daemon's gRPC service.
const ServiceName = "gridscript.v1.Engine"

// Method names of the daemon service.
const (
	MethodCall          = "Call"
	MethodFreshness     = "Freshness"
	MethodLoadedLibrary = "LoadedLibrary"
	MethodStatus        = "Status"
	MethodShutdown      = "Shutdown"
)

// engineServer is the server side of the daemon service. Messages are well-known
// protobuf types so the service needs no generated code.
type engineServer interface {
	Call(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error)
	Freshness(ctx context.Context, req *structpb.Value) (*wrapperspb.BoolValue, error)
	LoadedLibrary(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	Status(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Shutdown(ctx context.Context, req *emptypb.Empty) (*emptypb.Empty, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*engineServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodCall, func() *structpb.Struct { return new(structpb.Struct) }, engineServer.Call),
		unary(MethodFreshness, func() *structpb.Value { return new(structpb.Value) }, engineServer.Freshness),
		unary(MethodLoadedLibrary,
			func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }, engineServer.LoadedLibrary),
		unary(MethodStatus, func() *emptypb.Empty { return new(emptypb.Empty) }, engineServer.Status),
		unary(MethodShutdown, func() *emptypb.Empty { return new(emptypb.Empty) }, engineServer.Shutdown),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gridscript/v1/engine",
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary builds the method descriptor for a single request/response RPC.
func unary[Req, Resp proto.Message](
	name string,
	newReq func() Req,
	call func(engineServer, context.Context, Req) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			s, _ := srv.(engineServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				r, _ := req.(Req)
				return call(s, ctx, r)
			})
		},
	}
}
