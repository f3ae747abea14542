package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the performance service
const ServiceName = "wealthtrack.v1.PerformanceService"

// PerformanceServiceServer is the server API of wealthtrack.v1.PerformanceService
// Every request and response is a google.protobuf.Struct
type PerformanceServiceServer interface {
	GetPerformance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetHistory(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateAsset(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAssets(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordBalanceChange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfit(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(PerformanceServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

// FullMethod returns the gRPC path of a method, e.g. /wealthtrack.v1.PerformanceService/GetHistory
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// PerformanceServiceDesc describes wealthtrack.v1.PerformanceService for grpc.Server.RegisterService
var PerformanceServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PerformanceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetPerformance", Handler: unaryHandler("GetPerformance", PerformanceServiceServer.GetPerformance)},
		{MethodName: "GetHistory", Handler: unaryHandler("GetHistory", PerformanceServiceServer.GetHistory)},
		{MethodName: "CreateAsset", Handler: unaryHandler("CreateAsset", PerformanceServiceServer.CreateAsset)},
		{MethodName: "ListAssets", Handler: unaryHandler("ListAssets", PerformanceServiceServer.ListAssets)},
		{MethodName: "RecordBalanceChange", Handler: unaryHandler("RecordBalanceChange", PerformanceServiceServer.RecordBalanceChange)},
		{MethodName: "GetProfit", Handler: unaryHandler("GetProfit", PerformanceServiceServer.GetProfit)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "wealthtrack/v1/performance.proto",
}

// RegisterPerformanceServiceServer registers srv on s
func RegisterPerformanceServiceServer(s grpc.ServiceRegistrar, srv PerformanceServiceServer) {
	s.RegisterService(&PerformanceServiceDesc, srv)
}

func unaryHandler(method string, call unaryMethod) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PerformanceServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PerformanceServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
