package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// PayrollServiceName は gRPC のサービス名です。
const PayrollServiceName = "payroll.v1.PayrollService"

// PayrollServiceServer は PayrollService のサーバー側インターフェースです。
// メッセージには protobuf の well-known type を用います。
type PayrollServiceServer interface {
	ClassifySalary(ctx context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	GetDepartmentName(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.StringValue, error)
	ProcessNewHires(ctx context.Context, req *timestamppb.Timestamp) (*structpb.Struct, error)
	CalculateBonuses(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListSalesSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// PayrollServiceDesc は PayrollService の grpc.ServiceDesc です。
var PayrollServiceDesc = grpc.ServiceDesc{
	ServiceName: PayrollServiceName,
	HandlerType: (*PayrollServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("ClassifySalary", PayrollServiceServer.ClassifySalary),
		unaryMethod("GetDepartmentName", PayrollServiceServer.GetDepartmentName),
		unaryMethod("ProcessNewHires", PayrollServiceServer.ProcessNewHires),
		unaryMethod("CalculateBonuses", PayrollServiceServer.CalculateBonuses),
		unaryMethod("ListSalesSummary", PayrollServiceServer.ListSalesSummary),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "payroll/v1/payroll.proto",
}

// RegisterPayrollServiceServer は srv を PayrollService として登録します。
func RegisterPayrollServiceServer(s grpc.ServiceRegistrar, srv PayrollServiceServer) {
	s.RegisterService(&PayrollServiceDesc, srv)
}

// FullMethod は /<service>/<method> 形式のメソッド名を返します。
func FullMethod(method string) string {
	return "/" + PayrollServiceName + "/" + method
}

func unaryMethod[Req any, Resp any, PReq interface{ *Req }](
	name string,
	call func(PayrollServiceServer, context.Context, PReq) (Resp, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PayrollServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(name),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(PayrollServiceServer), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
