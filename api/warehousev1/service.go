package warehousev1

import (
	"context"

	"github.com/fekuna/omnipos-warehouse/pkg/grpcjson"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

const (
	ProductServiceName   = "warehouse.v1.ProductService"
	InboundServiceName   = "warehouse.v1.InboundService"
	OutboundServiceName  = "warehouse.v1.OutboundService"
	InventoryServiceName = "warehouse.v1.InventoryService"
	ReportServiceName    = "warehouse.v1.ReportService"
	SettingsServiceName  = "warehouse.v1.SettingsService"
)

type ProductServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*ProductResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*ProductResponse, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*emptypb.Empty, error)
	BulkDeleteProducts(context.Context, *BulkDeleteProductsRequest) (*BulkDeleteProductsResponse, error)
	ImportProducts(context.Context, *ImportRequest) (*ImportResponse, error)
}

type InboundServiceServer interface {
	CreateInbound(context.Context, *CreateInboundRequest) (*InboundResponse, error)
	UpdateInbound(context.Context, *UpdateInboundRequest) (*InboundResponse, error)
	DeleteInbound(context.Context, *DeleteInboundRequest) (*emptypb.Empty, error)
	ListInbound(context.Context, *ListInboundRequest) (*ListInboundResponse, error)
	ImportInbound(context.Context, *ImportRequest) (*ImportResponse, error)
}

type OutboundServiceServer interface {
	CreateOutbound(context.Context, *CreateOutboundRequest) (*OutboundResponse, error)
	UpdateOutbound(context.Context, *UpdateOutboundRequest) (*OutboundResponse, error)
	DeleteOutbound(context.Context, *DeleteOutboundRequest) (*emptypb.Empty, error)
	GetOutbound(context.Context, *GetOutboundRequest) (*OutboundResponse, error)
	ListOutbound(context.Context, *ListOutboundRequest) (*ListOutboundResponse, error)
	RenderHandover(context.Context, *RenderHandoverRequest) (*RenderHandoverResponse, error)
}

type InventoryServiceServer interface {
	GetStock(context.Context, *GetStockRequest) (*StockResponse, error)
	ListStock(context.Context, *ListStockRequest) (*ListStockResponse, error)
	ValidateOutbound(context.Context, *ValidateOutboundRequest) (*ValidateOutboundResponse, error)
}

type ReportServiceServer interface {
	RegionDistribution(context.Context, *RegionDistributionRequest) (*RegionDistributionResponse, error)
	MonthlyMatrix(context.Context, *MonthlyMatrixRequest) (*MonthlyMatrixResponse, error)
	ExportReport(context.Context, *ExportReportRequest) (*ExportReportResponse, error)
}

type SettingsServiceServer interface {
	GetSettings(context.Context, *GetSettingsRequest) (*SettingsResponse, error)
	UpdateSettings(context.Context, *UpdateSettingsRequest) (*SettingsResponse, error)
	TestConnection(context.Context, *TestConnectionRequest) (*TestConnectionResponse, error)
}

// unary builds a method descriptor that decodes Req and dispatches to call,
// running the server's interceptor chain when one is installed.
func unary[S any, Req any, Resp any](service, method string, call func(S, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*Req))
			})
		},
	}
}

var ProductService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ProductServiceName, "CreateProduct", ProductServiceServer.CreateProduct),
		unary(ProductServiceName, "GetProduct", ProductServiceServer.GetProduct),
		unary(ProductServiceName, "ListProducts", ProductServiceServer.ListProducts),
		unary(ProductServiceName, "UpdateProduct", ProductServiceServer.UpdateProduct),
		unary(ProductServiceName, "DeleteProduct", ProductServiceServer.DeleteProduct),
		unary(ProductServiceName, "BulkDeleteProducts", ProductServiceServer.BulkDeleteProducts),
		unary(ProductServiceName, "ImportProducts", ProductServiceServer.ImportProducts),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "warehouse/v1/product",
}

var InboundService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: InboundServiceName,
	HandlerType: (*InboundServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(InboundServiceName, "CreateInbound", InboundServiceServer.CreateInbound),
		unary(InboundServiceName, "UpdateInbound", InboundServiceServer.UpdateInbound),
		unary(InboundServiceName, "DeleteInbound", InboundServiceServer.DeleteInbound),
		unary(InboundServiceName, "ListInbound", InboundServiceServer.ListInbound),
		unary(InboundServiceName, "ImportInbound", InboundServiceServer.ImportInbound),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "warehouse/v1/inbound",
}

var OutboundService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OutboundServiceName,
	HandlerType: (*OutboundServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(OutboundServiceName, "CreateOutbound", OutboundServiceServer.CreateOutbound),
		unary(OutboundServiceName, "UpdateOutbound", OutboundServiceServer.UpdateOutbound),
		unary(OutboundServiceName, "DeleteOutbound", OutboundServiceServer.DeleteOutbound),
		unary(OutboundServiceName, "GetOutbound", OutboundServiceServer.GetOutbound),
		unary(OutboundServiceName, "ListOutbound", OutboundServiceServer.ListOutbound),
		unary(OutboundServiceName, "RenderHandover", OutboundServiceServer.RenderHandover),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "warehouse/v1/outbound",
}

var InventoryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: InventoryServiceName,
	HandlerType: (*InventoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(InventoryServiceName, "GetStock", InventoryServiceServer.GetStock),
		unary(InventoryServiceName, "ListStock", InventoryServiceServer.ListStock),
		unary(InventoryServiceName, "ValidateOutbound", InventoryServiceServer.ValidateOutbound),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "warehouse/v1/inventory",
}

var ReportService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ReportServiceName,
	HandlerType: (*ReportServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ReportServiceName, "RegionDistribution", ReportServiceServer.RegionDistribution),
		unary(ReportServiceName, "MonthlyMatrix", ReportServiceServer.MonthlyMatrix),
		unary(ReportServiceName, "ExportReport", ReportServiceServer.ExportReport),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "warehouse/v1/report",
}

var SettingsService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SettingsServiceName,
	HandlerType: (*SettingsServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(SettingsServiceName, "GetSettings", SettingsServiceServer.GetSettings),
		unary(SettingsServiceName, "UpdateSettings", SettingsServiceServer.UpdateSettings),
		unary(SettingsServiceName, "TestConnection", SettingsServiceServer.TestConnection),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "warehouse/v1/settings",
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductService_ServiceDesc, srv)
}

func RegisterInboundServiceServer(s grpc.ServiceRegistrar, srv InboundServiceServer) {
	s.RegisterService(&InboundService_ServiceDesc, srv)
}

func RegisterOutboundServiceServer(s grpc.ServiceRegistrar, srv OutboundServiceServer) {
	s.RegisterService(&OutboundService_ServiceDesc, srv)
}

func RegisterInventoryServiceServer(s grpc.ServiceRegistrar, srv InventoryServiceServer) {
	s.RegisterService(&InventoryService_ServiceDesc, srv)
}

func RegisterReportServiceServer(s grpc.ServiceRegistrar, srv ReportServiceServer) {
	s.RegisterService(&ReportService_ServiceDesc, srv)
}

func RegisterSettingsServiceServer(s grpc.ServiceRegistrar, srv SettingsServiceServer) {
	s.RegisterService(&SettingsService_ServiceDesc, srv)
}

// Invoke calls a unary method with the JSON codec selected.
func Invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, service, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(grpcjson.Name)}, opts...)
	if err := cc.Invoke(ctx, "/"+service+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
