// Package server assembles the gRPC server that exposes every warehouse service.
package server

import (
	warehousev1 "github.com/fekuna/omnipos-warehouse/api/warehousev1"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/fekuna/omnipos-warehouse/pkg/middleware"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

type Services struct {
	Products  warehousev1.ProductServiceServer
	Inbound   warehousev1.InboundServiceServer
	Outbound  warehousev1.OutboundServiceServer
	Inventory warehousev1.InventoryServiceServer
	Reports   warehousev1.ReportServiceServer
	Settings  warehousev1.SettingsServiceServer
}

// NewGRPCServer installs the context and logging interceptors and registers
// every non-nil service.
func NewGRPCServer(svc Services, defaultLocale string, log logger.ZapLogger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(defaultLocale),
			middleware.LoggingInterceptor(log),
		),
	}, opts...)
	s := grpc.NewServer(opts...)

	if svc.Products != nil {
		warehousev1.RegisterProductServiceServer(s, svc.Products)
	}
	if svc.Inbound != nil {
		warehousev1.RegisterInboundServiceServer(s, svc.Inbound)
	}
	if svc.Outbound != nil {
		warehousev1.RegisterOutboundServiceServer(s, svc.Outbound)
	}
	if svc.Inventory != nil {
		warehousev1.RegisterInventoryServiceServer(s, svc.Inventory)
	}
	if svc.Reports != nil {
		warehousev1.RegisterReportServiceServer(s, svc.Reports)
	}
	if svc.Settings != nil {
		warehousev1.RegisterSettingsServiceServer(s, svc.Settings)
	}

	reflection.Register(s)
	return s
}
