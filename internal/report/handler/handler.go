package handler

import (
	"context"

	warehousev1 "github.com/fekuna/omnipos-warehouse/api/warehousev1"
	"github.com/fekuna/omnipos-warehouse/internal/grpcerr"
	"github.com/fekuna/omnipos-warehouse/internal/report"
	"github.com/fekuna/omnipos-warehouse/internal/report/dto"
	"github.com/fekuna/omnipos-warehouse/internal/reqctx"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ReportHandler struct {
	uc     report.UseCase
	errs   *grpcerr.Mapper
	logger logger.ZapLogger
}

func NewReportHandler(uc report.UseCase, errs *grpcerr.Mapper, log logger.ZapLogger) *ReportHandler {
	return &ReportHandler{
		uc:     uc,
		errs:   errs,
		logger: log,
	}
}

func (h *ReportHandler) RegionDistribution(ctx context.Context, req *warehousev1.RegionDistributionRequest) (*warehousev1.RegionDistributionResponse, error) {
	buckets, err := h.uc.RegionDistribution(ctx, int(req.Year))
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	out := make([]*warehousev1.RegionBucket, len(buckets))
	for i, b := range buckets {
		out[i] = &warehousev1.RegionBucket{
			Region:        b.Region,
			Transactions:  int32(b.Transactions),
			TotalQuantity: int32(b.TotalQuantity),
		}
	}
	return &warehousev1.RegionDistributionResponse{Regions: out}, nil
}

func (h *ReportHandler) MonthlyMatrix(ctx context.Context, req *warehousev1.MonthlyMatrixRequest) (*warehousev1.MonthlyMatrixResponse, error) {
	m, err := h.uc.MonthlyMatrix(ctx, int(req.Year))
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	rows := make([]*warehousev1.MonthlyRow, len(m.Rows))
	for i, r := range m.Rows {
		months := make([]int32, len(r.Months))
		for j, q := range r.Months {
			months[j] = int32(q)
		}
		rows[i] = &warehousev1.MonthlyRow{
			ProductId: r.ProductID,
			Code:      r.Code,
			Name:      r.Name,
			Months:    months,
			Total:     int32(r.Total),
		}
	}
	return &warehousev1.MonthlyMatrixResponse{Year: int32(m.Year), Rows: rows}, nil
}

func (h *ReportHandler) ExportReport(ctx context.Context, req *warehousev1.ExportReportRequest) (*warehousev1.ExportReportResponse, error) {
	art, err := h.uc.Export(ctx, &dto.ExportInput{
		Report: req.Report,
		Format: req.Format,
		Year:   int(req.Year),
	})
	if err != nil {
		h.logger.Error("export failed",
			zap.String("report", req.Report),
			zap.String("format", req.Format),
			zap.Error(err),
		)
		st := h.errs.Status(ctx, err)
		if status.Code(st) == codes.Internal {
			return nil, status.Error(codes.Internal, i18n.T(reqctx.GetLocale(ctx), "export_failed", nil))
		}
		return nil, st
	}

	return &warehousev1.ExportReportResponse{
		FileName:    art.FileName,
		ContentType: art.ContentType,
		Content:     art.Content,
	}, nil
}
