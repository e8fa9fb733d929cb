package handler

import (
	"context"

	warehousev1 "github.com/fekuna/omnipos-warehouse/api/warehousev1"
	"github.com/fekuna/omnipos-warehouse/internal/grpcerr"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/reqctx"
	"github.com/fekuna/omnipos-warehouse/internal/settings"
	"github.com/fekuna/omnipos-warehouse/internal/settings/dto"
	"github.com/fekuna/omnipos-warehouse/pkg/i18n"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"
)

type SettingsHandler struct {
	uc     settings.UseCase
	errs   *grpcerr.Mapper
	logger logger.ZapLogger
}

func NewSettingsHandler(uc settings.UseCase, errs *grpcerr.Mapper, log logger.ZapLogger) *SettingsHandler {
	return &SettingsHandler{
		uc:     uc,
		errs:   errs,
		logger: log,
	}
}

func (h *SettingsHandler) GetSettings(ctx context.Context, req *warehousev1.GetSettingsRequest) (*warehousev1.SettingsResponse, error) {
	return &warehousev1.SettingsResponse{Settings: MapSettings(h.uc.GetSettings(ctx))}, nil
}

func (h *SettingsHandler) UpdateSettings(ctx context.Context, req *warehousev1.UpdateSettingsRequest) (*warehousev1.SettingsResponse, error) {
	if req.Settings == nil {
		return nil, h.errs.InvalidArgument(ctx, "settings")
	}

	s := req.Settings
	input := &dto.UpdateSettingsInput{
		Theme:            s.Theme,
		AdminName:        s.AdminName,
		AdminTitle:       s.AdminTitle,
		WarehouseName:    s.WarehouseName,
		HandoverTemplate: s.HandoverTemplate,
	}
	if b := s.Branding; b != nil {
		input.CompanyName = b.CompanyName
		input.Address = b.Address
		input.Phone = b.Phone
		input.Email = b.Email
		input.LogoURL = b.LogoUrl
	}
	if c := s.Sync; c != nil {
		input.SyncEnabled = c.Enabled
		input.SyncAddr = c.Addr
		input.SyncPassword = c.Password
		input.SyncDB = int(c.Db)
	}

	updated, err := h.uc.UpdateSettings(ctx, input)
	if err != nil {
		return nil, h.errs.Status(ctx, err)
	}

	h.logger.Info("settings updated", zap.String("operator", reqctx.GetOperator(ctx)))
	return &warehousev1.SettingsResponse{Settings: MapSettings(updated)}, nil
}

// TestConnection reports reachability in the response. An empty password
// reuses the stored one.
func (h *SettingsHandler) TestConnection(ctx context.Context, req *warehousev1.TestConnectionRequest) (*warehousev1.TestConnectionResponse, error) {
	cfg := h.uc.GetSettings(ctx).Sync
	if c := req.Sync; c != nil {
		cfg.Addr = c.Addr
		cfg.DB = int(c.Db)
		if c.Password != "" {
			cfg.Password = c.Password
		}
	}

	if err := h.uc.TestConnection(ctx, cfg); err != nil {
		h.logger.Warn("sync connection test failed", zap.String("addr", cfg.Addr), zap.Error(err))
		return &warehousev1.TestConnectionResponse{
			Ok:      false,
			Message: status.Convert(h.errs.Status(ctx, err)).Message(),
		}, nil
	}

	return &warehousev1.TestConnectionResponse{
		Ok:      true,
		Message: i18n.T(reqctx.GetLocale(ctx), "sync_ok", nil),
	}, nil
}

// MapSettings never exposes the sync password.
func MapSettings(s model.AppSettings) *warehousev1.Settings {
	return &warehousev1.Settings{
		Branding: &warehousev1.Branding{
			CompanyName: s.Branding.CompanyName,
			Address:     s.Branding.Address,
			Phone:       s.Branding.Phone,
			Email:       s.Branding.Email,
			LogoUrl:     s.Branding.LogoURL,
		},
		Theme:            s.Theme,
		AdminName:        s.Admin.Name,
		AdminTitle:       s.Admin.Title,
		WarehouseName:    s.WarehouseName,
		HandoverTemplate: s.HandoverTemplate,
		Sync: &warehousev1.SyncConfig{
			Enabled: s.Sync.Enabled,
			Addr:    s.Sync.Addr,
			Db:      int32(s.Sync.DB),
		},
		UpdatedAt: s.UpdatedAt,
	}
}
