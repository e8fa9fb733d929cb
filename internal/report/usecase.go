package report

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-warehouse/internal/export"
	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/report/dto"
)

var ErrUnknownReport = errors.New("unknown report")

// UseCase derives read-only views over the catalog and ledgers.
type UseCase interface {
	RegionDistribution(ctx context.Context, year int) ([]dto.RegionBucket, error)
	MonthlyMatrix(ctx context.Context, year int) (*dto.MonthlyMatrix, error)
	Export(ctx context.Context, input *dto.ExportInput) (*export.Artifact, error)
}

// SettingsSource supplies branding for exported documents.
type SettingsSource interface {
	GetSettings(ctx context.Context) model.AppSettings
}
