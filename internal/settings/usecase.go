package settings

import (
	"context"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/settings/dto"
)

// UseCase is the single owner of the application settings. Changes are
// applied and persisted locally first; remote sync is advisory.
type UseCase interface {
	Load(ctx context.Context) error
	GetSettings(ctx context.Context) model.AppSettings
	UpdateSettings(ctx context.Context, input *dto.UpdateSettingsInput) (model.AppSettings, error)
	TestConnection(ctx context.Context, cfg model.SyncConfig) error
	StartSync(ctx context.Context) error
	Close() error
}
