package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/settings"
	"github.com/fekuna/omnipos-warehouse/internal/settings/dto"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/fekuna/omnipos-warehouse/pkg/validation"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

type settingsUseCase struct {
	repo   settings.Repository
	dial   settings.Dialer
	logger logger.ZapLogger

	mu      sync.RWMutex
	current model.AppSettings

	// Active remote subscription, if any. Guarded by syncMu.
	syncMu  sync.Mutex
	channel settings.Channel
	stop    context.CancelFunc
	done    chan struct{}
	closed  bool
}

// NewSettingsUseCase creates the settings owner. dial may be nil when remote
// sync is not available in this build.
func NewSettingsUseCase(repo settings.Repository, dial settings.Dialer, log logger.ZapLogger) settings.UseCase {
	return &settingsUseCase{
		repo:    repo,
		dial:    dial,
		logger:  log,
		current: model.DefaultSettings(),
	}
}

// Load reads the stored record. A missing or unreadable record leaves defaults in place.
func (uc *settingsUseCase) Load(ctx context.Context) error {
	stored, err := uc.repo.Load(ctx)
	if err != nil {
		uc.logger.Warn("stored settings unreadable, using defaults", zap.Error(err))
		return nil
	}
	if stored == nil {
		uc.logger.Info("no stored settings, using defaults")
		return nil
	}

	uc.mu.Lock()
	uc.current = *stored
	uc.mu.Unlock()
	return nil
}

func (uc *settingsUseCase) GetSettings(ctx context.Context) model.AppSettings {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.current
}

// UpdateSettings persists the new record locally before returning. Remote
// propagation happens afterwards and its failure is only logged.
func (uc *settingsUseCase) UpdateSettings(ctx context.Context, input *dto.UpdateSettingsInput) (model.AppSettings, error) {
	if err := validation.Struct(input); err != nil {
		return model.AppSettings{}, err
	}

	uc.mu.Lock()
	prev := uc.current
	next := apply(prev, input)
	next.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Save(ctx, next); err != nil {
		uc.mu.Unlock()
		return model.AppSettings{}, fmt.Errorf("persist settings: %w", err)
	}
	uc.current = next
	uc.mu.Unlock()

	if prev.Sync != next.Sync {
		go uc.restartSync()
	} else {
		uc.publish(next)
	}
	return next, nil
}

// TestConnection dials the given credentials and pings once.
func (uc *settingsUseCase) TestConnection(ctx context.Context, cfg model.SyncConfig) error {
	if cfg.Addr == "" {
		return settings.ErrSyncNotConfigured
	}
	if uc.dial == nil {
		return fmt.Errorf("%w: sync is not available", settings.ErrSyncUnreachable)
	}

	ch, err := uc.dial(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", settings.ErrSyncUnreachable, err)
	}
	defer ch.Close()

	if err := ch.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", settings.ErrSyncUnreachable, err)
	}
	return nil
}

// StartSync subscribes to the remote document when sync is enabled, replacing
// any running subscription. It returns once the subscription is running;
// remote snapshots are applied in the background.
func (uc *settingsUseCase) StartSync(ctx context.Context) error {
	uc.syncMu.Lock()
	defer uc.syncMu.Unlock()
	if err := uc.stopLocked(); err != nil {
		uc.logger.Warn("closing settings channel", zap.Error(err))
	}
	return uc.startLocked(ctx)
}

func (uc *settingsUseCase) startLocked(ctx context.Context) error {
	cfg := uc.GetSettings(ctx).Sync
	if uc.closed || !cfg.Enabled || uc.dial == nil {
		return nil
	}

	ch, err := uc.dial(ctx, cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", settings.ErrSyncUnreachable, err)
	}

	subCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	uc.channel, uc.stop, uc.done = ch, cancel, done

	go func() {
		defer close(done)
		if err := ch.Subscribe(subCtx, uc.applyRemote); err != nil {
			uc.logger.Warn("settings subscription ended", zap.Error(err))
		}
	}()

	uc.logger.Info("settings sync started", zap.String("addr", cfg.Addr))
	return nil
}

// Close stops the subscription. Restarts still pending afterwards are no-ops.
func (uc *settingsUseCase) Close() error {
	uc.syncMu.Lock()
	defer uc.syncMu.Unlock()
	uc.closed = true
	return uc.stopLocked()
}

func (uc *settingsUseCase) stopLocked() error {
	if uc.channel == nil {
		return nil
	}
	uc.stop()
	<-uc.done
	err := uc.channel.Close()
	uc.channel, uc.stop, uc.done = nil, nil, nil
	return err
}

// restartSync reconnects with the current settings and republishes them.
// StartSync holds syncMu from stop to start, so overlapping restarts never
// leave a second channel open.
func (uc *settingsUseCase) restartSync() {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := uc.StartSync(ctx); err != nil {
		uc.logger.Warn("settings sync not started", zap.Error(err))
		return
	}
	uc.publish(uc.GetSettings(ctx))
}

// publish pushes s to the remote document without blocking the caller.
func (uc *settingsUseCase) publish(s model.AppSettings) {
	uc.syncMu.Lock()
	ch := uc.channel
	uc.syncMu.Unlock()
	if ch == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := ch.Publish(ctx, s); err != nil {
			uc.logger.Warn("settings publish failed, keeping local copy", zap.Error(err))
		}
	}()
}

// applyRemote replaces local settings with a remote snapshot, keeping this
// device's sync credentials.
func (uc *settingsUseCase) applyRemote(remote model.AppSettings) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	remote.Sync = uc.current.Sync
	if err := uc.repo.Save(ctx, remote); err != nil {
		uc.logger.Error("persisting remote settings", zap.Error(err))
	}
	uc.current = remote
	uc.logger.Info("applied remote settings", zap.Time("updated_at", remote.UpdatedAt))
}

func apply(s model.AppSettings, in *dto.UpdateSettingsInput) model.AppSettings {
	s.Branding = model.Branding{
		CompanyName: in.CompanyName,
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       in.Email,
		LogoURL:     in.LogoURL,
	}
	if in.Theme != "" {
		s.Theme = in.Theme
	}
	s.Admin = model.AdminIdentity{Name: in.AdminName, Title: in.AdminTitle}
	s.WarehouseName = in.WarehouseName
	s.HandoverTemplate = in.HandoverTemplate

	password := s.Sync.Password
	if in.SyncPassword != "" {
		password = in.SyncPassword
	}
	s.Sync = model.SyncConfig{
		Enabled:  in.SyncEnabled,
		Addr:     in.SyncAddr,
		Password: password,
		DB:       in.SyncDB,
	}
	return s
}
