package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/settings"
	"github.com/fekuna/omnipos-warehouse/internal/settings/dto"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/fekuna/omnipos-warehouse/pkg/validation"
)

type memRepo struct {
	mu      sync.Mutex
	saved   *model.AppSettings
	loadErr error
	saveErr error
}

func (r *memRepo) Load(ctx context.Context) (*model.AppSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.saved, nil
}

func (r *memRepo) Save(ctx context.Context, s model.AppSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = &s
	return nil
}

func (r *memRepo) get() *model.AppSettings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

type fakeChannel struct {
	pingErr    error
	publishErr error
	remote     chan model.AppSettings
	published  chan model.AppSettings
	closed     bool
}

func newFakeChannel() *fakeChannel {
	return &fakeChannel{remote: make(chan model.AppSettings), published: make(chan model.AppSettings, 4)}
}

func (c *fakeChannel) Ping(ctx context.Context) error { return c.pingErr }

func (c *fakeChannel) Publish(ctx context.Context, s model.AppSettings) error {
	c.published <- s
	return c.publishErr
}

func (c *fakeChannel) Subscribe(ctx context.Context, fn func(model.AppSettings)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case s := <-c.remote:
			fn(s)
		}
	}
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func dialerFor(ch settings.Channel, err error) settings.Dialer {
	return func(ctx context.Context, cfg model.SyncConfig) (settings.Channel, error) {
		if err != nil {
			return nil, err
		}
		return ch, nil
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	for name, repo := range map[string]*memRepo{
		"empty":   {},
		"corrupt": {loadErr: errors.New("bad json")},
	} {
		t.Run(name, func(t *testing.T) {
			uc := NewSettingsUseCase(repo, nil, logger.NewNop())
			if err := uc.Load(context.Background()); err != nil {
				t.Fatalf("load: %v", err)
			}
			if got := uc.GetSettings(context.Background()); got.WarehouseName != model.DefaultSettings().WarehouseName {
				t.Fatalf("expected defaults, got %+v", got)
			}
		})
	}
}

func TestLoadStored(t *testing.T) {
	stored := model.DefaultSettings()
	stored.Branding.CompanyName = "ACME"
	uc := NewSettingsUseCase(&memRepo{saved: &stored}, nil, logger.NewNop())

	_ = uc.Load(context.Background())
	if got := uc.GetSettings(context.Background()).Branding.CompanyName; got != "ACME" {
		t.Fatalf("company = %q", got)
	}
}

func TestUpdatePersistsSynchronously(t *testing.T) {
	repo := &memRepo{}
	uc := NewSettingsUseCase(repo, nil, logger.NewNop())

	got, err := uc.UpdateSettings(context.Background(), &dto.UpdateSettingsInput{CompanyName: "ACME", Theme: "dark", WarehouseName: "Gudang 1"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Theme != "dark" || got.UpdatedAt.IsZero() {
		t.Fatalf("unexpected result %+v", got)
	}
	if saved := repo.get(); saved == nil || saved.Branding.CompanyName != "ACME" {
		t.Fatalf("not persisted: %+v", saved)
	}
}

func TestUpdateValidationAndSaveFailure(t *testing.T) {
	repo := &memRepo{}
	uc := NewSettingsUseCase(repo, nil, logger.NewNop())
	ctx := context.Background()

	_, err := uc.UpdateSettings(ctx, &dto.UpdateSettingsInput{Email: "not-an-email"})
	if !validation.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	_, err = uc.UpdateSettings(ctx, &dto.UpdateSettingsInput{SyncEnabled: true})
	if !validation.IsValidationError(err) {
		t.Fatalf("expected validation error for enabled sync without address, got %v", err)
	}

	repo.saveErr = errors.New("disk full")
	if _, err := uc.UpdateSettings(ctx, &dto.UpdateSettingsInput{CompanyName: "Nope"}); err == nil {
		t.Fatalf("expected save error")
	}
	if got := uc.GetSettings(ctx).Branding.CompanyName; got == "Nope" {
		t.Fatalf("failed save changed in-memory settings")
	}
}

func TestPublishFailureKeepsLocalChange(t *testing.T) {
	ch := newFakeChannel()
	ch.publishErr = errors.New("connection reset")

	stored := model.DefaultSettings()
	stored.Sync = model.SyncConfig{Enabled: true, Addr: "redis:6379"}
	repo := &memRepo{saved: &stored}
	uc := NewSettingsUseCase(repo, dialerFor(ch, nil), logger.NewNop())
	ctx := context.Background()

	_ = uc.Load(ctx)
	if err := uc.StartSync(ctx); err != nil {
		t.Fatalf("start sync: %v", err)
	}
	defer uc.Close()

	_, err := uc.UpdateSettings(ctx, &dto.UpdateSettingsInput{
		CompanyName: "Local", SyncEnabled: true, SyncAddr: "redis:6379",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	select {
	case p := <-ch.published:
		if p.Branding.CompanyName != "Local" {
			t.Fatalf("published %+v", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("nothing published")
	}
	if got := uc.GetSettings(ctx).Branding.CompanyName; got != "Local" {
		t.Fatalf("local change rolled back: %q", got)
	}
	if repo.get().Branding.CompanyName != "Local" {
		t.Fatalf("local change not persisted")
	}
}

func TestRemoteSnapshotOverwritesLocal(t *testing.T) {
	ch := newFakeChannel()
	stored := model.DefaultSettings()
	stored.Sync = model.SyncConfig{Enabled: true, Addr: "redis:6379", Password: "secret"}
	repo := &memRepo{saved: &stored}
	uc := NewSettingsUseCase(repo, dialerFor(ch, nil), logger.NewNop())
	ctx := context.Background()

	_ = uc.Load(ctx)
	if err := uc.StartSync(ctx); err != nil {
		t.Fatalf("start sync: %v", err)
	}

	remote := model.DefaultSettings()
	remote.Branding.CompanyName = "From Remote"
	remote.Theme = "dark"
	ch.remote <- remote

	waitFor(t, func() bool { return uc.GetSettings(ctx).Branding.CompanyName == "From Remote" })

	got := uc.GetSettings(ctx)
	if got.Theme != "dark" || got.Sync.Addr != "redis:6379" || got.Sync.Password != "secret" {
		t.Fatalf("unexpected merged settings %+v", got)
	}
	if repo.get().Branding.CompanyName != "From Remote" {
		t.Fatalf("remote snapshot not persisted locally")
	}

	if err := uc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !ch.closed {
		t.Fatalf("channel not closed")
	}
}

func TestStartSyncDisabledOrUnreachable(t *testing.T) {
	ctx := context.Background()

	uc := NewSettingsUseCase(&memRepo{}, dialerFor(nil, errors.New("boom")), logger.NewNop())
	if err := uc.StartSync(ctx); err != nil {
		t.Fatalf("disabled sync should be a no-op, got %v", err)
	}

	stored := model.DefaultSettings()
	stored.Sync = model.SyncConfig{Enabled: true, Addr: "nowhere:1"}
	uc = NewSettingsUseCase(&memRepo{saved: &stored}, dialerFor(nil, errors.New("boom")), logger.NewNop())
	_ = uc.Load(ctx)
	if err := uc.StartSync(ctx); !errors.Is(err, settings.ErrSyncUnreachable) {
		t.Fatalf("expected ErrSyncUnreachable, got %v", err)
	}
}

func TestTestConnection(t *testing.T) {
	ctx := context.Background()

	uc := NewSettingsUseCase(&memRepo{}, dialerFor(newFakeChannel(), nil), logger.NewNop())
	if err := uc.TestConnection(ctx, model.SyncConfig{}); !errors.Is(err, settings.ErrSyncNotConfigured) {
		t.Fatalf("expected ErrSyncNotConfigured, got %v", err)
	}
	if err := uc.TestConnection(ctx, model.SyncConfig{Addr: "redis:6379"}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	bad := newFakeChannel()
	bad.pingErr = errors.New("NOAUTH")
	uc = NewSettingsUseCase(&memRepo{}, dialerFor(bad, nil), logger.NewNop())
	if err := uc.TestConnection(ctx, model.SyncConfig{Addr: "redis:6379"}); !errors.Is(err, settings.ErrSyncUnreachable) {
		t.Fatalf("expected ErrSyncUnreachable, got %v", err)
	}
	if !bad.closed {
		t.Fatalf("test connection leaked the channel")
	}
}

type countingDialer struct {
	mu    sync.Mutex
	open  int
	dials int
}

type countedChannel struct {
	*fakeChannel
	d *countingDialer
}

func (c *countedChannel) Close() error {
	c.d.mu.Lock()
	c.d.open--
	c.d.mu.Unlock()
	return nil
}

func (d *countingDialer) dial(ctx context.Context, cfg model.SyncConfig) (settings.Channel, error) {
	time.Sleep(50 * time.Millisecond)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open++
	d.dials++
	return &countedChannel{fakeChannel: newFakeChannel(), d: d}, nil
}

func (d *countingDialer) counts() (open, dials int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open, d.dials
}

func TestBackToBackSyncChangesLeaveNoChannelOpen(t *testing.T) {
	d := &countingDialer{}
	uc := NewSettingsUseCase(&memRepo{}, d.dial, logger.NewNop())
	ctx := context.Background()

	for _, addr := range []string{"a:6379", "b:6379"} {
		if _, err := uc.UpdateSettings(ctx, &dto.UpdateSettingsInput{SyncEnabled: true, SyncAddr: addr}); err != nil {
			t.Fatalf("update %s: %v", addr, err)
		}
	}
	waitFor(t, func() bool {
		_, dials := d.counts()
		return dials == 2
	})
	if open, _ := d.counts(); open != 1 {
		t.Fatalf("open channels while running = %d, want 1", open)
	}

	if err := uc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if open, _ := d.counts(); open != 0 {
		t.Fatalf("open channels after close = %d, want 0", open)
	}

	// Sync changes after Close do not reconnect.
	if _, err := uc.UpdateSettings(ctx, &dto.UpdateSettingsInput{SyncEnabled: true, SyncAddr: "c:6379"}); err != nil {
		t.Fatalf("update after close: %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	if open, dials := d.counts(); open != 0 || dials != 2 {
		t.Fatalf("after close: open=%d dials=%d", open, dials)
	}
}
