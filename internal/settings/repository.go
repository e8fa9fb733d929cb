package settings

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-warehouse/internal/model"
)

var (
	ErrSyncNotConfigured = errors.New("sync server address is not configured")
	ErrSyncUnreachable   = errors.New("sync server unreachable")
)

// Repository is the local persistent store for the settings record.
type Repository interface {
	// Load returns nil, nil when nothing has been saved yet.
	Load(ctx context.Context) (*model.AppSettings, error)
	Save(ctx context.Context, s model.AppSettings) error
}

// Channel is the optional remote copy of the settings document.
type Channel interface {
	Ping(ctx context.Context) error
	// Publish replaces the remote document.
	Publish(ctx context.Context, s model.AppSettings) error
	// Subscribe delivers the current remote document, if any, and then every
	// later replacement until ctx is done.
	Subscribe(ctx context.Context, fn func(model.AppSettings)) error
	Close() error
}

// Dialer opens a Channel for the given credentials.
type Dialer func(ctx context.Context, cfg model.SyncConfig) (Channel, error)
