// Package remote mirrors the settings document through Redis: the document
// lives under a fixed key and every replacement is announced on a pub/sub
// channel carrying the full document.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-warehouse/internal/model"
	"github.com/fekuna/omnipos-warehouse/internal/settings"
	"github.com/fekuna/omnipos-warehouse/pkg/cache"
	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DocumentKey = "config/app_settings"

type RedisChannel struct {
	client  *cache.RedisClient
	channel string
	logger  logger.ZapLogger
}

// NewDialer returns a settings.Dialer that connects to the Redis server named
// by the sync credentials. Updates are announced on pubsub.
func NewDialer(pubsub string, log logger.ZapLogger) settings.Dialer {
	if pubsub == "" {
		pubsub = DocumentKey
	}
	return func(ctx context.Context, cfg model.SyncConfig) (settings.Channel, error) {
		if cfg.Addr == "" {
			return nil, settings.ErrSyncNotConfigured
		}
		client, err := cache.NewRedisClient(&cache.Config{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
		if err != nil {
			return nil, err
		}
		return NewRedisChannel(client, pubsub, log), nil
	}
}

func NewRedisChannel(client *cache.RedisClient, pubsub string, log logger.ZapLogger) *RedisChannel {
	return &RedisChannel{client: client, channel: pubsub, logger: log}
}

func (c *RedisChannel) Ping(ctx context.Context) error {
	return c.client.Client.Ping(ctx).Err()
}

// Publish writes the document and announces it. Sync credentials are
// device-local and never leave this process.
func (c *RedisChannel) Publish(ctx context.Context, s model.AppSettings) error {
	s.Sync = model.SyncConfig{}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = c.client.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, DocumentKey, data, 0)
		p.Publish(ctx, c.channel, data)
		return nil
	})
	if err != nil {
		return fmt.Errorf("publish settings: %w", err)
	}
	return nil
}

func (c *RedisChannel) Subscribe(ctx context.Context, fn func(model.AppSettings)) error {
	sub := c.client.Client.Subscribe(ctx, c.channel)
	defer sub.Close()

	// Wait for the subscription before reading the document so no update
	// published in between is missed.
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", c.channel, err)
	}

	data, err := c.client.Client.Get(ctx, DocumentKey).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return fmt.Errorf("read %s: %w", DocumentKey, err)
	default:
		c.deliver(data, fn)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			c.deliver([]byte(msg.Payload), fn)
		}
	}
}

func (c *RedisChannel) deliver(data []byte, fn func(model.AppSettings)) {
	var s model.AppSettings
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Warn("ignoring malformed remote settings", zap.Error(err))
		return
	}
	fn(s)
}

func (c *RedisChannel) Close() error {
	return c.client.Close()
}
