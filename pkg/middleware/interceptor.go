package middleware

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fekuna/omnipos-warehouse/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type contextKey string

const (
	LocaleKey   contextKey = "locale"
	OperatorKey contextKey = "operator"
)

// ContextInterceptor lifts request metadata (locale, operator name) into the
// context so use cases and handlers do not need to read metadata themselves.
func ContextInterceptor(defaultLocale string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		locale := defaultLocale
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-locale"); len(v) > 0 && v[0] != "" {
				locale = v[0]
			} else if v := md.Get("accept-language"); len(v) > 0 && v[0] != "" {
				locale = strings.TrimSpace(strings.Split(v[0], ",")[0])
			}
			if v := md.Get("x-operator"); len(v) > 0 {
				ctx = context.WithValue(ctx, OperatorKey, v[0])
			}
		}
		ctx = context.WithValue(ctx, LocaleKey, locale)
		return handler(ctx, req)
	}
}

// LoggingInterceptor logs every call with its duration and turns panics into Internal errors.
func LoggingInterceptor(log logger.ZapLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic in handler",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()

		resp, err = handler(ctx, req)

		code := status.Code(err)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("duration", time.Since(start)),
		}
		switch code {
		case codes.OK:
			log.Debug("rpc", fields...)
		case codes.Internal, codes.Unknown:
			log.Error("rpc", append(fields, zap.Error(err))...)
		default:
			log.Info("rpc", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}
