package reqctx

import (
	"context"

	"github.com/fekuna/omnipos-warehouse/pkg/middleware"
	"google.golang.org/grpc/metadata"
)

// GetLocale returns the caller's locale as set by middleware.ContextInterceptor,
// falling back to raw metadata when the interceptor did not run.
func GetLocale(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.LocaleKey).(string); ok && val != "" {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-locale"); len(val) > 0 {
			return val[0]
		}
	}
	return "en"
}

// GetOperator returns the operator name attached to the request, if any.
func GetOperator(ctx context.Context) string {
	if val, ok := ctx.Value(middleware.OperatorKey).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get("x-operator"); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
