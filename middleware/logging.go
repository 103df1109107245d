package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/broady/restahead"
)

// Logging returns an interceptor that logs each call using slog.
// It logs when the request is sent and when it completes, with the status code
// or the error, and the duration.
func Logging(logger *slog.Logger) restahead.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}

	return func(ctx context.Context, req *restahead.Request, next restahead.ClientFunc) *restahead.Future[*restahead.Response] {
		start := time.Now()
		attrs := requestAttrs(ctx, req)

		logger.LogAttrs(ctx, slog.LevelInfo, "request started", attrs...)

		f := next(ctx, req)
		return restahead.Go(func() (*restahead.Response, error) {
			resp, err := f.Result()
			done := append(attrs, slog.Duration("duration", time.Since(start)))
			switch {
			case err != nil:
				logger.LogAttrs(ctx, slog.LevelError, "request failed", append(done, slog.Any("error", err))...)
			case resp == nil:
				logger.LogAttrs(ctx, slog.LevelError, "request failed", append(done, slog.String("error", "no response"))...)
			case !resp.Successful():
				logger.LogAttrs(ctx, slog.LevelWarn, "request completed", append(done, slog.Int("status", resp.StatusCode))...)
			default:
				logger.LogAttrs(ctx, slog.LevelInfo, "request completed", append(done, slog.Int("status", resp.StatusCode))...)
			}
			return resp, err
		})
	}
}

func requestAttrs(ctx context.Context, req *restahead.Request) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("verb", req.Verb().String()),
		slog.String("path", req.Path()),
	}
	if service, method, ok := restahead.CallFromContext(ctx); ok {
		attrs = append(attrs, slog.String("call", service+"."+method))
	}
	return attrs
}
