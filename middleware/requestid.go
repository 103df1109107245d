package middleware

import (
	"context"

	"github.com/broady/restahead"
	"github.com/google/uuid"
)

// RequestIDHeader is the header set by [RequestID].
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestID returns an interceptor that tags every request with a random
// UUID in the X-Request-Id header, unless it already has one. The ID is
// available to later interceptors through [RequestIDFromContext].
func RequestID() restahead.Interceptor {
	return func(ctx context.Context, req *restahead.Request, next restahead.ClientFunc) *restahead.Future[*restahead.Response] {
		id := ""
		if values := req.HeaderValues(RequestIDHeader); len(values) > 0 {
			id = values[0]
		} else {
			id = uuid.NewString()
			req.AddHeader(RequestIDHeader, id)
		}
		return next(context.WithValue(ctx, requestIDKey{}, id), req)
	}
}

// RequestIDFromContext returns the ID set by [RequestID].
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}
