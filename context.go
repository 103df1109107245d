package restahead

import (
	"context"
)

type contextKey struct {
	name string
}

var callInfoKey = &contextKey{"call_info"}

// CallInfo identifies the generated method a request belongs to.
type CallInfo struct {
	Service string
	Method  string
}

// WithCall returns a context carrying the service and method of the current
// call. Generated methods call it before building their request.
func WithCall(ctx context.Context, service, method string) context.Context {
	return context.WithValue(ctx, callInfoKey, &CallInfo{Service: service, Method: method})
}

// CallFromContext returns the service and method of the current call.
func CallFromContext(ctx context.Context) (service, method string, ok bool) {
	if info, ok := ctx.Value(callInfoKey).(*CallInfo); ok {
		return info.Service, info.Method, true
	}
	return "", "", false
}
