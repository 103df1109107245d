package restahead

import (
	"context"
)

// Client executes requests. Implementations must not block the caller: every
// outcome, including failure, is reported through the returned future.
type Client interface {
	Execute(ctx context.Context, req *Request) *Future[*Response]
}

// ClientFunc adapts a function to the [Client] interface.
// It is also the "next" step passed to an [Interceptor].
type ClientFunc func(ctx context.Context, req *Request) *Future[*Response]

// Execute calls f(ctx, req).
func (f ClientFunc) Execute(ctx context.Context, req *Request) *Future[*Response] {
	return f(ctx, req)
}

// Interceptor wraps the execution of a request.
//
//	func timing(ctx context.Context, req *restahead.Request, next restahead.ClientFunc) *restahead.Future[*restahead.Response] {
//	    start := time.Now()
//	    return restahead.Then(next(ctx, req), func(r *restahead.Response) (*restahead.Response, error) {
//	        log.Printf("%s %s took %v", req.Verb(), req.Path(), time.Since(start))
//	        return r, nil
//	    })
//	}
//
// Interceptors can add headers before calling next, observe or replace the
// returned future, or short-circuit with [Failed] without calling next.
type Interceptor func(ctx context.Context, req *Request, next ClientFunc) *Future[*Response]

// Intercept returns a client that runs the interceptors around c.
// The first interceptor is the outer-most one (runs first).
func Intercept(c Client, interceptors ...Interceptor) Client {
	if len(interceptors) == 0 {
		return c
	}
	chain := ClientFunc(c.Execute)
	for i := len(interceptors) - 1; i >= 0; i-- {
		current := interceptors[i]
		next := chain
		chain = func(ctx context.Context, req *Request) *Future[*Response] {
			return current(ctx, req, next)
		}
	}
	return chain
}
