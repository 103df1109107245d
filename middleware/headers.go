package middleware

import (
	"context"

	"github.com/broady/restahead"
)

// Headers returns an interceptor that adds the given headers to every request,
// after the headers the call declared. Names the request already carries are
// left alone.
func Headers(headers ...restahead.Header) restahead.Interceptor {
	return func(ctx context.Context, req *restahead.Request, next restahead.ClientFunc) *restahead.Future[*restahead.Response] {
		declared := make(map[string]bool, len(headers))
		for _, h := range headers {
			if _, seen := declared[h.Name]; !seen {
				declared[h.Name] = req.HasHeader(h.Name)
			}
			if !declared[h.Name] {
				req.AddHeader(h.Name, h.Value)
			}
		}
		return next(ctx, req)
	}
}

// UserAgent returns an interceptor that sets the User-Agent of every request.
func UserAgent(agent string) restahead.Interceptor {
	return Headers(restahead.Header{Name: "User-Agent", Value: agent})
}

// BearerToken returns an interceptor that authenticates every request with
// the token returned by token.
func BearerToken(token func(ctx context.Context) (string, error)) restahead.Interceptor {
	return func(ctx context.Context, req *restahead.Request, next restahead.ClientFunc) *restahead.Future[*restahead.Response] {
		tok, err := token(ctx)
		if err != nil {
			return restahead.Failed[*restahead.Response](err)
		}
		if !req.HasHeader("Authorization") {
			req.AddHeader("Authorization", "Bearer "+tok)
		}
		return next(ctx, req)
	}
}
