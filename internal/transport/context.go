// Package transport hands the inbound HTTP request to GraphQL resolvers.
package transport

import (
	"context"
	"net/http"
)

type requestKey struct{}

// WithRequest stores the request serving the current GraphQL operation.
func WithRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, requestKey{}, r)
}

func Request(ctx context.Context) *http.Request {
	r, _ := ctx.Value(requestKey{}).(*http.Request)
	return r
}

// UserAgent is the client's User-Agent, or "" outside an HTTP request.
func UserAgent(ctx context.Context) string {
	if r := Request(ctx); r != nil {
		return r.UserAgent()
	}
	return ""
}
