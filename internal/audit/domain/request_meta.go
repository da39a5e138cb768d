package domain

import (
	"context"
)

// RequestMeta is the transport context copied onto every entry recorded during a request.
type RequestMeta struct {
	IPAddress string
	UserAgent string
	RequestID string
}

// requestMetaKey is a context key type for storing request metadata.
type requestMetaKey struct{}

// WithRequestMeta stores request metadata in the context.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext returns the request metadata, or a zero value when absent.
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}
