package client

import "context"

type ctxKey int

const (
	tokenKey ctxKey = iota
	requestIDKey
	clientIPKey
)

// WithToken attaches the caller's bearer token so outbound calls can forward it
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the bearer token stored by WithToken
func TokenFrom(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

// WithRequestID attaches the correlation id of the inbound request
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFrom returns the id stored by WithRequestID
func RequestIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// WithClientIP attaches the address of the end user behind the inbound request
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIPFrom returns the address stored by WithClientIP
func ClientIPFrom(ctx context.Context) string {
	v, _ := ctx.Value(clientIPKey).(string)
	return v
}

// Detach returns a context that outlives the request but keeps its token and request id.
// Background work started by a handler uses it for sibling calls.
func Detach(ctx context.Context) context.Context {
	out := context.Background()
	if token := TokenFrom(ctx); token != "" {
		out = WithToken(out, token)
	}
	if rid := RequestIDFrom(ctx); rid != "" {
		out = WithRequestID(out, rid)
	}
	if ip := ClientIPFrom(ctx); ip != "" {
		out = WithClientIP(out, ip)
	}
	return out
}
