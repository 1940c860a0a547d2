// Package reqctx carries per-request metadata through context.
package reqctx

import (
	"context"
	"net"
	"net/http"
	"strings"
)

type contextKey int

const (
	credentialKey contextKey = iota
	clientIPKey
)

// WithCredential stores the upstream API credential for this request.
func WithCredential(ctx context.Context, credential string) context.Context {
	return context.WithValue(ctx, credentialKey, credential)
}

// Credential returns the request's upstream API credential, if any.
func Credential(ctx context.Context) string {
	v, _ := ctx.Value(credentialKey).(string)
	return v
}

// WithClientIP stores the client IP for this request.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey, ip)
}

// ClientIP returns the request's client IP, if recorded.
func ClientIP(ctx context.Context) string {
	v, _ := ctx.Value(clientIPKey).(string)
	return v
}

// GetClientIP extracts the client IP from a request, honoring
// X-Forwarded-For when present.
func GetClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			fwd = fwd[:i]
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// BearerToken extracts a bearer credential from the Authorization header,
// or "" when absent or malformed.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
