package auth

import (
	"context"
	"net/http"
	"strings"
)

// CredentialProvider hands out the bearer token for the current call.
// Callers receive one explicitly instead of reading a shared session.
type CredentialProvider interface {
	CurrentToken(ctx context.Context) (string, bool)
}

// StaticCredentials always returns the same token; empty means anonymous.
type StaticCredentials string

func (s StaticCredentials) CurrentToken(context.Context) (string, bool) {
	token := strings.TrimSpace(string(s))
	return token, token != ""
}

// CredentialsFunc adapts a function to CredentialProvider.
type CredentialsFunc func(ctx context.Context) (string, bool)

func (f CredentialsFunc) CurrentToken(ctx context.Context) (string, bool) {
	return f(ctx)
}

// HeaderCredentials reads the token from an Authorization header. Both
// "Bearer <token>" and a bare token are accepted.
type HeaderCredentials struct {
	Header http.Header
}

func (h HeaderCredentials) CurrentToken(context.Context) (string, bool) {
	return ParseAuthorization(h.Header.Get("Authorization"))
}

func ParseAuthorization(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	parts := strings.Fields(value)
	switch {
	case len(parts) == 1:
		return parts[0], true
	case len(parts) == 2 && strings.EqualFold(parts[0], "Bearer"):
		return parts[1], true
	default:
		return "", false
	}
}
