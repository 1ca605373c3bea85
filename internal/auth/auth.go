package auth

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnauthenticated is the single error kind for a missing or empty bearer
// token. Handlers map it to a 401 so the caller can redirect to login.
var ErrUnauthenticated = errors.New("unauthenticated: missing bearer token")

// GinContextKey is where the request middleware stashes the parsed Context
// for handlers to pick up.
const GinContextKey = "auth.context"

// Context carries the caller's bearer token explicitly into every upstream
// call, instead of each call site reading ambient storage on its own.
type Context struct {
	token string
}

func NewContext(token string) *Context {
	return &Context{token: token}
}

// FromAuthorizationHeader parses an "Authorization: Bearer <token>" header
// value. A missing or malformed header yields ErrUnauthenticated.
func FromAuthorizationHeader(header string) (*Context, error) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return nil, ErrUnauthenticated
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return nil, ErrUnauthenticated
	}
	return &Context{token: token}, nil
}

// BearerToken returns the token or ErrUnauthenticated when none is held.
func (c *Context) BearerToken() (string, error) {
	if c == nil || c.token == "" {
		return "", ErrUnauthenticated
	}
	return c.token, nil
}
