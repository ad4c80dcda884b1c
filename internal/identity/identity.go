// Package identity resolves the viewer of a product page from host-issued tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bought-tab/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the viewer token claims issued by the host platform.
// CustomerID takes precedence over the registered subject.
type Claims struct {
	CustomerID string `json:"customer_id,omitempty"`
	jwt.RegisteredClaims
}

// Resolver verifies HS256 viewer tokens.
type Resolver struct {
	secret []byte
}

// NewResolver creates a resolver for tokens signed with secret.
// An empty secret makes every viewer anonymous.
func NewResolver(secret string) *Resolver {
	return &Resolver{secret: []byte(secret)}
}

// Enabled reports whether tokens can be verified at all.
func (r *Resolver) Enabled() bool {
	return len(r.secret) > 0
}

// FromHeader resolves an Authorization header value. A missing header yields
// the anonymous viewer and no error; a bad token yields the anonymous viewer
// and model.ErrInvalidViewerToken.
func (r *Resolver) FromHeader(header string) (model.Viewer, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return model.AnonymousViewer, nil
	}

	scheme, raw, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
		return model.AnonymousViewer, fmt.Errorf("%w: malformed authorization header", model.ErrInvalidViewerToken)
	}

	return r.Parse(strings.TrimSpace(raw))
}

// Parse validates a raw token and returns its viewer.
func (r *Resolver) Parse(raw string) (model.Viewer, error) {
	if !r.Enabled() {
		return model.AnonymousViewer, fmt.Errorf("%w: viewer tokens are not configured", model.ErrInvalidViewerToken)
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (any, error) {
		return r.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithLeeway(30*time.Second))
	if err != nil {
		return model.AnonymousViewer, fmt.Errorf("%w: %v", model.ErrInvalidViewerToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return model.AnonymousViewer, fmt.Errorf("%w: invalid claims", model.ErrInvalidViewerToken)
	}

	customerID := claims.CustomerID
	if customerID == "" {
		customerID = claims.Subject
	}
	if customerID == "" {
		return model.AnonymousViewer, fmt.Errorf("%w: token carries no customer", model.ErrInvalidViewerToken)
	}

	return model.Viewer{CustomerID: customerID}, nil
}

// Issue signs a viewer token for customerID valid for ttl.
func (r *Resolver) Issue(customerID string, ttl time.Duration) (string, error) {
	if !r.Enabled() {
		return "", errors.New("viewer token secret is not configured")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(r.secret)
}

type viewerKey struct{}

// WithViewer stores viewer on ctx.
func WithViewer(ctx context.Context, viewer model.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, viewer)
}

// ViewerFromContext returns the viewer stored on ctx, or the anonymous viewer.
func ViewerFromContext(ctx context.Context) model.Viewer {
	if viewer, ok := ctx.Value(viewerKey{}).(model.Viewer); ok {
		return viewer
	}
	return model.AnonymousViewer
}
