package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"lifeblog/internal/apperr"
)

// Claims is the subset of the identity provider's access token we rely on.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret       []byte
	requiredRole string
}

func NewVerifier(secret, requiredRole string) *Verifier {
	return &Verifier{secret: []byte(secret), requiredRole: requiredRole}
}

// Verify checks an HS256 token signed with the shared secret. The token must
// carry a subject and an expiry, and the configured role when one is set.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperr.Unauthorized("invalid token: %v", err)
	}

	if !token.Valid {
		return nil, apperr.Unauthorized("invalid token")
	}

	if claims.Subject == "" {
		return nil, apperr.Unauthorized("token has no subject")
	}

	if v.requiredRole != "" && claims.Role != v.requiredRole {
		return nil, apperr.Unauthorized("token role %q is not allowed", claims.Role)
	}

	return claims, nil
}

// Issuer signs tokens the Verifier accepts. It exists for local development
// and tests; production tokens come from the identity provider.
type Issuer struct {
	secret []byte
	role   string
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret, role string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), role: role, ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(subject, email string) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		Email: email,
		Role:  i.role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

type claimsKey struct{}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*Claims)
	return claims, ok
}
