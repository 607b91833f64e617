// internal/app/system/adminauth/adminauth.go
// Package adminauth issues and verifies signed bearer tokens that carry a
// caller's role. Admin-only routes are guarded by RequireRole.
//
// Tokens are HS256 JWTs with a "role" claim, signed with the server's
// admin_token_secret. They are minted out of band with `cqadmin token`.
package adminauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLen is the shortest accepted signing secret, in bytes.
const MinSecretLen = 32

var (
	// ErrWeakSecret is returned by NewSigner for secrets shorter than MinSecretLen.
	ErrWeakSecret = fmt.Errorf("adminauth: signing secret must be at least %d bytes", MinSecretLen)
	// ErrNoToken is returned when a request carries no bearer token.
	ErrNoToken = errors.New("adminauth: no bearer token")
	// ErrMissingRole is returned for tokens without a role claim.
	ErrMissingRole = errors.New("adminauth: token has no role")
)

// Claims are the verified contents of a token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Signer creates and checks tokens.
type Signer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewSigner returns a Signer for the given secret and issuer.
func NewSigner(secret, issuer string) (*Signer, error) {
	if len(secret) < MinSecretLen {
		return nil, ErrWeakSecret
	}
	return &Signer{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// Issue returns a token for subject with the given role, valid for ttl.
func (s *Signer) Issue(subject, role string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(role) == "" {
		return "", ErrMissingRole
	}
	now := s.now()
	claims := Claims{
		Role: strings.ToUpper(strings.TrimSpace(role)),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses token, checks signature, issuer and expiry, and returns its claims.
func (s *Signer) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Role == "" {
		return nil, ErrMissingRole
	}
	return claims, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, error) {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrNoToken
	}
	return strings.TrimSpace(token), nil
}

type ctxKey string

const claimsKey ctxKey = "adminauth.claims"

// ClaimsFrom returns the verified claims stored by RequireRole.
func ClaimsFrom(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// WithClaims returns a copy of ctx carrying c.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// Reject writes an error response for a request that failed authorization.
type Reject func(w http.ResponseWriter, r *http.Request, status int, msg string, err error)

// RequireRole ensures the request carries a valid token whose role is one
// of allowed.
//   - no token or a bad token: 401
//   - valid token, wrong role: 403
func (s *Signer) RequireRole(reject Reject, allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToUpper(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				reject(w, r, http.StatusUnauthorized, "Authentication required", err)
				return
			}
			claims, err := s.Verify(token)
			if err != nil {
				reject(w, r, http.StatusUnauthorized, "Invalid or expired token", err)
				return
			}
			if _, ok := set[claims.Role]; !ok {
				reject(w, r, http.StatusForbidden, "Admin access only", nil)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}
