// Package auth implements the dual-scheme admin gate: a static API key
// header or a short-lived bearer JWT, grounded on
// original_source/shortener-server/src/middleware/api_key_auth.rs and
// jwt_auth.rs (constant-time-ish header checks, Bearer-prefix parsing) and
// the jti-revocation session shape described in SPEC_FULL.md §3's
// AdminSession. JWT issuance/parsing uses golang-jwt/jwt/v5, the library the
// rest of the corpus (Xsxdot-aio, IPampurin L3.7) reaches for.
package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/koopa0/shortener/internal/model"
)

// ErrInvalidCredentials is returned by Login on a username/password mismatch.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// ErrUnauthorized is returned when neither scheme accepts a request.
var ErrUnauthorized = errors.New("auth: unauthorized")

// Claims is the JWT payload. Subject carries the admin username; the
// registered RegisteredClaims.ID field carries the jti checked against the
// revocation map.
type Claims struct {
	jwt.RegisteredClaims
}

// Gate implements the hybrid API-key/bearer-JWT authentication decision.
// The session map is process-local, matching SPEC_FULL.md §3's documented
// no-cross-replica-revocation trade-off.
type Gate struct {
	apiKey   string
	username string
	password string
	secret   []byte
	ttl      time.Duration

	mu       sync.Mutex
	sessions map[string]model.AdminSession // jti -> session, for live/introspectable sessions
	revoked  map[string]struct{}           // jti -> revoked (logout)
}

// New builds a Gate from the configured API key, admin credential, JWT
// signing secret and token TTL.
func New(apiKey, username, password, secret string, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Gate{
		apiKey:   apiKey,
		username: username,
		password: password,
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: make(map[string]model.AdminSession),
		revoked:  make(map[string]struct{}),
	}
}

// Login verifies username/password with a constant-time compare and, on
// success, issues a signed bearer token.
func (g *Gate) Login(username, password string) (string, error) {
	userOK := constantTimeEqual(username, g.username)
	passOK := constantTimeEqual(password, g.password)
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return g.issueToken(username)
}

func (g *Gate) issueToken(username string) (string, error) {
	jti := uuid.NewString()
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", err
	}

	g.mu.Lock()
	g.sessions[jti] = model.AdminSession{
		JTI:       jti,
		Subject:   username,
		IssuedAt:  now,
		ExpiresAt: now.Add(g.ttl),
	}
	g.mu.Unlock()

	return signed, nil
}

// Logout revokes the jti carried by token, if it parses.
func (g *Gate) Logout(token string) {
	claims, err := g.parse(token)
	if err != nil {
		return
	}
	g.mu.Lock()
	delete(g.sessions, claims.ID)
	g.revoked[claims.ID] = struct{}{}
	g.mu.Unlock()
}

// CheckAPIKey reports whether provided equals the configured static key.
// Empty keys never match, even against an empty configured key.
func (g *Gate) CheckAPIKey(provided string) bool {
	if provided == "" {
		return false
	}
	return constantTimeEqual(provided, g.apiKey)
}

// Username returns the configured admin identity. API-key auth has no
// per-principal identity of its own, so callers attribute a request
// authenticated that way to this account (SPEC_FULL.md §9.1).
func (g *Gate) Username() string {
	return g.username
}

// CheckBearer validates a bearer token's signature, expiry, and revocation
// status, returning the admin username it was issued to.
func (g *Gate) CheckBearer(token string) (string, error) {
	claims, err := g.parse(token)
	if err != nil {
		return "", ErrUnauthorized
	}

	g.mu.Lock()
	_, revoked := g.revoked[claims.ID]
	g.mu.Unlock()
	if revoked {
		return "", ErrUnauthorized
	}

	return claims.Subject, nil
}

func (g *Gate) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return g.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// constantTimeEqual compares two strings without leaking equality via an
// early byte-mismatch return. A length mismatch is checked first since
// subtle.ConstantTimeCompare requires equal-length inputs; credential
// lengths are not considered secret here.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
