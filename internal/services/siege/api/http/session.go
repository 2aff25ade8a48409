package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/catapult/internal/platform/errors"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "siege_session"
	sessionIssuer     = "siege"
)

// SessionSigner issues and verifies HS256 session tokens whose subject is the
// store session id.
type SessionSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionSigner returns a signer. The secret must be non-empty.
func NewSessionSigner(secret string, ttl time.Duration, now func() time.Time) (*SessionSigner, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	if now == nil {
		now = time.Now
	}
	return &SessionSigner{secret: []byte(secret), ttl: ttl, now: now}, nil
}

// Issue signs a token for sessionID.
func (s *SessionSigner) Issue(sessionID string) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    sessionIssuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Verify returns the session id carried by token. Any signature, algorithm,
// issuer or expiry failure reports the session as not found.
func (s *SessionSigner) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeSessionNotFound, "session token rejected", err)
	}
	if claims.Subject == "" {
		return "", apperrors.New(apperrors.CodeSessionNotFound, "session token has no subject")
	}
	return claims.Subject, nil
}

// Cookie builds the session cookie for token.
func (s *SessionSigner) Cookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// sessionFromRequest resolves the session id from the request cookie.
func (s *SessionSigner) sessionFromRequest(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", apperrors.New(apperrors.CodeSessionNotFound, "session cookie missing")
	}
	return s.Verify(cookie.Value)
}
