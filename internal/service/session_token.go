package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenService issues and validates the HMAC tokens that bind HTTP
// callers to their negotiation session.
type SessionTokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// SessionClaims carries the session binding inside the token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

func NewSessionTokenService(secret string, ttl time.Duration) *SessionTokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionTokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "auto-bargain",
	}
}

// Issue signs a token for the given session ID.
func (s *SessionTokenService) Issue(sessionID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrTokenInvalid
	}
	now := time.Now().UTC()
	claims := SessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse validates the token and returns its claims. The token must belong to
// this issuer and still be inside its lifetime.
func (s *SessionTokenService) Parse(token string) (SessionClaims, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(s.secret) == 0 {
		return SessionClaims{}, ErrTokenInvalid
	}

	var claims SessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrTokenExpired
		}
		return SessionClaims{}, ErrTokenInvalid
	}
	if !parsed.Valid || claims.SessionID == "" {
		return SessionClaims{}, ErrTokenInvalid
	}
	return claims, nil
}
