// Package token issues and verifies the signed bearer tokens that carry a
// user's identity between login and protected requests. Tokens are
// self-contained HS256 JWTs; the server keeps no session table, so a token
// stays valid until its natural expiry. There is no revocation and no clock
// skew leeway.
package token

import (
	"crypto/rand"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired   = errors.New("token expired")
	ErrSignature = errors.New("token signature invalid")
	ErrMalformed = errors.New("token malformed")
)

// Claims are the identity fields embedded in a session token. The user ID
// travels in the registered "sub" claim.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Config struct {
	Secret []byte
	TTL    time.Duration
}

// ConfigFromEnv reads the signing secret and TTL from the environment.
// A missing JWT_SECRET is a startup error when APP_ENV=production; outside
// production a random per-process secret is generated so development never
// runs on a hardcoded default.
func ConfigFromEnv() (Config, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		if os.Getenv("APP_ENV") == "production" {
			return Config{}, errors.New("JWT_SECRET must be set in production")
		}
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return Config{}, err
		}
	}
	ttl := time.Hour
	if v := os.Getenv("JWT_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}
	return Config{Secret: secret, TTL: ttl}, nil
}

// Service signs and verifies session tokens with a server-held HMAC secret.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(cfg Config) *Service {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = time.Hour
	}
	return &Service{secret: cfg.Secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue signs a token carrying {id, email, name} with expiry now+ttl.
func (s *Service) Issue(userID, email, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Email: email,
		Name:  name,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

// Verify checks the signature first, then expiry, and returns the embedded
// claims. Failures map to ErrSignature, ErrExpired or ErrMalformed.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		default:
			return nil, ErrMalformed
		}
	}
	if !tok.Valid {
		return nil, ErrSignature
	}
	return claims, nil
}
